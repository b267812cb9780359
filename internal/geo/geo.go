package geo

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fec-cms/console/internal/apperr"
	"github.com/fec-cms/console/internal/gateway"
	"github.com/fec-cms/console/internal/models"
	"github.com/fec-cms/console/internal/session"
	"github.com/fec-cms/console/pkg/response"
)

// Coordinates renders a candidate's position as the addressLat and
// addressLon strings an event draft stores.
func Coordinates(loc models.Location) (lat, lon string) {
	return strconv.FormatFloat(loc.Location.Lat, 'f', -1, 64),
		strconv.FormatFloat(loc.Location.Lng, 'f', -1, 64)
}

// Candidate is a suggestion ready to be applied to a draft.
type Candidate struct {
	models.Location
	Address    string `json:"address"`
	AddressLat string `json:"addressLat"`
	AddressLon string `json:"addressLon"`
}

// FromLocation fills a candidate. The address falls back to the title.
func FromLocation(loc models.Location) Candidate {
	lat, lon := Coordinates(loc)
	addr := strings.TrimSpace(loc.Address)
	if addr == "" {
		addr = loc.Title
	}
	return Candidate{Location: loc, Address: addr, AddressLat: lat, AddressLon: lon}
}

// SuggestionRequest is the body for POST /geo/suggestion.
type SuggestionRequest struct {
	Region  string `json:"region"`
	Keyword string `json:"keyword" binding:"required"`
}

// Handler proxies address suggestions for the event editor.
type Handler struct {
	api    *gateway.Client
	logger *zap.Logger
}

// NewHandler creates a geo handler.
func NewHandler(api *gateway.Client, logger *zap.Logger) *Handler {
	return &Handler{api: api, logger: logger}
}

// Suggest handles POST /geo/suggestion.
func (h *Handler) Suggest(c *gin.Context) {
	var req SuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "keyword required")
		return
	}
	out, err := session.Client(c, h.api).MapSuggestion(c.Request.Context(), req.Region, strings.TrimSpace(req.Keyword))
	if err != nil {
		apperr.Respond(c, err, nil)
		return
	}
	candidates := make([]Candidate, 0, len(out.Data))
	for _, loc := range out.Data {
		candidates = append(candidates, FromLocation(loc))
	}
	response.OK(c, gin.H{"count": out.Count, "candidates": candidates})
}
