package lookup

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fec-cms/console/internal/apperr"
	"github.com/fec-cms/console/internal/gateway"
	"github.com/fec-cms/console/internal/session"
	"github.com/fec-cms/console/pkg/response"
)

// Finder is a selector with its entity type erased.
type Finder interface {
	Kind() string
	Find(ctx context.Context, api *gateway.Client, query string, selected []string) (interface{}, error)
	Selected(ctx context.Context, api *gateway.Client, ids []string) (interface{}, error)
}

// Registry maps a kind to its finder.
type Registry map[string]Finder

// NewRegistry builds the organization, region and feature finders.
func NewRegistry(pageSize int) Registry {
	r := Registry{}
	for _, f := range []Finder{
		NewSelector(Organizations(), pageSize),
		NewSelector(Regions(), pageSize),
		NewSelector(Features(), pageSize),
	} {
		r[f.Kind()] = f
	}
	return r
}

// Handler serves picker searches over REST.
type Handler struct {
	api     *gateway.Client
	finders Registry
	logger  *zap.Logger
}

// NewHandler creates a lookup handler.
func NewHandler(api *gateway.Client, finders Registry, logger *zap.Logger) *Handler {
	return &Handler{api: api, finders: finders, logger: logger}
}

// Search handles GET /lookup/:kind?q=&selected=a,b.
func (h *Handler) Search(c *gin.Context) {
	f, ok := h.finder(c)
	if !ok {
		return
	}
	options, err := f.Find(c.Request.Context(), session.Client(c, h.api), c.Query("q"), SplitIDs(c.Query("selected")))
	if err != nil {
		apperr.Respond(c, err, nil)
		return
	}
	response.OK(c, options)
}

// Resolve handles GET /lookup/:kind/resolve?ids=a,b: the options of a
// stored selection, raw id and entity together, in ids order.
func (h *Handler) Resolve(c *gin.Context) {
	f, ok := h.finder(c)
	if !ok {
		return
	}
	ids := SplitIDs(c.Query("ids"))
	if len(ids) == 0 {
		response.OK(c, []interface{}{})
		return
	}
	options, err := f.Selected(c.Request.Context(), session.Client(c, h.api), ids)
	if err != nil {
		apperr.Respond(c, err, nil)
		return
	}
	response.OK(c, options)
}

func (h *Handler) finder(c *gin.Context) (Finder, bool) {
	f, ok := h.finders[c.Param("kind")]
	if !ok {
		apperr.Respond(c, apperr.NewNotFound("unknown lookup kind "+c.Param("kind")), nil)
	}
	return f, ok
}

// SplitIDs parses a comma separated id list, dropping blanks.
func SplitIDs(s string) []string {
	var out []string
	for _, id := range strings.Split(s, ",") {
		if id = strings.TrimSpace(id); id != "" {
			out = append(out, id)
		}
	}
	return out
}
