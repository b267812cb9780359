package cache

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

// ErrInvalidPath is returned for paths that are not site-absolute.
var ErrInvalidPath = apperr.NewBadRequest("cache path must start with /")

// EventPath is the published page of an event.
func EventPath(orgSlug, eventSlug string) string {
	return "/" + orgSlug + "/" + eventSlug
}

// OrganizationPath is the published page of an organization.
func OrganizationPath(slug string) string {
	return "/" + slug
}

// Clean asks the backend to drop the published page at path.
func Clean(ctx context.Context, api *gateway.Client, path string) error {
	path = strings.TrimSpace(path)
	if !strings.HasPrefix(path, "/") {
		return ErrInvalidPath
	}
	return api.CleanPageCache(ctx, path)
}

// CleanRequest is the body for POST /cache/clean.
type CleanRequest struct {
	Path string `json:"path" binding:"required"`
}

// Handler serves the cache manager page.
type Handler struct {
	api    *gateway.Client
	logger *zap.Logger
}

// NewHandler creates a cache handler.
func NewHandler(api *gateway.Client, logger *zap.Logger) *Handler {
	return &Handler{api: api, logger: logger}
}

// Clean handles POST /cache/clean.
func (h *Handler) Clean(c *gin.Context) {
	var req CleanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if err := Clean(c.Request.Context(), session.Client(c, h.api), req.Path); err != nil {
		apperr.Respond(c, err, nil)
		return
	}
	h.logger.Info("page cache cleaned", zap.String("path", req.Path))
	response.OKWithNotice(c, gin.H{"path": req.Path}, response.Success("Cache cleaned", req.Path), "")
}
