package applications

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fec-cms/console/internal/apperr"
	"github.com/fec-cms/console/internal/gateway"
	"github.com/fec-cms/console/internal/listview"
	"github.com/fec-cms/console/internal/session"
	"github.com/fec-cms/console/pkg/response"
)

// Handler serves the read-only application list.
type Handler struct {
	api    *gateway.Client
	logger *zap.Logger
}

// NewHandler creates an applications handler.
func NewHandler(api *gateway.Client, logger *zap.Logger) *Handler {
	return &Handler{api: api, logger: logger}
}

// List handles GET /applications. Routes restrict it to admin and developer.
func (h *Handler) List(c *gin.Context) {
	q, err := listview.Bind(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	list, err := session.Client(c, h.api).ListApplications(c.Request.Context(), q.Params())
	if err != nil {
		apperr.Respond(c, err, nil)
		return
	}
	response.OK(c, listview.FromList(list, q))
}
