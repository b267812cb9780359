package regions

import (
	"context"
	"encoding/json"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fec-cms/console/internal/apperr"
	"github.com/fec-cms/console/internal/form"
	"github.com/fec-cms/console/internal/gateway"
	"github.com/fec-cms/console/internal/listview"
	"github.com/fec-cms/console/internal/middleware"
	"github.com/fec-cms/console/internal/models"
	"github.com/fec-cms/console/internal/session"
	"github.com/fec-cms/console/pkg/response"
	"github.com/fec-cms/console/pkg/validation"
)

// ListPath is the region list view; region submits return there.
const ListPath = "/dashboard/region"

// Handler handles region HTTP endpoints.
type Handler struct {
	api       *gateway.Client
	submitter *form.Submitter[Draft, models.EditableRegion, *models.Region]
	logger    *zap.Logger
}

// NewHandler creates a regions handler.
func NewHandler(api *gateway.Client, logger *zap.Logger) *Handler {
	return &Handler{
		api:       api,
		submitter: form.NewSubmitter(Actions(), logger),
		logger:    logger,
	}
}

// Actions wires the region form into the submit protocol.
func Actions() form.Actions[Draft, models.EditableRegion, *models.Region] {
	return form.Actions[Draft, models.EditableRegion, *models.Region]{
		Entity:   "region",
		ID:       func(d Draft) string { return d.ID },
		Validate: Validate,
		Wire:     ToWirePayload,
		Create: func(ctx context.Context, api *gateway.Client, w models.EditableRegion) (*models.Region, error) {
			return api.CreateRegion(ctx, w)
		},
		Update: func(ctx context.Context, api *gateway.Client, id string, w models.EditableRegion) (*models.Region, error) {
			return api.UpdateRegion(ctx, id, w)
		},
		ResultID: func(r *models.Region) string {
			if r == nil {
				return ""
			}
			return r.ID
		},
		Redirect: func(string) string { return ListPath },
	}
}

// Editor is the state a region edit page mounts with.
type Editor struct {
	Draft Draft      `json:"draft"`
	State form.State `json:"state"`
}

// List handles GET /regions. search matches on code.
func (h *Handler) List(c *gin.Context) {
	q, err := listview.Bind(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	h.respondList(c, q, nil)
}

func (h *Handler) respondList(c *gin.Context, q listview.Query, notice *response.Notice) {
	list, err := session.Client(c, h.api).ListRegions(c.Request.Context(), q.Params())
	if err != nil {
		apperr.Respond(c, err, nil)
		return
	}
	response.OKWithNotice(c, listview.FromList(list, q), notice, "")
}

// New handles GET /regions/new.
func (h *Handler) New(c *gin.Context) {
	response.OK(c, Editor{Draft: Initialize(nil), State: form.StateEditing})
}

// Get handles GET /regions/:id.
func (h *Handler) Get(c *gin.Context) {
	r, err := session.Client(c, h.api).GetRegion(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperr.RespondLoad(c, err, ListPath)
		return
	}
	response.OK(c, Editor{Draft: Initialize(r), State: form.StateEditing})
}

// FieldRequest is the body for POST /regions/field.
type FieldRequest struct {
	Draft Draft           `json:"draft"`
	Path  string          `json:"path" binding:"required"`
	Value json.RawMessage `json:"value"`
}

// FieldResponse is the draft after an edit with that field's violations.
type FieldResponse struct {
	Draft  Draft             `json:"draft"`
	Errors validation.Errors `json:"errors"`
}

// SetField handles POST /regions/field.
func (h *Handler) SetField(c *gin.Context) {
	var req FieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	var value interface{}
	if len(req.Value) > 0 {
		if err := json.Unmarshal(req.Value, &value); err != nil {
			response.BadRequest(c, "invalid value: "+err.Error())
			return
		}
	}
	d, err := SetField(req.Draft, req.Path, value)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.OK(c, FieldResponse{Draft: d, Errors: Validate(d).Field(req.Path)})
}

// Create handles POST /regions.
func (h *Handler) Create(c *gin.Context) {
	h.submit(c, "")
}

// Update handles POST /regions/:id.
func (h *Handler) Update(c *gin.Context) {
	h.submit(c, c.Param("id"))
}

func (h *Handler) submit(c *gin.Context, id string) {
	var d Draft
	if err := c.ShouldBindJSON(&d); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if id != "" {
		d.ID = id
	}
	key := form.Key(c.GetString(middleware.ContextSessionID), "region", d.ID)
	form.Respond(c, h.submitter.Submit(c.Request.Context(), session.Client(c, h.api), key, d))
}

// Delete handles DELETE /regions/:id and answers with the list re-queried.
func (h *Handler) Delete(c *gin.Context) {
	q, err := listview.Bind(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	id := c.Param("id")
	if err := session.Client(c, h.api).DeleteRegion(c.Request.Context(), id); err != nil {
		apperr.Respond(c, err, nil)
		return
	}
	h.logger.Info("region deleted", zap.String("region_id", id))
	h.respondList(c, q, response.Success("Deleted", "region deleted"))
}
