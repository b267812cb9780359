package features

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
)

const listPath = "/dashboard/feature"

// ErrDeleteUnsupported is returned by Delete.
var ErrDeleteUnsupported = apperr.NewNotImplemented("feature delete is not supported")

// EditPath is the edit view of a feature.
func EditPath(id string) string {
	return listPath + "/" + id + "/edit"
}

// Handler handles feature HTTP endpoints.
type Handler struct {
	api       *gateway.Client
	submitter *form.Submitter[Draft, models.EditableFeature, *models.Feature]
	logger    *zap.Logger
}

// NewHandler creates a features handler.
func NewHandler(api *gateway.Client, logger *zap.Logger) *Handler {
	return &Handler{
		api:       api,
		submitter: form.NewSubmitter(Actions(), logger),
		logger:    logger,
	}
}

// Actions wires the feature form into the submit protocol.
func Actions() form.Actions[Draft, models.EditableFeature, *models.Feature] {
	return form.Actions[Draft, models.EditableFeature, *models.Feature]{
		Entity:   "feature",
		ID:       func(d Draft) string { return d.ID },
		Validate: Validate,
		Wire:     ToWirePayload,
		Create: func(ctx context.Context, api *gateway.Client, w models.EditableFeature) (*models.Feature, error) {
			return api.CreateFeature(ctx, w)
		},
		Update: func(ctx context.Context, api *gateway.Client, id string, w models.EditableFeature) (*models.Feature, error) {
			return api.UpdateFeature(ctx, id, w)
		},
		ResultID: func(f *models.Feature) string {
			if f == nil {
				return ""
			}
			return f.ID
		},
		Redirect: EditPath,
	}
}

// Editor is the state a feature edit page mounts with.
type Editor struct {
	Draft Draft      `json:"draft"`
	State form.State `json:"state"`
}

// GroupedPage is a feature list page with its records split by category.
type GroupedPage struct {
	listview.Page[models.Feature]
	Groups []Group `json:"groups"`
}

// List handles GET /features.
func (h *Handler) List(c *gin.Context) {
	q, err := listview.Bind(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	list, err := session.Client(c, h.api).ListFeatures(c.Request.Context(), q.Params())
	if err != nil {
		apperr.Respond(c, err, nil)
		return
	}
	page := listview.FromList(list, q)
	response.OK(c, GroupedPage{Page: page, Groups: GroupByCategory(page.Records)})
}

// New handles GET /features/new.
func (h *Handler) New(c *gin.Context) {
	response.OK(c, Editor{Draft: Initialize(nil), State: form.StateEditing})
}

// Get handles GET /features/:id.
func (h *Handler) Get(c *gin.Context) {
	f, err := session.Client(c, h.api).GetFeature(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperr.RespondLoad(c, err, listPath)
		return
	}
	response.OK(c, Editor{Draft: Initialize(f), State: form.StateEditing})
}

// FieldRequest is the body for POST /features/field.
type FieldRequest struct {
	Draft Draft           `json:"draft"`
	Path  string          `json:"path" binding:"required"`
	Value json.RawMessage `json:"value"`
}

// SetField handles POST /features/field.
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
	response.OK(c, gin.H{"draft": d, "errors": Validate(d).Field(req.Path)})
}

// Create handles POST /features.
func (h *Handler) Create(c *gin.Context) {
	h.submit(c, "")
}

// Update handles POST /features/:id.
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
	key := form.Key(c.GetString(middleware.ContextSessionID), "feature", d.ID)
	form.Respond(c, h.submitter.Submit(c.Request.Context(), session.Client(c, h.api), key, d))
}

// Delete handles DELETE /features/:id.
func (h *Handler) Delete(c *gin.Context) {
	apperr.Respond(c, ErrDeleteUnsupported, response.Failure("Not supported", ErrDeleteUnsupported.Error()))
}
