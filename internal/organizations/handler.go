package organizations

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fec-cms/console/internal/apperr"
	"github.com/fec-cms/console/internal/cache"
	"github.com/fec-cms/console/internal/form"
	"github.com/fec-cms/console/internal/gateway"
	"github.com/fec-cms/console/internal/listview"
	"github.com/fec-cms/console/internal/middleware"
	"github.com/fec-cms/console/internal/models"
	"github.com/fec-cms/console/internal/session"
	"github.com/fec-cms/console/pkg/response"
	"github.com/fec-cms/console/pkg/validation"
)

const listPath = "/dashboard/organization"

// ErrDeleteUnsupported is returned by Delete; the backend exposes no
// organization removal the console may call.
var ErrDeleteUnsupported = apperr.NewNotImplemented("organization delete is not supported")

// EditPath is the edit view of an organization.
func EditPath(id string) string {
	return listPath + "/" + id + "/edit"
}

// Handler handles organization HTTP endpoints.
type Handler struct {
	api       *gateway.Client
	submitter *form.Submitter[Draft, models.EditableOrganization, *models.Organization]
	logger    *zap.Logger
}

// NewHandler creates an organizations handler.
func NewHandler(api *gateway.Client, logger *zap.Logger) *Handler {
	return &Handler{
		api:       api,
		submitter: form.NewSubmitter(Actions(), logger),
		logger:    logger,
	}
}

// Actions wires the organization form into the submit protocol.
func Actions() form.Actions[Draft, models.EditableOrganization, *models.Organization] {
	return form.Actions[Draft, models.EditableOrganization, *models.Organization]{
		Entity:   "organization",
		ID:       func(d Draft) string { return d.ID },
		Validate: Validate,
		Wire:     ToWirePayload,
		Create: func(ctx context.Context, api *gateway.Client, w models.EditableOrganization) (*models.Organization, error) {
			return api.CreateOrganization(ctx, w)
		},
		Update: func(ctx context.Context, api *gateway.Client, id string, w models.EditableOrganization) (*models.Organization, error) {
			return api.UpdateOrganization(ctx, id, w)
		},
		ResultID: func(o *models.Organization) string {
			if o == nil {
				return ""
			}
			return o.ID
		},
		Redirect: EditPath,
	}
}

// Editor is the state an organization edit page mounts with.
type Editor struct {
	Draft Draft      `json:"draft"`
	State form.State `json:"state"`
}

// List handles GET /organizations. search matches on name.
func (h *Handler) List(c *gin.Context) {
	q, err := listview.Bind(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	list, err := session.Client(c, h.api).ListOrganizations(c.Request.Context(), q.Params())
	if err != nil {
		apperr.Respond(c, err, nil)
		return
	}
	response.OK(c, listview.FromList(list, q))
}

// New handles GET /organizations/new.
func (h *Handler) New(c *gin.Context) {
	response.OK(c, Editor{Draft: Initialize(nil), State: form.StateEditing})
}

// Get handles GET /organizations/:id.
func (h *Handler) Get(c *gin.Context) {
	o, err := session.Client(c, h.api).GetOrganization(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperr.RespondLoad(c, err, listPath)
		return
	}
	response.OK(c, Editor{Draft: Initialize(o), State: form.StateEditing})
}

// FieldRequest is the body for POST /organizations/field.
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

// SetField handles POST /organizations/field.
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
	if errors.Is(err, form.ErrImmutableField) {
		respondLocked(c, err)
		return
	}
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.OK(c, FieldResponse{Draft: d, Errors: Validate(d).Field(req.Path)})
}

// Create handles POST /organizations.
func (h *Handler) Create(c *gin.Context) {
	h.submit(c, "")
}

// Update handles POST /organizations/:id.
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
	api := session.Client(c, h.api)
	if d.ID != "" {
		stored, err := api.GetOrganization(c.Request.Context(), d.ID)
		if err != nil {
			apperr.Respond(c, err, response.Failure("Save failed", err.Error()))
			return
		}
		if err := CheckSlug(d, stored); err != nil {
			respondLocked(c, err)
			return
		}
	}
	key := form.Key(c.GetString(middleware.ContextSessionID), "organization", d.ID)
	form.Respond(c, h.submitter.Submit(c.Request.Context(), api, key, d))
}

func respondLocked(c *gin.Context, err error) {
	response.Conflict(c, err.Error(), response.Failure("Slug is locked", "the slug of an existing organization cannot change"))
}

// Delete handles DELETE /organizations/:id.
func (h *Handler) Delete(c *gin.Context) {
	apperr.Respond(c, ErrDeleteUnsupported, response.Failure("Not supported", ErrDeleteUnsupported.Error()))
}

// RefreshCache handles POST /organizations/:id/cache.
func (h *Handler) RefreshCache(c *gin.Context) {
	ctx := c.Request.Context()
	api := session.Client(c, h.api)
	o, err := api.GetOrganization(ctx, c.Param("id"))
	if err != nil {
		apperr.Respond(c, err, nil)
		return
	}
	if o.Slug == "" {
		apperr.Respond(c, apperr.NewUnprocessable("organization has no slug"), nil)
		return
	}
	path := cache.OrganizationPath(o.Slug)
	if err := cache.Clean(ctx, api, path); err != nil {
		apperr.Respond(c, err, nil)
		return
	}
	h.logger.Info("organization cache cleaned", zap.String("organization_id", o.ID), zap.String("path", path))
	response.OKWithNotice(c, gin.H{"path": path}, response.Success("Cache cleaned", path), "")
}
