package events

import (
	"context"
	"encoding/json"
	"time"

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

const listPath = "/dashboard/event"

// EditPath is the edit view of an event.
func EditPath(id string) string {
	return listPath + "/" + id + "/edit"
}

// Handler handles event list and editor endpoints.
type Handler struct {
	api       *gateway.Client
	submitter *form.Submitter[Draft, models.EditableEvent, *models.Event]
	now       func() time.Time
	logger    *zap.Logger
}

// NewHandler creates an event handler. Form defaults are computed in loc.
func NewHandler(api *gateway.Client, loc *time.Location, logger *zap.Logger) *Handler {
	return &Handler{
		api:       api,
		submitter: form.NewSubmitter(Actions(), logger),
		now:       func() time.Time { return time.Now().In(loc) },
		logger:    logger,
	}
}

// Actions wires the event form into the generic submit protocol.
func Actions() form.Actions[Draft, models.EditableEvent, *models.Event] {
	return form.Actions[Draft, models.EditableEvent, *models.Event]{
		Entity:   "event",
		ID:       func(d Draft) string { return d.ID },
		Validate: Validate,
		Wire:     ToWirePayload,
		Create: func(ctx context.Context, api *gateway.Client, w models.EditableEvent) (*models.Event, error) {
			return api.CreateEvent(ctx, w)
		},
		Update: func(ctx context.Context, api *gateway.Client, id string, w models.EditableEvent) (*models.Event, error) {
			return api.UpdateEvent(ctx, id, w)
		},
		ResultID: func(e *models.Event) string {
			if e == nil {
				return ""
			}
			return e.ID
		},
		Redirect: EditPath,
	}
}

// Editor is the state an edit page mounts with.
type Editor struct {
	Draft        Draft                `json:"draft"`
	State        form.State           `json:"state"`
	Options      Options              `json:"options"`
	Organization *models.Organization `json:"organization,omitempty"`
	Region       *models.Region       `json:"region,omitempty"`
}

// Options are the fixed choices the editor renders: cover presets and
// scales from smallest to largest.
type Options struct {
	Thumbnails []string `json:"thumbnails"`
	Scales     []string `json:"scales"`
}

func editorOptions() Options {
	return Options{
		Thumbnails: append([]string(nil), models.ThumbnailPresets...),
		Scales:     append([]string(nil), models.EventScales...),
	}
}

// List handles GET /events.
func (h *Handler) List(c *gin.Context) {
	q, err := listview.Bind(c, "orgSearch")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	h.respondList(c, q, nil)
}

func (h *Handler) respondList(c *gin.Context, q listview.Query, notice *response.Notice) {
	list, err := session.Client(c, h.api).ListEvents(c.Request.Context(), models.EventListParams{
		Current:   q.Current,
		PageSize:  q.PageSize,
		Search:    q.Search,
		OrgSearch: q.Filter("orgSearch"),
		SortField: q.SortField,
		SortOrder: q.SortOrder,
	})
	if err != nil {
		apperr.Respond(c, err, nil)
		return
	}
	response.OKWithNotice(c, listview.FromList(list, q), notice, "")
}

// New handles GET /events/new.
func (h *Handler) New(c *gin.Context) {
	response.OK(c, Editor{Draft: Initialize(nil, h.now()), State: form.StateEditing, Options: editorOptions()})
}

// Get handles GET /events/:id. The detail is fetched fresh every time.
func (h *Handler) Get(c *gin.Context) {
	e, err := session.Client(c, h.api).GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperr.RespondLoad(c, err, listPath)
		return
	}
	response.OK(c, Editor{
		Draft:        Initialize(e, h.now()),
		State:        form.StateEditing,
		Options:      editorOptions(),
		Organization: e.Organization,
		Region:       e.Region,
	})
}

// FieldRequest is the body for POST /events/field.
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

// SetField handles POST /events/field.
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
	errs := Validate(d).Field(req.Path)
	response.OK(c, FieldResponse{Draft: d, Errors: errs})
}

// RowRequest is the body for POST /events/rows.
type RowRequest struct {
	Draft Draft  `json:"draft"`
	List  string `json:"list" binding:"required,oneof=sources ticketChannels"`
	Op    string `json:"op" binding:"required,oneof=move remove"`
	From  int    `json:"from"`
	To    int    `json:"to"`
}

// Rows handles POST /events/rows: reorder or remove a source or ticket channel row.
func (h *Handler) Rows(c *gin.Context) {
	var req RowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	var (
		d   Draft
		err error
	)
	switch {
	case req.List == "sources" && req.Op == "move":
		d, err = MoveSource(req.Draft, req.From, req.To)
	case req.List == "sources":
		d, err = RemoveSource(req.Draft, req.From)
	case req.Op == "move":
		d, err = MoveTicketChannel(req.Draft, req.From, req.To)
	default:
		d, err = RemoveTicketChannel(req.Draft, req.From)
	}
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.OK(c, FieldResponse{Draft: d, Errors: Validate(d).Field(req.List)})
}

// ValidateDraft handles POST /events/validate.
func (h *Handler) ValidateDraft(c *gin.Context) {
	var d Draft
	if err := c.ShouldBindJSON(&d); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	errs := Validate(d)
	if path := c.Query("field"); path != "" {
		errs = errs.Field(path)
	}
	response.OK(c, gin.H{"valid": len(errs) == 0, "errors": errs})
}

// Create handles POST /events. A draft that already carries an id updates.
func (h *Handler) Create(c *gin.Context) {
	h.submit(c, "")
}

// Update handles POST /events/:id.
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
	key := form.Key(c.GetString(middleware.ContextSessionID), "event", d.ID)
	form.Respond(c, h.submitter.Submit(c.Request.Context(), session.Client(c, h.api), key, d))
}

// Delete handles DELETE /events/:id and answers with the same list page re-queried.
func (h *Handler) Delete(c *gin.Context) {
	q, err := listview.Bind(c, "orgSearch")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	id := c.Param("id")
	if err := session.Client(c, h.api).DeleteEvent(c.Request.Context(), id); err != nil {
		apperr.Respond(c, err, nil)
		return
	}
	h.logger.Info("event deleted", zap.String("event_id", id))
	h.respondList(c, q, response.Success("Deleted", "event deleted"))
}

// RefreshCache handles POST /events/:id/cache.
func (h *Handler) RefreshCache(c *gin.Context) {
	ctx := c.Request.Context()
	api := session.Client(c, h.api)
	e, err := api.GetEvent(ctx, c.Param("id"))
	if err != nil {
		apperr.Respond(c, err, nil)
		return
	}
	if e.Organization == nil || e.Organization.Slug == "" || e.Slug == "" {
		apperr.Respond(c, apperr.NewUnprocessable("event has no organization or slug"), nil)
		return
	}
	path := cache.EventPath(e.Organization.Slug, e.Slug)
	if err := cache.Clean(ctx, api, path); err != nil {
		apperr.Respond(c, err, nil)
		return
	}
	response.OKWithNotice(c, gin.H{"path": path}, response.Success("Cache cleaned", path), "")
}

// SlugRequest is the body for POST /events/slug.
type SlugRequest struct {
	StartAt  time.Time `json:"startAt"`
	RegionID string    `json:"regionId"`
}

// Slug handles POST /events/slug.
func (h *Handler) Slug(c *gin.Context) {
	var req SlugRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if req.RegionID == "" || req.StartAt.IsZero() {
		apperr.Respond(c, ErrSlugUnavailable, response.Failure("Slug unavailable", ErrSlugUnavailable.Error()))
		return
	}
	region, err := session.Client(c, h.api).GetRegion(c.Request.Context(), req.RegionID)
	if err != nil {
		apperr.Respond(c, err, nil)
		return
	}
	slug, err := GenerateSlug(req.StartAt.In(h.now().Location()), region.Code)
	if err != nil {
		apperr.Respond(c, err, response.Failure("Slug unavailable", err.Error()))
		return
	}
	response.OK(c, gin.H{"slug": slug})
}
