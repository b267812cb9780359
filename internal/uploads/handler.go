package uploads

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fec-cms/console/internal/apperr"
	"github.com/fec-cms/console/internal/gateway"
	"github.com/fec-cms/console/internal/session"
	"github.com/fec-cms/console/pkg/response"
	"github.com/fec-cms/console/pkg/storage"
)

// Upload scopes.
const (
	ScopeEvent        = "event"
	ScopeOrganization = "organization"
)

// ObjectStore writes one object with signed credentials.
type ObjectStore interface {
	Upload(ctx context.Context, creds storage.Credentials, contentType string, body io.Reader, size int64) error
}

// Request is the multipart form of POST /uploads.
type Request struct {
	Scope     string                `form:"scope" binding:"required,oneof=event organization"`
	OrgSlug   string                `form:"orgSlug"`
	EventSlug string                `form:"eventSlug"`
	Name      string                `form:"name"`
	File      *multipart.FileHeader `form:"file" binding:"required"`
}

// Result is the stored object.
type Result struct {
	Key         string `json:"key"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

// Handler accepts media for events and organizations.
type Handler struct {
	api      *gateway.Client
	store    ObjectStore
	maxBytes int64
	logger   *zap.Logger
}

// NewHandler creates an upload handler. maxBytes caps a single file.
func NewHandler(api *gateway.Client, store ObjectStore, maxBytes int64, logger *zap.Logger) *Handler {
	return &Handler{api: api, store: store, maxBytes: maxBytes, logger: logger}
}

// Upload handles POST /uploads.
func (h *Handler) Upload(c *gin.Context) {
	var req Request
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "invalid upload: "+err.Error())
		return
	}
	if h.maxBytes > 0 && req.File.Size > h.maxBytes {
		c.JSON(http.StatusRequestEntityTooLarge, response.Body{
			Success: false,
			Error:   fmt.Sprintf("file exceeds %d bytes", h.maxBytes),
			Notice:  response.Failure("Upload failed", "file is too large"),
		})
		return
	}

	var (
		prefix string
		err    error
	)
	if req.Scope == ScopeEvent {
		prefix, err = EventPrefix(req.OrgSlug, req.EventSlug)
	} else {
		prefix, err = OrganizationPrefix(req.OrgSlug)
	}
	if err != nil {
		apperr.Respond(c, err, response.Failure("Upload failed", err.Error()))
		return
	}

	contentType := req.File.Header.Get("Content-Type")
	ext, err := storage.ExtensionFor(contentType)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	key := Key(prefix, req.Name, NewID(), ext)

	ctx := c.Request.Context()
	sig, err := session.Client(c, h.api).UploadSignature(ctx, key)
	if err != nil {
		apperr.Respond(c, err, nil)
		return
	}
	creds := storage.Credentials{
		SecretID:     sig.TempSecretID,
		SecretKey:    sig.TempSecretKey,
		SessionToken: sig.SessionToken,
		Expires:      time.Unix(sig.ExpiredTime, 0),
		Bucket:       sig.Bucket,
		Region:       sig.Region,
		Key:          sig.Key,
	}
	if creds.Key == "" {
		creds.Key = key
	}

	f, err := req.File.Open()
	if err != nil {
		response.BadRequest(c, "cannot read file")
		return
	}
	defer f.Close()

	if err := h.store.Upload(ctx, creds, contentType, f, req.File.Size); err != nil {
		h.logger.Warn("upload failed", zap.String("key", creds.Key), zap.Error(err))
		apperr.Respond(c, err, response.Failure("Upload failed", err.Error()))
		return
	}
	response.OKWithNotice(c, Result{Key: creds.Key, ContentType: contentType, Size: req.File.Size},
		response.Success("Uploaded", creds.Key), "")
}
