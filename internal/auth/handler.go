package auth

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fec-cms/console/internal/apperr"
	"github.com/fec-cms/console/internal/gateway"
	"github.com/fec-cms/console/internal/models"
	"github.com/fec-cms/console/internal/session"
	"github.com/fec-cms/console/pkg/response"
)

// LoginRequest is the body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse is the login answer: a console token, never the backend one.
type TokenResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// MeResponse describes the current session.
type MeResponse struct {
	User  *models.User `json:"user"`
	Ready bool         `json:"ready"`
}

// Handler handles auth HTTP endpoints.
type Handler struct {
	api      *gateway.Client
	sessions *session.Registry
	jwt      *JWTService
	logger   *zap.Logger
}

// NewHandler creates an auth handler.
func NewHandler(api *gateway.Client, sessions *session.Registry, jwt *JWTService, logger *zap.Logger) *Handler {
	return &Handler{api: api, sessions: sessions, jwt: jwt, logger: logger}
}

// Login handles POST /auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	ctx := c.Request.Context()
	res, err := h.api.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, gateway.ErrUnauthorized) {
			response.Unauthorized(c, "invalid email or password")
			return
		}
		apperr.Respond(c, err, response.Failure("Login failed", err.Error()))
		return
	}
	if res.Token == "" {
		response.Unauthorized(c, "invalid email or password")
		return
	}

	sid := h.sessions.NewID()
	store, err := h.sessions.Open(ctx, sid)
	if err != nil {
		h.logger.Error("open session", zap.Error(err))
		response.Internal(c, "failed to open session")
		return
	}
	if err := store.Login(ctx, res.User); err != nil {
		h.logger.Error("persist session user", zap.String("session_id", sid), zap.Error(err))
		response.Internal(c, "failed to save session")
		return
	}
	if err := store.RefreshToken(ctx, res.Token); err != nil {
		h.logger.Error("persist session token", zap.String("session_id", sid), zap.Error(err))
		response.Internal(c, "failed to save session")
		return
	}

	token, err := h.jwt.Generate(sid, res.User.ID, res.User.Email, res.User.Role)
	if err != nil {
		response.Internal(c, "failed to generate token")
		return
	}

	h.logger.Info("staff logged in", zap.String("user_id", res.User.ID), zap.String("session_id", sid))
	response.OKWithNotice(c, TokenResponse{Token: token, User: res.User},
		response.Success("Welcome", "logged in as "+res.User.Email), "/dashboard")
}

// Logout handles POST /auth/logout.
func (h *Handler) Logout(c *gin.Context) {
	store := session.From(c)
	if store == nil {
		response.Unauthorized(c, "no session")
		return
	}
	if err := store.Logout(c.Request.Context()); err != nil {
		h.logger.Warn("logout", zap.String("session_id", store.ID()), zap.Error(err))
	}
	response.OKWithNotice(c, nil, nil, "/auth")
}

// Me handles GET /auth/me.
func (h *Handler) Me(c *gin.Context) {
	store := session.From(c)
	if store == nil {
		response.Unauthorized(c, "no session")
		return
	}
	response.OK(c, MeResponse{User: store.User(), Ready: store.Ready()})
}
