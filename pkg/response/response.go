package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Notice levels shown by the dashboard as transient toasts.
const (
	LevelSuccess = "success"
	LevelError   = "error"
	LevelInfo    = "info"
)

// Notice is a user-visible notification attached to a response.
type Notice struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Level   string `json:"level"`
}

// Body is the standard API response envelope.
type Body struct {
	Success  bool              `json:"success"`
	Data     interface{}       `json:"data,omitempty"`
	Error    string            `json:"error,omitempty"`
	Errors   map[string]string `json:"errors,omitempty"`
	Notice   *Notice           `json:"notice,omitempty"`
	Redirect string            `json:"redirect,omitempty"`
}

// Success builds a success notice.
func Success(title, message string) *Notice {
	return &Notice{Title: title, Message: message, Level: LevelSuccess}
}

// Failure builds an error notice.
func Failure(title, message string) *Notice {
	return &Notice{Title: title, Message: message, Level: LevelError}
}

// OK sends a 200 JSON response with data.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Body{Success: true, Data: data})
}

// OKWithNotice sends a 200 JSON response with data, a notice and an optional redirect.
func OKWithNotice(c *gin.Context, data interface{}, notice *Notice, redirect string) {
	c.JSON(http.StatusOK, Body{Success: true, Data: data, Notice: notice, Redirect: redirect})
}

// BadRequest sends 400 with error message.
func BadRequest(c *gin.Context, err string) {
	c.JSON(http.StatusBadRequest, Body{Success: false, Error: err})
}

// Unauthorized sends 401 and points the shell back at the login route.
func Unauthorized(c *gin.Context, err string) {
	c.JSON(http.StatusUnauthorized, Body{Success: false, Error: err, Redirect: "/auth"})
}

// SessionExpired sends 401 with the notice explaining what failed and
// points the shell back at the login route.
func SessionExpired(c *gin.Context, err string, notice *Notice) {
	c.JSON(http.StatusUnauthorized, Body{Success: false, Error: err, Notice: notice, Redirect: "/auth"})
}

// Forbidden sends 403.
func Forbidden(c *gin.Context, err string) {
	c.JSON(http.StatusForbidden, Body{Success: false, Error: err})
}

// Conflict sends 409.
func Conflict(c *gin.Context, err string, notice *Notice) {
	c.JSON(http.StatusConflict, Body{Success: false, Error: err, Notice: notice})
}

// Invalid sends 422 with every violated field.
func Invalid(c *gin.Context, errs map[string]string, notice *Notice) {
	c.JSON(http.StatusUnprocessableEntity, Body{Success: false, Error: "validation failed", Errors: errs, Notice: notice})
}

// BadGateway sends 502 when the REST backend failed.
func BadGateway(c *gin.Context, err string, notice *Notice) {
	c.JSON(http.StatusBadGateway, Body{Success: false, Error: err, Notice: notice})
}

// Internal sends 500.
func Internal(c *gin.Context, err string) {
	c.JSON(http.StatusInternalServerError, Body{Success: false, Error: err})
}
