package apperr

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fec-cms/console/internal/gateway"
	"github.com/fec-cms/console/pkg/response"
	"github.com/fec-cms/console/pkg/validation"
)

// AppError is an error that knows the HTTP status it maps to.
type AppError struct {
	Code    int
	Message string
}

func (e *AppError) Error() string { return e.Message }

// NewBadRequest creates a 400 error.
func NewBadRequest(msg string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: msg}
}

// NewNotFound creates a 404 error.
func NewNotFound(msg string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: msg}
}

// NewConflict creates a 409 error.
func NewConflict(msg string) *AppError {
	return &AppError{Code: http.StatusConflict, Message: msg}
}

// NewUnprocessable creates a 422 error.
func NewUnprocessable(msg string) *AppError {
	return &AppError{Code: http.StatusUnprocessableEntity, Message: msg}
}

// NewNotImplemented creates a 501 error.
func NewNotImplemented(msg string) *AppError {
	return &AppError{Code: http.StatusNotImplemented, Message: msg}
}

// Failure is the generic notice title for unexpected errors.
const Failure = "Something went wrong"

// Respond writes err as a JSON response. A nil notice gets a generic one
// carrying the raw error text.
func Respond(c *gin.Context, err error, notice *response.Notice) {
	if notice == nil {
		notice = response.Failure(Failure, err.Error())
	}

	var verrs validation.Errors
	if errors.As(err, &verrs) {
		response.Invalid(c, verrs, notice)
		return
	}
	if errors.Is(err, gateway.ErrUnauthorized) {
		response.SessionExpired(c, "session expired", notice)
		return
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code, response.Body{Success: false, Error: appErr.Message, Notice: notice})
		return
	}

	var gerr *gateway.Error
	if errors.As(err, &gerr) {
		if gerr.Status == http.StatusNotFound {
			c.JSON(http.StatusNotFound, response.Body{Success: false, Error: err.Error(), Notice: notice})
			return
		}
		response.BadGateway(c, err.Error(), notice)
		return
	}
	if errors.Is(err, context.DeadlineExceeded) {
		c.JSON(http.StatusGatewayTimeout, response.Body{Success: false, Error: err.Error(), Notice: notice})
		return
	}
	response.BadGateway(c, err.Error(), notice)
}

// LoadError is the body of a failed detail fetch on an edit page.
type LoadError struct {
	LoadError bool   `json:"loadError"`
	Back      string `json:"back"`
}

// RespondLoad answers a failed detail fetch with a load-error screen that
// links back to back.
func RespondLoad(c *gin.Context, err error, back string) {
	if errors.Is(err, gateway.ErrUnauthorized) {
		response.SessionExpired(c, "session expired", response.Failure("Session expired", err.Error()))
		return
	}
	status := http.StatusBadGateway
	if gateway.StatusOf(err) == http.StatusNotFound {
		status = http.StatusNotFound
	}
	c.JSON(status, response.Body{
		Success: false,
		Data:    LoadError{LoadError: true, Back: back},
		Error:   err.Error(),
		Notice:  response.Failure("Failed to load", err.Error()),
	})
}
