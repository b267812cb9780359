package gateway

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthorized matches any backend 401.
var ErrUnauthorized = errors.New("backend: unauthorized")

// Error is a non-2xx answer from the backend.
type Error struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, e.Body)
}

// Is lets errors.Is(err, ErrUnauthorized) hold for 401 answers.
func (e *Error) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// StatusOf returns the backend status carried by err, or 0.
func StatusOf(err error) int {
	var gerr *Error
	if errors.As(err, &gerr) {
		return gerr.Status
	}
	return 0
}
