package ApiErrors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Kind is the machine-readable error code exposed to the frontend so it can
// branch on behavior (e.g. redirect to login on "unauthorized").
type Kind string

const (
	Validation    Kind = "validation_error"
	Unauthorized  Kind = "unauthorized"
	Conflict      Kind = "conflict"
	Upstream      Kind = "upstream_error"
	EmptyResponse Kind = "empty_response"
	NotFound      Kind = "not_found"
	Internal      Kind = "internal_error"
)

// Error carries a kind, a user-safe message, and the underlying cause. The
// cause is for logs only and never reaches a response body.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind from any error in the chain; unknown errors are
// internal by definition.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return Internal
}

func StatusOf(err error) int {
	switch KindOf(err) {
	case Validation:
		return http.StatusBadRequest
	case Unauthorized:
		return http.StatusUnauthorized
	case Conflict:
		return http.StatusConflict
	case NotFound:
		return http.StatusNotFound
	case Upstream, EmptyResponse:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// Respond writes the uniform failure envelope. Every endpoint uses this, so
// the transport status always reflects the failure and the body always carries
// a code the frontend can switch on.
func Respond(c *gin.Context, err error) {
	message := "Something went wrong. Please try again later."
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		message = apiErr.Message
	}
	c.JSON(StatusOf(err), gin.H{
		"success": false,
		"error":   string(KindOf(err)),
		"message": message,
	})
}
