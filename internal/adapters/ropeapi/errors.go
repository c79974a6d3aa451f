package ropeapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	apperrors "github.com/openstax/rope/internal/errors"
)

// StatusError reports a non-2xx (or, for session calls, non-200) backend response.
type StatusError struct {
	Method     string
	Route      string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Route, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Route, e.StatusCode, e.Body)
}

// StatusCode returns the backend status carried by err, if any.
func StatusCode(err error) (int, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode, true
	}
	return 0, false
}

// classifyStatus maps a backend status onto an application error code.
func classifyStatus(status int) apperrors.ErrorCode {
	switch status {
	case http.StatusUnauthorized:
		return apperrors.ErrCodeAuthentication
	case http.StatusForbidden:
		return apperrors.ErrCodeForbidden
	case http.StatusNotFound:
		return apperrors.ErrCodeNotFound
	case http.StatusConflict:
		return apperrors.ErrCodeConflict
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return apperrors.ErrCodeValidation
	default:
		return apperrors.ErrCodeUpstream
	}
}

// classifyTransport maps a failed round trip onto an application error code.
func classifyTransport(err error) apperrors.ErrorCode {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.ErrCodeTimeout
	case errors.Is(err, context.Canceled):
		return apperrors.ErrCodeCanceled
	default:
		return apperrors.ErrCodeUpstream
	}
}
