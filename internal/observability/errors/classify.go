// Package errors turns error values into short labels for metric tags.
package errors

import (
	"context"
	"encoding/json"
	goerrors "errors"
	"net"

	apperrors "github.com/openstax/rope/internal/errors"
)

// Labels for errors that carry no application code.
const (
	ClassTimeout  = string(apperrors.ErrCodeTimeout)
	ClassCanceled = string(apperrors.ErrCodeCanceled)
	ClassNetwork  = "network"
	ClassDecode   = "decode"
	ClassOther    = "other"
)

// Classify returns a bounded label for err, suitable as a metric tag.
// Application errors are labelled by their code. Context, network and JSON
// failures get a fixed label; everything else is ClassOther.
func Classify(err error) string {
	if err == nil {
		return ""
	}
	if code := apperrors.GetCode(err); code != "" {
		return string(code)
	}

	switch {
	case goerrors.Is(err, context.DeadlineExceeded):
		return ClassTimeout
	case goerrors.Is(err, context.Canceled):
		return ClassCanceled
	}

	var netErr net.Error
	if goerrors.As(err, &netErr) {
		if netErr.Timeout() {
			return ClassTimeout
		}
		return ClassNetwork
	}

	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)
	if goerrors.As(err, &syntaxErr) || goerrors.As(err, &typeErr) {
		return ClassDecode
	}
	return ClassOther
}
