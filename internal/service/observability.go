package service

import (
	"log/slog"

	apperrors "github.com/openstax/rope/internal/errors"
	"github.com/openstax/rope/internal/observability/metrics"
	"github.com/openstax/rope/internal/observability/statsd"
)

// Observability groups the logger and metrics sink every service takes.
// Both are optional.
type Observability struct {
	Logger  *slog.Logger
	Metrics statsd.Sink
}

func (o Observability) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

// codeOr returns err's application error code, or fallback when it has none.
func codeOr(err error, fallback apperrors.ErrorCode) apperrors.ErrorCode {
	if code := apperrors.GetCode(err); code != "" {
		return code
	}
	return fallback
}

func (o Observability) operation(op string, err error) {
	metrics.EmitOperation(o.Metrics, op, err)
}
