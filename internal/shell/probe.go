package shell

import (
	"context"
	"log/slog"
	"time"

	domainauth "github.com/openstax/rope/internal/domain/auth"
	"github.com/openstax/rope/internal/observability/metrics"
	"github.com/openstax/rope/internal/observability/statsd"
	"github.com/openstax/rope/internal/ports"
)

// Probe is the session probe: one current-user lookup per page load.
type Probe struct {
	api     ports.SessionAPI
	logger  *slog.Logger
	metrics statsd.Sink
}

// NewProbe builds a session probe over api. logger and sink may be nil.
func NewProbe(api ports.SessionAPI, logger *slog.Logger, sink statsd.Sink) *Probe {
	if logger == nil {
		logger = slog.Default()
	}
	return &Probe{api: api, logger: logger, metrics: sink}
}

// Run asks the backend who the viewer is. Any failure (transport, non-200,
// malformed body) yields a signed-out identity; Run never returns an error.
func (p *Probe) Run(ctx context.Context, creds ports.Credentials) domainauth.Identity {
	start := time.Now()
	id, err := p.api.CurrentUser(ctx, creds)
	if err != nil {
		p.logger.DebugContext(ctx, "session probe: not signed in", "error", err)
		id = domainauth.SignedOut()
	} else if !id.IsSignedIn() {
		id = domainauth.SignedOut()
	}
	metrics.EmitProbe(p.metrics, id.Status.String(), time.Since(start))
	return id.Normalize()
}
