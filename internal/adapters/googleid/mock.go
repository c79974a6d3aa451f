package googleid

import (
	"context"
	"strings"

	apperrors "github.com/openstax/rope/internal/errors"
	"github.com/openstax/rope/internal/ports"
)

// MockVerifier accepts any non-empty token. It is meant for local development
// against a backend that also runs in mock auth mode. A token that looks like
// an email address is reported as that email.
type MockVerifier struct{}

var _ ports.TokenVerifier = MockVerifier{}

// Verify implements ports.TokenVerifier.
func (MockVerifier) Verify(_ context.Context, raw string) (ports.VerifiedToken, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ports.VerifiedToken{}, apperrors.Authentication("missing identity token")
	}
	out := ports.VerifiedToken{Subject: raw}
	if strings.Contains(raw, "@") {
		out.Email = strings.ToLower(raw)
		out.HostedDomain = out.Email[strings.LastIndex(out.Email, "@")+1:]
	}
	return out, nil
}
