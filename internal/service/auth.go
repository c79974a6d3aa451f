package service

import (
	"context"
	"net/http"

	domainauth "github.com/openstax/rope/internal/domain/auth"
	apperrors "github.com/openstax/rope/internal/errors"
	"github.com/openstax/rope/internal/observability/metrics"
	"github.com/openstax/rope/internal/ports"
	"github.com/openstax/rope/internal/shell"
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Sessions      ports.SessionAPI
	Verifier      ports.TokenVerifier
	Observability Observability
}

// AuthService runs the session commands: login and logout.
type AuthService struct {
	sessions ports.SessionAPI
	verifier ports.TokenVerifier
	obs      Observability
}

// identityWriter is the auth state store's write side.
type identityWriter interface {
	Set(id domainauth.Identity) shell.WriteResult
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	if opts.Sessions == nil {
		panic("service: AuthService requires a SessionAPI")
	}
	return &AuthService{
		sessions: opts.Sessions,
		verifier: opts.Verifier,
		obs:      opts.Observability,
	}
}

// LoginResult carries the backend's session cookies for the browser.
type LoginResult struct {
	Email   string
	Cookies []*http.Cookie
}

// Login verifies the external identity token and exchanges it for a backend
// session. It does not touch the auth state store: the caller navigates to
// the home page so the next page load probes afresh. Every failure is an
// authentication error.
func (s *AuthService) Login(ctx context.Context, token string) (*LoginResult, error) {
	var email string
	if s.verifier != nil {
		vt, err := s.verifier.Verify(ctx, token)
		if err != nil {
			return nil, s.loginFailed(ctx, err, "verify identity token")
		}
		email = vt.Email
	} else if token == "" {
		return nil, s.loginFailed(ctx, apperrors.Validation("token is required"), "verify identity token")
	}

	cookies, err := s.sessions.CreateSession(ctx, token)
	if err != nil {
		return nil, s.loginFailed(ctx, err, "create session")
	}

	metrics.EmitCommand(s.obs.Metrics, "login", metrics.ResultSuccess, nil)
	s.obs.logger().InfoContext(ctx, "user signed in", "email", email)
	return &LoginResult{Email: email, Cookies: cookies}, nil
}

func (s *AuthService) loginFailed(ctx context.Context, err error, step string) error {
	metrics.EmitCommand(s.obs.Metrics, "login", metrics.ResultError, err)
	s.obs.logger().WarnContext(ctx, "login failed", "step", step, "error", err)
	return apperrors.Wrap(err, apperrors.ErrCodeAuthentication, MsgLoginFailed)
}

// LogoutResult reports the outcome of a logout.
type LogoutResult struct {
	OK      bool
	Cookies []*http.Cookie
	// Write is what happened to the auth state store; zero when OK is false.
	Write shell.WriteResult
}

// Logout ends the backend session. Only a 200 answer signs the viewer out in
// the store; any other outcome leaves the store unchanged and reports failure
// through the result and the returned error.
func (s *AuthService) Logout(ctx context.Context, creds ports.Credentials, store identityWriter) (LogoutResult, error) {
	cookies, err := s.sessions.DeleteSession(ctx, creds)
	if err != nil {
		metrics.EmitCommand(s.obs.Metrics, "logout", metrics.ResultError, err)
		s.obs.logger().WarnContext(ctx, "logout failed", "error", err)
		return LogoutResult{}, apperrors.Wrap(err, codeOr(err, apperrors.ErrCodeUpstream), MsgLogoutFailed)
	}

	res := LogoutResult{OK: true, Cookies: cookies}
	if store != nil {
		res.Write = store.Set(domainauth.SignedOut())
	}
	result := metrics.ResultSuccess
	if res.Write == shell.WriteDropped {
		result = metrics.ResultDropped
	}
	metrics.EmitCommand(s.obs.Metrics, "logout", result, nil)
	return res, nil
}
