// Package googleid verifies Google Identity Services ID tokens before they are
// exchanged for a backend session.
package googleid

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	apperrors "github.com/openstax/rope/internal/errors"
	"github.com/openstax/rope/internal/ports"
	"golang.org/x/oauth2"
)

// DefaultIssuer is Google's OIDC issuer.
const DefaultIssuer = "https://accounts.google.com"

// Config holds configuration for the Google ID token verifier.
type Config struct {
	ClientID     string
	HostedDomain string // required "hd" claim; empty disables the check
	Issuer       string // defaults to DefaultIssuer
	HTTPClient   *http.Client
}

// Verifier implements ports.TokenVerifier with go-oidc.
type Verifier struct {
	verifier     *gooidc.IDTokenVerifier
	issuers      []string
	hostedDomain string
}

var _ ports.TokenVerifier = (*Verifier)(nil)

// NewVerifier discovers the issuer's keys and returns a verifier bound to cfg.ClientID.
func NewVerifier(ctx context.Context, cfg Config) (*Verifier, error) {
	if cfg.ClientID == "" {
		return nil, errors.New("google client ID is required")
	}
	issuer := strings.TrimSuffix(cfg.Issuer, "/")
	if issuer == "" {
		issuer = DefaultIssuer
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	ctx = gooidc.ClientContext(context.WithValue(ctx, oauth2.HTTPClient, httpClient), httpClient)
	op, err := gooidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("oidc new provider: %w", err)
	}
	return newVerifier(op.Verifier(verifierConfig(cfg.ClientID)), issuer, cfg.HostedDomain), nil
}

// NewStaticVerifier builds a verifier over a fixed key set, skipping discovery.
func NewStaticVerifier(cfg Config, keys gooidc.KeySet) (*Verifier, error) {
	if cfg.ClientID == "" {
		return nil, errors.New("google client ID is required")
	}
	issuer := strings.TrimSuffix(cfg.Issuer, "/")
	if issuer == "" {
		issuer = DefaultIssuer
	}
	return newVerifier(gooidc.NewVerifier(issuer, keys, verifierConfig(cfg.ClientID)), issuer, cfg.HostedDomain), nil
}

// verifierConfig skips go-oidc's single-issuer check; Verify accepts both of
// Google's issuer spellings itself.
func verifierConfig(clientID string) *gooidc.Config {
	return &gooidc.Config{ClientID: clientID, SkipIssuerCheck: true}
}

func newVerifier(v *gooidc.IDTokenVerifier, issuer, hostedDomain string) *Verifier {
	issuers := []string{issuer}
	if bare := strings.TrimPrefix(issuer, "https://"); bare != issuer {
		issuers = append(issuers, bare)
	}
	return &Verifier{
		verifier:     v,
		issuers:      issuers,
		hostedDomain: strings.ToLower(strings.TrimSpace(hostedDomain)),
	}
}

type googleClaims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	HostedDomain  string `json:"hd"`
}

// Verify checks the token signature, audience, expiry, issuer, verified email
// and hosted domain. Every failure is an authentication error.
func (v *Verifier) Verify(ctx context.Context, raw string) (ports.VerifiedToken, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ports.VerifiedToken{}, apperrors.Authentication("missing identity token")
	}

	tok, err := v.verifier.Verify(ctx, raw)
	if err != nil {
		return ports.VerifiedToken{}, apperrors.Wrap(err, apperrors.ErrCodeAuthentication, "verify id token")
	}
	if !v.knownIssuer(tok.Issuer) {
		return ports.VerifiedToken{}, apperrors.Authentication(fmt.Sprintf("unexpected token issuer %q", tok.Issuer))
	}

	var claims googleClaims
	if err := tok.Claims(&claims); err != nil {
		return ports.VerifiedToken{}, apperrors.Wrap(err, apperrors.ErrCodeAuthentication, "parse id token claims")
	}
	if claims.Email == "" || !claims.EmailVerified {
		return ports.VerifiedToken{}, apperrors.Authentication("identity token has no verified email")
	}
	if v.hostedDomain != "" && !strings.EqualFold(claims.HostedDomain, v.hostedDomain) {
		return ports.VerifiedToken{}, apperrors.Authentication(
			fmt.Sprintf("account is not part of the %s domain", v.hostedDomain),
		)
	}

	return ports.VerifiedToken{
		Subject:      tok.Subject,
		Email:        strings.ToLower(claims.Email),
		HostedDomain: claims.HostedDomain,
	}, nil
}

func (v *Verifier) knownIssuer(iss string) bool {
	for _, want := range v.issuers {
		if iss == want {
			return true
		}
	}
	return false
}
