package config

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// AuthMode represents how viewers sign in.
type AuthMode string

const (
	// AuthModeGoogle verifies Google ID tokens before creating a backend session.
	AuthModeGoogle AuthMode = "google"
	// AuthModeMock passes the login form's token straight to the backend (for development only).
	AuthModeMock AuthMode = "mock"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "google", "mock":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: google, mock)", v)
	}
}

// AuthConfig groups all sign-in configuration.
type AuthConfig struct {
	// Mode determines which sign-in flow the login page offers.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"google"`

	// GoogleClientID is the OAuth client id; ID tokens must be issued for it.
	GoogleClientID string `env:"GOOGLE_CLIENT_ID"`

	// HostedDomain is the Google Workspace domain (hd claim) allowed to sign in.
	HostedDomain string `env:"AUTH_HOSTED_DOMAIN" envDefault:"rice.edu"`

	// Issuer is the OIDC issuer whose keys sign the ID tokens.
	Issuer string `env:"AUTH_ISSUER" envDefault:"https://accounts.google.com"`
}

// Sanitize normalises the hosted domain.
func (a *AuthConfig) Sanitize() {
	a.GoogleClientID = strings.TrimSpace(a.GoogleClientID)
	a.HostedDomain = strings.ToLower(strings.TrimSpace(a.HostedDomain))
	a.Issuer = strings.TrimSpace(a.Issuer)
}

// Validate checks that Google mode has a client id and that the hosted
// domain is registrable rather than a public suffix.
func (a *AuthConfig) Validate() error {
	var errs []error
	if a.Mode == AuthModeGoogle && a.GoogleClientID == "" {
		errs = append(errs, errors.New("GOOGLE_CLIENT_ID is required when AUTH_MODE=google"))
	}
	if a.HostedDomain != "" {
		if err := ValidateHostedDomain(a.HostedDomain); err != nil {
			errs = append(errs, fmt.Errorf("AUTH_HOSTED_DOMAIN: %w", err))
		}
	}
	return errors.Join(errs...)
}

// ValidateHostedDomain rejects public suffixes such as "edu" or "co.uk",
// which would let any institution under them sign in.
func ValidateHostedDomain(domain string) error {
	if _, err := publicsuffix.EffectiveTLDPlusOne(domain); err != nil {
		return fmt.Errorf("%q is not a registrable domain: %w", domain, err)
	}
	return nil
}
