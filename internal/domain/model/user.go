//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"regexp"
	"strings"
)

// DefaultInstitutionDomain is the email domain rope accepts for new users.
const DefaultInstitutionDomain = "rice.edu"

// User is an account allowed to sign in to rope.
type User struct {
	ID        int
	Email     string
	IsAdmin   bool
	IsManager bool
}

// NewUserRequest carries the fields needed to grant a new account access.
type NewUserRequest struct {
	Email     string
	IsAdmin   bool
	IsManager bool
}

var institutionEmailPatterns = map[string]*regexp.Regexp{
	DefaultInstitutionDomain: regexp.MustCompile(`^\S+@rice\.edu$`),
}

// ValidateInstitutionEmail reports whether email is a non-blank address in domain.
func ValidateInstitutionEmail(email, domain string) bool {
	if domain == "" {
		domain = DefaultInstitutionDomain
	}
	re, ok := institutionEmailPatterns[domain]
	if !ok {
		re = regexp.MustCompile(`^\S+@` + regexp.QuoteMeta(domain) + `$`)
	}
	return re.MatchString(email)
}

// NormalizeEmail trims whitespace around an email address.
func NormalizeEmail(email string) string {
	return strings.TrimSpace(email)
}
