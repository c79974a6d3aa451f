package ports

// Package ports defines interfaces (hexagonal ports) between rope's services and
// the systems around it. Implementations live in internal/adapters; orchestration
// in internal/service.

import (
	"context"
	"net/http"

	domainauth "github.com/openstax/rope/internal/domain/auth"
	"github.com/openstax/rope/internal/domain/model"
)

// Credentials are the browser cookies forwarded to the REST backend.
// The backend owns the session; rope only relays it.
type Credentials []*http.Cookie

// SessionAPI covers the session endpoints used by the probe and the session commands.
type SessionAPI interface {
	// CurrentUser returns the signed-in identity for the credentials.
	CurrentUser(ctx context.Context, creds Credentials) (domainauth.Identity, error)
	// CreateSession exchanges an external identity token for a session and
	// returns the cookies the backend set.
	CreateSession(ctx context.Context, token string) ([]*http.Cookie, error)
	// DeleteSession ends the session and returns the cookies the backend set.
	DeleteSession(ctx context.Context, creds Credentials) ([]*http.Cookie, error)
}

// UserAPI manages the accounts allowed to use rope.
type UserAPI interface {
	ListUsers(ctx context.Context, creds Credentials) ([]model.User, error)
	CreateUser(ctx context.Context, creds Credentials, in model.NewUserRequest) (model.User, error)
	UpdateUser(ctx context.Context, creds Credentials, user model.User) (model.User, error)
	DeleteUser(ctx context.Context, creds Credentials, id int) error
}

// SettingsAPI manages Moodle settings and school districts.
type SettingsAPI interface {
	ListMoodleSettings(ctx context.Context, creds Credentials) ([]model.MoodleSetting, error)
	CreateMoodleSetting(ctx context.Context, creds Credentials, s model.MoodleSetting) (model.MoodleSetting, error)
	UpdateMoodleSetting(ctx context.Context, creds Credentials, s model.MoodleSetting) (model.MoodleSetting, error)
	ListSchoolDistricts(ctx context.Context, creds Credentials) ([]model.SchoolDistrict, error)
	CreateSchoolDistrict(ctx context.Context, creds Credentials, d model.SchoolDistrict) (model.SchoolDistrict, error)
	UpdateSchoolDistrict(ctx context.Context, creds Credentials, d model.SchoolDistrict) (model.SchoolDistrict, error)
}

// MoodleAPI looks up Moodle accounts and manages course builds.
type MoodleAPI interface {
	// GetMoodleUser returns nil without error when no account has the email.
	GetMoodleUser(ctx context.Context, creds Credentials, email string) (*model.MoodleUser, error)
	ListCourseBuilds(ctx context.Context, creds Credentials, q model.CourseBuildQuery) ([]model.CourseBuild, error)
	CreateCourseBuild(ctx context.Context, creds Credentials, in model.CourseBuildRequest) (model.CourseBuild, error)
}

// CourseBuildAPI is what course-build pages need: Moodle access plus the
// settings and districts that parameterise a build.
type CourseBuildAPI interface {
	MoodleAPI
	SettingsAPI
}

// RopeAPI is the full REST backend surface.
type RopeAPI interface {
	SessionAPI
	UserAPI
	SettingsAPI
	MoodleAPI
}

// VerifiedToken is what rope learns from an external identity token before exchanging it.
type VerifiedToken struct {
	Subject      string
	Email        string
	HostedDomain string
}

// TokenVerifier checks an external identity token (e.g. a Google ID token).
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (VerifiedToken, error)
}

// MoodleUserCache remembers Moodle account lookups by email.
// A cached nil user means the lookup found no account.
type MoodleUserCache interface {
	Get(ctx context.Context, email string) (user *model.MoodleUser, found bool, err error)
	Set(ctx context.Context, email string, user *model.MoodleUser) error
}

// Navigator performs the route guard's redirect side effect.
type Navigator interface {
	Navigate(target string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(target string)

// Navigate implements Navigator.
func (f NavigatorFunc) Navigate(target string) { f(target) }
