// Package ropeapi is the typed client for rope's REST backend.
//
// Every call forwards the browser's cookies, makes a single attempt, and
// returns view-models from internal/domain/model. Failures come back as
// *apperrors.AppError values whose cause is either a *StatusError (non-2xx),
// a transport error, or a JSON decode error.
package ropeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	domainauth "github.com/openstax/rope/internal/domain/auth"
	"github.com/openstax/rope/internal/domain/model"
	apperrors "github.com/openstax/rope/internal/errors"
	"github.com/openstax/rope/internal/observability/metrics"
	"github.com/openstax/rope/internal/observability/statsd"
	"github.com/openstax/rope/internal/ports"
)

const maxResponseBytes = 4 << 20

// Route templates, used for requests and as metric tags.
const (
	routeCurrentUser   = "/api/user/current"
	routeSession       = "/api/session"
	routeUsers         = "/api/user"
	routeUser          = "/api/user/{id}"
	routeMoodleSetting = "/api/admin/settings/moodle"
	routeMoodleByID    = "/api/admin/settings/moodle/{id}"
	routeDistricts     = "/api/admin/settings/district"
	routeDistrictByID  = "/api/admin/settings/district/{id}"
	routeMoodleUser    = "/api/moodle/user"
	routeCourseBuild   = "/api/moodle/course/build"
)

// Config configures the backend client.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Client  *http.Client
	Logger  *slog.Logger
	Metrics statsd.Sink
}

// Client talks to the REST backend. It is safe for concurrent use.
type Client struct {
	baseURL *url.URL
	client  *http.Client
	logger  *slog.Logger
	metrics statsd.Sink
}

var _ ports.RopeAPI = (*Client)(nil)

// NewClient builds a backend client. BaseURL must be an absolute http(s) URL.
func NewClient(cfg Config) (*Client, error) {
	raw := strings.TrimSpace(cfg.BaseURL)
	if raw == "" {
		return nil, errors.New("rope api base url is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse rope api base url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("rope api base url must be absolute http(s): %q", raw)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{baseURL: u, client: hc, logger: logger, metrics: cfg.Metrics}, nil
}

// call describes one backend request.
type call struct {
	method string
	route  string // template, e.g. /api/user/{id}
	id     int    // substituted for {id}
	query  url.Values
	creds  ports.Credentials
	body   any
	out    any // decoded on success when non-nil
	// exactOK requires 200 rather than any 2xx.
	exactOK bool
}

func (c *call) path() string {
	if strings.Contains(c.route, "{id}") {
		return strings.Replace(c.route, "{id}", strconv.Itoa(c.id), 1)
	}
	return c.route
}

// do performs the request and returns the cookies the backend set.
func (c *Client) do(ctx context.Context, in call) ([]*http.Cookie, error) {
	start := time.Now()
	status, cookies, err := c.roundTrip(ctx, in)
	metrics.EmitBackendCall(c.metrics, metrics.BackendCall{
		Method:   in.method,
		Route:    in.route,
		Status:   status,
		Duration: time.Since(start),
		Err:      err,
	})
	if err != nil {
		c.logger.DebugContext(ctx, "rope api request failed",
			"method", in.method,
			"route", in.route,
			"status", status,
			"error", err,
		)
	}
	return cookies, err
}

func (c *Client) roundTrip(ctx context.Context, in call) (int, []*http.Cookie, error) {
	req, err := c.newRequest(ctx, in)
	if err != nil {
		return 0, nil, apperrors.Wrapf(err, apperrors.ErrCodeInternal, "build %s %s request", in.method, in.route)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, apperrors.Wrapf(err, classifyTransport(err), "%s %s", in.method, in.route)
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if !statusOK(resp.StatusCode, in.exactOK) {
		se := &StatusError{
			Method:     in.method,
			Route:      in.route,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
		return resp.StatusCode, nil, apperrors.Wrapf(se, classifyStatus(resp.StatusCode), "%s %s", in.method, in.route)
	}
	if readErr != nil {
		return resp.StatusCode, nil, apperrors.Wrapf(readErr, apperrors.ErrCodeUpstream, "read %s %s response", in.method, in.route)
	}

	if in.out != nil {
		if err := json.Unmarshal(body, in.out); err != nil {
			return resp.StatusCode, nil, apperrors.Wrapf(err, apperrors.ErrCodeUpstream, "malformed %s %s response", in.method, in.route)
		}
	}
	return resp.StatusCode, resp.Cookies(), nil
}

func (c *Client) newRequest(ctx context.Context, in call) (*http.Request, error) {
	u := c.baseURL.JoinPath(in.path())
	if len(in.query) > 0 {
		u.RawQuery = in.query.Encode()
	}

	var body io.Reader
	if in.body != nil {
		b, err := json.Marshal(in.body)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, in.method, u.String(), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if in.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, ck := range in.creds {
		if ck == nil || ck.Name == "" {
			continue
		}
		req.AddCookie(&http.Cookie{Name: ck.Name, Value: ck.Value})
	}
	return req, nil
}

func statusOK(code int, exact bool) bool {
	if exact {
		return code == http.StatusOK
	}
	return code >= 200 && code < 300
}

// CurrentUser fetches the signed-in identity. A body without an email is malformed.
func (c *Client) CurrentUser(ctx context.Context, creds ports.Credentials) (domainauth.Identity, error) {
	var out APICurrentUser
	if _, err := c.do(ctx, call{
		method: http.MethodGet, route: routeCurrentUser, creds: creds, out: &out, exactOK: true,
	}); err != nil {
		return domainauth.Identity{}, err
	}
	if strings.TrimSpace(out.Email) == "" {
		return domainauth.Identity{}, apperrors.Upstream("malformed current user response: missing email")
	}
	return IdentityFromAPI(out), nil
}

// CreateSession posts an external identity token and returns the session cookies.
func (c *Client) CreateSession(ctx context.Context, token string) ([]*http.Cookie, error) {
	return c.do(ctx, call{
		method:  http.MethodPost,
		route:   routeSession,
		body:    APISessionRequest{Token: token},
		exactOK: true,
	})
}

// DeleteSession ends the session identified by creds.
func (c *Client) DeleteSession(ctx context.Context, creds ports.Credentials) ([]*http.Cookie, error) {
	return c.do(ctx, call{method: http.MethodDelete, route: routeSession, creds: creds, exactOK: true})
}

// ListUsers returns every rope account.
func (c *Client) ListUsers(ctx context.Context, creds ports.Credentials) ([]model.User, error) {
	var out []APIUser
	if _, err := c.do(ctx, call{method: http.MethodGet, route: routeUsers, creds: creds, out: &out}); err != nil {
		return nil, err
	}
	return UsersFromAPI(out), nil
}

// CreateUser grants a new account access.
func (c *Client) CreateUser(ctx context.Context, creds ports.Credentials, in model.NewUserRequest) (model.User, error) {
	var out APIUser
	if _, err := c.do(ctx, call{
		method: http.MethodPost, route: routeUsers, creds: creds, body: NewUserToAPI(in), out: &out,
	}); err != nil {
		return model.User{}, err
	}
	return UserFromAPI(out), nil
}

// UpdateUser replaces an account's email and roles.
func (c *Client) UpdateUser(ctx context.Context, creds ports.Credentials, user model.User) (model.User, error) {
	var out APIUser
	if _, err := c.do(ctx, call{
		method: http.MethodPut, route: routeUser, id: user.ID, creds: creds, body: UserToAPI(user), out: &out,
	}); err != nil {
		return model.User{}, err
	}
	return UserFromAPI(out), nil
}

// DeleteUser removes an account.
func (c *Client) DeleteUser(ctx context.Context, creds ports.Credentials, id int) error {
	_, err := c.do(ctx, call{method: http.MethodDelete, route: routeUser, id: id, creds: creds})
	return err
}

// ListMoodleSettings returns the stored Moodle settings.
func (c *Client) ListMoodleSettings(ctx context.Context, creds ports.Credentials) ([]model.MoodleSetting, error) {
	var out []APIMoodleSetting
	if _, err := c.do(ctx, call{method: http.MethodGet, route: routeMoodleSetting, creds: creds, out: &out}); err != nil {
		return nil, err
	}
	return MoodleSettingsFromAPI(out), nil
}

// CreateMoodleSetting stores a new setting.
func (c *Client) CreateMoodleSetting(
	ctx context.Context,
	creds ports.Credentials,
	s model.MoodleSetting,
) (model.MoodleSetting, error) {
	var out APIMoodleSetting
	if _, err := c.do(ctx, call{
		method: http.MethodPost, route: routeMoodleSetting, creds: creds, body: MoodleSettingToAPI(s), out: &out,
	}); err != nil {
		return model.MoodleSetting{}, err
	}
	return MoodleSettingFromAPI(out), nil
}

// UpdateMoodleSetting changes a stored setting. s.ID must be set.
func (c *Client) UpdateMoodleSetting(
	ctx context.Context,
	creds ports.Credentials,
	s model.MoodleSetting,
) (model.MoodleSetting, error) {
	if s.ID == nil {
		return model.MoodleSetting{}, apperrors.ValidationField("id", "setting id is required for update")
	}
	var out APIMoodleSetting
	if _, err := c.do(ctx, call{
		method: http.MethodPut, route: routeMoodleByID, id: *s.ID, creds: creds, body: MoodleSettingToAPI(s), out: &out,
	}); err != nil {
		return model.MoodleSetting{}, err
	}
	return MoodleSettingFromAPI(out), nil
}

// ListSchoolDistricts returns the districts visible to the viewer.
func (c *Client) ListSchoolDistricts(ctx context.Context, creds ports.Credentials) ([]model.SchoolDistrict, error) {
	var out []APISchoolDistrict
	if _, err := c.do(ctx, call{method: http.MethodGet, route: routeDistricts, creds: creds, out: &out}); err != nil {
		return nil, err
	}
	return SchoolDistrictsFromAPI(out), nil
}

// CreateSchoolDistrict stores a new district.
func (c *Client) CreateSchoolDistrict(
	ctx context.Context,
	creds ports.Credentials,
	d model.SchoolDistrict,
) (model.SchoolDistrict, error) {
	var out APISchoolDistrict
	if _, err := c.do(ctx, call{
		method: http.MethodPost, route: routeDistricts, creds: creds, body: SchoolDistrictToAPI(d), out: &out,
	}); err != nil {
		return model.SchoolDistrict{}, err
	}
	return SchoolDistrictFromAPI(out), nil
}

// UpdateSchoolDistrict changes a stored district. d.ID must be set.
func (c *Client) UpdateSchoolDistrict(
	ctx context.Context,
	creds ports.Credentials,
	d model.SchoolDistrict,
) (model.SchoolDistrict, error) {
	if d.ID == nil {
		return model.SchoolDistrict{}, apperrors.ValidationField("id", "district id is required for update")
	}
	var out APISchoolDistrict
	if _, err := c.do(ctx, call{
		method: http.MethodPut, route: routeDistrictByID, id: *d.ID, creds: creds, body: SchoolDistrictToAPI(d), out: &out,
	}); err != nil {
		return model.SchoolDistrict{}, err
	}
	return SchoolDistrictFromAPI(out), nil
}

// GetMoodleUser looks up a Moodle account by email; a JSON null body yields nil.
func (c *Client) GetMoodleUser(ctx context.Context, creds ports.Credentials, email string) (*model.MoodleUser, error) {
	var out *APIMoodleUser
	if _, err := c.do(ctx, call{
		method: http.MethodGet,
		route:  routeMoodleUser,
		query:  url.Values{"email": []string{email}},
		creds:  creds,
		out:    &out,
	}); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, nil //nolint:nilnil // no account is a valid answer
	}
	u := MoodleUserFromAPI(*out)
	return &u, nil
}

// ListCourseBuilds returns course builds, optionally narrowed by year and instructor.
func (c *Client) ListCourseBuilds(
	ctx context.Context,
	creds ports.Credentials,
	q model.CourseBuildQuery,
) ([]model.CourseBuild, error) {
	query := url.Values{}
	if q.AcademicYear != "" {
		query.Set("academic_year", q.AcademicYear)
	}
	if q.InstructorEmail != "" {
		query.Set("instructor_email", q.InstructorEmail)
	}

	var out []APICourseBuild
	if _, err := c.do(ctx, call{
		method: http.MethodGet, route: routeCourseBuild, query: query, creds: creds, out: &out,
	}); err != nil {
		return nil, err
	}
	return CourseBuildsFromAPI(out), nil
}

// CreateCourseBuild requests a new course build.
func (c *Client) CreateCourseBuild(
	ctx context.Context,
	creds ports.Credentials,
	in model.CourseBuildRequest,
) (model.CourseBuild, error) {
	var out APICourseBuild
	if _, err := c.do(ctx, call{
		method: http.MethodPost, route: routeCourseBuild, creds: creds, body: CourseBuildRequestToAPI(in), out: &out,
	}); err != nil {
		return model.CourseBuild{}, err
	}
	return CourseBuildFromAPI(out), nil
}
