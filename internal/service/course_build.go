package service

import (
	"context"
	"net/mail"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/openstax/rope/internal/domain/model"
	apperrors "github.com/openstax/rope/internal/errors"
	"github.com/openstax/rope/internal/ports"
)

// CourseBuildServiceOptions groups dependencies for CourseBuildService.
type CourseBuildServiceOptions struct {
	API ports.CourseBuildAPI
	// Cache remembers Moodle account lookups. Optional.
	Cache         ports.MoodleUserCache
	Observability Observability
}

// CourseBuildService looks up instructors and manages their course builds.
type CourseBuildService struct {
	api   ports.CourseBuildAPI
	cache ports.MoodleUserCache
	obs   Observability
}

// NewCourseBuildService constructs a new CourseBuildService.
func NewCourseBuildService(opts CourseBuildServiceOptions) *CourseBuildService {
	if opts.API == nil {
		panic("service: CourseBuildService requires a CourseBuildAPI")
	}
	return &CourseBuildService{api: opts.API, cache: opts.Cache, obs: opts.Observability}
}

// LookupInstructor finds the Moodle account for email. An email with no
// account is a not-found error.
func (s *CourseBuildService) LookupInstructor(ctx context.Context, creds ports.Credentials, email string) (model.MoodleUser, error) {
	email = model.NormalizeEmail(email)
	if email == "" {
		return model.MoodleUser{}, apperrors.ValidationField("email", MsgEmailRequired)
	}

	if s.cache != nil {
		user, found, err := s.cache.Get(ctx, email)
		switch {
		case err != nil:
			s.obs.logger().WarnContext(ctx, "moodle user cache read failed", "email", email, "error", err)
		case found && user == nil:
			return model.MoodleUser{}, apperrors.NotFound(MsgNoMoodleAccount)
		case found:
			return *user, nil
		}
	}

	user, err := s.api.GetMoodleUser(ctx, creds, email)
	s.obs.operation("moodle_user.lookup", err)
	if err != nil {
		s.obs.logger().ErrorContext(ctx, "moodle user lookup failed", "email", email, "error", err)
		return model.MoodleUser{}, apperrors.Wrap(err, apperrors.ErrCodeUpstream, MsgMoodleLookupFailed)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, email, user); err != nil {
			s.obs.logger().WarnContext(ctx, "moodle user cache write failed", "email", email, "error", err)
		}
	}
	if user == nil {
		return model.MoodleUser{}, apperrors.NotFound(MsgNoMoodleAccount)
	}
	return *user, nil
}

// FindForInstructor returns the instructor's course build for the configured
// academic year.
func (s *CourseBuildService) FindForInstructor(ctx context.Context, creds ports.Credentials, email string) (model.CourseBuild, error) {
	email = model.NormalizeEmail(email)
	if email == "" {
		return model.CourseBuild{}, apperrors.ValidationField("email", MsgEmailRequired)
	}

	settings, err := s.api.ListMoodleSettings(ctx, creds)
	if err != nil {
		s.obs.logger().ErrorContext(ctx, "load academic year failed", "error", err)
		return model.CourseBuild{}, apperrors.Wrap(err, apperrors.ErrCodeUpstream, MsgCourseBuildsFailed)
	}
	year := model.MoodleSettings(settings).Value(model.SettingAcademicYear)

	builds, err := s.api.ListCourseBuilds(ctx, creds, model.CourseBuildQuery{
		AcademicYear:    year,
		InstructorEmail: email,
	})
	s.obs.operation("course_build.find", err)
	if err != nil {
		s.obs.logger().ErrorContext(ctx, "list course builds failed", "email", email, "academic_year", year, "error", err)
		return model.CourseBuild{}, apperrors.Wrap(err, apperrors.ErrCodeUpstream, MsgCourseBuildsFailed)
	}
	if len(builds) == 0 {
		return model.CourseBuild{}, apperrors.NotFound(MsgNoCourseBuild)
	}
	return builds[0], nil
}

// Create validates the request and asks the backend to build the course.
func (s *CourseBuildService) Create(ctx context.Context, creds ports.Credentials, req model.CourseBuildRequest) (model.CourseBuild, error) {
	req = normalizeBuildRequest(req)
	if err := validateBuildRequest(req); err != nil {
		return model.CourseBuild{}, err
	}

	build, err := s.api.CreateCourseBuild(ctx, creds, req)
	s.obs.operation("course_build.create", err)
	if err != nil {
		s.obs.logger().ErrorContext(ctx, "create course build failed",
			"instructor_email", req.InstructorEmail,
			"school_district", req.SchoolDistrictName,
			"error", err,
		)
		return model.CourseBuild{}, apperrors.Wrap(err, codeOr(err, apperrors.ErrCodeUpstream), MsgCourseBuildFailed)
	}
	s.obs.logger().InfoContext(ctx, "course build created",
		"build_id", build.ID,
		"instructor_email", build.InstructorEmail,
		"academic_year", build.AcademicYear,
	)
	return build, nil
}

func normalizeBuildRequest(req model.CourseBuildRequest) model.CourseBuildRequest {
	req.InstructorFirstName = strings.TrimSpace(req.InstructorFirstName)
	req.InstructorLastName = strings.TrimSpace(req.InstructorLastName)
	req.InstructorEmail = model.NormalizeEmail(req.InstructorEmail)
	req.SchoolDistrictName = strings.TrimSpace(req.SchoolDistrictName)
	return req
}

// validateBuildRequest reports the first invalid create-form field.
func validateBuildRequest(req model.CourseBuildRequest) error {
	switch {
	case req.InstructorFirstName == "":
		return apperrors.ValidationField("instructor_first_name", MsgFirstNameRequired)
	case req.InstructorLastName == "":
		return apperrors.ValidationField("instructor_last_name", MsgLastNameRequired)
	case req.InstructorEmail == "":
		return apperrors.ValidationField("instructor_email", MsgEmailRequired)
	case !validEmail(req.InstructorEmail):
		return apperrors.ValidationField("instructor_email", MsgInvalidEmail)
	case req.SchoolDistrictName == "":
		return apperrors.ValidationField("school_district_name", MsgDistrictRequired)
	}
	return req.Validate()
}

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s && strings.Contains(s[strings.LastIndex(s, "@"):], ".")
}

// ListAll returns every course build matching the filter.
func (s *CourseBuildService) ListAll(ctx context.Context, creds ports.Credentials, filter model.CourseBuildFilter) ([]model.CourseBuild, error) {
	builds, err := s.api.ListCourseBuilds(ctx, creds, model.CourseBuildQuery{})
	s.obs.operation("course_build.list", err)
	if err != nil {
		s.obs.logger().ErrorContext(ctx, "list course builds failed", "error", err)
		return nil, apperrors.Wrap(err, apperrors.ErrCodeUpstream, MsgCourseBuildsFailed)
	}
	return model.FilterCourseBuilds(builds, filter), nil
}

// ActiveDistricts lists the districts a new build may be assigned to, by name.
func (s *CourseBuildService) ActiveDistricts(ctx context.Context, creds ports.Credentials) ([]model.SchoolDistrict, error) {
	districts, err := s.api.ListSchoolDistricts(ctx, creds)
	if err != nil {
		s.obs.logger().ErrorContext(ctx, "list school districts failed", "error", err)
		return nil, apperrors.Wrap(err, apperrors.ErrCodeUpstream, MsgDistrictsLoadFailed)
	}
	active := model.ActiveDistricts(districts)
	model.SortDistricts(active)
	return active, nil
}

// InstructorPage is what the home page shows after a lookup.
type InstructorPage struct {
	Instructor model.MoodleUser
	// Build is nil when the instructor has no build this academic year.
	Build *model.CourseBuild
	// Districts is filled only when the viewer may create builds.
	Districts []model.SchoolDistrict
}

// LoadInstructorPage looks up the instructor, then fetches the build and,
// for viewers who can create builds, the district dropdown concurrently.
func (s *CourseBuildService) LoadInstructorPage(ctx context.Context, creds ports.Credentials, email string, canCreate bool) (InstructorPage, error) {
	instructor, err := s.LookupInstructor(ctx, creds, email)
	if err != nil {
		return InstructorPage{}, err
	}
	page := InstructorPage{Instructor: instructor}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		build, err := s.FindForInstructor(gctx, creds, email)
		if apperrors.IsNotFound(err) {
			return nil
		}
		if err != nil {
			return err
		}
		page.Build = &build
		return nil
	})
	if canCreate {
		g.Go(func() error {
			districts, err := s.ActiveDistricts(gctx, creds)
			page.Districts = districts
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return InstructorPage{}, err
	}
	return page, nil
}
