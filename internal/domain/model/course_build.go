//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
)

// CourseBuildStatus tracks a course build through the backend's processor.
type CourseBuildStatus string

const (
	CourseBuildStatusCreated    CourseBuildStatus = "created"
	CourseBuildStatusProcessing CourseBuildStatus = "processing"
	CourseBuildStatusCompleted  CourseBuildStatus = "completed"
	CourseBuildStatusFailed     CourseBuildStatus = "failed"
)

// Valid reports whether the status is one the backend emits.
func (s CourseBuildStatus) Valid() bool {
	switch s {
	case CourseBuildStatusCreated, CourseBuildStatusProcessing, CourseBuildStatusCompleted, CourseBuildStatusFailed:
		return true
	default:
		return false
	}
}

// CourseBuild is a request to create an instructor's Moodle course for an academic year.
// CourseID, CourseEnrollmentURL and CourseEnrollmentKey stay nil until the build completes.
type CourseBuild struct {
	ID                  int
	InstructorFirstName string
	InstructorLastName  string
	InstructorEmail     string
	SchoolDistrictName  string
	AcademicYear        string
	AcademicYearShort   string
	CourseName          string
	CourseShortName     string
	CourseID            *int
	CourseEnrollmentURL *string
	CourseEnrollmentKey *string
	CreatorEmail        string
	Status              CourseBuildStatus
}

// InstructorName joins the instructor's first and last name.
func (b CourseBuild) InstructorName() string {
	return strings.TrimSpace(b.InstructorFirstName + " " + b.InstructorLastName)
}

// CourseBuildRequest is the input for creating a course build.
type CourseBuildRequest struct {
	InstructorFirstName string
	InstructorLastName  string
	InstructorEmail     string
	SchoolDistrictName  string
}

// ErrSchoolDistrictRequired is returned when a build request names no district.
var ErrSchoolDistrictRequired = errors.New("school district is required")

// Validate checks the fields the create form requires.
func (r CourseBuildRequest) Validate() error {
	if strings.TrimSpace(r.InstructorEmail) == "" {
		return errors.New("instructor email is required")
	}
	if strings.TrimSpace(r.InstructorFirstName) == "" || strings.TrimSpace(r.InstructorLastName) == "" {
		return errors.New("instructor name is required")
	}
	if strings.TrimSpace(r.SchoolDistrictName) == "" {
		return ErrSchoolDistrictRequired
	}
	return nil
}

// CourseBuildQuery selects course builds. Empty fields do not filter.
type CourseBuildQuery struct {
	AcademicYear    string
	InstructorEmail string
}

// CourseBuildFilter narrows a list of builds by case-insensitive substrings.
type CourseBuildFilter struct {
	Email        string
	AcademicYear string
}

// FilterCourseBuilds returns the builds whose instructor email and academic year
// contain the filter values, ignoring case. The input slice is not modified.
func FilterCourseBuilds(builds []CourseBuild, f CourseBuildFilter) []CourseBuild {
	email := strings.ToLower(strings.TrimSpace(f.Email))
	year := strings.ToLower(strings.TrimSpace(f.AcademicYear))

	out := make([]CourseBuild, 0, len(builds))
	for _, b := range builds {
		if email != "" && !strings.Contains(strings.ToLower(b.InstructorEmail), email) {
			continue
		}
		if year != "" && !strings.Contains(strings.ToLower(b.AcademicYear), year) {
			continue
		}
		out = append(out, b)
	}
	return out
}
