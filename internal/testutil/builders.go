// Package testutil provides testing utilities and fixtures for rope.
package testutil

import (
	"github.com/openstax/rope/internal/domain/model"
)

// CourseBuildBuilder provides a fluent interface for building CourseBuild fixtures.
type CourseBuildBuilder struct {
	b model.CourseBuild
}

// NewCourseBuild creates a CourseBuildBuilder for a freshly created build.
func NewCourseBuild() *CourseBuildBuilder {
	return &CourseBuildBuilder{
		b: model.CourseBuild{
			ID:                  1,
			InstructorFirstName: "Franklin",
			InstructorLastName:  "Saint",
			InstructorEmail:     "fsaint@rice.edu",
			SchoolDistrictName:  "snowfall_isd",
			AcademicYear:        "AY 2024",
			AcademicYearShort:   "AY24",
			CourseName:          "Algebra 1",
			CourseShortName:     "Alg1",
			CreatorEmail:        "admin@rice.edu",
			Status:              model.CourseBuildStatusCreated,
		},
	}
}

// WithID sets the build id.
func (b *CourseBuildBuilder) WithID(id int) *CourseBuildBuilder {
	b.b.ID = id
	return b
}

// WithInstructor sets the instructor's name and email.
func (b *CourseBuildBuilder) WithInstructor(first, last, email string) *CourseBuildBuilder {
	b.b.InstructorFirstName = first
	b.b.InstructorLastName = last
	b.b.InstructorEmail = email
	return b
}

// WithAcademicYear sets the long and short academic year.
func (b *CourseBuildBuilder) WithAcademicYear(year, short string) *CourseBuildBuilder {
	b.b.AcademicYear = year
	b.b.AcademicYearShort = short
	return b
}

// WithDistrict sets the school district name.
func (b *CourseBuildBuilder) WithDistrict(name string) *CourseBuildBuilder {
	b.b.SchoolDistrictName = name
	return b
}

// WithStatus sets the status.
func (b *CourseBuildBuilder) WithStatus(s model.CourseBuildStatus) *CourseBuildBuilder {
	b.b.Status = s
	return b
}

// Completed marks the build completed with a Moodle course and enrollment details.
func (b *CourseBuildBuilder) Completed(courseID int, enrollmentURL, key string) *CourseBuildBuilder {
	b.b.Status = model.CourseBuildStatusCompleted
	b.b.CourseID = IntPtr(courseID)
	b.b.CourseEnrollmentURL = StringPtr(enrollmentURL)
	b.b.CourseEnrollmentKey = StringPtr(key)
	return b
}

// Build returns the fixture.
func (b *CourseBuildBuilder) Build() model.CourseBuild {
	return b.b
}

// Users returns a small roster covering every role combination.
func Users() []model.User {
	return []model.User{
		{ID: 1, Email: "admin@rice.edu", IsAdmin: true},
		{ID: 2, Email: "manager@rice.edu", IsManager: true},
		{ID: 3, Email: "both@rice.edu", IsAdmin: true, IsManager: true},
		{ID: 4, Email: "viewer@rice.edu"},
	}
}

// Districts returns active and inactive districts in unsorted order.
func Districts() []model.SchoolDistrict {
	return []model.SchoolDistrict{
		{ID: IntPtr(2), Name: "snowfall_isd", Active: true},
		{ID: IntPtr(1), Name: "andover_isd", Active: false},
		{ID: IntPtr(3), Name: "mesa_isd", Active: true},
	}
}

// MoodleSettings returns persisted values for every default setting.
func MoodleSettings() []model.MoodleSetting {
	return []model.MoodleSetting{
		{ID: IntPtr(1), Name: model.SettingAcademicYear, Value: "AY 2024"},
		{ID: IntPtr(2), Name: model.SettingAcademicYearShort, Value: "AY24"},
		{ID: IntPtr(3), Name: model.SettingCourseCategory, Value: "12"},
		{ID: IntPtr(4), Name: model.SettingBaseCourseID, Value: "7"},
	}
}
