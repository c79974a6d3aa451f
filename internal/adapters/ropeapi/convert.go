package ropeapi

import (
	domainauth "github.com/openstax/rope/internal/domain/auth"
	"github.com/openstax/rope/internal/domain/model"
)

// Converters between wire payloads and view-models. Each pair satisfies
// XFromAPI(XToAPI(x)) == x. Pointer fields are copied, never shared.

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// IdentityFromAPI maps the current-user payload to a signed-in identity.
func IdentityFromAPI(in APICurrentUser) domainauth.Identity {
	return domainauth.SignedIn(in.Email, in.IsAdmin, in.IsManager)
}

// IdentityToAPI maps a signed-in identity back to its wire form.
func IdentityToAPI(in domainauth.Identity) APICurrentUser {
	return APICurrentUser{Email: in.Email, IsAdmin: in.IsAdmin, IsManager: in.IsManager}
}

// UserToAPI maps a user view-model to its wire form.
func UserToAPI(in model.User) APIUser {
	return APIUser{ID: in.ID, Email: in.Email, IsAdmin: in.IsAdmin, IsManager: in.IsManager}
}

// UserFromAPI maps a wire user to its view-model.
func UserFromAPI(in APIUser) model.User {
	return model.User{ID: in.ID, Email: in.Email, IsAdmin: in.IsAdmin, IsManager: in.IsManager}
}

// UsersFromAPI maps a list of wire users.
func UsersFromAPI(in []APIUser) []model.User {
	out := make([]model.User, len(in))
	for i, u := range in {
		out[i] = UserFromAPI(u)
	}
	return out
}

// NewUserToAPI maps a new-user request to its wire form; the id is omitted.
func NewUserToAPI(in model.NewUserRequest) APIUser {
	return APIUser{Email: in.Email, IsAdmin: in.IsAdmin, IsManager: in.IsManager}
}

// MoodleSettingToAPI maps a setting to its wire form.
func MoodleSettingToAPI(in model.MoodleSetting) APIMoodleSetting {
	return APIMoodleSetting{ID: clonePtr(in.ID), Name: in.Name, Value: in.Value}
}

// MoodleSettingFromAPI maps a wire setting to its view-model.
func MoodleSettingFromAPI(in APIMoodleSetting) model.MoodleSetting {
	return model.MoodleSetting{ID: clonePtr(in.ID), Name: in.Name, Value: in.Value}
}

// MoodleSettingsFromAPI maps a list of wire settings.
func MoodleSettingsFromAPI(in []APIMoodleSetting) []model.MoodleSetting {
	out := make([]model.MoodleSetting, len(in))
	for i, s := range in {
		out[i] = MoodleSettingFromAPI(s)
	}
	return out
}

// SchoolDistrictToAPI maps a district to its wire form.
func SchoolDistrictToAPI(in model.SchoolDistrict) APISchoolDistrict {
	return APISchoolDistrict{ID: clonePtr(in.ID), Name: in.Name, Active: in.Active}
}

// SchoolDistrictFromAPI maps a wire district to its view-model.
func SchoolDistrictFromAPI(in APISchoolDistrict) model.SchoolDistrict {
	return model.SchoolDistrict{ID: clonePtr(in.ID), Name: in.Name, Active: in.Active}
}

// SchoolDistrictsFromAPI maps a list of wire districts.
func SchoolDistrictsFromAPI(in []APISchoolDistrict) []model.SchoolDistrict {
	out := make([]model.SchoolDistrict, len(in))
	for i, d := range in {
		out[i] = SchoolDistrictFromAPI(d)
	}
	return out
}

// MoodleUserToAPI maps a Moodle account to its wire form.
func MoodleUserToAPI(in model.MoodleUser) APIMoodleUser {
	return APIMoodleUser{FirstName: in.FirstName, LastName: in.LastName, Email: in.Email}
}

// MoodleUserFromAPI maps a wire Moodle account to its view-model.
func MoodleUserFromAPI(in APIMoodleUser) model.MoodleUser {
	return model.MoodleUser{FirstName: in.FirstName, LastName: in.LastName, Email: in.Email}
}

// CourseBuildToAPI maps a course build to its wire form.
func CourseBuildToAPI(in model.CourseBuild) APICourseBuild {
	return APICourseBuild{
		ID:                  in.ID,
		InstructorFirstName: in.InstructorFirstName,
		InstructorLastName:  in.InstructorLastName,
		InstructorEmail:     in.InstructorEmail,
		SchoolDistrict:      in.SchoolDistrictName,
		AcademicYear:        in.AcademicYear,
		AcademicYearShort:   in.AcademicYearShort,
		CourseName:          in.CourseName,
		CourseShortname:     in.CourseShortName,
		CourseID:            clonePtr(in.CourseID),
		CourseEnrollmentURL: clonePtr(in.CourseEnrollmentURL),
		CourseEnrollmentKey: clonePtr(in.CourseEnrollmentKey),
		Creator:             in.CreatorEmail,
		Status:              string(in.Status),
	}
}

// CourseBuildFromAPI maps a wire course build to its view-model.
func CourseBuildFromAPI(in APICourseBuild) model.CourseBuild {
	return model.CourseBuild{
		ID:                  in.ID,
		InstructorFirstName: in.InstructorFirstName,
		InstructorLastName:  in.InstructorLastName,
		InstructorEmail:     in.InstructorEmail,
		SchoolDistrictName:  in.SchoolDistrict,
		AcademicYear:        in.AcademicYear,
		AcademicYearShort:   in.AcademicYearShort,
		CourseName:          in.CourseName,
		CourseShortName:     in.CourseShortname,
		CourseID:            clonePtr(in.CourseID),
		CourseEnrollmentURL: clonePtr(in.CourseEnrollmentURL),
		CourseEnrollmentKey: clonePtr(in.CourseEnrollmentKey),
		CreatorEmail:        in.Creator,
		Status:              model.CourseBuildStatus(in.Status),
	}
}

// CourseBuildsFromAPI maps a list of wire course builds.
func CourseBuildsFromAPI(in []APICourseBuild) []model.CourseBuild {
	out := make([]model.CourseBuild, len(in))
	for i, b := range in {
		out[i] = CourseBuildFromAPI(b)
	}
	return out
}

// CourseBuildRequestToAPI maps a create request to its wire form.
func CourseBuildRequestToAPI(in model.CourseBuildRequest) APICourseBuildRequest {
	return APICourseBuildRequest{
		InstructorFirstName: in.InstructorFirstName,
		InstructorLastName:  in.InstructorLastName,
		InstructorEmail:     in.InstructorEmail,
		SchoolDistrict:      in.SchoolDistrictName,
	}
}

// CourseBuildRequestFromAPI maps a wire create request to its view-model.
func CourseBuildRequestFromAPI(in APICourseBuildRequest) model.CourseBuildRequest {
	return model.CourseBuildRequest{
		InstructorFirstName: in.InstructorFirstName,
		InstructorLastName:  in.InstructorLastName,
		InstructorEmail:     in.InstructorEmail,
		SchoolDistrictName:  in.SchoolDistrict,
	}
}
