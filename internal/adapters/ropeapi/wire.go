package ropeapi

// Wire representations of the REST backend's JSON payloads. These types never
// leave this package's boundary unconverted; services only see internal/domain/model.

// APICurrentUser is the body of GET /api/user/current.
type APICurrentUser struct {
	Email     string `json:"email"`
	IsAdmin   bool   `json:"is_admin"`
	IsManager bool   `json:"is_manager"`
}

// APISessionRequest is the body of POST /api/session.
type APISessionRequest struct {
	Token string `json:"token"`
}

// APIUser is a rope account.
type APIUser struct {
	ID        int    `json:"id,omitempty"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"is_admin"`
	IsManager bool   `json:"is_manager"`
}

// APIMoodleSetting is a named Moodle setting.
type APIMoodleSetting struct {
	ID    *int   `json:"id,omitempty"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

// APISchoolDistrict is a school district.
type APISchoolDistrict struct {
	ID     *int   `json:"id,omitempty"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// APIMoodleUser is the body of GET /api/moodle/user when an account exists.
type APIMoodleUser struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// APICourseBuild is a course build. Nullable columns are pointers so that
// JSON null and a missing key both decode to nil.
type APICourseBuild struct {
	ID                  int     `json:"id"`
	InstructorFirstName string  `json:"instructor_firstname"`
	InstructorLastName  string  `json:"instructor_lastname"`
	InstructorEmail     string  `json:"instructor_email"`
	SchoolDistrict      string  `json:"school_district"`
	AcademicYear        string  `json:"academic_year"`
	AcademicYearShort   string  `json:"academic_year_short"`
	CourseName          string  `json:"course_name"`
	CourseShortname     string  `json:"course_shortname"`
	CourseID            *int    `json:"course_id"`
	CourseEnrollmentURL *string `json:"course_enrollment_url"`
	CourseEnrollmentKey *string `json:"course_enrollment_key"`
	Creator             string  `json:"creator"`
	Status              string  `json:"status"`
}

// APICourseBuildRequest is the body of POST /api/moodle/course/build.
type APICourseBuildRequest struct {
	InstructorFirstName string `json:"instructor_firstname"`
	InstructorLastName  string `json:"instructor_lastname"`
	InstructorEmail     string `json:"instructor_email"`
	SchoolDistrict      string `json:"school_district"`
}
