package httpx

// Page identifiers used in templates and navigation.
const (
	PageHome     = "home"
	PageCourses  = "courses"
	PageUsers    = "users"
	PageSettings = "settings"
	PageAbout    = "about"
	PageLogin    = "login"
)

// Template paths used for loading templates in tests and production.
const (
	TemplatePathFromRoot = "frontend/templates"
	TemplatePathFromTest = "../../frontend/templates" // from internal/http test files
)

// Form field names shared by handlers and templates.
const (
	fieldEmail        = "email"
	fieldAcademicYear = "academic_year"
	fieldIsAdmin      = "is_admin"
	fieldIsManager    = "is_manager"
	fieldName         = "name"
	fieldAction       = "action"
	fieldToken        = "token"
	fieldCredential   = "credential"

	settingFieldPrefix = "setting."
)

//nolint:gochecknoglobals // static read-only lookup for templates
var contentTemplates = map[string]string{
	PageHome:     "home-content",
	PageCourses:  "courses-content",
	PageUsers:    "users-content",
	PageSettings: "settings-content",
	PageAbout:    "about-content",
	PageLogin:    "login-content",
}

// ContentTemplateMap returns the mapping from CurrentPage to template name.
func ContentTemplateMap() map[string]string { return contentTemplates }

// ContentTemplateFor returns the content template for the given CurrentPage.
// Unknown pages fall back to the home page content.
func ContentTemplateFor(currentPage string) string {
	if name, ok := contentTemplates[currentPage]; ok {
		return name
	}
	return "home-content"
}

// Course build form fields.
const (
	fieldFirstName = "instructor_first_name"
	fieldLastName  = "instructor_last_name"
	fieldInstEmail = "instructor_email"
	fieldDistrict  = "school_district_name"
	fieldFind      = "find"
)
