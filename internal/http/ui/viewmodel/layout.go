// Package viewmodel holds the data shapes shared by every rendered page.
package viewmodel

// User is the signed-in viewer as templates see it.
type User struct {
	Email     string
	IsAdmin   bool
	IsManager bool
}

// Flash is a one-shot message carried across a redirect.
type Flash struct {
	Kind    string // "success" or "error"
	Message string
}

// Layout captures shared chrome metadata (titles, navigation state, auth flags).
type Layout struct {
	Title           string
	PageTitle       string
	CurrentPage     string
	CSRFToken       string
	IsAuthenticated bool
	IsAdmin         bool
	CanManageBuilds bool
	User            *User
	Flashes         []Flash
}
