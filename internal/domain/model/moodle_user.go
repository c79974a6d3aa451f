//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

// MoodleUser is an account in the learning-management system.
type MoodleUser struct {
	FirstName string
	LastName  string
	Email     string
}

// FullName joins the first and last name.
func (u MoodleUser) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}
