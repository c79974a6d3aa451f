package auth

// Package auth contains domain-level types for the viewer's identity and the route being viewed.
// It is pure and free of framework/adapter concerns.

// Status is the tri-state sign-in status of the current viewer.
// Unknown is the only valid value before the session probe resolves.
type Status int

const (
	StatusUnknown Status = iota + 1
	StatusNotSignedIn
	StatusSignedIn
)

func (s Status) String() string {
	switch s {
	case StatusUnknown:
		return "unknown"
	case StatusNotSignedIn:
		return "not_signed_in"
	case StatusSignedIn:
		return "signed_in"
	default:
		return "invalid"
	}
}

// Identity is the normalized record of who is viewing the page.
// Email is set only when Status is StatusSignedIn; the role flags are false otherwise.
// Identity is comparable, so two records are equal iff == holds.
type Identity struct {
	Status    Status
	Email     string
	IsAdmin   bool
	IsManager bool
}

// Pending returns the identity a page starts with before the probe resolves.
func Pending() Identity {
	return Identity{Status: StatusUnknown}
}

// SignedOut returns the safe default identity used for every failed probe and after logout.
func SignedOut() Identity {
	return Identity{Status: StatusNotSignedIn}
}

// SignedIn returns an identity for an authenticated viewer.
func SignedIn(email string, isAdmin, isManager bool) Identity {
	return Identity{
		Status:    StatusSignedIn,
		Email:     email,
		IsAdmin:   isAdmin,
		IsManager: isManager,
	}
}

// IsSignedIn reports whether the viewer is authenticated.
func (i Identity) IsSignedIn() bool { return i.Status == StatusSignedIn }

// CanManageBuilds reports whether the viewer may create course builds.
func (i Identity) CanManageBuilds() bool {
	return i.IsSignedIn() && (i.IsAdmin || i.IsManager)
}

// CanAdminister reports whether the viewer may open admin-only pages.
func (i Identity) CanAdminister() bool {
	return i.IsSignedIn() && i.IsAdmin
}

// Normalize enforces the field invariants: anything other than a signed-in
// identity carries no email and no roles.
func (i Identity) Normalize() Identity {
	if i.Status == StatusSignedIn {
		return i
	}
	if i.Status != StatusUnknown {
		return SignedOut()
	}
	return Pending()
}
