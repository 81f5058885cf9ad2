package domain

import "net/http"

type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

// Capabilities is what a role grants, independent of how users are stored.
type Capabilities struct {
	Administer bool // manage users, catalogue and any content
	Moderate   bool // edit or delete other people's reviews and comments
}

// CapabilitiesFor maps (role, superuser flag) to the granted capability set.
func CapabilitiesFor(role Role, superuser bool) Capabilities {
	switch {
	case superuser || role == RoleAdmin:
		return Capabilities{Administer: true, Moderate: true}
	case role == RoleModerator:
		return Capabilities{Moderate: true}
	default:
		return Capabilities{}
	}
}

// Actor is the caller of an operation. The zero value is an anonymous caller.
type Actor struct {
	UserID        string
	Username      string
	Role          Role
	Superuser     bool
	Authenticated bool
}

func (a Actor) Capabilities() Capabilities {
	if !a.Authenticated {
		return Capabilities{}
	}
	return CapabilitiesFor(a.Role, a.Superuser)
}

// IsSafeMethod reports whether method is a read-only HTTP verb.
func IsSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// IsAdmin holds for authenticated admins and superusers.
func IsAdmin(a Actor) bool {
	return a.Authenticated && a.Capabilities().Administer
}

// IsAdminOrReadOnly lets anyone read and only admins write.
func IsAdminOrReadOnly(a Actor, method string) bool {
	return IsSafeMethod(method) || IsAdmin(a)
}

// CanAttempt is the collection-level half of IsAdminOrModeratorOrAuthor:
// anyone may read, any authenticated actor may create.
func CanAttempt(a Actor, method string) bool {
	return IsSafeMethod(method) || a.Authenticated
}

// IsAdminOrModeratorOrAuthor decides access to a single object owned by authorID.
func IsAdminOrModeratorOrAuthor(a Actor, method, authorID string) bool {
	if IsSafeMethod(method) {
		return true
	}
	if !a.Authenticated {
		return false
	}
	caps := a.Capabilities()
	return caps.Administer || caps.Moderate || a.UserID == authorID
}
