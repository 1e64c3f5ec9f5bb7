package domain

import "strings"

// Role is the closed set of roles a user can hold.
type Role string

const (
	RoleDirectora     Role = "Directora"
	RoleAdministrador Role = "Administrador"
	RoleTecnica       Role = "Tecnica"
)

// Route policies. Each is an explicit allow-list; no role implies another.
var (
	// ProgramEditors may create, edit and delete projects, trainings and sectors,
	// and change their assignments.
	ProgramEditors = []Role{RoleDirectora}
	// ProgramViewers may read projects and trainings and change their status.
	ProgramViewers = []Role{RoleDirectora, RoleAdministrador}
	// CaseworkRoles may use the dashboard, beneficiaries and sectors.
	CaseworkRoles = []Role{RoleDirectora, RoleAdministrador, RoleTecnica}
)

// ParseRole trims surrounding whitespace. Case is preserved: "directora" is
// not RoleDirectora.
func ParseRole(s string) Role {
	return Role(strings.TrimSpace(s))
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleDirectora, RoleAdministrador, RoleTecnica:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// RequireRole returns nil when the user's role is exactly one of allowed,
// ErrForbidden otherwise. A nil user is ErrUnauthenticated.
func RequireRole(user *User, allowed ...Role) error {
	if user == nil {
		return ErrUnauthenticated
	}
	role := ParseRole(string(user.Role))
	if !role.Valid() {
		return ErrForbidden
	}
	for _, a := range allowed {
		if role == ParseRole(string(a)) {
			return nil
		}
	}
	return ErrForbidden
}
