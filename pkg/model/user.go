package model

// Role is the coarse-grained permission class assigned to an identity.
type Role string

const (
	// RoleAdmin manages students, departments, subjects and enrollments.
	RoleAdmin Role = "admin"
	// RoleStudent browses subjects and manages their own profile and enrollments.
	RoleStudent Role = "student"
)

// Valid reports whether the role is one of the two known values.
// Identities carrying any other role are rejected at the session boundary.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleStudent
}

// Identity is the authenticated user's profile as known to this front end.
// It is either fully populated or absent, never partial.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

// IdentityPatch is a partial identity update. Nil fields are left untouched.
type IdentityPatch struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

// Apply merges the patch into the identity with shallow-merge semantics:
// fields present in the patch replace the corresponding field.
func (i *Identity) Apply(p IdentityPatch) {
	if p.Name != nil {
		i.Name = *p.Name
	}
	if p.Email != nil {
		i.Email = *p.Email
	}
}

// IsAdmin returns true if the identity has the admin role.
func (i *Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// IsStudent returns true if the identity has the student role.
func (i *Identity) IsStudent() bool {
	return i.Role == RoleStudent
}
