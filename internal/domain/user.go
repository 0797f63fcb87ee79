package domain

// Role constants define the allowed user roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// UserIdentity is the authenticated identity of a storefront session.
// It is the exact snapshot persisted to the session slot: the four fields
// below and nothing else.
type UserIdentity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// IsAdmin reports whether this identity carries the admin role.
func (u *UserIdentity) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsValidRole checks whether the given role string is a valid user role.
func IsValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

// SeededUsers returns the fixed demo directory of identities. Login resolves
// against this table by exact email match; no credentials are stored, so the
// password is accepted without verification (a documented demo
// simplification, not a security feature).
func SeededUsers() []UserIdentity {
	return []UserIdentity{
		{ID: "1", Email: "admin@example.com", Name: "Admin User", Role: RoleAdmin},
		{ID: "2", Email: "user@example.com", Name: "Regular User", Role: RoleUser},
	}
}
