// ABOUTME: User profile and role types shared by the session and API layers
// ABOUTME: Roles mirror the backend's ADMIN/USER literals

package session

// Role is a user's permission level as reported by the backend.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// ParseRole converts a string to a Role, defaulting to USER.
func ParseRole(s string) Role {
	if s == string(RoleAdmin) {
		return RoleAdmin
	}
	return RoleUser
}

// Valid returns true if the role is a recognised value.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is the cached profile of the logged-in account.
type User struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone,omitempty"`
	Role     Role   `json:"role"`
}

// IsAdmin reports whether the profile carries the ADMIN role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
