// Package models defines the client-side data model: the user profile
// snapshot captured at login time and the closed role enumeration.
package models

// UserProfile is an immutable snapshot of the authenticated user, captured
// at login time. It is never partially updated; a fresh login replaces it
// wholesale.
type UserProfile struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name,omitempty"`
	Role        Role   `json:"role"`
}

// Label returns the name to greet the user with: the display name when set,
// otherwise the username.
func (u UserProfile) Label() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}

// IsAdmin reports whether the profile carries the admin role.
func (u UserProfile) IsAdmin() bool {
	return u.Role == RoleAdmin
}
