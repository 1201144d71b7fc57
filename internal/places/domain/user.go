package domain

import "strings"

// Role separates moderators from regular users.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// RoleFromString decodes a role name, defaulting to USER.
func RoleFromString(s string) Role {
	if Role(strings.ToUpper(strings.TrimSpace(s))) == RoleAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// User is a registered account. The credential hash never leaves the auth
// layer.
type User struct {
	ID             string
	Name           string
	Username       string
	Role           Role
	City           City
	Email          string
	CredentialHash string
}

// IsAdmin reports whether the user may moderate places.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
