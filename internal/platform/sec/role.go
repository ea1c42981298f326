// Copyright (c) 2026 Kinora. All rights reserved.
// Author: platform@kinora.app

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
//
// The platform deliberately keeps a flat, binary model: regular members and
// administrators. There is no intermediate moderation hierarchy.
type UserRole string

const (
	// Unrestricted system access
	RoleAdmin UserRole = "admin"

	// Default role for standard registered users
	RoleUser UserRole = "user"
)

// IsAdmin reports whether the role grants administrative access.
func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

// Valid reports whether the role is one of the known values.
func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}
