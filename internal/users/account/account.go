// Copyright (c) 2026 Kinora. All rights reserved.
// Author: platform@kinora.app

/*
Package account implements self-service profile management for authenticated
users, plus the admin-only account removal endpoint.

It deliberately owns no storage of its own: the account row lives in the
auth package's [auth.UserRepository], and this package layers profile
semantics (partial updates, display-name derivation, password change with
current-password proof) on top of it.
*/
package account

// UpdateProfileInput carries a partial profile update. Nil pointers mean
// "leave unchanged"; for AvatarURL an explicit empty string clears the field.
type UpdateProfileInput struct {
	FirstName *string
	LastName  *string
	Age       *int
	AvatarURL *string
}
