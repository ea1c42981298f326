// Copyright (c) 2026 Kinora. All rights reserved.
// Author: platform@kinora.app

package auth

import (
	"context"
	"time"
)

// UserRepository defines the persistence contract for account records.
//
// # Implementations
//   - [PostgresUserRepository]: production implementation backed by pgx.
//   - In-package fakes in the _test.go files.
//
// All lookup methods return [apperr.NotFound]-wrapped errors when no row
// matches, so services can branch on HTTP semantics without importing pgx.
type UserRepository interface {
	// FindByID loads a user by primary key.
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByEmail loads a user by canonical (lowercased) email address.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByResetToken loads the user holding the given reset token, if any.
	// Expiry is NOT checked here; the service owns that decision.
	FindByResetToken(ctx context.Context, token string) (*User, error)

	// Create inserts a new account row.
	Create(ctx context.Context, user *User) error

	// Update persists mutable profile fields (name parts, age, avatar,
	// role, active flag) of an existing account.
	Update(ctx context.Context, user *User) error

	// UpdatePassword replaces the stored password hash and atomically clears
	// any pending reset token, making reset tokens single-use.
	UpdatePassword(ctx context.Context, userID, passwordHash string) error

	// SetResetToken stores a reset token and its expiry on the account.
	SetResetToken(ctx context.Context, userID, token string, expires time.Time) error

	// ClearResetToken removes any pending reset token from the account.
	ClearResetToken(ctx context.Context, userID string) error

	// Delete removes the account row entirely.
	Delete(ctx context.Context, id string) error
}
