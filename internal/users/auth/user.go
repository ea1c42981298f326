// Copyright (c) 2026 Kinora. All rights reserved.
// Author: platform@kinora.app

/*
Package auth implements account registration, credential verification and
session lifecycle for the Kinora platform.

# Architecture

The package follows the standard Kinora domain layout:

  - user.go: Domain entity.
  - store.go: Repository contract.
  - store_postgres.go: PostgreSQL repository implementation.
  - revocation.go / revocation_redis.go: Session revocation registry.
  - service.go: Business logic (register, login, logout).
  - http.go: Transport layer (chi routes and handlers).

# Security Model

Sessions are stateless bearer tokens (JWT). Logout is implemented as a
revocation blacklist consulted by the authentication middleware on every
request, so a revoked token is dead platform-wide even though its signature
still verifies.
*/
package auth

import (
	"time"

	"github.com/kinora/kinora/internal/platform/sec"
)

// User is the account entity for the users.account table.
//
// # Serialization
//
// PasswordHash, ResetToken and ResetExpires are credential material and are
// never serialized outward (json:"-"). Everything the API returns about a
// user flows through this struct, so the redaction holds across all
// endpoints.
type User struct {
	ID           string       `json:"id"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	Name         string       `json:"name"`
	FirstName    string       `json:"firstName,omitempty"`
	LastName     string       `json:"lastName,omitempty"`
	Age          *int         `json:"age,omitempty"`
	AvatarURL    string       `json:"avatarUrl,omitempty"`
	Role         sec.UserRole `json:"role"`
	IsActive     bool         `json:"isActive"`

	// Password reset state. A non-empty ResetToken with a future
	// ResetExpires means a reset is pending.
	ResetToken   string     `json:"-"`
	ResetExpires *time.Time `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HasPendingReset reports whether the user currently holds a live reset
// token.
func (user *User) HasPendingReset(now time.Time) bool {
	return user.ResetToken != "" && user.ResetExpires != nil && user.ResetExpires.After(now)
}
