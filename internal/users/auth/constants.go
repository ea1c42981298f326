// Copyright (c) 2026 Kinora. All rights reserved.
// Author: platform@kinora.app

package auth

import "time"

// Credential lifecycle parameters.
const (
	// DefaultTokenTTL is the bearer token lifetime when no override is
	// configured.
	DefaultTokenTTL = 7 * 24 * time.Hour

	// ResetTokenTTL bounds how long a password reset link stays valid.
	ResetTokenTTL = 1 * time.Hour

	// ResetTokenLength is the entropy of a reset token in raw bytes. The
	// token travels as a 64-character hex string.
	ResetTokenLength = 32

	// MinPasswordLength is the minimum accepted password length.
	MinPasswordLength = 6

	// EnumerationDelay approximates the latency of a real reset-email
	// dispatch. Applied on the not-found path of forgot-password so timing
	// does not betray whether an account exists.
	EnumerationDelay = 120 * time.Millisecond
)

// JSON field identifiers used in request payloads and validation errors.
const (
	fieldEmail     = "email"
	fieldPassword  = "password"
	fieldFirstName = "firstName"
	fieldLastName  = "lastName"
	fieldAge       = "age"
)
