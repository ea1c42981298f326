// Copyright (c) 2026 Kinora. All rights reserved.
// Author: platform@kinora.app

package sec

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHashCost is the bcrypt work factor applied to every stored credential.
//
// # Why 12?
//
// Cost 12 keeps a single hash around 250ms on commodity hardware: expensive
// enough to make offline brute force impractical, cheap enough that login
// latency stays dominated by a single hash computation.
const PasswordHashCost = 12

// HashPassword hashes a plain-text password using the bcrypt algorithm.
//
// The salt is generated internally by bcrypt, so two hashes of the same
// password never compare equal. The only failure mode is exhaustion of the
// OS entropy source.
func HashPassword(plainTextPassword string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), PasswordHashCost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// CheckPasswordHash compares a plain-text password with its hashed version.
//
// It returns false (never an error) for any mismatch, including a
// malformed or truncated stored hash. Callers treat every false identically
// so that no information about the stored credential leaks.
func CheckPasswordHash(plainTextPassword, existingHash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainTextPassword))
	return err == nil
}
