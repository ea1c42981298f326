// Copyright (c) 2026 Kinora. All rights reserved.
// Author: platform@kinora.app

package sec

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateSecureToken produces a cryptographically random, hex-encoded opaque
// token of the given byte length.
//
// # Usage
//
// These tokens carry no structure and no claims; they are pure entropy.
// They are used for password-reset tokens, where the value is persisted
// server-side and compared by equality.
func GenerateSecureToken(byteLength int) (string, error) {
	buffer := make([]byte, byteLength)
	if _, err := rand.Read(buffer); err != nil {
		return "", fmt.Errorf("sec: failed to read entropy source: %w", err)
	}
	return hex.EncodeToString(buffer), nil
}
