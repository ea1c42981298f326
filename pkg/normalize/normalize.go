// Copyright (c) 2026 Kinora. All rights reserved.
// Author: platform@kinora.app

/*
Package normalize canonicalizes user-supplied identity strings.

It guarantees that the same logical value (an email address typed with stray
whitespace, a name pasted with decomposed accents) always maps to a single
stored representation.

# Why normalization matters here

Email uniqueness is enforced at the database, but the constraint is only
meaningful if every code path writes the same canonical form. Centralizing
the rules in one package keeps registration, login, and password recovery
from drifting apart.
*/
package normalize

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// # Identity Fields

// Email canonicalizes an email address: trimmed and lowercased.
//
// The local part of an address is technically case-sensitive per RFC 5321,
// but no mainstream provider honors that, and the original system treats
// addresses case-insensitively.
func Email(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Name canonicalizes a human name: collapses internal whitespace, trims,
// and applies Unicode NFC composition so "é" is always stored as a single
// code point regardless of how the client encoded it.
func Name(raw string) string {
	collapsed := strings.Join(strings.Fields(raw), " ")
	return norm.NFC.String(collapsed)
}

// FullName derives a display name from first and last name components.
//
// The last name is optional; when absent the display name is just the
// normalized first name.
func FullName(firstName, lastName string) string {
	full := strings.TrimSpace(firstName)
	if trimmedLast := strings.TrimSpace(lastName); trimmedLast != "" {
		full = full + " " + trimmedLast
	}
	return Name(full)
}
