// Copyright (c) 2026 Kinora. All rights reserved.
// Author: platform@kinora.app

package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinora/kinora/internal/platform/apperr"
)

func TestValidator_AllPass(t *testing.T) {
	v := &Validator{}
	err := v.
		Required("email", "jane@example.com").
		Email("email", "jane@example.com").
		MinLen("password", "hunter22", 6).
		Range("age", 30, 0, 150).
		Err()

	assert.NoError(t, err)
	assert.False(t, v.HasErrors())
}

func TestValidator_CollectsAllFailures(t *testing.T) {
	v := &Validator{}
	err := v.
		Required("email", "  ").
		Required("password", "").
		Err()

	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
	assert.Len(t, appError.Details, 2)
	assert.Equal(t, "email", appError.Details[0].Field)
	assert.Equal(t, "password", appError.Details[1].Field)
}

func TestValidator_Email(t *testing.T) {
	testCases := []struct {
		value string
		valid bool
	}{
		{"jane@example.com", true},
		{"jane+tag@example.co.uk", true},
		{"not-an-email", false},
		{"@example.com", false},
		{"jane@", false},
	}

	for _, tc := range testCases {
		v := &Validator{}
		err := v.Email("email", tc.value).Err()
		if tc.valid {
			assert.NoError(t, err, "value %q", tc.value)
		} else {
			assert.Error(t, err, "value %q", tc.value)
		}
	}
}

func TestValidator_MinMaxLen(t *testing.T) {
	v := &Validator{}
	assert.Error(t, v.MinLen("password", "short", 6).Err())

	v = &Validator{}
	assert.NoError(t, v.MinLen("password", "longenough", 6).Err())

	// Rune count, not byte count: multibyte characters count once.
	v = &Validator{}
	assert.NoError(t, v.MaxLen("name", "Renée", 5).Err())
}

func TestValidator_Range(t *testing.T) {
	v := &Validator{}
	assert.Error(t, v.Range("age", -1, 0, 150).Err())

	v = &Validator{}
	assert.Error(t, v.Range("age", 151, 0, 150).Err())

	v = &Validator{}
	assert.NoError(t, v.Range("age", 0, 0, 150).Err())
}

func TestValidator_UUID(t *testing.T) {
	v := &Validator{}
	assert.NoError(t, v.UUID("id", "0190a2f0-1111-7abc-8def-0123456789ab").Err())

	v = &Validator{}
	assert.Error(t, v.UUID("id", "not-a-uuid").Err())
}

func TestRequiredError(t *testing.T) {
	err := RequiredError("authorization", "Missing bearer token")

	assert.Equal(t, 400, err.HTTPStatus)
	require.Len(t, err.Details, 1)
	assert.Equal(t, "authorization", err.Details[0].Field)
}
