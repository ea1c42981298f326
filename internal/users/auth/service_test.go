// Copyright (c) 2026 Kinora. All rights reserved.
// Author: platform@kinora.app

package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinora/kinora/internal/platform/apperr"
	"github.com/kinora/kinora/internal/platform/sec"
)

func newTestService(repo UserRepository) (*Service, *MemoryRevocationRegistry) {
	registry := NewMemoryRevocationRegistry(time.Hour)
	issuer := sec.NewTokenService("unit-test-secret", "kinora.app", time.Hour)
	return NewService(repo, registry, issuer), registry
}

func TestService_Register(t *testing.T) {
	repo := newFakeUserRepository()
	service, _ := newTestService(repo)

	age := 34
	credentials, err := service.Register(context.Background(), RegisterInput{
		FirstName: "Jane",
		LastName:  "Doe",
		Age:       &age,
		Email:     "  Jane@Example.COM ",
		Password:  "hunter22",
	})
	require.NoError(t, err)
	require.NotNil(t, credentials.User)

	user := credentials.User
	assert.NotEmpty(t, credentials.Token)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "jane@example.com", user.Email, "email must be stored canonically")
	assert.Equal(t, "Jane Doe", user.Name)
	assert.Equal(t, sec.RoleUser, user.Role)
	assert.True(t, user.IsActive)

	// The password must be stored hashed, and verifiably so.
	assert.NotEqual(t, "hunter22", user.PasswordHash)
	assert.True(t, sec.CheckPasswordHash("hunter22", user.PasswordHash))
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	repo := newFakeUserRepository()
	service, _ := newTestService(repo)

	input := RegisterInput{FirstName: "Jane", Email: "jane@example.com", Password: "hunter22"}
	_, err := service.Register(context.Background(), input)
	require.NoError(t, err)

	// Same address with different casing must still collide.
	input.Email = "JANE@example.com"
	_, err = service.Register(context.Background(), input)
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, http.StatusConflict, appError.HTTPStatus)
}

func TestService_Register_CredentialsNeverSerialized(t *testing.T) {
	repo := newFakeUserRepository()
	service, _ := newTestService(repo)

	credentials, err := service.Register(context.Background(), RegisterInput{
		FirstName: "Jane", Email: "jane@example.com", Password: "hunter22",
	})
	require.NoError(t, err)

	payload, err := json.Marshal(credentials)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(payload, &decoded))

	user, ok := decoded["user"].(map[string]any)
	require.True(t, ok)
	assert.NotContains(t, user, "passwordHash")
	assert.NotContains(t, user, "PasswordHash")
	assert.NotContains(t, user, "resetToken")
	assert.NotContains(t, user, "resetExpires")
}

func TestService_Login(t *testing.T) {
	repo := newFakeUserRepository()
	service, _ := newTestService(repo)

	_, err := service.Register(context.Background(), RegisterInput{
		FirstName: "Jane", Email: "jane@example.com", Password: "hunter22",
	})
	require.NoError(t, err)

	credentials, err := service.Login(context.Background(), "Jane@Example.com", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, credentials.Token)
	assert.Equal(t, "jane@example.com", credentials.User.Email)
}

func TestService_Login_FailuresAreIndistinguishable(t *testing.T) {
	repo := newFakeUserRepository()
	service, _ := newTestService(repo)

	_, err := service.Register(context.Background(), RegisterInput{
		FirstName: "Jane", Email: "jane@example.com", Password: "hunter22",
	})
	require.NoError(t, err)

	// Deactivate a second account to cover the inactive path.
	inactive, err := service.Register(context.Background(), RegisterInput{
		FirstName: "Bob", Email: "bob@example.com", Password: "hunter22",
	})
	require.NoError(t, err)
	stored := repo.users[inactive.User.ID]
	stored.IsActive = false

	testCases := []struct {
		name     string
		email    string
		password string
	}{
		{name: "unknown email", email: "nobody@example.com", password: "hunter22"},
		{name: "wrong password", email: "jane@example.com", password: "wrong"},
		{name: "deactivated account", email: "bob@example.com", password: "hunter22"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.Login(context.Background(), tc.email, tc.password)
			require.Error(t, err)

			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, http.StatusUnauthorized, appError.HTTPStatus)
			assert.Equal(t, "INVALID_CREDENTIALS", appError.Code)
			assert.Equal(t, "Invalid credentials", appError.Message)
		})
	}
}

func TestService_Logout(t *testing.T) {
	repo := newFakeUserRepository()
	service, registry := newTestService(repo)
	ctx := context.Background()

	credentials, err := service.Register(ctx, RegisterInput{
		FirstName: "Jane", Email: "jane@example.com", Password: "hunter22",
	})
	require.NoError(t, err)

	assert.False(t, registry.IsRevoked(ctx, credentials.Token))
	require.NoError(t, service.Logout(ctx, credentials.Token))
	assert.True(t, registry.IsRevoked(ctx, credentials.Token))

	// Logout is idempotent, and even garbage tokens are accepted.
	require.NoError(t, service.Logout(ctx, credentials.Token))
	require.NoError(t, service.Logout(ctx, "never-issued-token"))
	assert.True(t, registry.IsRevoked(ctx, "never-issued-token"))
}

func TestService_DemoLogin(t *testing.T) {
	repo := newFakeUserRepository()
	service, _ := newTestService(repo)
	ctx := context.Background()

	first, err := service.DemoLogin(ctx)
	require.NoError(t, err)
	assert.Equal(t, demoEmail, first.User.Email)
	assert.NotEmpty(t, first.Token)

	// Second call reuses the provisioned account.
	second, err := service.DemoLogin(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, second.User.ID)
	assert.Len(t, repo.users, 1)
}
