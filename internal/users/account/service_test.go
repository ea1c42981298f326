// Copyright (c) 2026 Kinora. All rights reserved.
// Author: platform@kinora.app

package account

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinora/kinora/internal/platform/apperr"
	"github.com/kinora/kinora/internal/platform/sec"
	"github.com/kinora/kinora/internal/users/auth"
)

// fakeRepository is a minimal in-memory [auth.UserRepository] covering the
// methods the account flows touch.
type fakeRepository struct {
	users map[string]*auth.User
}

func newFakeRepository(users ...*auth.User) *fakeRepository {
	repo := &fakeRepository{users: make(map[string]*auth.User)}
	for _, user := range users {
		repo.users[user.ID] = user
	}
	return repo
}

func (repo *fakeRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	if user, found := repo.users[id]; found {
		clone := *user
		return &clone, nil
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, user := range repo.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeRepository) FindByResetToken(_ context.Context, token string) (*auth.User, error) {
	for _, user := range repo.users {
		if user.ResetToken != "" && user.ResetToken == token {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeRepository) Create(_ context.Context, user *auth.User) error {
	repo.users[user.ID] = user
	return nil
}

func (repo *fakeRepository) Update(_ context.Context, user *auth.User) error {
	if _, found := repo.users[user.ID]; !found {
		return apperr.NotFound("User")
	}
	clone := *user
	repo.users[user.ID] = &clone
	return nil
}

func (repo *fakeRepository) UpdatePassword(_ context.Context, userID, passwordHash string) error {
	user, found := repo.users[userID]
	if !found {
		return apperr.NotFound("User")
	}
	user.PasswordHash = passwordHash
	user.ResetToken = ""
	user.ResetExpires = nil
	return nil
}

func (repo *fakeRepository) SetResetToken(_ context.Context, userID, token string, expires time.Time) error {
	user, found := repo.users[userID]
	if !found {
		return apperr.NotFound("User")
	}
	user.ResetToken = token
	user.ResetExpires = &expires
	return nil
}

func (repo *fakeRepository) ClearResetToken(_ context.Context, userID string) error {
	user, found := repo.users[userID]
	if !found {
		return apperr.NotFound("User")
	}
	user.ResetToken = ""
	user.ResetExpires = nil
	return nil
}

func (repo *fakeRepository) Delete(_ context.Context, id string) error {
	if _, found := repo.users[id]; !found {
		return apperr.NotFound("User")
	}
	delete(repo.users, id)
	return nil
}

func seededUser(t *testing.T) *auth.User {
	t.Helper()
	hash, err := sec.HashPassword("hunter22")
	require.NoError(t, err)
	return &auth.User{
		ID:           "user-123",
		Email:        "jane@example.com",
		PasswordHash: hash,
		Name:         "Jane Doe",
		FirstName:    "Jane",
		LastName:     "Doe",
		Role:         sec.RoleUser,
		IsActive:     true,
	}
}

func stringPtr(value string) *string { return &value }

func TestUpdateProfile_RecomputesDisplayName(t *testing.T) {
	repo := newFakeRepository(seededUser(t))
	service := NewService(repo)

	updated, err := service.UpdateProfile(context.Background(), "user-123", UpdateProfileInput{
		LastName: stringPtr("van  Dyke"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Jane", updated.FirstName)
	assert.Equal(t, "van Dyke", updated.LastName, "whitespace must be collapsed")
	assert.Equal(t, "Jane van Dyke", updated.Name)

	// Absent fields stay untouched.
	assert.Equal(t, "jane@example.com", updated.Email)
}

func TestUpdateProfile_ClearsAvatarOnEmptyString(t *testing.T) {
	user := seededUser(t)
	user.AvatarURL = "https://cdn.kinora.app/avatars/jane.png"
	repo := newFakeRepository(user)
	service := NewService(repo)

	updated, err := service.UpdateProfile(context.Background(), "user-123", UpdateProfileInput{
		AvatarURL: stringPtr(""),
	})
	require.NoError(t, err)
	assert.Empty(t, updated.AvatarURL)
}

func TestChangePassword(t *testing.T) {
	repo := newFakeRepository(seededUser(t))
	service := NewService(repo)
	ctx := context.Background()

	// Wrong current password: 401, stored hash untouched.
	err := service.ChangePassword(ctx, "user-123", "wrong", "new-password")
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, http.StatusUnauthorized, appError.HTTPStatus)
	assert.Equal(t, "Current password is incorrect", appError.Message)
	assert.True(t, sec.CheckPasswordHash("hunter22", repo.users["user-123"].PasswordHash))

	// Correct current password: hash replaced and verifiable.
	require.NoError(t, service.ChangePassword(ctx, "user-123", "hunter22", "new-password"))
	assert.True(t, sec.CheckPasswordHash("new-password", repo.users["user-123"].PasswordHash))
	assert.False(t, sec.CheckPasswordHash("hunter22", repo.users["user-123"].PasswordHash))
}

func TestDelete(t *testing.T) {
	repo := newFakeRepository(seededUser(t))
	service := NewService(repo)
	ctx := context.Background()

	require.NoError(t, service.Delete(ctx, "user-123"))
	assert.Empty(t, repo.users)

	err := service.Delete(ctx, "user-123")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.As(err).HTTPStatus)
}
