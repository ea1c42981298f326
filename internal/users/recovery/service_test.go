// Copyright (c) 2026 Kinora. All rights reserved.
// Author: platform@kinora.app

package recovery

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinora/kinora/internal/platform/apperr"
	"github.com/kinora/kinora/internal/platform/sec"
	"github.com/kinora/kinora/internal/users/auth"
)

// fakeRepository is a minimal in-memory [auth.UserRepository] covering the
// methods the recovery flow touches.
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
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, user := range repo.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeRepository) FindByResetToken(_ context.Context, token string) (*auth.User, error) {
	for _, user := range repo.users {
		if user.ResetToken != "" && user.ResetToken == token {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeRepository) Create(_ context.Context, user *auth.User) error {
	repo.users[user.ID] = user
	return nil
}

func (repo *fakeRepository) Update(_ context.Context, user *auth.User) error {
	repo.users[user.ID] = user
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
	delete(repo.users, id)
	return nil
}

// fakeSender records sent mail and can be told to fail.
type fakeSender struct {
	to      []string
	bodies  []string
	failErr error
}

func (sender *fakeSender) Send(_ context.Context, to, _, htmlBody string) error {
	if sender.failErr != nil {
		return sender.failErr
	}
	sender.to = append(sender.to, to)
	sender.bodies = append(sender.bodies, htmlBody)
	return nil
}

func newTestService(repo *fakeRepository, sender *fakeSender, cfg Config) *Service {
	if cfg.FrontendURL == "" {
		cfg.FrontendURL = "https://kinora.app"
	}
	service := NewService(repo, sender, cfg)
	service.sleep = func(time.Duration) {}
	return service
}

func existingUser() *auth.User {
	return &auth.User{
		ID:       "user-123",
		Email:    "jane@example.com",
		Name:     "Jane Doe",
		IsActive: true,
	}
}

func TestForgotPassword_IssuesTokenAndEmailsLink(t *testing.T) {
	user := existingUser()
	repo := newFakeRepository(user)
	sender := &fakeSender{}
	service := newTestService(repo, sender, Config{})

	require.NoError(t, service.ForgotPassword(context.Background(), " Jane@Example.COM "))

	// Token stored with a one-hour expiry.
	assert.NotEmpty(t, user.ResetToken)
	require.NotNil(t, user.ResetExpires)
	assert.WithinDuration(t, time.Now().Add(auth.ResetTokenTTL), *user.ResetExpires, 5*time.Second)

	// Email delivered to the account holder and carrying the reset link.
	require.Len(t, sender.to, 1)
	assert.Equal(t, "jane@example.com", sender.to[0])
	assert.Contains(t, sender.bodies[0], "https://kinora.app/reset-password/"+user.ResetToken)
}

func TestForgotPassword_UnknownEmailIsSilent(t *testing.T) {
	repo := newFakeRepository()
	sender := &fakeSender{}

	slept := false
	service := newTestService(repo, sender, Config{})
	service.sleep = func(time.Duration) { slept = true }

	err := service.ForgotPassword(context.Background(), "nobody@example.com")
	assert.NoError(t, err, "unknown addresses must look exactly like known ones")
	assert.Empty(t, sender.to)
	assert.True(t, slept, "the not-found path must be padded to mask timing")
}

func TestForgotPassword_RevealModeReturns404(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo, &fakeSender{}, Config{RevealUserExistence: true})

	err := service.ForgotPassword(context.Background(), "nobody@example.com")
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, http.StatusNotFound, appError.HTTPStatus)
}

func TestForgotPassword_DeliveryFailureIsSwallowed(t *testing.T) {
	user := existingUser()
	repo := newFakeRepository(user)
	sender := &fakeSender{failErr: assert.AnError}
	service := newTestService(repo, sender, Config{})

	// The endpoint must not reveal that delivery failed: a failure response
	// would only occur for addresses that actually hold accounts.
	err := service.ForgotPassword(context.Background(), "jane@example.com")
	assert.NoError(t, err)
	assert.NotEmpty(t, user.ResetToken, "the token is still issued")
}

func TestForgotPassword_OverrideRecipient(t *testing.T) {
	user := existingUser()
	repo := newFakeRepository(user)
	sender := &fakeSender{}
	service := newTestService(repo, sender, Config{OverrideRecipient: "qa@kinora.app"})

	require.NoError(t, service.ForgotPassword(context.Background(), "jane@example.com"))
	require.Len(t, sender.to, 1)
	assert.Equal(t, "qa@kinora.app", sender.to[0])
}

func TestForgotPassword_ReissueOverwritesPreviousToken(t *testing.T) {
	user := existingUser()
	repo := newFakeRepository(user)
	service := newTestService(repo, &fakeSender{}, Config{})
	ctx := context.Background()

	require.NoError(t, service.ForgotPassword(ctx, "jane@example.com"))
	firstToken := user.ResetToken

	require.NoError(t, service.ForgotPassword(ctx, "jane@example.com"))
	assert.NotEqual(t, firstToken, user.ResetToken)

	// The superseded link is dead.
	err := service.ResetPassword(ctx, firstToken, "newpassword")
	require.Error(t, err)
	assert.Equal(t, "INVALID_RESET_TOKEN", apperr.As(err).Code)
}

func TestResetPassword_HappyPathAndSingleUse(t *testing.T) {
	user := existingUser()
	repo := newFakeRepository(user)
	service := newTestService(repo, &fakeSender{}, Config{})
	ctx := context.Background()

	require.NoError(t, service.ForgotPassword(ctx, "jane@example.com"))
	token := user.ResetToken

	require.NoError(t, service.ResetPassword(ctx, token, "brand-new-password"))

	// The new password is verifiable and the token is spent.
	assert.True(t, sec.CheckPasswordHash("brand-new-password", user.PasswordHash))
	assert.Empty(t, user.ResetToken)
	assert.Nil(t, user.ResetExpires)

	err := service.ResetPassword(ctx, token, "another-password")
	require.Error(t, err)
	assert.Equal(t, "INVALID_RESET_TOKEN", apperr.As(err).Code)
}

func TestResetPassword_RejectsUnknownAndExpiredIdentically(t *testing.T) {
	user := existingUser()
	repo := newFakeRepository(user)
	service := newTestService(repo, &fakeSender{}, Config{})
	ctx := context.Background()

	require.NoError(t, service.ForgotPassword(ctx, "jane@example.com"))

	// Jump the clock past the expiry.
	service.now = func() time.Time { return time.Now().Add(auth.ResetTokenTTL + time.Minute) }

	expiredErr := service.ResetPassword(ctx, user.ResetToken, "newpassword")
	unknownErr := service.ResetPassword(ctx, strings.Repeat("f", 64), "newpassword")

	for _, err := range []error{expiredErr, unknownErr} {
		require.Error(t, err)
		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, http.StatusBadRequest, appError.HTTPStatus)
		assert.Equal(t, "Invalid or expired token", appError.Message)
	}
}
