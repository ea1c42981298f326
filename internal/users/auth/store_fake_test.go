// Copyright (c) 2026 Kinora. All rights reserved.
// Author: platform@kinora.app

package auth

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/kinora/kinora/internal/platform/apperr"
)

// fakeUserRepository is an in-memory [UserRepository] for service and
// transport tests.
type fakeUserRepository struct {
	mu    sync.Mutex
	users map[string]*User

	// failWith, when set, is returned by every method. Used to exercise
	// storage failure paths.
	failWith error
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[string]*User)}
}

func cloneUser(user *User) *User {
	clone := *user
	if user.Age != nil {
		age := *user.Age
		clone.Age = &age
	}
	if user.ResetExpires != nil {
		expires := *user.ResetExpires
		clone.ResetExpires = &expires
	}
	return &clone
}

func (repo *fakeUserRepository) FindByID(_ context.Context, id string) (*User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if repo.failWith != nil {
		return nil, repo.failWith
	}
	user, found := repo.users[id]
	if !found {
		return nil, apperr.NotFound("User")
	}
	return cloneUser(user), nil
}

func (repo *fakeUserRepository) FindByEmail(_ context.Context, email string) (*User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if repo.failWith != nil {
		return nil, repo.failWith
	}
	for _, user := range repo.users {
		if strings.EqualFold(user.Email, email) {
			return cloneUser(user), nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeUserRepository) FindByResetToken(_ context.Context, token string) (*User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if repo.failWith != nil {
		return nil, repo.failWith
	}
	for _, user := range repo.users {
		if user.ResetToken != "" && user.ResetToken == token {
			return cloneUser(user), nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeUserRepository) Create(_ context.Context, user *User) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if repo.failWith != nil {
		return repo.failWith
	}
	for _, existing := range repo.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return apperr.Conflict("Email already in use")
		}
	}
	repo.users[user.ID] = cloneUser(user)
	return nil
}

func (repo *fakeUserRepository) Update(_ context.Context, user *User) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if repo.failWith != nil {
		return repo.failWith
	}
	existing, found := repo.users[user.ID]
	if !found {
		return apperr.NotFound("User")
	}
	updated := cloneUser(user)
	// Profile updates never touch credential or reset state.
	updated.PasswordHash = existing.PasswordHash
	updated.ResetToken = existing.ResetToken
	updated.ResetExpires = existing.ResetExpires
	repo.users[user.ID] = updated
	return nil
}

func (repo *fakeUserRepository) UpdatePassword(_ context.Context, userID, passwordHash string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if repo.failWith != nil {
		return repo.failWith
	}
	user, found := repo.users[userID]
	if !found {
		return apperr.NotFound("User")
	}
	user.PasswordHash = passwordHash
	user.ResetToken = ""
	user.ResetExpires = nil
	return nil
}

func (repo *fakeUserRepository) SetResetToken(_ context.Context, userID, token string, expires time.Time) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if repo.failWith != nil {
		return repo.failWith
	}
	user, found := repo.users[userID]
	if !found {
		return apperr.NotFound("User")
	}
	user.ResetToken = token
	user.ResetExpires = &expires
	return nil
}

func (repo *fakeUserRepository) ClearResetToken(_ context.Context, userID string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if repo.failWith != nil {
		return repo.failWith
	}
	user, found := repo.users[userID]
	if !found {
		return apperr.NotFound("User")
	}
	user.ResetToken = ""
	user.ResetExpires = nil
	return nil
}

func (repo *fakeUserRepository) Delete(_ context.Context, id string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if repo.failWith != nil {
		return repo.failWith
	}
	if _, found := repo.users[id]; !found {
		return apperr.NotFound("User")
	}
	delete(repo.users, id)
	return nil
}
