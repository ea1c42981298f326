// Copyright (c) 2026 Kinora. All rights reserved.
// Author: platform@kinora.app

package account

import (
	"context"

	"github.com/kinora/kinora/internal/platform/apperr"
	"github.com/kinora/kinora/internal/platform/sec"
	"github.com/kinora/kinora/internal/users/auth"
	"github.com/kinora/kinora/pkg/normalize"
)

// Service implements the profile management use cases.
type Service struct {
	userRepository auth.UserRepository
}

// NewService constructs an account [Service].
func NewService(userRepository auth.UserRepository) *Service {
	return &Service{userRepository: userRepository}
}

// Profile loads the account of the given user.
func (service *Service) Profile(ctx context.Context, userID string) (*auth.User, error) {
	return service.userRepository.FindByID(ctx, userID)
}

// UpdateProfile applies a partial profile update.
//
// The display Name is always recomputed from the (possibly updated) name
// parts, so there is exactly one derivation path for it in the codebase.
func (service *Service) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*auth.User, error) {
	user, err := service.userRepository.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		user.FirstName = normalize.Name(*input.FirstName)
	}
	if input.LastName != nil {
		user.LastName = normalize.Name(*input.LastName)
	}
	if input.Age != nil {
		user.Age = input.Age
	}
	if input.AvatarURL != nil {
		user.AvatarURL = *input.AvatarURL
	}

	user.Name = normalize.FullName(user.FirstName, user.LastName)

	if err := service.userRepository.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// ChangePassword replaces the user's password after verifying the current one.
//
// # Errors
//   - 401 Unauthorized when the current password does not match.
func (service *Service) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := service.userRepository.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if !sec.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	passwordHash, err := sec.HashPassword(newPassword)
	if err != nil {
		return apperr.Internal(err)
	}

	return service.userRepository.UpdatePassword(ctx, userID, passwordHash)
}

// Delete removes an account entirely.
func (service *Service) Delete(ctx context.Context, userID string) error {
	return service.userRepository.Delete(ctx, userID)
}
