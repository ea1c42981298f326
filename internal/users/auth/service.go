// Copyright (c) 2026 Kinora. All rights reserved.
// Author: platform@kinora.app

package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/kinora/kinora/internal/platform/apperr"
	"github.com/kinora/kinora/internal/platform/sec"
	"github.com/kinora/kinora/pkg/normalize"
)

// TokenIssuer mints signed bearer tokens for authenticated users.
// Implemented by [sec.TokenService].
type TokenIssuer interface {
	IssueToken(userID, email string) (string, error)
}

// Service implements the account and session lifecycle use cases.
type Service struct {
	userRepository     UserRepository
	revocationRegistry RevocationRegistry
	tokenIssuer        TokenIssuer

	// now is injectable for tests.
	now func() time.Time
}

// NewService constructs an auth [Service].
func NewService(userRepository UserRepository, revocationRegistry RevocationRegistry, tokenIssuer TokenIssuer) *Service {
	return &Service{
		userRepository:     userRepository,
		revocationRegistry: revocationRegistry,
		tokenIssuer:        tokenIssuer,
		now:                time.Now,
	}
}

// RegisterInput carries the validated registration payload.
type RegisterInput struct {
	FirstName string
	LastName  string
	Age       *int
	Email     string
	Password  string
}

// Credentials is the successful outcome of registration or login: a signed
// bearer token plus the public view of the account it belongs to.
type Credentials struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// Register creates a new account and signs the user in.
//
// # Flow
//  1. Canonicalize the email (trim + lowercase).
//  2. Fast-path duplicate check by email. The unique index on the column
//     remains the authoritative guard against races.
//  3. Hash the password (bcrypt) and persist the account.
//  4. Issue a bearer token so the client lands authenticated.
//
// # Errors
//   - 409 Conflict when the email is already registered.
func (service *Service) Register(ctx context.Context, input RegisterInput) (*Credentials, error) {
	email := normalize.Email(input.Email)

	// 1. Duplicate Check
	if _, err := service.userRepository.FindByEmail(ctx, email); err == nil {
		return nil, apperr.Conflict(conflictEmailInUse)
	} else if appError := apperr.As(err); appError == nil || appError.HTTPStatus != http.StatusNotFound {
		return nil, err
	}

	// 2. Credential Hashing
	passwordHash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	// 3. Account Creation
	currentTime := service.now().UTC()
	firstName := normalize.Name(input.FirstName)
	lastName := normalize.Name(input.LastName)

	user := &User{
		ID:           uuid.Must(uuid.NewV7()).String(),
		Email:        email,
		PasswordHash: passwordHash,
		Name:         normalize.FullName(firstName, lastName),
		FirstName:    firstName,
		LastName:     lastName,
		Age:          input.Age,
		Role:         sec.RoleUser,
		IsActive:     true,
		CreatedAt:    currentTime,
		UpdatedAt:    currentTime,
	}

	if err := service.userRepository.Create(ctx, user); err != nil {
		return nil, err
	}

	// 4. Session Issuance
	token, err := service.tokenIssuer.IssueToken(user.ID, user.Email)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return &Credentials{Token: token, User: user}, nil
}

// Login verifies credentials and issues a bearer token.
//
// # Enumeration Resistance
//
// Unknown email, wrong password and deactivated account all collapse into
// the same 401 "Invalid credentials" response, so the endpoint cannot be
// used to probe which addresses hold accounts.
func (service *Service) Login(ctx context.Context, email, password string) (*Credentials, error) {
	user, err := service.userRepository.FindByEmail(ctx, normalize.Email(email))
	if err != nil {
		if appError := apperr.As(err); appError != nil && appError.HTTPStatus == http.StatusNotFound {
			return nil, apperr.InvalidCredentials()
		}
		return nil, err
	}

	if !sec.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperr.InvalidCredentials()
	}

	if !user.IsActive {
		return nil, apperr.InvalidCredentials()
	}

	token, err := service.tokenIssuer.IssueToken(user.ID, user.Email)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return &Credentials{Token: token, User: user}, nil
}

// Logout revokes the presented bearer token.
//
// Revocation is unconditional: even a token that no longer verifies (already
// expired, wrong signature) is blacklisted, which keeps logout idempotent
// and free of information leaks about token validity.
func (service *Service) Logout(ctx context.Context, token string) error {
	if err := service.revocationRegistry.Revoke(ctx, token); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// demoEmail is the fixed identity used by the demo-login flow.
const demoEmail = "demo@kinora.app"

// DemoLogin signs in a shared demonstration account, creating it on first
// use. Only reachable when the deployment explicitly enables the route.
func (service *Service) DemoLogin(ctx context.Context) (*Credentials, error) {
	user, err := service.userRepository.FindByEmail(ctx, demoEmail)
	if err != nil {
		appError := apperr.As(err)
		if appError == nil || appError.HTTPStatus != http.StatusNotFound {
			return nil, err
		}

		// First use: provision the demo account with an unguessable password.
		// Nobody logs into it with credentials; access is only through this
		// endpoint.
		randomSecret, secretErr := sec.GenerateSecureToken(ResetTokenLength)
		if secretErr != nil {
			return nil, apperr.Internal(secretErr)
		}
		passwordHash, hashErr := sec.HashPassword(randomSecret)
		if hashErr != nil {
			return nil, apperr.Internal(hashErr)
		}

		currentTime := service.now().UTC()
		user = &User{
			ID:           uuid.Must(uuid.NewV7()).String(),
			Email:        demoEmail,
			PasswordHash: passwordHash,
			Name:         "Demo User",
			FirstName:    "Demo",
			LastName:     "User",
			Role:         sec.RoleUser,
			IsActive:     true,
			CreatedAt:    currentTime,
			UpdatedAt:    currentTime,
		}
		if err := service.userRepository.Create(ctx, user); err != nil {
			return nil, err
		}
	}

	token, err := service.tokenIssuer.IssueToken(user.ID, user.Email)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return &Credentials{Token: token, User: user}, nil
}
