// Copyright (c) 2026 Kinora. All rights reserved.
// Author: platform@kinora.app

/*
Package recovery implements the time-boxed, single-use password reset flow.

# Flow

 1. forgot-password: generate an opaque token, store it on the account with a
    one-hour expiry, and email a reset link.
 2. reset-password/{token}: consume the token, re-hash the new password, and
    clear the token so the link cannot be replayed.

# Enumeration Resistance

By default the forgot-password endpoint answers identically whether or not
the address has an account, and pads the not-found path with an artificial
delay so response timing does not betray account existence. Deployments can
opt out of this and return 404 for unknown addresses.
*/
package recovery

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/kinora/kinora/internal/platform/apperr"
	"github.com/kinora/kinora/internal/platform/ctxutil"
	"github.com/kinora/kinora/internal/platform/sec"
	"github.com/kinora/kinora/internal/users/auth"
	"github.com/kinora/kinora/pkg/normalize"
)

// Config carries the deployment-level knobs of the recovery flow.
type Config struct {
	// FrontendURL is the base URL the reset link points at.
	FrontendURL string

	// RevealUserExistence switches forgot-password from the generic
	// always-200 response to an explicit 404 for unknown addresses.
	RevealUserExistence bool

	// OverrideRecipient, when set, redirects every reset email to this
	// address. Used in staging so real users never receive test mail.
	OverrideRecipient string

	// EnumerationDelay pads the unknown-address path of forgot-password.
	EnumerationDelay time.Duration
}

// Service implements the password recovery use cases.
type Service struct {
	userRepository auth.UserRepository
	sender         mailSender
	config         Config

	// now and sleep are injectable for tests.
	now   func() time.Time
	sleep func(time.Duration)
}

// mailSender mirrors mail.Sender locally so tests can fake delivery without
// touching the mail package.
type mailSender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// NewService constructs a recovery [Service].
func NewService(userRepository auth.UserRepository, sender mailSender, config Config) *Service {
	if config.EnumerationDelay == 0 {
		config.EnumerationDelay = auth.EnumerationDelay
	}
	return &Service{
		userRepository: userRepository,
		sender:         sender,
		config:         config,
		now:            time.Now,
		sleep:          time.Sleep,
	}
}

// ForgotPassword starts the reset flow for the given address.
//
// # Flow
//  1. Canonicalize the email and look up the account.
//  2. Unknown address: either pretend success (default) or 404 (opt-in).
//  3. Generate a 32-byte opaque token, store it with a one-hour expiry.
//     Issuing a new token overwrites any previous one.
//  4. Email the reset link. Delivery failures are logged and swallowed:
//     surfacing them would leak account existence through the error path.
func (service *Service) ForgotPassword(ctx context.Context, email string) error {
	canonical := normalize.Email(email)

	user, err := service.userRepository.FindByEmail(ctx, canonical)
	if err != nil {
		appError := apperr.As(err)
		if appError == nil || appError.HTTPStatus != http.StatusNotFound {
			return err
		}

		if service.config.RevealUserExistence {
			return apperr.NotFound("User")
		}

		// Pad the fast path so timing matches a real dispatch.
		service.sleep(service.config.EnumerationDelay)
		return nil
	}

	token, err := sec.GenerateSecureToken(auth.ResetTokenLength)
	if err != nil {
		return apperr.Internal(err)
	}

	expires := service.now().UTC().Add(auth.ResetTokenTTL)
	if err := service.userRepository.SetResetToken(ctx, user.ID, token, expires); err != nil {
		return err
	}

	recipient := user.Email
	if service.config.OverrideRecipient != "" {
		recipient = service.config.OverrideRecipient
	}

	resetURL := strings.TrimRight(service.config.FrontendURL, "/") + "/reset-password/" + token
	if err := service.sender.Send(ctx, recipient, "Reset your Kinora password", resetEmailBody(user.Name, resetURL)); err != nil {
		logger := ctxutil.GetLogger(ctx)
		logger.ErrorContext(ctx, "reset_email_delivery_failed",
			"user_id", user.ID,
			"error", err.Error(),
		)
	}

	return nil
}

// ResetPassword consumes a reset token and installs a new password.
//
// # Errors
//
// Unknown, expired and already-consumed tokens all collapse into the same
// 400 "Invalid or expired token" response.
func (service *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	user, err := service.userRepository.FindByResetToken(ctx, token)
	if err != nil {
		appError := apperr.As(err)
		if appError != nil && appError.HTTPStatus == http.StatusNotFound {
			return apperr.InvalidOrExpiredToken()
		}
		return err
	}

	// The expiry must be strictly in the future.
	if user.ResetExpires == nil || !user.ResetExpires.After(service.now()) {
		return apperr.InvalidOrExpiredToken()
	}

	passwordHash, err := sec.HashPassword(newPassword)
	if err != nil {
		return apperr.Internal(err)
	}

	// UpdatePassword clears the token in the same statement, so the link is
	// spent the instant the new hash lands.
	return service.userRepository.UpdatePassword(ctx, user.ID, passwordHash)
}

func resetEmailBody(name, resetURL string) string {
	return fmt.Sprintf(`<p>Hi %s,</p>
<p>We received a request to reset the password of your Kinora account.
Click the link below within the next hour to choose a new password:</p>
<p><a href="%s">%s</a></p>
<p>If you did not request this, you can safely ignore this email.</p>`,
		name, resetURL, resetURL)
}
