// Copyright (c) 2026 Kinora. All rights reserved.
// Author: platform@kinora.app

package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/kinora/kinora/internal/platform/apperr"
	"github.com/kinora/kinora/internal/platform/ctxutil"
	requestutil "github.com/kinora/kinora/internal/platform/request"
	"github.com/kinora/kinora/internal/platform/respond"
	"github.com/kinora/kinora/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify bearer tokens.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from the concrete
// [sec.TokenService], allowing us to easily inject fakes during unit testing.
type TokenVerifier interface {
	VerifyToken(tokenString string) (*sec.AuthClaims, error)
}

// RevocationChecker reports whether a bearer token has been explicitly
// revoked (logout). Implemented by the session revocation registry.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, token string) bool
}

// RoleResolver loads the current role of a user from durable storage.
//
// RequireAdmin cannot trust the role baked into a token: an account may have
// been demoted or deleted after the token was issued.
type RoleResolver interface {
	ResolveRole(ctx context.Context, userID string) (sec.UserRole, error)
}

// Authenticate extracts and verifies the bearer token from the Authorization header.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header.
//  2. If absent, request proceeds as anonymous (protected routes are gated
//     by [RequireAuth] / [RequireAdmin]).
//  3. Reject if the token was revoked. This check runs BEFORE signature
//     verification: a logged-out token must fail even though it would still
//     verify cleanly.
//  4. Parse and verify the token via [TokenVerifier].
//  5. Inject [*sec.AuthClaims] into the request context for downstream use.
func Authenticate(verifier TokenVerifier, revocations RevocationChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// 1. Anonymous Access
			token, ok := requestutil.BearerToken(request)
			if !ok {
				next.ServeHTTP(writer, request)
				return
			}

			// 2. Revocation Check
			if revocations.IsRevoked(request.Context(), token) {
				respond.Error(writer, request, apperr.Unauthorized("Session has been revoked"))
				return
			}

			// 3. Token Verification
			claims, err := verifier.VerifyToken(token)
			if err != nil {
				message := "Invalid token"
				if errors.Is(err, sec.ErrTokenExpired) {
					message = "Token has expired"
				}
				respond.Error(writer, request, apperr.Unauthorized(message))
				return
			}

			// 4. Context Injection
			ctx := ctxutil.WithAuthUser(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
//
// # Flow
//  1. Check if [*sec.AuthClaims] exists in context.
//  2. If missing, abort with HTTP 401 Unauthorized.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		claims := ctxutil.GetAuthUser(request.Context())
		if claims == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireAdmin blocks requests unless the authenticated user currently holds
// the admin role.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate]. It automatically
// implies [RequireAuth] so you don't need to mount both.
//
// # Flow
//  1. Check if [*sec.AuthClaims] exists in context (implies AuthN).
//  2. Reload the user's role from storage via [RoleResolver]. A user that no
//     longer exists yields 401, since the token refers to a dead identity.
//  3. If the role is not admin, abort with HTTP 403 Forbidden.
func RequireAdmin(resolver RoleResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims := ctxutil.GetAuthUser(request.Context())

			// 1. Authentication Check
			if claims == nil {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			// 2. Live Role Resolution
			role, err := resolver.ResolveRole(request.Context(), claims.UserID)
			if err != nil {
				if appError := apperr.As(err); appError != nil && appError.HTTPStatus == http.StatusNotFound {
					respond.Error(writer, request, apperr.Unauthorized("Account no longer exists"))
					return
				}
				respond.Error(writer, request, err)
				return
			}

			// 3. Authorization Check
			if !role.IsAdmin() {
				respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
