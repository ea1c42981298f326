// Copyright (c) 2026 Kinora. All rights reserved.
// Author: platform@kinora.app

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (hashing, JWT signing,
// random token generation) from the domain logic. It acts as an
// Infrastructure service injected into the Application layer via small
// interfaces ([TokenIssuer]-shaped contracts defined by the consumers).
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// # Verification Failures

var (
	// ErrTokenMalformed is returned when the input is not a parseable JWT.
	ErrTokenMalformed = errors.New("sec: token is malformed")

	// ErrTokenSignature is returned when the signature does not match,
	// i.e. the token was tampered with or signed by a different secret.
	ErrTokenSignature = errors.New("sec: token signature is invalid")

	// ErrTokenExpired is returned when the token's exp claim is in the past.
	ErrTokenExpired = errors.New("sec: token has expired")
)

// AuthClaims represents the payload embedded inside a bearer token.
//
// # Why custom claims?
//
// By embedding the user ID and email directly inside the JWT, the
// authentication middleware can reconstruct the active user context WITHOUT
// querying the database on every single API request. Possession of a validly
// signed, unexpired, non-revoked token is sufficient proof of identity.
type AuthClaims struct {
	jwt.RegisteredClaims

	// Custom application claims are abbreviated to keep the JWT payload small.
	UserID string `json:"uid"`
	Email  string `json:"eml"`
}

// TokenService handles generation and verification of JWT bearer tokens
// using HS256 (HMAC with a server-held symmetric secret).
type TokenService struct {
	secret     []byte
	issuer     string
	timeToLive time.Duration
}

// NewTokenService creates a new TokenService.
//
// # Parameters
//   - secret: The HMAC signing secret. Never log or serialize this value.
//   - issuer: The standard 'iss' claim stamped into every token.
//   - timeToLive: The fixed validity window from issuance time.
func NewTokenService(secret, issuer string, timeToLive time.Duration) *TokenService {
	return &TokenService{
		secret:     []byte(secret),
		issuer:     issuer,
		timeToLive: timeToLive,
	}
}

// IssueToken creates a new signed bearer token for a user.
//
// The operation is stateless and side-effect free: nothing is persisted,
// and two calls for the same user produce independent tokens.
func (service *TokenService) IssueToken(userID, email string) (string, error) {
	currentTime := time.Now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(service.timeToLive)),
		},
		UserID: userID,
		Email:  email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// VerifyToken checks the signature and validity of a bearer token string.
//
// # Failure Modes
//   - [ErrTokenMalformed]: input is not a parseable JWT.
//   - [ErrTokenSignature]: signature mismatch (tampering or wrong secret).
//   - [ErrTokenExpired]: exp claim has elapsed.
func (service *TokenService) VerifyToken(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	})

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenSignature
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		default:
			return nil, fmt.Errorf("sec: invalid token: %w", err)
		}
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}

// ExtractExpiry reads the exp claim from a token WITHOUT verifying the
// signature.
//
// # Safety
//
// This must never be used to authenticate a request. Its only purpose is to
// bound the retention of revocation entries: a blacklist entry can be safely
// forgotten once the token it refers to would be rejected as expired anyway.
func ExtractExpiry(tokenString string) (time.Time, bool) {
	claims := &jwt.RegisteredClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(tokenString, claims)
	if err != nil || claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
