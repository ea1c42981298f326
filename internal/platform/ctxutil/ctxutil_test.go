// Copyright (c) 2026 Kinora. All rights reserved.
// Author: platform@kinora.app

package ctxutil

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kinora/kinora/internal/platform/sec"
)

func TestRequestID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetRequestID(ctx))

	ctx = WithRequestID(ctx, "req-123")
	assert.Equal(t, "req-123", GetRequestID(ctx))
}

func TestLogger(t *testing.T) {
	ctx := context.Background()

	// Falls back to the default logger rather than returning nil.
	assert.NotNil(t, GetLogger(ctx))

	custom := slog.Default().With(slog.String("scope", "test"))
	ctx = WithLogger(ctx, custom)
	assert.Same(t, custom, GetLogger(ctx))
}

func TestAuthUser(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, GetAuthUser(ctx))

	claims := &sec.AuthClaims{UserID: "user-123", Email: "jane@example.com"}
	ctx = WithAuthUser(ctx, claims)
	assert.Same(t, claims, GetAuthUser(ctx))
}
