// Copyright (c) 2026 Kinora. All rights reserved.
// Author: platform@kinora.app

package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kinora/kinora/internal/platform/constants"
	"github.com/kinora/kinora/internal/platform/sec"
)

// RedisRevocationRegistry is a revocation blacklist shared across API
// replicas.
//
// Each revoked token becomes a key with a TTL equal to its remaining
// lifetime, so Redis garbage-collects the blacklist for free.
type RedisRevocationRegistry struct {
	client *redis.Client

	// defaultTTL is used when the token's exp claim cannot be read.
	defaultTTL time.Duration
}

// NewRedisRevocationRegistry constructs a [RedisRevocationRegistry].
func NewRedisRevocationRegistry(client *redis.Client, defaultTTL time.Duration) *RedisRevocationRegistry {
	return &RedisRevocationRegistry{client: client, defaultTTL: defaultTTL}
}

func revocationKey(token string) string {
	return constants.RedisPrefixRevokedToken + token
}

// Revoke marks the token as invalid until it would have expired anyway.
func (registry *RedisRevocationRegistry) Revoke(ctx context.Context, token string) error {
	ttl := registry.defaultTTL
	if expiry, ok := sec.ExtractExpiry(token); ok {
		if remaining := time.Until(expiry); remaining > 0 {
			ttl = remaining
		}
	}

	return registry.client.Set(ctx, revocationKey(token), "1", ttl).Err()
}

// IsRevoked reports whether the token has been revoked.
//
// A Redis outage fails CLOSED here: an unreachable registry reports the
// token as revoked rather than letting logged-out sessions back in.
func (registry *RedisRevocationRegistry) IsRevoked(ctx context.Context, token string) bool {
	count, err := registry.client.Exists(ctx, revocationKey(token)).Result()
	if err != nil {
		return true
	}
	return count > 0
}
