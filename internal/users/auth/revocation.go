// Copyright (c) 2026 Kinora. All rights reserved.
// Author: platform@kinora.app

package auth

import (
	"context"
	"sync"
	"time"

	"github.com/kinora/kinora/internal/platform/sec"
)

// RevocationRegistry records bearer tokens that have been explicitly
// invalidated before their natural expiry (logout).
//
// # Implementations
//   - [MemoryRevocationRegistry]: default, single-process.
//   - [RedisRevocationRegistry]: shared across replicas, used when a Redis
//     URL is configured.
type RevocationRegistry interface {
	// Revoke marks the token as invalid. Revoking an already-revoked token
	// is a no-op, not an error.
	Revoke(ctx context.Context, token string) error

	// IsRevoked reports whether the token has been revoked.
	IsRevoked(ctx context.Context, token string) bool
}

// # In-Memory Registry

// MemoryRevocationRegistry is a process-local revocation blacklist.
//
// Entries are retained until the revoked token's own expiry, after which
// keeping them is pointless: signature verification already rejects expired
// tokens. State does not survive a restart, which re-validates tokens that
// were logged out; acceptable for single-node deployments, use the Redis
// registry otherwise.
type MemoryRevocationRegistry struct {
	mutex sync.RWMutex
	// revoked maps token string to the instant the entry can be dropped.
	revoked map[string]time.Time

	// defaultRetention bounds entries whose expiry cannot be read from the
	// token itself.
	defaultRetention time.Duration
}

// NewMemoryRevocationRegistry constructs a [MemoryRevocationRegistry].
//
// # Parameters
//   - defaultRetention: Retention for tokens without a readable exp claim.
func NewMemoryRevocationRegistry(defaultRetention time.Duration) *MemoryRevocationRegistry {
	return &MemoryRevocationRegistry{
		revoked:          make(map[string]time.Time),
		defaultRetention: defaultRetention,
	}
}

// Revoke marks the token as invalid until it would have expired anyway.
func (registry *MemoryRevocationRegistry) Revoke(_ context.Context, token string) error {
	dropAfter := time.Now().Add(registry.defaultRetention)
	// The exp claim is read without signature verification: this only sizes
	// the retention window, it never grants validity.
	if expiry, ok := sec.ExtractExpiry(token); ok {
		dropAfter = expiry
	}

	registry.mutex.Lock()
	registry.revoked[token] = dropAfter
	registry.mutex.Unlock()
	return nil
}

// IsRevoked reports whether the token has been revoked.
func (registry *MemoryRevocationRegistry) IsRevoked(_ context.Context, token string) bool {
	registry.mutex.RLock()
	_, found := registry.revoked[token]
	registry.mutex.RUnlock()
	return found
}

// Prune drops entries whose tokens have passed their natural expiry.
func (registry *MemoryRevocationRegistry) Prune(now time.Time) int {
	registry.mutex.Lock()
	defer registry.mutex.Unlock()

	removed := 0
	for token, dropAfter := range registry.revoked {
		if now.After(dropAfter) {
			delete(registry.revoked, token)
			removed++
		}
	}
	return removed
}

// StartPruning launches a background goroutine that prunes the registry at
// the given interval until ctx is cancelled.
func (registry *MemoryRevocationRegistry) StartPruning(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case tick := <-ticker.C:
				registry.Prune(tick)
			}
		}
	}()
}
