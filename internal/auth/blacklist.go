package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Blacklist stores revoked token strings in Redis. Entries expire on the
// storage side after the retention window; no sweep process is needed.
type Blacklist struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewBlacklist creates a token blacklist with the given retention window.
func NewBlacklist(redisClient *redis.Client, ttl time.Duration) *Blacklist {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Blacklist{
		redis: redisClient,
		ttl:   ttl,
	}
}

func blacklistKey(token string) string {
	return fmt.Sprintf("blacklist:token:%s", token)
}

// Add blacklists a token. Adding an already-blacklisted token just
// refreshes its TTL, so the operation is idempotent.
func (b *Blacklist) Add(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := b.redis.Set(ctx, blacklistKey(token), "1", b.ttl).Err(); err != nil {
		return fmt.Errorf("add token to blacklist: %w", err)
	}
	return nil
}

// Contains checks whether a token has been revoked.
func (b *Blacklist) Contains(ctx context.Context, token string) (bool, error) {
	exists, err := b.redis.Exists(ctx, blacklistKey(token)).Result()
	if err != nil {
		return false, fmt.Errorf("check blacklist: %w", err)
	}
	return exists > 0, nil
}
