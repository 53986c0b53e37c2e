package sessions

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "blacklist:session:"

// Revocations is a Redis-backed list of logged-out session tokens.
// A nil client turns every operation into a no-op.
type Revocations struct {
	client *redis.Client
}

// NewRevocations returns a revocation list. Safe to call with nil to disable it.
func NewRevocations(c *redis.Client) *Revocations {
	return &Revocations{client: c}
}

// keys store a digest so raw session tokens never sit in Redis
func revokedKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return revokedKeyPrefix + hex.EncodeToString(sum[:])
}

// Revoke stores the token in the list with the given TTL.
func (r *Revocations) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if r == nil || r.client == nil {
		return nil
	}
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, revokedKey(token), "1", ttl).Err()
}

// IsRevoked returns true when the token exists in the list.
// Without a Redis client it returns (false, nil).
func (r *Revocations) IsRevoked(ctx context.Context, token string) (bool, error) {
	if r == nil || r.client == nil {
		return false, nil
	}
	exists, err := r.client.Exists(ctx, revokedKey(token)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}
