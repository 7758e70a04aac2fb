package jwt

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationStore remembers revoked tokens until they expire.
type RevocationStore interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

func tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "revoked_token:" + hex.EncodeToString(sum[:])
}

type memoryRevocationStore struct {
	revokedTokens map[string]time.Time
	mu            sync.RWMutex
	now           func() time.Time
}

// NewMemoryRevocationStore is used when no redis address is configured.
// Revocations are lost on restart.
func NewMemoryRevocationStore() RevocationStore {
	return &memoryRevocationStore{
		revokedTokens: make(map[string]time.Time),
		now:           time.Now,
	}
}

func (m *memoryRevocationStore) Revoke(_ context.Context, token string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for key, expiresAt := range m.revokedTokens {
		if !expiresAt.After(now) {
			delete(m.revokedTokens, key)
		}
	}
	m.revokedTokens[tokenKey(token)] = now.Add(ttl)
	return nil
}

func (m *memoryRevocationStore) IsRevoked(_ context.Context, token string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	expiresAt, revoked := m.revokedTokens[tokenKey(token)]
	return revoked && expiresAt.After(m.now()), nil
}

type redisRevocationStore struct {
	client *redis.Client
}

func NewRedisRevocationStore(client *redis.Client) RevocationStore {
	return &redisRevocationStore{client: client}
}

func (r *redisRevocationStore) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	return r.client.Set(ctx, tokenKey(token), 1, ttl).Err()
}

func (r *redisRevocationStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	err := r.client.Get(ctx, tokenKey(token)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
