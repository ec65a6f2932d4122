package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	refreshTTL   = 7 * 24 * time.Hour
	challengeTTL = 5 * time.Minute
)

var ErrNotFound = errors.New("cache entry not found or expired")

// SessionCache holds refresh tokens and pending sign-in challenges.
type SessionCache struct {
	client *redis.Client
}

func NewSessionCache(client *redis.Client) *SessionCache {
	return &SessionCache{client: client}
}

func (c *SessionCache) SaveRefresh(ctx context.Context, wallet string, refreshToken string) error {
	return c.client.Set(ctx, "refresh_token:"+refreshToken, wallet, refreshTTL).Err()
}

func (c *SessionCache) CheckRefresh(ctx context.Context, refreshToken string) (string, error) {
	val, err := c.client.Get(ctx, "refresh_token:"+refreshToken).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (c *SessionCache) DeleteRefresh(ctx context.Context, refreshToken string) error {
	return c.client.Del(ctx, "refresh_token:"+refreshToken).Err()
}

func (c *SessionCache) SaveChallenge(ctx context.Context, wallet string, nonce string) error {
	return c.client.Set(ctx, "login_challenge:"+wallet, nonce, challengeTTL).Err()
}

// PendingChallenge returns the nonce waiting for a signature without
// consuming it.
func (c *SessionCache) PendingChallenge(ctx context.Context, wallet string) (string, error) {
	val, err := c.client.Get(ctx, "login_challenge:"+wallet).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// deleteIfEqual removes KEYS[1] only while it still holds ARGV[1].
var deleteIfEqual = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// ConsumeChallenge removes the challenge once it has been answered. Only one
// caller can consume a given nonce; the rest get ErrNotFound.
func (c *SessionCache) ConsumeChallenge(ctx context.Context, wallet string, nonce string) error {
	n, err := deleteIfEqual.Run(ctx, c.client, []string{"login_challenge:" + wallet}, nonce).Int()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// RevokeAccess blocks an access token until it would have expired anyway.
func (c *SessionCache) RevokeAccess(ctx context.Context, accessToken string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return c.client.Set(ctx, "revoked_access:"+accessToken, 1, ttl).Err()
}

func (c *SessionCache) IsRevoked(ctx context.Context, accessToken string) (bool, error) {
	n, err := c.client.Exists(ctx, "revoked_access:"+accessToken).Result()
	return n > 0, err
}
