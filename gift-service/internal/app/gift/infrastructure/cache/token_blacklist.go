package cache

import (
	"context"
	"fmt"
	"time"

	"giftshop/pkg/metrics"

	"github.com/redis/go-redis/v9"
)

const blacklistPrefix = "blacklist:"

// TokenBlacklist хранит jti отозванных токенов. Запись живет не дольше самого токена
type TokenBlacklist struct {
	client *redis.Client
}

func NewTokenBlacklist(client *redis.Client) *TokenBlacklist {
	return &TokenBlacklist{client: client}
}

func (b *TokenBlacklist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // токен уже истек
	}

	if err := b.client.Set(ctx, blacklistPrefix+jti, "1", ttl).Err(); err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpSet)
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (b *TokenBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := b.client.Exists(ctx, blacklistPrefix+jti).Result()
	if err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpExists)
		return false, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	return n > 0, nil
}
