package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/Moraarn/sistercheck/config"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// TokenStore tracks issued token ids so tokens can be revoked on logout.
type TokenStore interface {
	Store(ctx context.Context, accountID, tokenID string, expiry time.Duration) error
	Exists(ctx context.Context, accountID, tokenID string) (bool, error)
	Revoke(ctx context.Context, accountID, tokenID string) error
}

func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logrus.Info("Successfully connected to Redis")

	return client, nil
}

type redisTokenStore struct {
	client *redis.Client
}

func NewTokenStore(client *redis.Client) TokenStore {
	return &redisTokenStore{client: client}
}

func tokenKey(accountID, tokenID string) string {
	return fmt.Sprintf("access_token:%s:%s", accountID, tokenID)
}

func (s *redisTokenStore) Store(ctx context.Context, accountID, tokenID string, expiry time.Duration) error {
	return s.client.Set(ctx, tokenKey(accountID, tokenID), "1", expiry).Err()
}

func (s *redisTokenStore) Exists(ctx context.Context, accountID, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, tokenKey(accountID, tokenID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *redisTokenStore) Revoke(ctx context.Context, accountID, tokenID string) error {
	return s.client.Del(ctx, tokenKey(accountID, tokenID)).Err()
}
