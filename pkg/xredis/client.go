package xredis

import (
	"context"
	"time"

	"github.com/overflow-lab/backend/pkg/xcontext"
	"github.com/redis/go-redis/v9"
)

type Client interface {
	// SetNX stores the key only if it does not exist yet. It returns true if
	// the key has been stored by this call.
	SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	Del(ctx context.Context, key string) error
	Close() error
}

type client struct {
	redisClient *redis.Client
}

func NewClient(ctx context.Context) (*client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:            xcontext.Configs(ctx).Redis.Addr,
		MaxRetries:      5,
		MinRetryBackoff: 8 * time.Millisecond,
		MaxRetryBackoff: 512 * time.Millisecond,
		DialTimeout:     5 * time.Second,
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    5 * time.Second,
		PoolFIFO:        false,
		PoolSize:        5,
	})

	if err := redisClient.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &client{redisClient: redisClient}, nil
}

func (c *client) SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	return c.redisClient.SetNX(ctx, key, value, ttl).Result()
}

func (c *client) Del(ctx context.Context, key string) error {
	return c.redisClient.Del(ctx, key).Err()
}

func (c *client) Close() error {
	return c.redisClient.Close()
}
