package db

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const SummaryKeyPrefix = "pulseai:summary:"

// ConnectRedis opens a client for redisURL, which may be a redis:// URL or a
// bare host:port address.
func ConnectRedis(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{Addr: redisURL}
	}

	client := redis.NewClient(opt)

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opt.Addr, err)
	}

	return client, nil
}

func CloseRedis(client *redis.Client) {
	if client != nil {
		client.Close()
	}
}
