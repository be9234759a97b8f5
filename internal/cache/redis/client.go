package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client wraps the Redis client.
type Client struct {
	rdb *redis.Client
}

// New creates a new Redis client from a URI.
func New(uri string) (*Client, error) {
	opt, err := redis.ParseURL(uri)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Client{rdb: rdb}, nil
}

// Get retrieves a value by key. Returns "" with a nil error on a miss.
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	val, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return val, nil
}

// Set stores a value with an optional TTL.
func (c *Client) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return c.rdb.Set(ctx, key, value, ttl).Err()
}

// LPush pushes a value onto the head of a list.
func (c *Client) LPush(ctx context.Context, key, value string) error {
	return c.rdb.LPush(ctx, key, value).Err()
}

// BRPop pops the tail of a list, blocking up to timeout. Returns "" with a
// nil error when the timeout elapses without a value.
func (c *Client) BRPop(ctx context.Context, timeout time.Duration, key string) (string, error) {
	res, err := c.rdb.BRPop(ctx, timeout, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	if len(res) < 2 {
		return "", nil
	}
	return res[1], nil
}

// Close closes the Redis connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}
