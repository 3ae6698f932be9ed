package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces progress keys in a shared Redis.
const DefaultRedisPrefix = "lingua:"

// RedisKV stores progress keys in Redis instead of the local database,
// for hosts that serve the same learner from several processes.
type RedisKV struct {
	client *redis.Client
	prefix string
}

// NewRedisKV wraps an existing client. Keys are stored as prefix+key.
func NewRedisKV(client *redis.Client, prefix string) *RedisKV {
	return &RedisKV{client: client, prefix: prefix}
}

// OpenRedis connects to addr, which is either host:port or a redis:// URL,
// and verifies the connection with a PING.
func OpenRedis(ctx context.Context, addr string) (*RedisKV, error) {
	var opts *redis.Options
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: addr}
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", opts.Addr, err)
	}
	return NewRedisKV(client, DefaultRedisPrefix), nil
}

func (kv *RedisKV) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := kv.client.Get(ctx, kv.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %q: %w", key, err)
	}
	return v, true, nil
}

func (kv *RedisKV) Set(ctx context.Context, key, value string) error {
	if err := kv.client.Set(ctx, kv.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

func (kv *RedisKV) Delete(ctx context.Context, key string) error {
	if err := kv.client.Del(ctx, kv.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del %q: %w", key, err)
	}
	return nil
}

// Close closes the underlying client.
func (kv *RedisKV) Close() error {
	return kv.client.Close()
}
