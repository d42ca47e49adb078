package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	KeyMenu              = "menu:tree"
	PatternMenu          = "menu:*"
	PatternProducts      = "products:list:*"
	KeyBestSellers       = "highlights:best-sellers"
	DefaultTTL           = 5 * time.Minute
	scanBatch      int64 = 100
)

type Config struct {
	Addr     string
	Password string
	DB       int
}

// RedisClient is safe to use as a nil pointer: every method then behaves as
// an always-missing cache, so callers need no "cache enabled" branches.
type RedisClient struct {
	Client *redis.Client
}

func NewRedisClient(ctx context.Context, cfg *Config) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisClient{Client: client}, nil
}

// GetJSON reports whether key was found and decoded into dst.
func (c *RedisClient) GetJSON(ctx context.Context, key string, dst any) (bool, error) {
	if c == nil {
		return false, nil
	}
	val, err := c.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(val, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (c *RedisClient) SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	if c == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, key, data, ttl).Err()
}

// DeletePattern removes every key matching pattern using SCAN rather than KEYS.
func (c *RedisClient) DeletePattern(ctx context.Context, pattern string) error {
	if c == nil {
		return nil
	}
	var cursor uint64
	for {
		keys, next, err := c.Client.Scan(ctx, cursor, pattern, scanBatch).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.Client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

func (c *RedisClient) IncrementScore(ctx context.Context, key, member string, by float64) error {
	if c == nil {
		return nil
	}
	return c.Client.ZIncrBy(ctx, key, by, member).Err()
}

// TopScores returns at most n members of a sorted set, highest score first.
func (c *RedisClient) TopScores(ctx context.Context, key string, n int64) ([]redis.Z, error) {
	if c == nil || n <= 0 {
		return nil, nil
	}
	return c.Client.ZRevRangeWithScores(ctx, key, 0, n-1).Result()
}

func (c *RedisClient) Ping(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.Client.Ping(ctx).Err()
}

func (c *RedisClient) Close() error {
	if c == nil {
		return nil
	}
	return c.Client.Close()
}
