package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/angelmondragon/novastore/pkg/config"
	"github.com/angelmondragon/novastore/pkg/kv"
	"github.com/angelmondragon/novastore/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const keyNamespace = "nova"

type cmdable interface {
	Ping(context.Context) *redis.StatusCmd
	Get(context.Context, string) *redis.StringCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
	MSet(context.Context, ...any) *redis.StatusCmd
}

// Client is a kv.Store backed by a single Redis database.
type Client struct {
	store cmdable
	raw   *redis.Client
}

var _ kv.Store = (*Client)(nil)

// New bootstraps a Redis client with pooling/timeouts and verifies connectivity.
func New(ctx context.Context, cfg config.RedisConfig, logg *logger.Logger) (*Client, error) {
	opts, err := optionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		_ = raw.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	if logg != nil {
		logg.Info(logg.WithField(ctx, "redis_db", opts.DB), "redis connection established")
	}
	return &Client{store: raw, raw: raw}, nil
}

func optionsFromConfig(cfg config.RedisConfig) (*redis.Options, error) {
	if cfg.URL == "" && cfg.Address == "" {
		return nil, errors.New("redis url or address is required")
	}
	var opts *redis.Options
	if cfg.URL != "" {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parsing redis url: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{
			Addr:     cfg.Address,
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	}
	if opts.DB == 0 {
		opts.DB = cfg.DB
	}
	if opts.PoolSize == 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if opts.MinIdleConns == 0 {
		opts.MinIdleConns = cfg.MinIdleConns
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}
	return opts, nil
}

// Get returns the raw value stored for key, or kv.ErrNotFound.
func (c *Client) Get(ctx context.Context, key kv.Key) ([]byte, error) {
	if c.store == nil {
		return nil, errors.New("redis client not initialized")
	}
	raw, err := c.store.Get(ctx, c.buildKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, kv.ErrNotFound
		}
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return raw, nil
}

// Set stores value under key without expiry.
func (c *Client) Set(ctx context.Context, key kv.Key, value []byte) error {
	if c.store == nil {
		return errors.New("redis client not initialized")
	}
	if err := c.store.Set(ctx, c.buildKey(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// SetMany writes every entry with a single MSET, which Redis applies atomically.
func (c *Client) SetMany(ctx context.Context, entries map[kv.Key][]byte) error {
	if c.store == nil {
		return errors.New("redis client not initialized")
	}
	if len(entries) == 0 {
		return nil
	}
	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, string(key))
	}
	sort.Strings(keys)

	pairs := make([]any, 0, len(entries)*2)
	for _, key := range keys {
		pairs = append(pairs, c.buildKey(kv.Key(key)), entries[kv.Key(key)])
	}
	if err := c.store.MSet(ctx, pairs...).Err(); err != nil {
		return fmt.Errorf("redis mset: %w", err)
	}
	return nil
}

// Ping verifies the connection.
func (c *Client) Ping(ctx context.Context) error {
	if c.store == nil {
		return errors.New("redis client not initialized")
	}
	return c.store.Ping(ctx).Err()
}

// Close shuts down the underlying client if available.
func (c *Client) Close() error {
	if c.raw == nil {
		return nil
	}
	return c.raw.Close()
}

func (c *Client) buildKey(key kv.Key) string {
	return strings.Join([]string{keyNamespace, strings.TrimSpace(string(key))}, ":")
}
