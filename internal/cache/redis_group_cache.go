package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/posk43/api-final-yatube/internal/domain"
)

// RedisGroupCache implements GroupCache on Redis.
type RedisGroupCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// RedisGroupCacheConfig holds connection settings for the group cache.
type RedisGroupCacheConfig struct {
	Address  string
	Password string
	DB       int
}

// NewRedisGroupCache creates a group cache and verifies the connection.
func NewRedisGroupCache(cfg RedisGroupCacheConfig, prefix string, ttl time.Duration) (*RedisGroupCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisGroupCache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}, nil
}

// Close closes the underlying Redis client.
func (c *RedisGroupCache) Close() error {
	return c.client.Close()
}

func (c *RedisGroupCache) listKey() string {
	return fmt.Sprintf("%s:list", c.prefix)
}

func (c *RedisGroupCache) idKey(id uint) string {
	return fmt.Sprintf("%s:id:%d", c.prefix, id)
}

// GetList returns the cached group catalog.
func (c *RedisGroupCache) GetList(ctx context.Context) ([]domain.Group, error) {
	data, err := c.client.Get(ctx, c.listKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var groups []domain.Group
	if err := json.Unmarshal(data, &groups); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache data: %w", err)
	}
	return groups, nil
}

// SetList stores the group catalog.
func (c *RedisGroupCache) SetList(ctx context.Context, groups []domain.Group) error {
	data, err := json.Marshal(groups)
	if err != nil {
		return fmt.Errorf("failed to marshal cache data: %w", err)
	}
	if err := c.client.Set(ctx, c.listKey(), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set in redis: %w", err)
	}
	return nil
}

// GetByID returns a single cached group.
func (c *RedisGroupCache) GetByID(ctx context.Context, id uint) (*domain.Group, error) {
	data, err := c.client.Get(ctx, c.idKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var group domain.Group
	if err := json.Unmarshal(data, &group); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache data: %w", err)
	}
	return &group, nil
}

// SetByID stores a single group.
func (c *RedisGroupCache) SetByID(ctx context.Context, group *domain.Group) error {
	data, err := json.Marshal(group)
	if err != nil {
		return fmt.Errorf("failed to marshal cache data: %w", err)
	}
	if err := c.client.Set(ctx, c.idKey(group.ID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set in redis: %w", err)
	}
	return nil
}

var _ GroupCache = (*RedisGroupCache)(nil)
