package cache

import (
	"context"
	"errors"

	"github.com/go-redis/redis/v8"
)

// ErrMiss 表示缓存中不存在该键
var ErrMiss = errors.New("cache miss")

// Store 定义缓存后端所需的最小操作集合
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	HashGetAll(ctx context.Context, key string) (map[string]string, error)
	HashSetAll(ctx context.Context, key string, fields map[string]interface{}) error
	Delete(ctx context.Context, key string) error
}

// RedisStore implements Store on a Redis client.
type RedisStore struct {
	c *redis.Client
}

// NewRedisStore 创建 Redis 缓存后端
func NewRedisStore(c *redis.Client) *RedisStore {
	return &RedisStore{c: c}
}

// NewRedisClient 创建Redis客户端
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func (r *RedisStore) Get(ctx context.Context, key string) (string, error) {
	val, err := r.c.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", ErrMiss
		}
		return "", err
	}
	return val, nil
}

func (r *RedisStore) Set(ctx context.Context, key string, value string) error {
	// 不设置 TTL，条目保留到下一次写穿或显式失效
	return r.c.Set(ctx, key, value, 0).Err()
}

func (r *RedisStore) HashGetAll(ctx context.Context, key string) (map[string]string, error) {
	fields, err := r.c.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, ErrMiss
	}
	return fields, nil
}

func (r *RedisStore) HashSetAll(ctx context.Context, key string, fields map[string]interface{}) error {
	return r.c.HSet(ctx, key, fields).Err()
}

func (r *RedisStore) Delete(ctx context.Context, key string) error {
	return r.c.Del(ctx, key).Err()
}
