package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/officer-registry/internal/config"

	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "or"

// NewRedisClient 根据配置创建 Redis 客户端，未启用时返回 nil
func NewRedisClient(cfg *config.RedisConfig) *redis.Client {
	if cfg == nil || !cfg.Enabled {
		return nil
	}
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// RedisGateway 基于 Redis 的缓存实现，所有 key 自动加前缀
type RedisGateway struct {
	client *redis.Client
	prefix string
}

// NewRedisGateway 创建 Redis 缓存网关
func NewRedisGateway(client *redis.Client, prefix string) *RedisGateway {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &RedisGateway{client: client, prefix: prefix}
}

// Get 读取缓存
func (g *RedisGateway) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if g == nil || g.client == nil {
		return nil, false, nil
	}
	val, err := g.client.Get(ctx, g.buildKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

// Set 写入缓存
func (g *RedisGateway) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if g == nil || g.client == nil {
		return nil
	}
	return g.client.Set(ctx, g.buildKey(key), value, ttl).Err()
}

// Delete 删除缓存，单次 DEL 覆盖全部 key
func (g *RedisGateway) Delete(ctx context.Context, keys ...string) error {
	if g == nil || g.client == nil || len(keys) == 0 {
		return nil
	}
	full := make([]string, 0, len(keys))
	for _, key := range keys {
		full = append(full, g.buildKey(key))
	}
	return g.client.Del(ctx, full...).Err()
}

func (g *RedisGateway) buildKey(key string) string {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return g.prefix
	}
	return fmt.Sprintf("%s:%s", g.prefix, trimmed)
}
