// Package cache 提供聚合视图的读穿缓存
// 所有调用方都把缓存错误当作未命中或空操作处理
package cache

import (
	"context"
	"time"
)

// Gateway 键值缓存抽象，三个操作都可能失败
type Gateway interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// NopGateway 永远未命中的缓存（Redis 关闭时使用）
type NopGateway struct{}

// Get 始终未命中
func (NopGateway) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set 忽略写入
func (NopGateway) Set(context.Context, string, []byte, time.Duration) error {
	return nil
}

// Delete 忽略删除
func (NopGateway) Delete(context.Context, ...string) error {
	return nil
}
