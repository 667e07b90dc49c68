package cache

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/officer-registry/internal/logger"

	"golang.org/x/sync/singleflight"
)

// ReadThrough 读穿缓存：命中直接返回，未命中计算后按 TTL 回写
// 同一 key 的并发未命中合并为一次计算
// 失效之后开始的读取不会复用失效之前开始的计算，失效之前开始的计算也不会回写
type ReadThrough struct {
	gateway   Gateway
	ttl       time.Duration
	opTimeout time.Duration
	group     singleflight.Group
	epoch     atomic.Uint64
}

// NewReadThrough 创建读穿缓存
func NewReadThrough(gateway Gateway, ttl, opTimeout time.Duration) *ReadThrough {
	if gateway == nil {
		gateway = NopGateway{}
	}
	if opTimeout <= 0 {
		opTimeout = 200 * time.Millisecond
	}
	return &ReadThrough{gateway: gateway, ttl: ttl, opTimeout: opTimeout}
}

// Gateway 返回底层缓存
func (r *ReadThrough) Gateway() Gateway {
	if r == nil {
		return NopGateway{}
	}
	return r.gateway
}

// Fetch 读取 key 对应的视图，缓存异常一律退化为直接计算
func Fetch[T any](ctx context.Context, r *ReadThrough, key string, load func(context.Context) (T, error)) (T, error) {
	if r == nil {
		return load(ctx)
	}
	if raw, hit := r.get(ctx, key); hit {
		var cached T
		err := json.Unmarshal(raw, &cached)
		if err == nil {
			return cached, nil
		}
		logger.Ctx(ctx).Warnw("cache_decode_failed", "key", key, "error", err)
	}

	shared, err, _ := r.group.Do(key, func() (interface{}, error) {
		started := r.epoch.Load()
		value, err := load(ctx)
		if err != nil {
			return nil, err
		}
		payload, err := json.Marshal(value)
		if err != nil {
			logger.Ctx(ctx).Warnw("cache_encode_failed", "key", key, "error", err)
			return value, nil
		}
		r.store(ctx, key, payload, started)
		return value, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	if value, ok := shared.(T); ok {
		return value, nil
	}
	return load(ctx)
}

// Invalidate 删除 key，失败只记录日志
// 先推进 epoch 并丢弃进行中的合并计算，之后的未命中会重新读取主存储
func (r *ReadThrough) Invalidate(ctx context.Context, keys ...string) {
	if r == nil || len(keys) == 0 {
		return
	}
	r.epoch.Add(1)
	for _, key := range keys {
		r.group.Forget(key)
	}
	r.delete(ctx, keys...)
}

// store 回写计算结果；计算期间发生过失效则放弃，回写与失效交错时撤销本次回写
func (r *ReadThrough) store(ctx context.Context, key string, payload []byte, started uint64) {
	if r.epoch.Load() != started {
		logger.Ctx(ctx).Debugw("cache_set_skipped_stale", "key", key)
		return
	}
	r.set(ctx, key, payload)
	if r.epoch.Load() != started {
		r.delete(ctx, key)
	}
}

func (r *ReadThrough) delete(ctx context.Context, keys ...string) {
	opCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.opTimeout)
	defer cancel()
	if err := r.gateway.Delete(opCtx, keys...); err != nil {
		logger.Ctx(ctx).Warnw("cache_invalidate_failed", "keys", keys, "error", err)
	}
}

func (r *ReadThrough) get(ctx context.Context, key string) ([]byte, bool) {
	opCtx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()
	raw, hit, err := r.gateway.Get(opCtx, key)
	if err != nil {
		logger.Ctx(ctx).Warnw("cache_get_failed", "key", key, "error", err)
		return nil, false
	}
	return raw, hit
}

func (r *ReadThrough) set(ctx context.Context, key string, payload []byte) {
	opCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.opTimeout)
	defer cancel()
	if err := r.gateway.Set(opCtx, key, payload, r.ttl); err != nil {
		logger.Ctx(ctx).Warnw("cache_set_failed", "key", key, "error", err)
	}
}
