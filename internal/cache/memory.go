package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryGateway 进程内缓存，过期判断基于可注入时钟
type MemoryGateway struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryGateway 创建进程内缓存
func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// WithClock 替换时钟（测试用）
func (g *MemoryGateway) WithClock(now func() time.Time) *MemoryGateway {
	g.mu.Lock()
	defer g.mu.Unlock()
	if now != nil {
		g.now = now
	}
	return g
}

// Get 读取缓存，过期条目视为未命中并被清除
func (g *MemoryGateway) Get(_ context.Context, key string) ([]byte, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	entry, ok := g.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !entry.expiresAt.IsZero() && !g.now().Before(entry.expiresAt) {
		delete(g.entries, key)
		return nil, false, nil
	}
	out := make([]byte, len(entry.value))
	copy(out, entry.value)
	return out, true, nil
}

// Set 写入缓存，ttl <= 0 表示不过期
func (g *MemoryGateway) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	stored := make([]byte, len(value))
	copy(stored, value)
	entry := memoryEntry{value: stored}
	if ttl > 0 {
		entry.expiresAt = g.now().Add(ttl)
	}
	g.entries[key] = entry
	return nil
}

// Delete 删除缓存
func (g *MemoryGateway) Delete(_ context.Context, keys ...string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, key := range keys {
		delete(g.entries, key)
	}
	return nil
}

// Len 当前条目数（含尚未清理的过期条目）
func (g *MemoryGateway) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.entries)
}
