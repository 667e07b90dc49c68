package audit

import (
	"context"
	"sync"
	"time"

	"github.com/officer-registry/internal/logger"
)

const (
	defaultWorkers      = 2
	defaultQueueSize    = 1024
	defaultWriteTimeout = 2 * time.Second
)

// AsyncOptions 异步记录器参数
type AsyncOptions struct {
	Workers      int
	QueueSize    int
	WriteTimeout time.Duration
}

// AsyncRecorder 有界队列 + 固定写入协程
// 队列满时丢弃并记录日志；写入失败不重试
type AsyncRecorder struct {
	name         string
	store        Store
	entries      chan Entry
	workers      int
	writeTimeout time.Duration
	metrics      *Metrics
	now          func() time.Time

	mu        sync.RWMutex
	closed    bool
	startOnce sync.Once
	stopOnce  sync.Once
	wg        sync.WaitGroup
}

// NewAsyncRecorder 创建异步记录器
func NewAsyncRecorder(store Store, opts AsyncOptions, metrics *Metrics) *AsyncRecorder {
	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = defaultQueueSize
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = defaultWriteTimeout
	}
	return &AsyncRecorder{
		name:         "audit",
		store:        store,
		entries:      make(chan Entry, opts.QueueSize),
		workers:      opts.Workers,
		writeTimeout: opts.WriteTimeout,
		metrics:      metrics,
		now:          time.Now,
	}
}

// Record 入队后立即返回
func (r *AsyncRecorder) Record(ctx context.Context, entry Entry) {
	if r == nil {
		return
	}
	if !entry.Valid() {
		r.metrics.observe(ResultInvalid)
		logger.Ctx(ctx).Warnw("audit_entry_invalid", "target_entity", entry.TargetEntity, "target_id", entry.TargetID)
		return
	}
	entry = stamp(ctx, entry, r.now)

	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		r.metrics.observe(ResultDropped)
		logger.Ctx(ctx).Warnw("audit_entry_dropped", "reason", "recorder_stopped", "action", entry.Action, "target_entity", entry.TargetEntity, "target_id", entry.TargetID)
		return
	}
	select {
	case r.entries <- entry:
		r.metrics.setDepth(len(r.entries))
	default:
		r.metrics.observe(ResultDropped)
		logger.Ctx(ctx).Warnw("audit_entry_dropped", "reason", "queue_full", "action", entry.Action, "target_entity", entry.TargetEntity, "target_id", entry.TargetID)
	}
}

// Name 服务名称
func (r *AsyncRecorder) Name() string {
	if r == nil || r.name == "" {
		return "audit"
	}
	return r.name
}

// StartWorkers 启动写入协程，可重复调用
func (r *AsyncRecorder) StartWorkers() {
	if r == nil {
		return
	}
	r.startOnce.Do(func() {
		for i := 0; i < r.workers; i++ {
			r.wg.Add(1)
			go r.loop()
		}
	})
}

// Start 作为应用服务运行，直到 ctx 结束
func (r *AsyncRecorder) Start(ctx context.Context) error {
	r.StartWorkers()
	<-ctx.Done()
	return nil
}

// Stop 停止接收并排空队列，受 ctx 截止时间约束
func (r *AsyncRecorder) Stop(ctx context.Context) error {
	if r == nil {
		return nil
	}
	r.stopOnce.Do(func() {
		r.mu.Lock()
		r.closed = true
		close(r.entries)
		r.mu.Unlock()
	})
	r.StartWorkers()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		logger.Warnw("audit_drain_timeout", "pending", len(r.entries))
		return ctx.Err()
	}
}

func (r *AsyncRecorder) loop() {
	defer r.wg.Done()
	for entry := range r.entries {
		r.metrics.setDepth(len(r.entries))
		r.write(entry)
	}
}

func (r *AsyncRecorder) write(entry Entry) {
	if r.store == nil {
		r.metrics.observe(ResultFailed)
		logger.Warnw("audit_write_failed", "action", entry.Action, "error", "store is nil")
		return
	}
	ctx := logger.WithRequestID(context.Background(), entry.Source.RequestID)
	ctx, cancel := context.WithTimeout(ctx, r.writeTimeout)
	defer cancel()

	if err := r.store.Create(ctx, entry.ToModel()); err != nil {
		r.metrics.observe(ResultFailed)
		logger.Ctx(ctx).Errorw("audit_write_failed",
			"action", entry.Action,
			"target_entity", entry.TargetEntity,
			"target_id", entry.TargetID,
			"error", err,
		)
		return
	}
	r.metrics.observe(ResultWritten)
}
