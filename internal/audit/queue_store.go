package audit

import (
	"context"

	"github.com/officer-registry/internal/models"
	"github.com/officer-registry/internal/queue"
)

// QueueStore 把审计写入转交给 asynq，由 worker 进程落库
// 与 AsyncRecorder 组合使用，入队本身也不阻塞调用方
type QueueStore struct {
	client *queue.Client
}

// NewQueueStore 创建队列存储
func NewQueueStore(client *queue.Client) *QueueStore {
	return &QueueStore{client: client}
}

// Create 入队一条审计任务
func (s *QueueStore) Create(ctx context.Context, log *models.AuditLog) error {
	if log == nil {
		return nil
	}
	if s == nil || s.client == nil {
		return queue.ErrQueueDisabled
	}
	return s.client.EnqueueAuditRecord(ctx, queue.AuditRecordPayload{Log: *log})
}
