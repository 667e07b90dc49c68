package worker

import (
	"context"
	"strings"
	"time"

	"github.com/officer-registry/internal/logger"
	"github.com/officer-registry/internal/provider"
	"github.com/officer-registry/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskAuditRecord, c.handleAuditRecord)
}

// handleAuditRecord 持久化一条审计记录；写入失败返回错误交给 asynq 重试
func (c *Consumer) handleAuditRecord(ctx context.Context, task *asynq.Task) error {
	if c == nil || c.Container == nil || task == nil {
		logger.Debugw("worker_audit_record_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseAuditRecordPayload(task.Payload())
	if err != nil {
		logger.Warnw("worker_audit_record_unmarshal_failed", "error", err)
		return err
	}
	entry := payload.Log
	if strings.TrimSpace(entry.Action) == "" {
		logger.Debugw("worker_audit_record_skip_invalid_payload", "target_entity", entry.TargetEntity)
		return nil
	}
	if c.AuditLogRepo == nil {
		logger.Warnw("worker_audit_record_skip_repo_nil", "action", entry.Action)
		return nil
	}
	entry.ID = 0
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	writeCtx, cancel := context.WithTimeout(logger.WithRequestID(ctx, entry.RequestID), c.auditWriteTimeout())
	defer cancel()
	if err := c.AuditLogRepo.Create(writeCtx, &entry); err != nil {
		logger.Ctx(writeCtx).Warnw("worker_audit_record_write_failed",
			"action", entry.Action,
			"target_entity", entry.TargetEntity,
			"target_id", entry.TargetID,
			"error", err,
		)
		return err
	}
	return nil
}

func (c *Consumer) auditWriteTimeout() time.Duration {
	if c.Config == nil {
		return 2 * time.Second
	}
	return c.Config.Audit.WriteTimeout()
}
