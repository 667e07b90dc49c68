package queue

import (
	"encoding/json"

	"github.com/officer-registry/internal/constants"
	"github.com/officer-registry/internal/models"

	"github.com/hibiken/asynq"
)

const (
	// TaskAuditRecord 审计写入任务
	TaskAuditRecord = constants.TaskAuditRecord
	// AuditQueue 审计专用队列
	AuditQueue = constants.QueueAudit
)

// AuditRecordPayload 审计写入任务载荷
type AuditRecordPayload struct {
	Log models.AuditLog `json:"log"`
}

// NewAuditRecordTask 创建审计写入任务
func NewAuditRecordTask(payload AuditRecordPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAuditRecord, body), nil
}

// ParseAuditRecordPayload 解析审计写入任务载荷
func ParseAuditRecordPayload(body []byte) (AuditRecordPayload, error) {
	var payload AuditRecordPayload
	err := json.Unmarshal(body, &payload)
	return payload, err
}
