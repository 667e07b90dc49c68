// Package audit 记录业务审计日志
// Recorder.Record 从不返回错误，也不会阻塞调用方等待审计存储
package audit

import (
	"context"
	"strings"
	"time"

	"github.com/officer-registry/internal/logger"
	"github.com/officer-registry/internal/models"
)

// Actor 触发动作的主体，登录失败等场景为空
type Actor struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Source 请求来源，用于取证关联
type Source struct {
	Method    string `json:"method"`
	Endpoint  string `json:"endpoint"`
	RequestID string `json:"request_id"`
}

// Entry 一条待写入的审计记录
type Entry struct {
	Action       string                 `json:"action"`
	Actor        *Actor                 `json:"actor,omitempty"`
	TargetEntity string                 `json:"target_entity"`
	TargetID     uint                   `json:"target_id"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
	Source       Source                 `json:"source"`
	At           time.Time              `json:"at"`
}

// Valid 动作为空的记录直接丢弃
func (e Entry) Valid() bool {
	return strings.TrimSpace(e.Action) != ""
}

// ToModel 转换为存储模型
func (e Entry) ToModel() *models.AuditLog {
	item := &models.AuditLog{
		Action:       strings.TrimSpace(e.Action),
		TargetEntity: strings.TrimSpace(e.TargetEntity),
		TargetID:     e.TargetID,
		Method:       strings.ToUpper(strings.TrimSpace(e.Source.Method)),
		Endpoint:     strings.TrimSpace(e.Source.Endpoint),
		RequestID:    strings.TrimSpace(e.Source.RequestID),
		CreatedAt:    e.At,
	}
	if e.Actor != nil {
		id := e.Actor.ID
		if id != 0 {
			item.ActorID = &id
		}
		item.ActorUsername = strings.TrimSpace(e.Actor.Username)
		item.ActorRole = strings.TrimSpace(e.Actor.Role)
	}
	if len(e.Metadata) > 0 {
		item.Metadata = models.JSON(e.Metadata)
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	return item
}

// Store 审计存储，只需追加写入
type Store interface {
	Create(ctx context.Context, log *models.AuditLog) error
}

// Recorder 审计记录器
type Recorder interface {
	Record(ctx context.Context, entry Entry)
}

// NopRecorder 丢弃全部记录（audit.mode=off 或测试）
type NopRecorder struct{}

// Record 忽略
func (NopRecorder) Record(context.Context, Entry) {}

// stamp 补齐时间与请求 ID，在调用方 goroutine 内执行
func stamp(ctx context.Context, entry Entry, now func() time.Time) Entry {
	if entry.At.IsZero() {
		entry.At = now()
	}
	if entry.Source.RequestID == "" {
		entry.Source.RequestID = logger.RequestIDFrom(ctx)
	}
	return entry
}
