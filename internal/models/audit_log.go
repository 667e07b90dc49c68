package models

import "time"

// AuditLog 业务审计日志
// 说明：只追加，不更新也不删除；Actor 为空表示身份尚未确认（如登录失败）。
type AuditLog struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	Action        string    `gorm:"type:varchar(64);index;not null" json:"action"`
	ActorID       *uint     `gorm:"index" json:"actorId"`
	ActorUsername string    `gorm:"type:varchar(100);not null;default:''" json:"actorUsername"`
	ActorRole     string    `gorm:"type:varchar(20);not null;default:''" json:"actorRole"`
	TargetEntity  string    `gorm:"type:varchar(64);index;not null;default:''" json:"targetEntity"`
	TargetID      uint      `gorm:"index;not null;default:0" json:"targetId"`
	Method        string    `gorm:"type:varchar(16);not null;default:''" json:"method"`
	Endpoint      string    `gorm:"type:varchar(255);not null;default:''" json:"endpoint"`
	RequestID     string    `gorm:"type:varchar(64);index;not null;default:''" json:"requestId"`
	Metadata      JSON      `gorm:"type:json" json:"metadata"`
	CreatedAt     time.Time `gorm:"index" json:"timestamp"`
}

// TableName 指定表名
func (AuditLog) TableName() string {
	return "audit_logs"
}
