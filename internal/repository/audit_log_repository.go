package repository

import (
	"context"
	"strings"

	"github.com/officer-registry/internal/models"

	"gorm.io/gorm"
)

// AuditLogRepository 业务审计日志数据访问接口
// 只追加：没有任何更新或删除方法
type AuditLogRepository interface {
	Create(ctx context.Context, log *models.AuditLog) error
	List(filter AuditLogListFilter) ([]models.AuditLog, int64, error)
}

// GormAuditLogRepository GORM 实现
type GormAuditLogRepository struct {
	db *gorm.DB
}

// NewAuditLogRepository 创建审计日志仓库
func NewAuditLogRepository(db *gorm.DB) *GormAuditLogRepository {
	return &GormAuditLogRepository{db: db}
}

// Create 写入审计日志，ctx 控制单次写入超时
func (r *GormAuditLogRepository) Create(ctx context.Context, log *models.AuditLog) error {
	if log == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return r.db.WithContext(ctx).Create(log).Error
}

// List 查询审计日志，最新的在前
// Search 只是粗筛：不能安全下推的关键字直接忽略，调用方仍需按精确规则过滤
func (r *GormAuditLogRepository) List(filter AuditLogListFilter) ([]models.AuditLog, int64, error) {
	query := r.db.Model(&models.AuditLog{})
	if filter.ActorID != 0 {
		query = query.Where("actor_id = ?", filter.ActorID)
	}
	if action := strings.TrimSpace(filter.Action); action != "" {
		query = query.Where("action = ?", action)
	}
	if entity := strings.TrimSpace(filter.TargetEntity); entity != "" {
		query = query.Where("target_entity = ?", entity)
	}
	if search := strings.TrimSpace(filter.Search); search != "" && pushdownSearchable(search) {
		condition, argCount := buildLikeCondition(r.db, []string{"target_entity", "action", "endpoint"}, "metadata", auditMetadataSearchKeys)
		query = query.Where(condition, repeatLikeArgs(containsLikePattern(search), argCount)...)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)

	logs := make([]models.AuditLog, 0)
	if err := query.Order("created_at DESC").Order("id DESC").Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
