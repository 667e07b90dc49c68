package repository

import (
	"errors"

	"github.com/officer-registry/internal/models"

	"gorm.io/gorm"
)

// EvaluationRepository 考核数据访问接口
type EvaluationRepository interface {
	Create(evaluation *models.Evaluation) error
	GetByID(id uint) (*models.Evaluation, error)
	Delete(id uint) (bool, error)
	ListByOfficer(officerID uint) ([]models.Evaluation, error)
	ListRecent(limit int) ([]models.Evaluation, error)
	ListAll() ([]models.Evaluation, error)
	Count() (int64, error)
	CountDistinctOfficers() (int64, error)
}

// GormEvaluationRepository GORM 实现
type GormEvaluationRepository struct {
	db *gorm.DB
}

// NewEvaluationRepository 创建考核仓库
func NewEvaluationRepository(db *gorm.DB) *GormEvaluationRepository {
	return &GormEvaluationRepository{db: db}
}

// Create 创建考核
func (r *GormEvaluationRepository) Create(evaluation *models.Evaluation) error {
	return r.db.Create(evaluation).Error
}

// GetByID 根据 ID 获取考核
func (r *GormEvaluationRepository) GetByID(id uint) (*models.Evaluation, error) {
	var evaluation models.Evaluation
	if err := r.db.First(&evaluation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &evaluation, nil
}

// Delete 删除考核
func (r *GormEvaluationRepository) Delete(id uint) (bool, error) {
	result := r.db.Delete(&models.Evaluation{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListByOfficer 某警员的考核，按时间倒序
func (r *GormEvaluationRepository) ListByOfficer(officerID uint) ([]models.Evaluation, error) {
	evaluations := make([]models.Evaluation, 0)
	err := r.db.Where("officer_id = ?", officerID).
		Order("date DESC").Order("id DESC").
		Find(&evaluations).Error
	if err != nil {
		return nil, err
	}
	return evaluations, nil
}

// ListRecent 最近的考核
func (r *GormEvaluationRepository) ListRecent(limit int) ([]models.Evaluation, error) {
	query := r.db.Order("date DESC").Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	evaluations := make([]models.Evaluation, 0)
	if err := query.Find(&evaluations).Error; err != nil {
		return nil, err
	}
	return evaluations, nil
}

// ListAll 全部考核，按 ID 升序，供聚合计算使用
func (r *GormEvaluationRepository) ListAll() ([]models.Evaluation, error) {
	evaluations := make([]models.Evaluation, 0)
	if err := r.db.Order("id ASC").Find(&evaluations).Error; err != nil {
		return nil, err
	}
	return evaluations, nil
}

// Count 考核总数
func (r *GormEvaluationRepository) Count() (int64, error) {
	var total int64
	if err := r.db.Model(&models.Evaluation{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// CountDistinctOfficers 有考核记录的警员数
func (r *GormEvaluationRepository) CountDistinctOfficers() (int64, error) {
	var total int64
	if err := r.db.Model(&models.Evaluation{}).Distinct("officer_id").Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
