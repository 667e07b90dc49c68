package repository

import (
	"errors"
	"time"

	"github.com/officer-registry/internal/models"

	"gorm.io/gorm"
)

// OfficerRepository 警员数据访问接口
type OfficerRepository interface {
	Create(officer *models.Officer) error
	GetByID(id uint) (*models.Officer, error)
	ListByIDs(ids []uint) ([]models.Officer, error)
	List() ([]models.Officer, error)
	Count() (int64, error)
	ListRecentPromotions(limit int) ([]models.Officer, error)
	Update(officer *models.Officer) (bool, error)
	Promote(id uint, fromRank, toRank string, promotedAt time.Time) (bool, error)
	Delete(id uint) (bool, error)
}

// GormOfficerRepository GORM 实现
type GormOfficerRepository struct {
	db *gorm.DB
}

// NewOfficerRepository 创建警员仓库
func NewOfficerRepository(db *gorm.DB) *GormOfficerRepository {
	return &GormOfficerRepository{db: db}
}

// Create 创建警员
func (r *GormOfficerRepository) Create(officer *models.Officer) error {
	return r.db.Create(officer).Error
}

// GetByID 根据 ID 获取警员
func (r *GormOfficerRepository) GetByID(id uint) (*models.Officer, error) {
	var officer models.Officer
	if err := r.db.First(&officer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &officer, nil
}

// ListByIDs 批量获取警员
func (r *GormOfficerRepository) ListByIDs(ids []uint) ([]models.Officer, error) {
	if len(ids) == 0 {
		return []models.Officer{}, nil
	}
	var officers []models.Officer
	if err := r.db.Where("id IN ?", ids).Find(&officers).Error; err != nil {
		return nil, err
	}
	return officers, nil
}

// List 获取全部警员，按 ID 升序；警衔排序由调用方完成
func (r *GormOfficerRepository) List() ([]models.Officer, error) {
	officers := make([]models.Officer, 0)
	if err := r.db.Order("id ASC").Find(&officers).Error; err != nil {
		return nil, err
	}
	return officers, nil
}

// Count 警员总数
func (r *GormOfficerRepository) Count() (int64, error) {
	var total int64
	if err := r.db.Model(&models.Officer{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// ListRecentPromotions 最近晋升的警员
func (r *GormOfficerRepository) ListRecentPromotions(limit int) ([]models.Officer, error) {
	query := r.db.Where("promoted_at IS NOT NULL").Order("promoted_at DESC").Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	officers := make([]models.Officer, 0)
	if err := query.Find(&officers).Error; err != nil {
		return nil, err
	}
	return officers, nil
}

// Update 更新基础字段；警衔与晋升时间只能经由 Promote 变更
// 返回是否命中记录
func (r *GormOfficerRepository) Update(officer *models.Officer) (bool, error) {
	if officer == nil {
		return false, nil
	}
	result := r.db.Model(&models.Officer{}).Where("id = ?", officer.ID).Updates(map[string]interface{}{
		"name":       officer.Name,
		"start_date": officer.StartDate,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Promote 仅当当前警衔仍为 fromRank 时写入新警衔与晋升时间
// 记录已删除或已被并发晋升时返回 false
func (r *GormOfficerRepository) Promote(id uint, fromRank, toRank string, promotedAt time.Time) (bool, error) {
	result := r.db.Model(&models.Officer{}).
		Where("id = ? AND rank = ?", id, fromRank).
		Updates(map[string]interface{}{
			"rank":        toRank,
			"promoted_at": promotedAt,
			"updated_at":  promotedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Delete 删除警员，返回是否确有记录被删除
func (r *GormOfficerRepository) Delete(id uint) (bool, error) {
	result := r.db.Delete(&models.Officer{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
