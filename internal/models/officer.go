package models

import "time"

// Officer 警员档案
// Rank 仅通过晋升接口逐级变更；PromotedAt 只由晋升写入
type Officer struct {
	ID           uint       `gorm:"primarykey" json:"id"`                        // 主键
	Name         string     `gorm:"type:varchar(50);not null;index" json:"name"` // 姓名
	Rank         string     `gorm:"type:varchar(64);not null;index" json:"rank"` // 当前警衔
	StartDate    time.Time  `gorm:"not null" json:"startDate"`                   // 入职日期
	RegisterDate time.Time  `gorm:"not null" json:"registerDate"`                // 登记时间
	PromotedAt   *time.Time `gorm:"index" json:"promotedAt"`                     // 最近一次晋升时间
	UpdatedAt    time.Time  `json:"-"`                                           // 更新时间
}

// TableName 指定表名
func (Officer) TableName() string {
	return "officers"
}
