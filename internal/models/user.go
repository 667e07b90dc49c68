package models

import "time"

// User 系统用户（管理员或联邦考核员）
type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`                                   // 主键
	Username     string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"` // 登录名
	PasswordHash string    `gorm:"not null" json:"-"`                                      // 密码哈希（不返回给前端）
	OfficerName  string    `gorm:"type:varchar(100);not null;index" json:"officerName"`    // 对应警员姓名
	Role         string    `gorm:"type:varchar(20);not null;index" json:"role"`            // admin / federal
	CreatedAt    time.Time `gorm:"index" json:"createdAt"`                                 // 创建时间
	UpdatedAt    time.Time `json:"-"`                                                      // 更新时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
