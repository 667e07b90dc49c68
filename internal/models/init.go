package models

import (
	"strings"

	"github.com/officer-registry/internal/constants"
	"github.com/officer-registry/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

const (
	defaultAdminUsername    = "admin"
	defaultAdminPassword    = "admin123"
	defaultAdminOfficerName = "Administrator"
)

// InitDefaultAdmin 初始化默认管理员账号
// 已存在任意 admin 角色用户时不做任何修改
func InitDefaultAdmin(username, password string) error {
	if DB == nil {
		return nil
	}
	var count int64
	if err := DB.Model(&User{}).Where("role = ?", constants.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	username = strings.TrimSpace(username)
	if username == "" {
		username = defaultAdminUsername
	}
	if password == "" {
		password = defaultAdminPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := User{
		Username:     username,
		PasswordHash: string(hash),
		OfficerName:  defaultAdminOfficerName,
		Role:         constants.RoleAdmin,
	}
	if err := DB.Create(&admin).Error; err != nil {
		return err
	}

	if password == defaultAdminPassword {
		logger.Warnw("default_admin_created_with_default_password", "username", username)
		logger.Warnw("default_admin_password_change_required", "username", username)
	} else {
		logger.Warnw("default_admin_created", "username", username, "password_hidden", true)
	}
	return nil
}
