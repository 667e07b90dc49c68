package service

import (
	"github.com/officer-registry/internal/models"
	"github.com/officer-registry/internal/repository"
)

// UserService 用户查询
type UserService struct {
	repo repository.UserRepository
}

// NewUserService 创建用户服务
func NewUserService(repo repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// List 全部用户，按警员姓名排序；密码哈希不会序列化
func (s *UserService) List() ([]models.User, error) {
	users, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}
