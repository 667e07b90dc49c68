package authz

import (
	"fmt"

	"github.com/officer-registry/internal/constants"
)

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role     string
	Inherits []string
	Policies []Policy
}

// BuiltinRoleSeeds 系统预置角色矩阵
// 读接口公开，不进入策略表；这里只描述需要登录的写接口与管理接口
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: constants.RoleFederal,
			Policies: []Policy{
				{Object: "/officers", Action: "POST"},
				{Object: "/officers/:id", Action: "PUT"},
				{Object: "/officers/:id", Action: "DELETE"},
				{Object: "/officers/:id/promote", Action: "PUT"},
				{Object: "/evaluations", Action: "POST"},
				{Object: "/auth/password", Action: "PUT"},
				{Object: "/authz/me", Action: "GET"},
			},
		},
		{
			Role:     constants.RoleAdmin,
			Inherits: []string{constants.RoleFederal},
			Policies: []Policy{
				{Object: "/evaluations/:id", Action: "DELETE"},
				{Object: "/auth/register", Action: "POST"},
				{Object: "/users", Action: "GET"},
				{Object: "/audit-logs", Action: "GET"},
				{Object: "/authz/permissions", Action: "GET"},
			},
		},
	}
}

// BootstrapBuiltinRoles 初始化预置角色与默认策略，重复执行不会产生重复规则
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}

	for _, seed := range BuiltinRoleSeeds() {
		role, err := NormalizeRole(seed.Role)
		if err != nil {
			return err
		}
		for _, parent := range seed.Inherits {
			parentRole, err := NormalizeRole(parent)
			if err != nil {
				return err
			}
			if _, err := s.enforcer.AddNamedGroupingPolicy("g", role, parentRole); err != nil {
				return fmt.Errorf("link role inheritance failed: %w", err)
			}
		}
		for _, policy := range seed.Policies {
			action := NormalizeAction(policy.Action)
			if action == "" {
				return fmt.Errorf("builtin policy action is required")
			}
			if _, err := s.enforcer.AddPolicy(role, NormalizeObject(policy.Object), action); err != nil {
				return fmt.Errorf("add builtin policy failed: %w", err)
			}
		}
	}
	// 与其他实例写入的策略保持一致
	return s.reloadPolicy()
}
