package constants

import "time"

// 用户角色常量
const (
	RoleAdmin   = "admin"
	RoleFederal = "federal"
)

// 审计动作常量
// 动作集合是开放的，存储层不做枚举约束
const (
	AuditActionCreate         = "create"
	AuditActionUpdate         = "update"
	AuditActionDelete         = "delete"
	AuditActionPromote        = "promote"
	AuditActionLogin          = "login"
	AuditActionLoginFailed    = "login_failed"
	AuditActionRegister       = "register"
	AuditActionChangePassword = "change_password"
)

// 审计目标实体类型
const (
	EntityOfficer    = "Officer"
	EntityEvaluation = "Evaluation"
	EntityUser       = "User"
)

// 审计分发模式
const (
	AuditModeAsync = "async"
	AuditModeQueue = "queue"
	AuditModeOff   = "off"
)

// 队列与任务类型
const (
	QueueDefault    = "default"
	QueueAudit      = "audit"
	TaskAuditRecord = "audit:record"
)

// 聚合视图缓存配置
const (
	AggregateCacheTTL     = 300 * time.Second
	RecentListLimit       = 10
	LeaderboardDefaultTop = 10
)

// 技能评分范围
const (
	SkillScoreMin = 0
	SkillScoreMax = 10
)

// 警员姓名长度限制
const (
	OfficerNameMinLength = 3
	OfficerNameMaxLength = 50
)
