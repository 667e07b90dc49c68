package repository

// AuditLogListFilter 查询审计日志列表的过滤条件
// PageSize <= 0 表示不分页，返回全部匹配记录
type AuditLogListFilter struct {
	Page         int
	PageSize     int
	ActorID      uint
	Action       string
	TargetEntity string
	Search       string
}
