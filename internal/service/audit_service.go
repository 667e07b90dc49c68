package service

import (
	"strings"

	"github.com/officer-registry/internal/models"
	"github.com/officer-registry/internal/repository"
)

const (
	defaultAuditPage     = 1
	defaultAuditPageSize = 10
	maxAuditPageSize     = 100
)

// AuditService 审计日志查询
type AuditService struct {
	repo repository.AuditLogRepository
}

// NewAuditService 创建审计查询服务
func NewAuditService(repo repository.AuditLogRepository) *AuditService {
	return &AuditService{repo: repo}
}

// AuditQuery 审计查询条件
type AuditQuery struct {
	ActorID      uint
	Action       string
	TargetEntity string
	Search       string
	Page         int
	PageSize     int
}

// AuditPage 审计查询结果页
type AuditPage struct {
	Page         int               `json:"page"`
	Limit        int               `json:"limit"`
	TotalPages   int               `json:"totalPages"`
	TotalResults int64             `json:"totalResults"`
	Results      []models.AuditLog `json:"results"`
}

// Query 精确条件下推到存储；关键字在取回后过滤；分页最后进行
func (s *AuditService) Query(query AuditQuery) (*AuditPage, error) {
	page, pageSize := normalizeAuditPagination(query.Page, query.PageSize)
	filter := repository.AuditLogListFilter{
		ActorID:      query.ActorID,
		Action:       strings.TrimSpace(query.Action),
		TargetEntity: strings.TrimSpace(query.TargetEntity),
	}
	search := strings.TrimSpace(query.Search)

	if search == "" {
		filter.Page = page
		filter.PageSize = pageSize
		logs, total, err := s.repo.List(filter)
		if err != nil {
			return nil, err
		}
		return buildAuditPage(page, pageSize, total, logs), nil
	}

	filter.Search = search
	candidates, _, err := s.repo.List(filter)
	if err != nil {
		return nil, err
	}
	matched := make([]models.AuditLog, 0, len(candidates))
	for _, log := range candidates {
		if matchesAuditSearch(log, search) {
			matched = append(matched, log)
		}
	}
	total := int64(len(matched))
	start := (page - 1) * pageSize
	if start > len(matched) {
		start = len(matched)
	}
	end := start + pageSize
	if end > len(matched) {
		end = len(matched)
	}
	return buildAuditPage(page, pageSize, total, matched[start:end]), nil
}

func normalizeAuditPagination(page, pageSize int) (int, int) {
	if page <= 0 {
		page = defaultAuditPage
	}
	if pageSize <= 0 {
		pageSize = defaultAuditPageSize
	}
	if pageSize > maxAuditPageSize {
		pageSize = maxAuditPageSize
	}
	return page, pageSize
}

func buildAuditPage(page, pageSize int, total int64, logs []models.AuditLog) *AuditPage {
	if logs == nil {
		logs = []models.AuditLog{}
	}
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return &AuditPage{
		Page:         page,
		Limit:        pageSize,
		TotalPages:   totalPages,
		TotalResults: total,
		Results:      logs,
	}
}

// matchesAuditSearch 对实体类型、动作、端点与两个元数据名称字段做大小写无关的包含匹配
func matchesAuditSearch(log models.AuditLog, search string) bool {
	needle := strings.ToLower(search)
	for _, field := range []string{
		log.TargetEntity,
		log.Action,
		log.Endpoint,
		log.Metadata.String("name"),
		log.Metadata.String("officerName"),
	} {
		if field != "" && strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
