package cache

import (
	"fmt"

	"github.com/officer-registry/internal/constants"
)

// 聚合视图缓存 key
const (
	KeyOfficersAll              = "officers:all"
	KeyOfficersCount            = "officers:count"
	KeyOfficersRecentPromotions = "officers:recent_promotions"
	KeyEvaluationsRecent        = "evaluations:recent"
	KeyAnalyticsOverview        = "analytics:overview"
	KeyAnalyticsRanking         = "analytics:ranking"
)

// OfficerEvaluationsKey 某警员的考核列表
func OfficerEvaluationsKey(officerID uint) string {
	return fmt.Sprintf("evaluations:officer:%d", officerID)
}

// OfficerAnalyticsKey 某警员的统计视图
func OfficerAnalyticsKey(officerID uint) string {
	return fmt.Sprintf("analytics:officer:%d", officerID)
}

// InvalidationSet 返回一次写操作后必须删除的全部 key
// 新增缓存视图或写操作时必须同步维护此表
func InvalidationSet(entity, action string, officerID uint) []string {
	switch entity {
	case constants.EntityOfficer:
		switch action {
		case constants.AuditActionCreate:
			return []string{
				KeyOfficersAll,
				KeyOfficersCount,
				KeyAnalyticsOverview,
			}
		case constants.AuditActionUpdate, constants.AuditActionPromote:
			return []string{
				KeyOfficersAll,
				KeyOfficersCount,
				KeyOfficersRecentPromotions,
				KeyEvaluationsRecent,
				KeyAnalyticsRanking,
			}
		case constants.AuditActionDelete:
			return []string{
				KeyOfficersAll,
				KeyOfficersCount,
				KeyOfficersRecentPromotions,
				KeyEvaluationsRecent,
				KeyAnalyticsOverview,
				KeyAnalyticsRanking,
				OfficerEvaluationsKey(officerID),
				OfficerAnalyticsKey(officerID),
			}
		}
	case constants.EntityEvaluation:
		switch action {
		case constants.AuditActionCreate, constants.AuditActionDelete:
			return []string{
				KeyEvaluationsRecent,
				KeyAnalyticsOverview,
				KeyAnalyticsRanking,
				OfficerEvaluationsKey(officerID),
				OfficerAnalyticsKey(officerID),
			}
		}
	}
	return nil
}
