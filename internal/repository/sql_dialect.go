package repository

import (
	"fmt"
	"strings"
	"unicode"

	"gorm.io/gorm"
)

// auditMetadataSearchKeys 审计元数据中参与搜索的名称字段
var auditMetadataSearchKeys = []string{"name", "officerName"}

// dbDialectName 获取数据库方言名称，默认按 sqlite 处理。
func dbDialectName(db *gorm.DB) string {
	if db == nil || db.Dialector == nil {
		return "sqlite"
	}
	name := strings.ToLower(strings.TrimSpace(db.Dialector.Name()))
	if name == "" {
		return "sqlite"
	}
	return name
}

func jsonTextExprByDialect(dialect, column, key string) string {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "postgres", "postgresql":
		// postgres 统一转 jsonb 后再使用 ->> 提取文本
		return fmt.Sprintf("(%s::jsonb ->> '%s')", column, key)
	default:
		// sqlite 使用 json_extract，键名加引号
		return fmt.Sprintf("json_extract(%s, '$.\"%s\"')", column, key)
	}
}

// buildLikeCondition 构建普通列 + JSON 字段的 LIKE 条件，并返回参数数量。
func buildLikeCondition(db *gorm.DB, plainColumns []string, jsonColumn string, jsonKeys []string) (string, int) {
	return buildLikeConditionByDialect(dbDialectName(db), plainColumns, jsonColumn, jsonKeys)
}

func buildLikeConditionByDialect(dialect string, plainColumns []string, jsonColumn string, jsonKeys []string) (string, int) {
	parts := make([]string, 0, len(plainColumns)+len(jsonKeys))
	argCount := 0
	operator := likeOperatorByDialect(dialect)

	for _, column := range plainColumns {
		trimmed := strings.TrimSpace(column)
		if trimmed == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %s ? ESCAPE '\\'", trimmed, operator))
		argCount++
	}

	jsonColumn = strings.TrimSpace(jsonColumn)
	if jsonColumn != "" {
		for _, key := range jsonKeys {
			parts = append(parts, fmt.Sprintf("%s %s ? ESCAPE '\\'", jsonTextExprByDialect(dialect, jsonColumn, key), operator))
			argCount++
		}
	}

	return strings.Join(parts, " OR "), argCount
}

// likeOperatorByDialect sqlite 的 LIKE 对 ASCII 本身不区分大小写
func likeOperatorByDialect(dialect string) string {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "postgres", "postgresql":
		return "ILIKE"
	default:
		return "LIKE"
	}
}

// repeatLikeArgs 生成重复的 LIKE 参数列表。
func repeatLikeArgs(like string, count int) []interface{} {
	args := make([]interface{}, 0, count)
	for i := 0; i < count; i++ {
		args = append(args, like)
	}
	return args
}

// containsLikePattern 生成转义后的 %keyword% 模式
func containsLikePattern(keyword string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + replacer.Replace(keyword) + "%"
}

// pushdownSearchable 关键字能否下推到数据库做大小写无关 LIKE
// 数据库只折叠 ASCII 大小写；K (U+212A) 与 İ (U+0130) 小写后会落到 k 和 i，
// 含这两个字母的关键字下推后会漏掉记录
func pushdownSearchable(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII {
			return false
		}
		switch unicode.ToLower(r) {
		case 'i', 'k':
			return false
		}
	}
	return true
}
