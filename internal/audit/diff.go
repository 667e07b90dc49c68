package audit

import (
	"reflect"
	"time"
)

// Field 参与比对的命名字段
type Field struct {
	Name   string
	Before interface{}
	After  interface{}
}

// Change 单个字段的变更
type Change struct {
	Before interface{} `json:"before"`
	After  interface{} `json:"after"`
}

// Diff 只返回确实发生变化的字段；全部未变返回空 map
func Diff(fields ...Field) map[string]Change {
	changes := make(map[string]Change)
	for _, field := range fields {
		if field.Name == "" || equal(field.Before, field.After) {
			continue
		}
		changes[field.Name] = Change{Before: field.Before, After: field.After}
	}
	return changes
}

// ChangesMetadata 把 Diff 结果转为可写入 JSON 的元数据
func ChangesMetadata(changes map[string]Change) map[string]interface{} {
	out := make(map[string]interface{}, len(changes))
	for name, change := range changes {
		out[name] = map[string]interface{}{
			"before": change.Before,
			"after":  change.After,
		}
	}
	return out
}

func equal(a, b interface{}) bool {
	ta, okA := a.(time.Time)
	tb, okB := b.(time.Time)
	if okA && okB {
		return ta.Equal(tb)
	}
	return reflect.DeepEqual(a, b)
}
