package analytics

import (
	"github.com/shopspring/decimal"
)

// Score 输出时保留两位小数的数值
// 计算过程保持全精度，只在响应边界取整
type Score float64

// MarshalJSON 以定点两位小数输出 JSON 数字
func (s Score) MarshalJSON() ([]byte, error) {
	return []byte(decimal.NewFromFloat(float64(s)).StringFixed(2)), nil
}

// Scores 把技能均值转为输出格式
func Scores(values map[string]float64) map[string]Score {
	out := make(map[string]Score, len(values))
	for name, value := range values {
		out[name] = Score(value)
	}
	return out
}
