package models

import "time"

// SkillNames 技能字段名（对外 JSON 名），顺序固定
var SkillNames = []string{
	"montarOcorrencia",
	"abordagem",
	"registroIdentidade",
	"negociacao",
	"efetuarPrisao",
	"posicionamentoPatrulha",
	"conhecimentoLeis",
}

// Skills 七项技能评分，每项取值 [0, 10]
type Skills struct {
	IncidentReport    float64 `gorm:"not null;default:0" json:"montarOcorrencia"`       // 出警记录
	Approach          float64 `gorm:"not null;default:0" json:"abordagem"`              // 盘查
	IdentityRecord    float64 `gorm:"not null;default:0" json:"registroIdentidade"`     // 身份登记
	Negotiation       float64 `gorm:"not null;default:0" json:"negociacao"`             // 谈判
	Arrest            float64 `gorm:"not null;default:0" json:"efetuarPrisao"`          // 实施逮捕
	PatrolPositioning float64 `gorm:"not null;default:0" json:"posicionamentoPatrulha"` // 巡逻站位
	LawKnowledge      float64 `gorm:"not null;default:0" json:"conhecimentoLeis"`       // 法规知识
}

// Values 按 SkillNames 顺序返回评分
func (s Skills) Values() []float64 {
	return []float64{
		s.IncidentReport,
		s.Approach,
		s.IdentityRecord,
		s.Negotiation,
		s.Arrest,
		s.PatrolPositioning,
		s.LawKnowledge,
	}
}

// Map 以对外 JSON 名返回评分
func (s Skills) Map() map[string]float64 {
	values := s.Values()
	out := make(map[string]float64, len(values))
	for i, name := range SkillNames {
		out[name] = values[i]
	}
	return out
}

// Evaluation 技能考核记录
// RankAtEvaluation 是考核时的警衔快照，之后的晋升不会回写
type Evaluation struct {
	ID               uint      `gorm:"primarykey" json:"id"`                                    // 主键
	OfficerID        uint      `gorm:"not null;index" json:"officerId"`                         // 被考核警员
	EvaluatorID      uint      `gorm:"not null;index" json:"evaluatorId"`                       // 考核人（用户）
	RankAtEvaluation string    `gorm:"type:varchar(64);not null;index" json:"rankAtEvaluation"` // 考核时警衔
	Skills           Skills    `gorm:"embedded;embeddedPrefix:skill_" json:"skills"`            // 技能评分
	Date             time.Time `gorm:"not null;index" json:"date"`                              // 考核时间
}

// TableName 指定表名
func (Evaluation) TableName() string {
	return "evaluations"
}
