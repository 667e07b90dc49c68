// Package analytics 考核聚合计算：技能均值、按快照警衔分组统计、排行榜
// 全部为纯函数，输入相同则输出相同
package analytics

import (
	"sort"

	"github.com/officer-registry/internal/constants"
	"github.com/officer-registry/internal/models"
	"github.com/officer-registry/internal/rank"
)

// OverallKey 全部考核的汇总分组
const OverallKey = "geral"

// Sample 参与聚合的一条考核
type Sample struct {
	EvaluationID uint
	OfficerID    uint
	Rank         string
	Skills       models.Skills
}

// SamplesFrom 从考核记录构造样本
func SamplesFrom(evaluations []models.Evaluation) []Sample {
	samples := make([]Sample, 0, len(evaluations))
	for _, evaluation := range evaluations {
		samples = append(samples, Sample{
			EvaluationID: evaluation.ID,
			OfficerID:    evaluation.OfficerID,
			Rank:         evaluation.RankAtEvaluation,
			Skills:       evaluation.Skills,
		})
	}
	return samples
}

// AverageSkills 每项技能的算术平均，空输入返回空 map
func AverageSkills(samples []Sample) map[string]float64 {
	out := make(map[string]float64)
	if len(samples) == 0 {
		return out
	}
	sums := make([]float64, len(models.SkillNames))
	for _, sample := range samples {
		for i, value := range sample.Skills.Values() {
			sums[i] += value
		}
	}
	count := float64(len(samples))
	for i, name := range models.SkillNames {
		out[name] = sums[i] / count
	}
	return out
}

// OfficerStats 单个警员的考核统计
type OfficerStats struct {
	OfficerID         uint
	TotalEvaluations  int
	Ranks             []string
	EvaluationsByRank map[string]int
	AverageSkills     map[string]map[string]float64
}

// OfficerStatistics 统计某警员的考核，按考核时的警衔快照分组
func OfficerStatistics(officerID uint, samples []Sample) OfficerStats {
	stats := OfficerStats{
		OfficerID:         officerID,
		Ranks:             []string{},
		EvaluationsByRank: make(map[string]int),
		AverageSkills:     make(map[string]map[string]float64),
	}
	own := make([]Sample, 0, len(samples))
	byRank := make(map[string][]Sample)
	for _, sample := range samples {
		if sample.OfficerID != officerID {
			continue
		}
		own = append(own, sample)
		byRank[sample.Rank] = append(byRank[sample.Rank], sample)
	}
	stats.TotalEvaluations = len(own)
	if len(own) == 0 {
		return stats
	}

	stats.AverageSkills[OverallKey] = AverageSkills(own)
	for rankName, group := range byRank {
		stats.Ranks = append(stats.Ranks, rankName)
		stats.EvaluationsByRank[rankName] = len(group)
		stats.AverageSkills[rankName] = AverageSkills(group)
	}
	rank.SortRanks(stats.Ranks)
	return stats
}

// LeaderboardRow 排行榜一行
type LeaderboardRow struct {
	OfficerID   uint
	AvgScore    float64
	Evaluations int
}

// SampleScore 单条考核的标量得分：技能向量的均值
func SampleScore(skills models.Skills) float64 {
	values := skills.Values()
	var sum float64
	for _, value := range values {
		sum += value
	}
	return sum / float64(len(values))
}

// rankOfficers 全部有考核的警员按平均分降序，同分按警员 ID 升序
func rankOfficers(samples []Sample) []LeaderboardRow {
	type acc struct {
		sum   float64
		count int
	}
	perOfficer := make(map[uint]*acc)
	for _, sample := range samples {
		item, ok := perOfficer[sample.OfficerID]
		if !ok {
			item = &acc{}
			perOfficer[sample.OfficerID] = item
		}
		item.sum += SampleScore(sample.Skills)
		item.count++
	}

	rows := make([]LeaderboardRow, 0, len(perOfficer))
	for officerID, item := range perOfficer {
		rows = append(rows, LeaderboardRow{
			OfficerID:   officerID,
			AvgScore:    item.sum / float64(item.count),
			Evaluations: item.count,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].AvgScore != rows[j].AvgScore {
			return rows[i].AvgScore > rows[j].AvgScore
		}
		return rows[i].OfficerID < rows[j].OfficerID
	})
	return rows
}

// Leaderboard 前 topN 名，topN <= 0 时取默认值
// include 非空时先剔除不需要的警员（例如已删除），再截取前 topN 名
func Leaderboard(samples []Sample, topN int, include func(officerID uint) bool) []LeaderboardRow {
	if topN <= 0 {
		topN = constants.LeaderboardDefaultTop
	}
	rows := make([]LeaderboardRow, 0, topN)
	for _, row := range rankOfficers(samples) {
		if len(rows) >= topN {
			break
		}
		if include != nil && !include(row.OfficerID) {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}
