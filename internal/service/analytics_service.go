package service

import (
	"context"

	"github.com/officer-registry/internal/analytics"
	"github.com/officer-registry/internal/cache"
	"github.com/officer-registry/internal/constants"
	"github.com/officer-registry/internal/models"
	"github.com/officer-registry/internal/repository"
)

// AnalyticsService 考核聚合视图
type AnalyticsService struct {
	officers    repository.OfficerRepository
	evaluations repository.EvaluationRepository
	views       *cache.ReadThrough
}

// NewAnalyticsService 创建聚合服务
func NewAnalyticsService(officers repository.OfficerRepository, evaluations repository.EvaluationRepository, views *cache.ReadThrough) *AnalyticsService {
	return &AnalyticsService{
		officers:    officers,
		evaluations: evaluations,
		views:       views,
	}
}

// Overview 全局概览
type Overview struct {
	TotalOfficers     int64                      `json:"totalOfficers"`
	TotalEvaluations  int64                      `json:"totalEvaluations"`
	EvaluatedOfficers int64                      `json:"evaluatedOfficers"`
	AverageSkills     map[string]analytics.Score `json:"averageSkills"`
}

// OfficerAnalytics 单个警员的统计视图
type OfficerAnalytics struct {
	OfficerID         uint                                  `json:"officerId"`
	TotalEvaluations  int                                   `json:"totalEvaluations"`
	Ranks             []string                              `json:"ranks"`
	EvaluationsByRank map[string]int                        `json:"evaluationsByRank"`
	AverageSkills     map[string]map[string]analytics.Score `json:"averageSkills"`
}

// RankingEntry 排行榜一行
type RankingEntry struct {
	OfficerID   uint            `json:"officerId"`
	Name        string          `json:"name"`
	Rank        string          `json:"rank"`
	AvgScore    analytics.Score `json:"avgScore"`
	Evaluations int             `json:"evaluations"`
}

// Overview 警员总数、考核总数、被考核人数与全局技能均值
func (s *AnalyticsService) Overview(ctx context.Context) (Overview, error) {
	return cache.Fetch(ctx, s.views, cache.KeyAnalyticsOverview, func(context.Context) (Overview, error) {
		totalOfficers, err := s.officers.Count()
		if err != nil {
			return Overview{}, err
		}
		totalEvaluations, err := s.evaluations.Count()
		if err != nil {
			return Overview{}, err
		}
		evaluatedOfficers, err := s.evaluations.CountDistinctOfficers()
		if err != nil {
			return Overview{}, err
		}
		samples, err := s.samples()
		if err != nil {
			return Overview{}, err
		}
		return Overview{
			TotalOfficers:     totalOfficers,
			TotalEvaluations:  totalEvaluations,
			EvaluatedOfficers: evaluatedOfficers,
			AverageSkills:     analytics.Scores(analytics.AverageSkills(samples)),
		}, nil
	})
}

// OfficerStats 按考核时警衔分组的统计；警员已删除时仍按遗留考核计算
func (s *AnalyticsService) OfficerStats(ctx context.Context, officerID uint) (OfficerAnalytics, error) {
	return cache.Fetch(ctx, s.views, cache.OfficerAnalyticsKey(officerID), func(context.Context) (OfficerAnalytics, error) {
		evaluations, err := s.evaluations.ListByOfficer(officerID)
		if err != nil {
			return OfficerAnalytics{}, err
		}
		stats := analytics.OfficerStatistics(officerID, analytics.SamplesFrom(evaluations))
		averages := make(map[string]map[string]analytics.Score, len(stats.AverageSkills))
		for group, values := range stats.AverageSkills {
			averages[group] = analytics.Scores(values)
		}
		return OfficerAnalytics{
			OfficerID:         officerID,
			TotalEvaluations:  stats.TotalEvaluations,
			Ranks:             stats.Ranks,
			EvaluationsByRank: stats.EvaluationsByRank,
			AverageSkills:     averages,
		}, nil
	})
}

// Ranking 平均分最高的警员；已删除的警员不参与排名
func (s *AnalyticsService) Ranking(ctx context.Context) ([]RankingEntry, error) {
	return cache.Fetch(ctx, s.views, cache.KeyAnalyticsRanking, func(context.Context) ([]RankingEntry, error) {
		samples, err := s.samples()
		if err != nil {
			return nil, err
		}
		officerByID, err := s.officersOf(samples)
		if err != nil {
			return nil, err
		}
		// 已删除警员的历史考核不参与排名
		rows := analytics.Leaderboard(samples, constants.LeaderboardDefaultTop, func(officerID uint) bool {
			_, ok := officerByID[officerID]
			return ok
		})

		entries := make([]RankingEntry, 0, len(rows))
		for _, row := range rows {
			officer := officerByID[row.OfficerID]
			entries = append(entries, RankingEntry{
				OfficerID:   officer.ID,
				Name:        officer.Name,
				Rank:        officer.Rank,
				AvgScore:    analytics.Score(row.AvgScore),
				Evaluations: row.Evaluations,
			})
		}
		return entries, nil
	})
}

// officersOf 加载样本中出现的警员
func (s *AnalyticsService) officersOf(samples []analytics.Sample) (map[uint]models.Officer, error) {
	seen := make(map[uint]struct{}, len(samples))
	ids := make([]uint, 0, len(samples))
	for _, sample := range samples {
		if _, ok := seen[sample.OfficerID]; ok {
			continue
		}
		seen[sample.OfficerID] = struct{}{}
		ids = append(ids, sample.OfficerID)
	}
	officers, err := s.officers.ListByIDs(ids)
	if err != nil {
		return nil, err
	}
	officerByID := make(map[uint]models.Officer, len(officers))
	for _, officer := range officers {
		officerByID[officer.ID] = officer
	}
	return officerByID, nil
}

func (s *AnalyticsService) samples() ([]analytics.Sample, error) {
	evaluations, err := s.evaluations.ListAll()
	if err != nil {
		return nil, err
	}
	return analytics.SamplesFrom(evaluations), nil
}
