// Package seed 初始化管理员与演示数据
// 所有写入都经过业务服务，审计与缓存失效和线上请求一致
package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/officer-registry/internal/audit"
	"github.com/officer-registry/internal/constants"
	"github.com/officer-registry/internal/logger"
	"github.com/officer-registry/internal/provider"
	"github.com/officer-registry/internal/service"
)

// cliSource 命令行写入的审计来源
var cliSource = audit.Source{Method: "CLI", Endpoint: "seed"}

// ErrEvaluatorNotFound 指定的考核人不存在
var ErrEvaluatorNotFound = errors.New("evaluator user not found")

// AdminInput 创建管理员的参数
type AdminInput struct {
	Username    string
	Password    string
	OfficerName string
}

// Admin 创建管理员账号；用户名已存在时视为成功并返回 false
func Admin(ctx context.Context, c *provider.Container, input AdminInput) (bool, error) {
	_, err := c.AuthService.Register(ctx, service.RequestMeta{Source: cliSource}, service.RegisterInput{
		Username:    input.Username,
		Password:    input.Password,
		OfficerName: input.OfficerName,
		Role:        constants.RoleAdmin,
	})
	if errors.Is(err, service.ErrUsernameExists) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// DemoOfficer 演示警员及其历次考核的统一分数
type DemoOfficer struct {
	Name       string
	Rank       string
	StartDate  time.Time
	Scores     []float64
	Promotions int
}

// DemoOfficers 演示数据集
func DemoOfficers() []DemoOfficer {
	return []DemoOfficer{
		{Name: "Joao Silva", Rank: "Cadete", StartDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), Scores: []float64{6, 8}, Promotions: 1},
		{Name: "Maria Souza", Rank: "Police Officer", StartDate: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC), Scores: []float64{9, 8.5, 9.5}},
		{Name: "Carlos Lima", Rank: "Deputy", StartDate: time.Date(2022, 9, 20, 0, 0, 0, 0, time.UTC), Scores: []float64{7}},
		{Name: "Ana Pereira", Rank: "Senior Ranger", StartDate: time.Date(2021, 3, 10, 0, 0, 0, 0, time.UTC), Promotions: 2},
	}
}

// DemoResult 演示数据写入结果
type DemoResult struct {
	Officers    int `json:"officers"`
	Evaluations int `json:"evaluations"`
	Promotions  int `json:"promotions"`
	Skipped     int `json:"skipped"`
}

// Demo 以指定用户身份写入演示数据，已存在同名警员时跳过
func Demo(ctx context.Context, c *provider.Container, evaluatorUsername string) (DemoResult, error) {
	var result DemoResult
	evaluator, err := c.UserRepo.GetByUsername(strings.TrimSpace(evaluatorUsername))
	if err != nil {
		return result, err
	}
	if evaluator == nil {
		return result, ErrEvaluatorNotFound
	}
	meta := service.RequestMeta{
		Actor:  &audit.Actor{ID: evaluator.ID, Username: evaluator.Username, Role: evaluator.Role},
		Source: cliSource,
	}

	existing, err := c.OfficerService.List(ctx)
	if err != nil {
		return result, err
	}
	names := make(map[string]struct{}, len(existing))
	for _, officer := range existing {
		names[officer.Name] = struct{}{}
	}

	for _, demo := range DemoOfficers() {
		if _, ok := names[demo.Name]; ok {
			result.Skipped++
			continue
		}
		startDate := demo.StartDate
		officer, err := c.OfficerService.Create(ctx, meta, service.OfficerInput{Name: demo.Name, Rank: demo.Rank, StartDate: &startDate})
		if err != nil {
			return result, fmt.Errorf("create officer %s: %w", demo.Name, err)
		}
		result.Officers++

		for _, score := range demo.Scores {
			if _, err := c.EvaluationService.Create(ctx, meta, service.EvaluationInput{
				OfficerID: officer.ID,
				Skills:    uniformSkills(score),
			}); err != nil {
				return result, fmt.Errorf("evaluate officer %s: %w", demo.Name, err)
			}
			result.Evaluations++
		}
		for i := 0; i < demo.Promotions; i++ {
			if _, err := c.OfficerService.Promote(ctx, meta, officer.ID); err != nil {
				return result, fmt.Errorf("promote officer %s: %w", demo.Name, err)
			}
			result.Promotions++
		}
	}

	logger.Infow("seed_demo_completed",
		"officers", result.Officers,
		"evaluations", result.Evaluations,
		"promotions", result.Promotions,
		"skipped", result.Skipped,
	)
	return result, nil
}

func uniformSkills(score float64) service.SkillsInput {
	value := func() *float64 {
		v := score
		return &v
	}
	return service.SkillsInput{
		IncidentReport:    value(),
		Approach:          value(),
		IdentityRecord:    value(),
		Negotiation:       value(),
		Arrest:            value(),
		PatrolPositioning: value(),
		LawKnowledge:      value(),
	}
}
