package service

import (
	"context"
	"fmt"
	"time"

	"github.com/officer-registry/internal/audit"
	"github.com/officer-registry/internal/cache"
	"github.com/officer-registry/internal/constants"
	"github.com/officer-registry/internal/models"
	"github.com/officer-registry/internal/repository"
)

// unknownName 关联记录已被删除时的占位名称
const unknownName = "Desconhecido"

// EvaluationService 技能考核服务
type EvaluationService struct {
	repo      repository.EvaluationRepository
	officers  repository.OfficerRepository
	users     repository.UserRepository
	views     *cache.ReadThrough
	mutations *mutationCoordinator
	now       func() time.Time
}

// NewEvaluationService 创建考核服务
func NewEvaluationService(
	repo repository.EvaluationRepository,
	officers repository.OfficerRepository,
	users repository.UserRepository,
	views *cache.ReadThrough,
	recorder audit.Recorder,
) *EvaluationService {
	return &EvaluationService{
		repo:      repo,
		officers:  officers,
		users:     users,
		views:     views,
		mutations: newMutationCoordinator(recorder, views),
		now:       time.Now,
	}
}

// SkillsInput 七项评分输入；缺失项与越界值都会被拒绝
type SkillsInput struct {
	IncidentReport    *float64 `json:"montarOcorrencia"`
	Approach          *float64 `json:"abordagem"`
	IdentityRecord    *float64 `json:"registroIdentidade"`
	Negotiation       *float64 `json:"negociacao"`
	Arrest            *float64 `json:"efetuarPrisao"`
	PatrolPositioning *float64 `json:"posicionamentoPatrulha"`
	LawKnowledge      *float64 `json:"conhecimentoLeis"`
}

// ToSkills 校验并转换为存储结构
func (in SkillsInput) ToSkills() (models.Skills, error) {
	values := []*float64{
		in.IncidentReport,
		in.Approach,
		in.IdentityRecord,
		in.Negotiation,
		in.Arrest,
		in.PatrolPositioning,
		in.LawKnowledge,
	}
	for i, value := range values {
		name := models.SkillNames[i]
		if value == nil {
			return models.Skills{}, fmt.Errorf("%w: %s is required", ErrEvaluationInvalid, name)
		}
		if *value < constants.SkillScoreMin || *value > constants.SkillScoreMax {
			return models.Skills{}, fmt.Errorf("%w: %s must be between %d and %d", ErrEvaluationInvalid, name, constants.SkillScoreMin, constants.SkillScoreMax)
		}
	}
	return models.Skills{
		IncidentReport:    *in.IncidentReport,
		Approach:          *in.Approach,
		IdentityRecord:    *in.IdentityRecord,
		Negotiation:       *in.Negotiation,
		Arrest:            *in.Arrest,
		PatrolPositioning: *in.PatrolPositioning,
		LawKnowledge:      *in.LawKnowledge,
	}, nil
}

// EvaluationInput 创建考核的输入
type EvaluationInput struct {
	OfficerID uint
	Skills    SkillsInput
}

// EvaluationView 考核列表项
type EvaluationView struct {
	ID               uint          `json:"id"`
	OfficerID        uint          `json:"officerId"`
	RankAtEvaluation string        `json:"rankAtEvaluation"`
	Skills           models.Skills `json:"skills"`
	Date             time.Time     `json:"date"`
	Evaluator        string        `json:"evaluator"`
}

// RecentEvaluation 最近考核视图
type RecentEvaluation struct {
	Name      string    `json:"name"`
	Rank      string    `json:"rank"`
	Date      time.Time `json:"date"`
	Evaluator string    `json:"evaluator"`
}

// Create 记录一次考核；警衔取自警员当前警衔
func (s *EvaluationService) Create(ctx context.Context, meta RequestMeta, input EvaluationInput) (*models.Evaluation, error) {
	if meta.ActorID() == 0 {
		return nil, ErrActorRequired
	}
	skills, err := input.Skills.ToSkills()
	if err != nil {
		return nil, err
	}
	officer, err := s.officers.GetByID(input.OfficerID)
	if err != nil {
		return nil, err
	}
	if officer == nil {
		return nil, ErrOfficerNotFound
	}

	evaluation := &models.Evaluation{
		OfficerID:        officer.ID,
		EvaluatorID:      meta.ActorID(),
		RankAtEvaluation: officer.Rank,
		Skills:           skills,
		Date:             s.now().UTC(),
	}
	if err := s.repo.Create(evaluation); err != nil {
		return nil, err
	}

	s.mutations.commit(ctx, meta, Mutation{
		Action:    constants.AuditActionCreate,
		Entity:    constants.EntityEvaluation,
		EntityID:  evaluation.ID,
		OfficerID: officer.ID,
		Metadata:  map[string]interface{}{
			"officerId":   officer.ID,
			"officerName": officer.Name,
			"scores":      skills.Map(),
		},
	})
	return evaluation, nil
}

// Delete 删除考核
func (s *EvaluationService) Delete(ctx context.Context, meta RequestMeta, id uint) error {
	evaluation, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if evaluation == nil {
		return ErrEvaluationNotFound
	}

	officerName := unknownName
	if officer, err := s.officers.GetByID(evaluation.OfficerID); err == nil && officer != nil {
		officerName = officer.Name
	}
	evaluatorName := unknownName
	if evaluator, err := s.users.GetByID(evaluation.EvaluatorID); err == nil && evaluator != nil {
		evaluatorName = evaluator.OfficerName
	}

	deleted, err := s.repo.Delete(id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrEvaluationNotFound
	}

	s.mutations.commit(ctx, meta, Mutation{
		Action:    constants.AuditActionDelete,
		Entity:    constants.EntityEvaluation,
		EntityID:  evaluation.ID,
		OfficerID: evaluation.OfficerID,
		Metadata:  map[string]interface{}{
			"officerId":   evaluation.OfficerID,
			"officerName": officerName,
			"scores":      evaluation.Skills.Map(),
			"evaluator":   evaluatorName,
		},
	})
	return nil
}

// ListByOfficer 某警员的全部考核，新的在前
func (s *EvaluationService) ListByOfficer(ctx context.Context, officerID uint) ([]EvaluationView, error) {
	return cache.Fetch(ctx, s.views, cache.OfficerEvaluationsKey(officerID), func(context.Context) ([]EvaluationView, error) {
		evaluations, err := s.repo.ListByOfficer(officerID)
		if err != nil {
			return nil, err
		}
		evaluators, err := s.evaluatorNames(evaluations)
		if err != nil {
			return nil, err
		}
		items := make([]EvaluationView, 0, len(evaluations))
		for _, evaluation := range evaluations {
			name, ok := evaluators[evaluation.EvaluatorID]
			if !ok {
				name = unknownName
			}
			items = append(items, EvaluationView{
				ID:               evaluation.ID,
				OfficerID:        evaluation.OfficerID,
				RankAtEvaluation: evaluation.RankAtEvaluation,
				Skills:           evaluation.Skills,
				Date:             evaluation.Date,
				Evaluator:        name,
			})
		}
		return items, nil
	})
}

// Recent 最近考核；警员或考核人已删除的记录被跳过，因此可能少于上限
func (s *EvaluationService) Recent(ctx context.Context) ([]RecentEvaluation, error) {
	return cache.Fetch(ctx, s.views, cache.KeyEvaluationsRecent, func(context.Context) ([]RecentEvaluation, error) {
		evaluations, err := s.repo.ListRecent(constants.RecentListLimit)
		if err != nil {
			return nil, err
		}
		officerIDs := make([]uint, 0, len(evaluations))
		for _, evaluation := range evaluations {
			officerIDs = append(officerIDs, evaluation.OfficerID)
		}
		officers, err := s.officers.ListByIDs(officerIDs)
		if err != nil {
			return nil, err
		}
		officerByID := make(map[uint]models.Officer, len(officers))
		for _, officer := range officers {
			officerByID[officer.ID] = officer
		}
		evaluators, err := s.evaluatorNames(evaluations)
		if err != nil {
			return nil, err
		}

		items := make([]RecentEvaluation, 0, len(evaluations))
		for _, evaluation := range evaluations {
			officer, ok := officerByID[evaluation.OfficerID]
			if !ok {
				continue
			}
			evaluator, ok := evaluators[evaluation.EvaluatorID]
			if !ok {
				continue
			}
			items = append(items, RecentEvaluation{
				Name:      officer.Name,
				Rank:      officer.Rank,
				Date:      evaluation.Date,
				Evaluator: evaluator,
			})
		}
		return items, nil
	})
}

func (s *EvaluationService) evaluatorNames(evaluations []models.Evaluation) (map[uint]string, error) {
	ids := make([]uint, 0, len(evaluations))
	seen := make(map[uint]struct{}, len(evaluations))
	for _, evaluation := range evaluations {
		if _, ok := seen[evaluation.EvaluatorID]; ok {
			continue
		}
		seen[evaluation.EvaluatorID] = struct{}{}
		ids = append(ids, evaluation.EvaluatorID)
	}
	users, err := s.users.ListByIDs(ids)
	if err != nil {
		return nil, err
	}
	names := make(map[uint]string, len(users))
	for _, user := range users {
		names[user.ID] = user.OfficerName
	}
	return names, nil
}
