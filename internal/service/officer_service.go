package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/officer-registry/internal/audit"
	"github.com/officer-registry/internal/cache"
	"github.com/officer-registry/internal/constants"
	"github.com/officer-registry/internal/logger"
	"github.com/officer-registry/internal/models"
	"github.com/officer-registry/internal/rank"
	"github.com/officer-registry/internal/repository"
)

// OfficerService 警员服务
type OfficerService struct {
	repo      repository.OfficerRepository
	views     *cache.ReadThrough
	mutations *mutationCoordinator
	now       func() time.Time
}

// NewOfficerService 创建警员服务
func NewOfficerService(repo repository.OfficerRepository, views *cache.ReadThrough, recorder audit.Recorder) *OfficerService {
	return &OfficerService{
		repo:      repo,
		views:     views,
		mutations: newMutationCoordinator(recorder, views),
		now:       time.Now,
	}
}

// OfficerInput 创建/更新警员的输入
// 更新时 Rank 可留空；非空时必须与当前警衔一致
type OfficerInput struct {
	Name      string
	Rank      string
	StartDate *time.Time
}

// OfficerCount 警员总数视图
type OfficerCount struct {
	Total int64 `json:"total"`
}

// RecentPromotion 最近晋升视图
type RecentPromotion struct {
	Name       string    `json:"name"`
	NewRank    string    `json:"newRank"`
	PromotedAt time.Time `json:"promotedAt"`
}

// PromotionResult 晋升结果
type PromotionResult struct {
	OfficerID  uint      `json:"officerId"`
	OldRank    string    `json:"oldRank"`
	NewRank    string    `json:"newRank"`
	PromotedAt time.Time `json:"promotedAt"`
}

func normalizeOfficerInput(input OfficerInput, rankRequired bool) (OfficerInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Rank = strings.TrimSpace(input.Rank)
	length := utf8.RuneCountInString(input.Name)
	if length < constants.OfficerNameMinLength || length > constants.OfficerNameMaxLength {
		return input, fmt.Errorf("%w: name must have %d-%d characters", ErrOfficerInvalid, constants.OfficerNameMinLength, constants.OfficerNameMaxLength)
	}
	if (rankRequired || input.Rank != "") && !rank.Valid(input.Rank) {
		return input, ErrOfficerRankInvalid
	}
	if input.StartDate == nil || input.StartDate.IsZero() {
		return input, fmt.Errorf("%w: startDate is required", ErrOfficerInvalid)
	}
	return input, nil
}

// Create 创建警员
func (s *OfficerService) Create(ctx context.Context, meta RequestMeta, input OfficerInput) (*models.Officer, error) {
	input, err := normalizeOfficerInput(input, true)
	if err != nil {
		return nil, err
	}
	officer := &models.Officer{
		Name:         input.Name,
		Rank:         input.Rank,
		StartDate:    input.StartDate.UTC(),
		RegisterDate: s.now().UTC(),
	}
	if err := s.repo.Create(officer); err != nil {
		return nil, err
	}

	s.mutations.commit(ctx, meta, Mutation{
		Action:    constants.AuditActionCreate,
		Entity:    constants.EntityOfficer,
		EntityID:  officer.ID,
		OfficerID: officer.ID,
		Metadata:  map[string]interface{}{
			"name": officer.Name,
			"rank": officer.Rank,
		},
	})
	return officer, nil
}

// Update 更新警员基础信息；警衔只能通过 Promote 逐级变更
// 只有字段确实变化时才写审计
// 并发更新同一警员时，审计中的 before 取自本次读取，可能与真实前值不一致
func (s *OfficerService) Update(ctx context.Context, meta RequestMeta, id uint, input OfficerInput) (*models.Officer, error) {
	input, err := normalizeOfficerInput(input, false)
	if err != nil {
		return nil, err
	}
	original, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if original == nil {
		return nil, ErrOfficerNotFound
	}
	if input.Rank != "" && input.Rank != original.Rank {
		return nil, ErrOfficerRankLocked
	}

	updated := *original
	updated.Name = input.Name
	updated.StartDate = input.StartDate.UTC()
	found, err := s.repo.Update(&updated)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrOfficerNotFound
	}

	changes := audit.Diff(
		audit.Field{Name: "name", Before: original.Name, After: updated.Name},
		audit.Field{Name: "startDate", Before: original.StartDate.UTC(), After: updated.StartDate},
	)
	s.mutations.commit(ctx, meta, Mutation{
		Action:    constants.AuditActionUpdate,
		Entity:    constants.EntityOfficer,
		EntityID:  updated.ID,
		OfficerID: updated.ID,
		Metadata:  map[string]interface{}{
			"changes": audit.ChangesMetadata(changes),
			"name":    updated.Name,
		},
		SkipAudit: len(changes) == 0,
	})
	return &updated, nil
}

// Delete 删除警员；已有考核保留
func (s *OfficerService) Delete(ctx context.Context, meta RequestMeta, id uint) error {
	officer, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if officer == nil {
		return ErrOfficerNotFound
	}
	deleted, err := s.repo.Delete(id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrOfficerNotFound
	}

	s.mutations.commit(ctx, meta, Mutation{
		Action:    constants.AuditActionDelete,
		Entity:    constants.EntityOfficer,
		EntityID:  id,
		OfficerID: id,
		Metadata:  map[string]interface{}{
			"name":      officer.Name,
			"rank":      officer.Rank,
			"startDate": officer.StartDate,
		},
	})
	return nil
}

// Promote 晋升一级
func (s *OfficerService) Promote(ctx context.Context, meta RequestMeta, id uint) (*PromotionResult, error) {
	officer, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if officer == nil {
		return nil, ErrOfficerNotFound
	}
	next, err := rank.Next(officer.Rank)
	if err != nil {
		switch {
		case errors.Is(err, rank.ErrTopRank):
			return nil, ErrOfficerTopRank
		case errors.Is(err, rank.ErrUnknownRank):
			return nil, ErrOfficerRankInvalid
		default:
			return nil, err
		}
	}

	promotedAt := s.now().UTC()
	promoted, err := s.repo.Promote(officer.ID, officer.Rank, next, promotedAt)
	if err != nil {
		return nil, err
	}
	if !promoted {
		return nil, s.promotionMissed(officer.ID)
	}
	logger.Ctx(ctx).Infow("officer_promoted", "officer_id", officer.ID, "old_rank", officer.Rank, "new_rank", next)

	s.mutations.commit(ctx, meta, Mutation{
		Action:    constants.AuditActionPromote,
		Entity:    constants.EntityOfficer,
		EntityID:  officer.ID,
		OfficerID: officer.ID,
		Metadata:  map[string]interface{}{
			"oldRank":    officer.Rank,
			"newRank":    next,
			"name":       officer.Name,
			"promotedAt": promotedAt,
		},
	})
	return &PromotionResult{
		OfficerID:  officer.ID,
		OldRank:    officer.Rank,
		NewRank:    next,
		PromotedAt: promotedAt,
	}, nil
}

// promotionMissed 条件更新未命中时区分记录已删除与并发晋升
func (s *OfficerService) promotionMissed(id uint) error {
	current, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if current == nil {
		return ErrOfficerNotFound
	}
	return ErrOfficerConflict
}

// Get 获取单个警员
func (s *OfficerService) Get(id uint) (*models.Officer, error) {
	officer, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if officer == nil {
		return nil, ErrOfficerNotFound
	}
	return officer, nil
}

// List 全部警员，按警衔由低到高
func (s *OfficerService) List(ctx context.Context) ([]models.Officer, error) {
	return cache.Fetch(ctx, s.views, cache.KeyOfficersAll, func(context.Context) ([]models.Officer, error) {
		officers, err := s.repo.List()
		if err != nil {
			return nil, err
		}
		sort.SliceStable(officers, func(i, j int) bool {
			return rank.Compare(officers[i].Rank, officers[j].Rank) < 0
		})
		return officers, nil
	})
}

// Count 警员总数
func (s *OfficerService) Count(ctx context.Context) (OfficerCount, error) {
	return cache.Fetch(ctx, s.views, cache.KeyOfficersCount, func(context.Context) (OfficerCount, error) {
		total, err := s.repo.Count()
		if err != nil {
			return OfficerCount{}, err
		}
		return OfficerCount{Total: total}, nil
	})
}

// RecentPromotions 最近晋升
func (s *OfficerService) RecentPromotions(ctx context.Context) ([]RecentPromotion, error) {
	return cache.Fetch(ctx, s.views, cache.KeyOfficersRecentPromotions, func(context.Context) ([]RecentPromotion, error) {
		officers, err := s.repo.ListRecentPromotions(constants.RecentListLimit)
		if err != nil {
			return nil, err
		}
		items := make([]RecentPromotion, 0, len(officers))
		for _, officer := range officers {
			if officer.PromotedAt == nil {
				continue
			}
			items = append(items, RecentPromotion{
				Name:       officer.Name,
				NewRank:    officer.Rank,
				PromotedAt: *officer.PromotedAt,
			})
		}
		return items, nil
	})
}
