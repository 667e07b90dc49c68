package service

import (
	"context"

	"github.com/officer-registry/internal/audit"
	"github.com/officer-registry/internal/cache"
)

// RequestMeta 触发写操作的主体与请求来源
type RequestMeta struct {
	Actor  *audit.Actor
	Source audit.Source
}

// ActorID 返回主体 ID，匿名为 0
func (m RequestMeta) ActorID() uint {
	if m.Actor == nil {
		return 0
	}
	return m.Actor.ID
}

// Mutation 一次已提交写操作的副作用描述
type Mutation struct {
	Action    string
	Entity    string
	EntityID  uint
	OfficerID uint
	Metadata  map[string]interface{}
	SkipAudit bool
}

// mutationCoordinator 所有写操作共用的收尾流程：
// 主写入成功后先记审计，再删除受影响的缓存视图
type mutationCoordinator struct {
	recorder audit.Recorder
	views    *cache.ReadThrough
}

func newMutationCoordinator(recorder audit.Recorder, views *cache.ReadThrough) *mutationCoordinator {
	if recorder == nil {
		recorder = audit.NopRecorder{}
	}
	return &mutationCoordinator{recorder: recorder, views: views}
}

// commit 只能在主写入成功之后调用；审计与缓存失败都不会返回给调用方
func (m *mutationCoordinator) commit(ctx context.Context, meta RequestMeta, mutation Mutation) {
	if m == nil {
		return
	}
	if !mutation.SkipAudit {
		m.recorder.Record(ctx, audit.Entry{
			Action:       mutation.Action,
			Actor:        meta.Actor,
			TargetEntity: mutation.Entity,
			TargetID:     mutation.EntityID,
			Metadata:     mutation.Metadata,
			Source:       meta.Source,
		})
	}
	if keys := cache.InvalidationSet(mutation.Entity, mutation.Action, mutation.OfficerID); len(keys) > 0 {
		m.views.Invalidate(ctx, keys...)
	}
}
