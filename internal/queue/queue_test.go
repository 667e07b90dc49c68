package queue

import (
	"context"
	"errors"
	"testing"

	"github.com/officer-registry/internal/config"
	"github.com/officer-registry/internal/constants"
	"github.com/officer-registry/internal/models"
)

func TestAuditRecordTaskRoundTrip(t *testing.T) {
	actorID := uint(3)
	payload := AuditRecordPayload{Log: models.AuditLog{
		Action:       constants.AuditActionPromote,
		ActorID:      &actorID,
		TargetEntity: constants.EntityOfficer,
		TargetID:     12,
		Metadata:     models.JSON{"name": "Ana"},
	}}
	task, err := NewAuditRecordTask(payload)
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if task.Type() != TaskAuditRecord {
		t.Fatalf("task type want %s got %s", TaskAuditRecord, task.Type())
	}
	parsed, err := ParseAuditRecordPayload(task.Payload())
	if err != nil {
		t.Fatalf("parse payload failed: %v", err)
	}
	if parsed.Log.TargetID != 12 || parsed.Log.ActorID == nil || *parsed.Log.ActorID != 3 {
		t.Fatalf("unexpected payload: %+v", parsed.Log)
	}
	if parsed.Log.Metadata.String("name") != "Ana" {
		t.Fatalf("metadata lost: %v", parsed.Log.Metadata)
	}
}

func TestDisabledClientRejectsAuditRecord(t *testing.T) {
	client, err := NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if client.Enabled() {
		t.Fatalf("client should be disabled")
	}
	if err := client.EnqueueAuditRecord(context.Background(), AuditRecordPayload{}); !errors.Is(err, ErrQueueDisabled) {
		t.Fatalf("want ErrQueueDisabled got %v", err)
	}
}

func TestBuildServerConfigDefaults(t *testing.T) {
	opt, cfg := BuildServerConfig(nil)
	if opt.Addr != "127.0.0.1:6379" {
		t.Fatalf("addr want 127.0.0.1:6379 got %s", opt.Addr)
	}
	if cfg.Queues[AuditQueue] == 0 || cfg.Concurrency != 10 {
		t.Fatalf("unexpected server config: %+v", cfg)
	}
}
