package service

import (
	"context"
	"testing"
	"time"

	"github.com/officer-registry/internal/constants"
	"github.com/officer-registry/internal/models"
	"github.com/officer-registry/internal/repository"
)

func seedAuditService(t *testing.T, fx *serviceFixture) {
	t.Helper()
	repo := repository.NewAuditLogRepository(fx.db)
	actor := fx.admin.ID
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	entries := []models.AuditLog{
		{Action: constants.AuditActionCreate, TargetEntity: constants.EntityOfficer, Endpoint: "/api/v1/officers", Metadata: models.JSON{"name": "Ana Souza"}},
		{Action: constants.AuditActionPromote, TargetEntity: constants.EntityOfficer, Endpoint: "/api/v1/officers/1/promote", Metadata: models.JSON{"name": "Ana Souza"}},
		{Action: constants.AuditActionUpdate, TargetEntity: constants.EntityOfficer, Endpoint: "/api/v1/officers/2", Metadata: models.JSON{"name": "Promotee Silva"}},
		{Action: constants.AuditActionLogin, TargetEntity: constants.EntityUser, Endpoint: "/api/v1/auth/login", Metadata: models.JSON{"username": "admin"}},
		{Action: constants.AuditActionCreate, TargetEntity: constants.EntityEvaluation, Endpoint: "/api/v1/evaluations", Metadata: models.JSON{"officerName": "Bruno Lima"}},
	}
	for i := range entries {
		entries[i].ActorID = &actor
		entries[i].CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if err := repo.Create(context.Background(), &entries[i]); err != nil {
			t.Fatalf("create audit log failed: %v", err)
		}
	}
}

func TestAuditServiceSearchPromote(t *testing.T) {
	fx := setupServiceTest(t)
	seedAuditService(t, fx)

	page, err := fx.audits.Query(AuditQuery{Search: "promote"})
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if page.TotalResults != 2 || len(page.Results) != 2 {
		t.Fatalf("search promote want 2 got total=%d len=%d", page.TotalResults, len(page.Results))
	}
	if page.Page != 1 || page.Limit != 10 || page.TotalPages != 1 {
		t.Fatalf("unexpected pagination defaults: %+v", page)
	}
	if page.Results[0].Action != constants.AuditActionUpdate {
		t.Fatalf("newest match should come first, got %s", page.Results[0].Action)
	}

	page, err = fx.audits.Query(AuditQuery{Search: "PROMOTE", Page: 2, PageSize: 1})
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if page.TotalResults != 2 || page.TotalPages != 2 || len(page.Results) != 1 || page.Results[0].Action != constants.AuditActionPromote {
		t.Fatalf("search pagination mismatch: %+v", page)
	}

	page, err = fx.audits.Query(AuditQuery{Search: "promote", Page: 5, PageSize: 10})
	if err != nil {
		t.Fatalf("out of range page should not fail: %v", err)
	}
	if len(page.Results) != 0 || page.TotalResults != 2 {
		t.Fatalf("out of range page should be empty: %+v", page)
	}
}

func TestAuditServiceSearchWithoutPushdown(t *testing.T) {
	fx := setupServiceTest(t)
	seedAuditService(t, fx)

	for _, search := range []string{"login", "bruno", "OFFICER"} {
		page, err := fx.audits.Query(AuditQuery{Search: search})
		if err != nil {
			t.Fatalf("query %q failed: %v", search, err)
		}
		want := map[string]int64{"login": 1, "bruno": 1, "OFFICER": 3}[search]
		if page.TotalResults != want {
			t.Fatalf("search %q want %d got %d", search, want, page.TotalResults)
		}
	}
}

func TestAuditServiceFiltersAndPagination(t *testing.T) {
	fx := setupServiceTest(t)
	seedAuditService(t, fx)

	page, err := fx.audits.Query(AuditQuery{TargetEntity: constants.EntityOfficer, PageSize: 2})
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if page.TotalResults != 3 || page.TotalPages != 2 || len(page.Results) != 2 {
		t.Fatalf("entity filter mismatch: %+v", page)
	}

	page, err = fx.audits.Query(AuditQuery{Action: constants.AuditActionCreate, TargetEntity: constants.EntityEvaluation})
	if err != nil || page.TotalResults != 1 {
		t.Fatalf("action filter mismatch: %+v err=%v", page, err)
	}

	page, err = fx.audits.Query(AuditQuery{ActorID: fx.federal.ID})
	if err != nil || page.TotalResults != 0 || page.Results == nil || page.TotalPages != 0 {
		t.Fatalf("unknown actor should yield an empty page: %+v err=%v", page, err)
	}
}
