package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/officer-registry/internal/audit"
	"github.com/officer-registry/internal/cache"
	"github.com/officer-registry/internal/config"
	"github.com/officer-registry/internal/constants"
	"github.com/officer-registry/internal/models"
	"github.com/officer-registry/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// captureRecorder 同步收集审计记录
type captureRecorder struct {
	mu      sync.Mutex
	entries []audit.Entry
}

func (r *captureRecorder) Record(_ context.Context, entry audit.Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
}

func (r *captureRecorder) all() []audit.Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]audit.Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

func (r *captureRecorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
}

// trackingGateway 记录每次删除的 key
type trackingGateway struct {
	*cache.MemoryGateway
	mu      sync.Mutex
	deleted []string
}

func (g *trackingGateway) Delete(ctx context.Context, keys ...string) error {
	g.mu.Lock()
	g.deleted = append(g.deleted, keys...)
	g.mu.Unlock()
	return g.MemoryGateway.Delete(ctx, keys...)
}

func (g *trackingGateway) takeDeleted() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := g.deleted
	g.deleted = nil
	return out
}

type serviceFixture struct {
	db          *gorm.DB
	recorder    *captureRecorder
	gateway     *trackingGateway
	officers    *OfficerService
	evaluations *EvaluationService
	analytics   *AnalyticsService
	auth        *AuthService
	users       *UserService
	audits      *AuditService
	admin       *models.User
	federal     *models.User
}

func setupServiceTest(t *testing.T) *serviceFixture {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	cfg := &config.Config{}
	cfg.JWT.SecretKey = "test-secret"
	cfg.JWT.ExpireHours = 4
	cfg.Security.PasswordPolicy.MinLength = 6

	recorder := &captureRecorder{}
	gateway := &trackingGateway{MemoryGateway: cache.NewMemoryGateway()}
	views := cache.NewReadThrough(gateway, constants.AggregateCacheTTL, time.Second)

	officerRepo := repository.NewOfficerRepository(db)
	evaluationRepo := repository.NewEvaluationRepository(db)
	userRepo := repository.NewUserRepository(db)

	fx := &serviceFixture{
		db:          db,
		recorder:    recorder,
		gateway:     gateway,
		officers:    NewOfficerService(officerRepo, views, recorder),
		evaluations: NewEvaluationService(evaluationRepo, officerRepo, userRepo, views, recorder),
		analytics:   NewAnalyticsService(officerRepo, evaluationRepo, views),
		auth:        NewAuthService(cfg, userRepo, recorder),
		users:       NewUserService(userRepo),
		audits:      NewAuditService(repository.NewAuditLogRepository(db)),
	}
	fx.admin = fx.seedUser(t, "admin", "secret1", "Chief Admin", constants.RoleAdmin)
	fx.federal = fx.seedUser(t, "federal", "secret2", "Agent Smith", constants.RoleFederal)
	return fx
}

func (fx *serviceFixture) seedUser(t *testing.T, username, password, officerName, role string) *models.User {
	t.Helper()
	hash, err := fx.auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	user := &models.User{Username: username, PasswordHash: hash, OfficerName: officerName, Role: role}
	if err := fx.db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func (fx *serviceFixture) seedOfficer(t *testing.T, name, rankName string) *models.Officer {
	t.Helper()
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	officer, err := fx.officers.Create(context.Background(), fx.metaFor(fx.admin), OfficerInput{Name: name, Rank: rankName, StartDate: &start})
	if err != nil {
		t.Fatalf("create officer failed: %v", err)
	}
	return officer
}

func (fx *serviceFixture) metaFor(user *models.User) RequestMeta {
	return RequestMeta{
		Actor:  &audit.Actor{ID: user.ID, Username: user.Username, Role: user.Role},
		Source: audit.Source{Method: "POST", Endpoint: "/api/v1/test"},
	}
}

func uniformSkills(value float64) SkillsInput {
	return SkillsInput{
		IncidentReport:    floatPtr(value),
		Approach:          floatPtr(value),
		IdentityRecord:    floatPtr(value),
		Negotiation:       floatPtr(value),
		Arrest:            floatPtr(value),
		PatrolPositioning: floatPtr(value),
		LawKnowledge:      floatPtr(value),
	}
}

func floatPtr(value float64) *float64 {
	return &value
}

func sameKeys(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	seen := make(map[string]int, len(got))
	for _, key := range got {
		seen[key]++
	}
	for _, key := range want {
		if seen[key] == 0 {
			return false
		}
		seen[key]--
	}
	return true
}
