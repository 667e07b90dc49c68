package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/officer-registry/internal/config"
	"github.com/officer-registry/internal/constants"
	"github.com/officer-registry/internal/models"
	"github.com/officer-registry/internal/provider"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type envelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

type routerFixture struct {
	container *provider.Container
	engine    *gin.Engine
	redis     *miniredis.Miniredis
}

func setupRouterTest(t *testing.T) *routerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	// 审计协程与请求共用内存库，单连接避免共享缓存下的表锁
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db failed: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := &config.Config{}
	cfg.Server.Mode = "debug"
	cfg.JWT.SecretKey = "router-secret"
	cfg.JWT.ExpireHours = 1
	cfg.Redis.Prefix = "test"
	cfg.Security.LoginRateLimit.WindowSeconds = 60
	cfg.Security.LoginRateLimit.MaxAttempts = 3
	cfg.Security.PasswordPolicy.MinLength = 6
	cfg.Audit.Mode = constants.AuditModeAsync
	cfg.Audit.Workers = 1
	cfg.Audit.QueueSize = 64

	container := provider.Build(cfg, provider.Deps{DB: db, Redis: client})
	container.AuditWorker.StartWorkers()
	t.Cleanup(func() { _ = container.AuditWorker.Stop(context.Background()) })

	fx := &routerFixture{container: container, engine: SetupRouter(cfg, container), redis: mr}
	fx.seedUser(t, "admin", "secret1", "Chief Admin", constants.RoleAdmin)
	fx.seedUser(t, "federal", "secret2", "Agent Smith", constants.RoleFederal)
	return fx
}

func (fx *routerFixture) seedUser(t *testing.T, username, password, officerName, role string) {
	t.Helper()
	hash, err := fx.container.AuthService.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	user := &models.User{Username: username, PasswordHash: hash, OfficerName: officerName, Role: role}
	if err := fx.container.DB.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
}

func (fx *routerFixture) do(t *testing.T, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body failed: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	fx.engine.ServeHTTP(w, req)

	var resp envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal %s %s failed: %v body=%s", method, path, err, w.Body.String())
		}
	}
	return w.Code, resp
}

func (fx *routerFixture) login(t *testing.T, username, password string) string {
	t.Helper()
	code, resp := fx.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{"username": username, "password": password})
	if code != http.StatusOK {
		t.Fatalf("login %s want 200 got %d msg=%s", username, code, resp.Msg)
	}
	var data struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("decode login failed: %v", err)
	}
	if data.Token == "" {
		t.Fatalf("login should return a token")
	}
	return data.Token
}

// drainAudit 停止审计工作池，确保已提交的记录全部落库
func (fx *routerFixture) drainAudit(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := fx.container.AuditWorker.Stop(ctx); err != nil {
		t.Fatalf("drain audit failed: %v", err)
	}
}

func decodeData(t *testing.T, resp envelope, target interface{}) {
	t.Helper()
	if err := json.Unmarshal(resp.Data, target); err != nil {
		t.Fatalf("decode data failed: %v data=%s", err, string(resp.Data))
	}
}

func TestOfficerLifecycleOverHTTP(t *testing.T) {
	fx := setupRouterTest(t)
	adminToken := fx.login(t, "admin", "secret1")

	code, resp := fx.do(t, http.MethodPost, "/api/v1/officers", adminToken, gin.H{"name": "Joao Silva", "rank": "Cadete", "startDate": "2024-03-01"})
	if code != http.StatusCreated {
		t.Fatalf("create officer want 201 got %d msg=%s", code, resp.Msg)
	}
	var officer struct {
		ID   uint   `json:"id"`
		Rank string `json:"rank"`
	}
	decodeData(t, resp, &officer)

	code, resp = fx.do(t, http.MethodGet, "/api/v1/officers/count", "", nil)
	if code != http.StatusOK {
		t.Fatalf("count want 200 got %d", code)
	}
	var count struct {
		Total int64 `json:"total"`
	}
	decodeData(t, resp, &count)
	if count.Total != 1 {
		t.Fatalf("count want 1 got %d", count.Total)
	}

	code, resp = fx.do(t, http.MethodPut, fmt.Sprintf("/api/v1/officers/%d/promote", officer.ID), adminToken, nil)
	if code != http.StatusOK {
		t.Fatalf("promote want 200 got %d msg=%s", code, resp.Msg)
	}
	var promotion struct {
		OldRank string `json:"oldRank"`
		NewRank string `json:"newRank"`
	}
	decodeData(t, resp, &promotion)
	if promotion.OldRank != "Cadete" || promotion.NewRank != "Patrol Officer" {
		t.Fatalf("unexpected promotion: %+v", promotion)
	}

	_, resp = fx.do(t, http.MethodGet, "/api/v1/officers", "", nil)
	var list []struct {
		Rank string `json:"rank"`
	}
	decodeData(t, resp, &list)
	if len(list) != 1 || list[0].Rank != "Patrol Officer" {
		t.Fatalf("cached list should reflect the promotion, got %+v", list)
	}

	code, resp = fx.do(t, http.MethodPut, fmt.Sprintf("/api/v1/officers/%d", officer.ID), adminToken, gin.H{"name": "Joao Silva", "rank": "Marshal", "startDate": "2024-03-01"})
	if code != http.StatusBadRequest || resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("rank change through update want 400 got %d/%d msg=%s", code, resp.StatusCode, resp.Msg)
	}
	code, resp = fx.do(t, http.MethodPut, fmt.Sprintf("/api/v1/officers/%d", officer.ID), adminToken, gin.H{"name": "Joao P. Silva", "startDate": "2024-03-01"})
	if code != http.StatusOK {
		t.Fatalf("update without rank want 200 got %d msg=%s", code, resp.Msg)
	}

	code, _ = fx.do(t, http.MethodPut, "/api/v1/officers/9999/promote", adminToken, nil)
	if code != http.StatusNotFound {
		t.Fatalf("promote missing officer want 404 got %d", code)
	}
	code, _ = fx.do(t, http.MethodPost, "/api/v1/officers", adminToken, gin.H{"name": "Jo", "rank": "Cadete", "startDate": "2024-03-01"})
	if code != http.StatusBadRequest {
		t.Fatalf("short name want 400 got %d", code)
	}
	code, _ = fx.do(t, http.MethodPost, "/api/v1/officers", adminToken, gin.H{"name": "Maria Souza", "rank": "General", "startDate": "2024-03-01"})
	if code != http.StatusBadRequest {
		t.Fatalf("unknown rank want 400 got %d", code)
	}
}

func TestAuthorizationOverHTTP(t *testing.T) {
	fx := setupRouterTest(t)
	federalToken := fx.login(t, "federal", "secret2")

	code, _ := fx.do(t, http.MethodPost, "/api/v1/officers", "", gin.H{"name": "Joao Silva", "rank": "Cadete", "startDate": "2024-03-01"})
	if code != http.StatusUnauthorized {
		t.Fatalf("anonymous write want 401 got %d", code)
	}
	code, _ = fx.do(t, http.MethodPost, "/api/v1/officers", "garbage", gin.H{"name": "Joao Silva", "rank": "Cadete", "startDate": "2024-03-01"})
	if code != http.StatusUnauthorized {
		t.Fatalf("invalid token want 401 got %d", code)
	}

	code, _ = fx.do(t, http.MethodPost, "/api/v1/officers", federalToken, gin.H{"name": "Joao Silva", "rank": "Cadete", "startDate": "2024-03-01"})
	if code != http.StatusCreated {
		t.Fatalf("federal create officer want 201 got %d", code)
	}
	code, _ = fx.do(t, http.MethodGet, "/api/v1/users", federalToken, nil)
	if code != http.StatusForbidden {
		t.Fatalf("federal list users want 403 got %d", code)
	}
	code, _ = fx.do(t, http.MethodGet, "/api/v1/audit-logs", federalToken, nil)
	if code != http.StatusForbidden {
		t.Fatalf("federal audit logs want 403 got %d", code)
	}

	code, resp := fx.do(t, http.MethodGet, "/api/v1/authz/me", federalToken, nil)
	if code != http.StatusOK {
		t.Fatalf("authz me want 200 got %d", code)
	}
	var me struct {
		Role     string        `json:"role"`
		Policies []interface{} `json:"policies"`
	}
	decodeData(t, resp, &me)
	if me.Role != constants.RoleFederal || len(me.Policies) != 7 {
		t.Fatalf("unexpected authz me: role=%s policies=%d", me.Role, len(me.Policies))
	}

	adminToken := fx.login(t, "admin", "secret1")
	code, resp = fx.do(t, http.MethodGet, "/api/v1/authz/permissions", adminToken, nil)
	if code != http.StatusOK {
		t.Fatalf("permission catalog want 200 got %d", code)
	}
	var catalog []struct {
		Permission string   `json:"permission"`
		Roles      []string `json:"roles"`
	}
	decodeData(t, resp, &catalog)
	found := false
	for _, item := range catalog {
		if item.Permission == "DELETE:/evaluations/:id" {
			found = true
			if len(item.Roles) != 1 || item.Roles[0] != constants.RoleAdmin {
				t.Fatalf("evaluation delete should be admin only, got %v", item.Roles)
			}
		}
		if strings.HasPrefix(item.Permission, "GET:/officers") {
			t.Fatalf("public reads should not appear in the catalog: %s", item.Permission)
		}
	}
	if !found {
		t.Fatalf("catalog should list evaluation delete")
	}
}

func TestEvaluationAndDashboardOverHTTP(t *testing.T) {
	fx := setupRouterTest(t)
	adminToken := fx.login(t, "admin", "secret1")

	_, resp := fx.do(t, http.MethodPost, "/api/v1/officers", adminToken, gin.H{"name": "Joao Silva", "rank": "Cadete", "startDate": "2024-03-01T00:00:00Z"})
	var officer struct {
		ID uint `json:"id"`
	}
	decodeData(t, resp, &officer)

	skills := gin.H{
		"montarOcorrencia":       8,
		"abordagem":              7,
		"registroIdentidade":     9,
		"negociacao":             6,
		"efetuarPrisao":          8,
		"posicionamentoPatrulha": 7,
		"conhecimentoLeis":       10,
	}
	code, resp := fx.do(t, http.MethodPost, "/api/v1/evaluations", adminToken, gin.H{"officerId": officer.ID, "skills": skills})
	if code != http.StatusCreated {
		t.Fatalf("create evaluation want 201 got %d msg=%s", code, resp.Msg)
	}

	code, _ = fx.do(t, http.MethodPost, "/api/v1/evaluations", adminToken, gin.H{"officerId": officer.ID, "skills": gin.H{"abordagem": 11}})
	if code != http.StatusBadRequest {
		t.Fatalf("invalid skills want 400 got %d", code)
	}

	code, resp = fx.do(t, http.MethodGet, fmt.Sprintf("/api/v1/dashboard/analytics/%d", officer.ID), "", nil)
	if code != http.StatusOK {
		t.Fatalf("officer analytics want 200 got %d", code)
	}
	if !strings.Contains(string(resp.Data), `"totalEvaluations":1`) || !strings.Contains(string(resp.Data), `"abordagem":7.00`) {
		t.Fatalf("unexpected officer analytics: %s", string(resp.Data))
	}

	_, resp = fx.do(t, http.MethodGet, "/api/v1/evaluations/recent", "", nil)
	var recent []struct {
		Name      string `json:"name"`
		Evaluator string `json:"evaluator"`
	}
	decodeData(t, resp, &recent)
	if len(recent) != 1 || recent[0].Evaluator != "Chief Admin" {
		t.Fatalf("unexpected recent evaluations: %+v", recent)
	}

	_, resp = fx.do(t, http.MethodGet, "/api/v1/dashboard/ranking", "", nil)
	var ranking []struct {
		OfficerID uint `json:"officerId"`
	}
	decodeData(t, resp, &ranking)
	if len(ranking) != 1 || ranking[0].OfficerID != officer.ID {
		t.Fatalf("unexpected ranking: %+v", ranking)
	}

	code, _ = fx.do(t, http.MethodGet, "/api/v1/dashboard/analytics/abc", "", nil)
	if code != http.StatusBadRequest {
		t.Fatalf("non numeric officer id want 400 got %d", code)
	}
}

func TestAuditTrailOverHTTP(t *testing.T) {
	fx := setupRouterTest(t)
	adminToken := fx.login(t, "admin", "secret1")

	_, resp := fx.do(t, http.MethodPost, "/api/v1/officers", adminToken, gin.H{"name": "Joao Silva", "rank": "Cadete", "startDate": "2024-03-01"})
	var officer struct {
		ID uint `json:"id"`
	}
	decodeData(t, resp, &officer)
	fx.do(t, http.MethodPut, fmt.Sprintf("/api/v1/officers/%d/promote", officer.ID), adminToken, nil)
	fx.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{"username": "admin", "password": "wrong-pass"})
	fx.drainAudit(t)

	code, resp := fx.do(t, http.MethodGet, "/api/v1/audit-logs?search=promote", adminToken, nil)
	if code != http.StatusOK {
		t.Fatalf("audit logs want 200 got %d", code)
	}
	var page struct {
		Page         int   `json:"page"`
		Limit        int   `json:"limit"`
		TotalResults int64 `json:"totalResults"`
		Results      []struct {
			Action    string `json:"action"`
			Endpoint  string `json:"endpoint"`
			RequestID string `json:"requestId"`
		} `json:"results"`
	}
	decodeData(t, resp, &page)
	if page.TotalResults != 1 || len(page.Results) != 1 {
		t.Fatalf("search promote want 1 got total=%d results=%d", page.TotalResults, len(page.Results))
	}
	if page.Page != 1 || page.Limit != 10 {
		t.Fatalf("default paging want 1/10 got %d/%d", page.Page, page.Limit)
	}
	entry := page.Results[0]
	if entry.Action != constants.AuditActionPromote || entry.RequestID == "" {
		t.Fatalf("unexpected promote entry: %+v", entry)
	}
	if entry.Endpoint != fmt.Sprintf("/api/v1/officers/%d/promote", officer.ID) {
		t.Fatalf("endpoint want concrete path got %s", entry.Endpoint)
	}

	_, resp = fx.do(t, http.MethodGet, "/api/v1/audit-logs?action=login_failed", adminToken, nil)
	decodeData(t, resp, &page)
	if page.TotalResults != 1 {
		t.Fatalf("login_failed entries want 1 got %d", page.TotalResults)
	}

	code, _ = fx.do(t, http.MethodGet, "/api/v1/audit-logs?user=abc", adminToken, nil)
	if code != http.StatusBadRequest {
		t.Fatalf("non numeric user filter want 400 got %d", code)
	}
}

func TestLoginRateLimitOverHTTP(t *testing.T) {
	fx := setupRouterTest(t)
	for i := 0; i < 3; i++ {
		code, _ := fx.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{"username": "admin", "password": "wrong-pass"})
		if code != http.StatusUnauthorized {
			t.Fatalf("attempt %d want 401 got %d", i+1, code)
		}
	}
	code, resp := fx.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{"username": "admin", "password": "secret1"})
	if code != http.StatusTooManyRequests {
		t.Fatalf("fourth attempt want 429 got %d", code)
	}
	if !strings.Contains(resp.Msg, "seconds") {
		t.Fatalf("rate limit message should carry the wait time, got %q", resp.Msg)
	}

	// 其他用户名不受影响
	code, _ = fx.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{"username": "federal", "password": "secret2"})
	if code != http.StatusOK {
		t.Fatalf("other username want 200 got %d", code)
	}
}

func TestPasswordFlowsOverHTTP(t *testing.T) {
	fx := setupRouterTest(t)
	adminToken := fx.login(t, "admin", "secret1")

	code, resp := fx.do(t, http.MethodPost, "/api/v1/auth/register", adminToken, gin.H{"username": "rookie", "password": "abc", "officerName": "Rookie One", "role": "federal"})
	if code != http.StatusBadRequest {
		t.Fatalf("weak password want 400 got %d", code)
	}
	if !strings.Contains(resp.Msg, "6") {
		t.Fatalf("policy message should carry the minimum length, got %q", resp.Msg)
	}

	code, _ = fx.do(t, http.MethodPost, "/api/v1/auth/register", adminToken, gin.H{"username": "rookie", "password": "rookie1", "officerName": "Rookie One", "role": "federal"})
	if code != http.StatusCreated {
		t.Fatalf("register want 201 got %d", code)
	}
	code, _ = fx.do(t, http.MethodPost, "/api/v1/auth/register", adminToken, gin.H{"username": "rookie", "password": "rookie1", "officerName": "Rookie One", "role": "federal"})
	if code != http.StatusBadRequest {
		t.Fatalf("duplicate username want 400 got %d", code)
	}

	rookieToken := fx.login(t, "rookie", "rookie1")
	code, _ = fx.do(t, http.MethodPut, "/api/v1/auth/password", rookieToken, gin.H{"currentPassword": "nope", "newPassword": "rookie2"})
	if code != http.StatusBadRequest {
		t.Fatalf("wrong current password want 400 got %d", code)
	}
	code, _ = fx.do(t, http.MethodPut, "/api/v1/auth/password", rookieToken, gin.H{"currentPassword": "rookie1", "newPassword": "rookie2"})
	if code != http.StatusOK {
		t.Fatalf("change password want 200 got %d", code)
	}
	fx.login(t, "rookie", "rookie2")

	_, resp = fx.do(t, http.MethodGet, "/api/v1/users", adminToken, nil)
	if strings.Contains(string(resp.Data), "password") {
		t.Fatalf("user list must not expose password hashes: %s", string(resp.Data))
	}
}

func TestHealthAndMetrics(t *testing.T) {
	fx := setupRouterTest(t)
	fx.do(t, http.MethodGet, "/api/v1/officers", "", nil)

	code, _ := fx.do(t, http.MethodGet, "/health", "", nil)
	if code != http.StatusOK {
		t.Fatalf("health want 200 got %d", code)
	}

	w := httptest.NewRecorder()
	fx.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("metrics want 200 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "officer_registry_cache_requests_total") {
		t.Fatalf("metrics should expose cache counters")
	}
}
