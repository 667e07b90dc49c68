package models

import (
	"fmt"
	"strings"
	"testing"

	"github.com/officer-registry/internal/constants"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm/logger"
)

func setupModelsTest(t *testing.T) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := Open("sqlite", dsn, DBPoolConfig{}, logger.Silent)
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	DB = db
	if err := AutoMigrate(); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	if _, err := Open("mysql", "x", DBPoolConfig{}, logger.Silent); err == nil {
		t.Fatalf("expected unsupported driver error")
	}
}

func TestInitDefaultAdminIsIdempotent(t *testing.T) {
	setupModelsTest(t)

	if err := InitDefaultAdmin("", "s3cret-pass"); err != nil {
		t.Fatalf("init default admin failed: %v", err)
	}
	if err := InitDefaultAdmin("other", "another-pass"); err != nil {
		t.Fatalf("second init failed: %v", err)
	}

	var users []User
	if err := DB.Find(&users).Error; err != nil {
		t.Fatalf("list users failed: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("user count want 1 got %d", len(users))
	}
	if users[0].Username != "admin" || users[0].Role != constants.RoleAdmin {
		t.Fatalf("unexpected admin: %+v", users[0])
	}
	if err := bcrypt.CompareHashAndPassword([]byte(users[0].PasswordHash), []byte("s3cret-pass")); err != nil {
		t.Fatalf("password hash mismatch: %v", err)
	}
}

func TestJSONRoundTripThroughStore(t *testing.T) {
	setupModelsTest(t)

	entry := AuditLog{
		Action:       constants.AuditActionUpdate,
		TargetEntity: constants.EntityOfficer,
		TargetID:     7,
		Metadata: JSON{
			"name":    "John Doe",
			"changes": map[string]interface{}{"rank": map[string]interface{}{"before": "Cadete", "after": "Deputy"}},
		},
	}
	if err := DB.Create(&entry).Error; err != nil {
		t.Fatalf("create audit log failed: %v", err)
	}

	var loaded AuditLog
	if err := DB.First(&loaded, entry.ID).Error; err != nil {
		t.Fatalf("load audit log failed: %v", err)
	}
	if loaded.Metadata.String("name") != "John Doe" {
		t.Fatalf("metadata name want John Doe got %v", loaded.Metadata["name"])
	}
	changes, ok := loaded.Metadata["changes"].(map[string]interface{})
	if !ok || changes["rank"] == nil {
		t.Fatalf("metadata changes lost: %v", loaded.Metadata)
	}
}

func TestSkillsValuesFollowNames(t *testing.T) {
	s := Skills{IncidentReport: 1, Approach: 2, IdentityRecord: 3, Negotiation: 4, Arrest: 5, PatrolPositioning: 6, LawKnowledge: 7}
	m := s.Map()
	for i, name := range SkillNames {
		if m[name] != float64(i+1) {
			t.Fatalf("skill %s want %d got %v", name, i+1, m[name])
		}
	}
}
