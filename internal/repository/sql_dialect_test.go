package repository

import (
	"strings"
	"testing"
)

func TestJSONTextExprByDialectSQLite(t *testing.T) {
	got := jsonTextExprByDialect("sqlite", "metadata", "officerName")
	want := "json_extract(metadata, '$.\"officerName\"')"
	if got != want {
		t.Fatalf("sqlite json expr mismatch, want %s got %s", want, got)
	}
}

func TestJSONTextExprByDialectPostgres(t *testing.T) {
	got := jsonTextExprByDialect("postgres", "metadata", "name")
	want := "(metadata::jsonb ->> 'name')"
	if got != want {
		t.Fatalf("postgres json expr mismatch, want %s got %s", want, got)
	}
}

func TestBuildLikeConditionByDialect(t *testing.T) {
	cond, count := buildLikeConditionByDialect("postgres", []string{"action", " ", "endpoint"}, "metadata", auditMetadataSearchKeys)
	if count != 4 {
		t.Fatalf("arg count want 4 got %d", count)
	}
	if strings.Count(cond, "ILIKE") != 4 {
		t.Fatalf("postgres condition should use ILIKE, got %s", cond)
	}
	if !strings.Contains(cond, "(metadata::jsonb ->> 'officerName') ILIKE ?") {
		t.Fatalf("missing metadata condition: %s", cond)
	}
}

func TestContainsLikePatternEscapes(t *testing.T) {
	if got := containsLikePattern(`50%_a\b`); got != `%50\%\_a\\b%` {
		t.Fatalf("unexpected pattern %s", got)
	}
	if !pushdownSearchable("promote") || pushdownSearchable("promoção") {
		t.Fatalf("non-ascii keyword must not be pushed down")
	}
	if pushdownSearchable("KELVIN") || pushdownSearchable("admin") {
		t.Fatalf("keywords with i/k must not be pushed down")
	}
}
