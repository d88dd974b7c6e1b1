package settings

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/thelocalist/localist/internal/config"
	"github.com/thelocalist/localist/internal/database"
	"github.com/thelocalist/localist/models"
)

func newTestDB(t *testing.T) database.DB {
	t.Helper()
	db, err := database.NewSQLite(config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "test.db")})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("migrating: %v", err)
	}
	return db
}

func set(t *testing.T, db database.DB, key, value string) {
	t.Helper()
	s := models.Setting{Name: key, Value: value, UpdatedAt: time.Now().UTC().Format(time.RFC3339)}
	if err := db.Upsert(context.Background(), "settings", &s, []string{"name"}); err != nil {
		t.Fatalf("seeding setting %s: %v", key, err)
	}
}

func TestStringReturnsDefaultWhenAbsent(t *testing.T) {
	r := NewResolver(newTestDB(t), "")
	if got := r.String(context.Background(), "nope", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}
}

func TestStringReturnsStoredValue(t *testing.T) {
	db := newTestDB(t)
	set(t, db, "slack_webhook_url", "https://hooks.example.com/T/B/x")
	r := NewResolver(db, "https://default.example.com")
	if got := r.WebhookURL(context.Background()); got != "https://hooks.example.com/T/B/x" {
		t.Fatalf("expected stored value, got %q", got)
	}
}

func TestWebhookURLFallsBackToConfiguredDefault(t *testing.T) {
	r := NewResolver(newTestDB(t), "https://default.example.com")
	if got := r.WebhookURL(context.Background()); got != "https://default.example.com" {
		t.Fatalf("expected configured default, got %q", got)
	}
}

func TestBoolParsing(t *testing.T) {
	db := newTestDB(t)
	r := NewResolver(db, "")
	ctx := context.Background()

	cases := []struct {
		value string
		def   bool
		want  bool
	}{
		{"true", false, true},
		{"1", false, true},
		{"yes", false, true},
		{"on", false, true},
		{"false", true, false},
		{"0", true, false},
		{"no", true, false},
		{"off", true, false},
		{"TRUE", false, true},
		{" false ", true, false},
		{"garbage", true, true},
		{"garbage", false, false},
		{"", true, true},
	}
	for _, tc := range cases {
		set(t, db, "flag", tc.value)
		if got := r.Bool(ctx, "flag", tc.def); got != tc.want {
			t.Errorf("Bool(%q, default %v) = %v, want %v", tc.value, tc.def, got, tc.want)
		}
	}
}

func TestBoolDefaultsWhenAbsent(t *testing.T) {
	r := NewResolver(newTestDB(t), "")
	ctx := context.Background()
	if !r.Bool(ctx, "missing", true) {
		t.Fatal("expected default true for missing key")
	}
	if r.Bool(ctx, "missing", false) {
		t.Fatal("expected default false for missing key")
	}
}

func TestResolverFailsOpenWhenStoreUnreachable(t *testing.T) {
	db := newTestDB(t)
	r := NewResolver(db, "https://default.example.com")
	db.Close()

	ctx := context.Background()
	if got := r.String(ctx, "anything", "safe"); got != "safe" {
		t.Fatalf("expected default on closed store, got %q", got)
	}
	if !r.Bool(ctx, "anything", true) {
		t.Fatal("expected default on closed store")
	}
	if got := r.WebhookURL(ctx); got != "https://default.example.com" {
		t.Fatalf("expected configured default on closed store, got %q", got)
	}
}
