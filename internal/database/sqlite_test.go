package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/thelocalist/localist/internal/config"
	"github.com/thelocalist/localist/models"
)

func newTestDB(t *testing.T) *SQLiteDB {
	t.Helper()
	db, err := NewSQLite(config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "test.db")})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("migrating: %v", err)
	}
	return db
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}

func TestInsertAndSelectLogs(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		entry := models.LogEntry{
			Level:     "info",
			Message:   "hello",
			Context:   "{}",
			Source:    "test",
			CreatedAt: time.Now().UTC().Format(time.RFC3339),
		}
		id, err := db.Insert(ctx, "logs", &entry)
		if err != nil {
			t.Fatalf("insert: %v", err)
		}
		if id == 0 {
			t.Fatal("expected non-zero row id")
		}
	}

	var entries []models.LogEntry
	if err := db.Select(ctx, &entries,
		`SELECT id, level, message, context, source, created_at FROM logs`); err != nil {
		t.Fatalf("select: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Message != "hello" || entries[0].Source != "test" {
		t.Fatalf("unexpected entry: %+v", entries[0])
	}
}

func TestUpsertSettings(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	first := models.Setting{Name: "slack_webhook_url", Value: "https://old", UpdatedAt: "2026-01-01T00:00:00Z"}
	if err := db.Upsert(ctx, "settings", &first, []string{"name"}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	second := models.Setting{Name: "slack_webhook_url", Value: "https://new", UpdatedAt: "2026-01-02T00:00:00Z"}
	if err := db.Upsert(ctx, "settings", &second, []string{"name"}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	var value string
	if err := db.Get(ctx, &value, `SELECT value FROM settings WHERE name = ?`, "slack_webhook_url"); err != nil {
		t.Fatalf("get: %v", err)
	}
	if value != "https://new" {
		t.Fatalf("expected upsert to replace value, got %q", value)
	}

	var rows []models.Setting
	if err := db.Select(ctx, &rows, `SELECT id, name, value, updated_at FROM settings`); err != nil {
		t.Fatalf("select: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected a single settings row, got %d", len(rows))
	}
}

func TestGetScansScalarDest(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	var count int
	if err := db.Get(ctx, &count, `SELECT COUNT(*) FROM feeds`); err != nil {
		t.Fatalf("get count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0, got %d", count)
	}
}

func TestInsertPropagatesStoreFailure(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer mockDB.Close()

	mock.ExpectExec("INSERT INTO logs").WillReturnError(errDisk)

	s := &SQLiteDB{db: mockDB}
	entry := models.LogEntry{Level: "info", Message: "x", Context: "{}", Source: "t", CreatedAt: "now"}
	if _, err := s.Insert(context.Background(), "logs", &entry); err == nil {
		t.Fatal("expected insert error to propagate to the storage caller")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

var errDisk = &diskError{}

type diskError struct{}

func (*diskError) Error() string { return "disk I/O error" }
