package database

import (
	"context"
	"fmt"

	"github.com/thelocalist/localist/internal/config"
)

// DB is the storage interface used throughout localist. The alerting core
// treats the backend as an opaque service: settings are read-only, logs are
// append-only, and the feed/campaign tables are only queried by the health
// monitor. Implementations exist for SQLite (default) and MySQL.
type DB interface {
	// Select executes a query and scans rows into dest (slice pointer).
	Select(ctx context.Context, dest interface{}, query string, args ...interface{}) error

	// Get executes a query expected to return a single row and scans into dest.
	Get(ctx context.Context, dest interface{}, query string, args ...interface{}) error

	// Exec executes a statement that returns no rows.
	Exec(ctx context.Context, query string, args ...interface{}) error

	// Insert inserts a struct-tagged record into table and returns the new row ID.
	Insert(ctx context.Context, table string, record interface{}) (int64, error)

	// Upsert inserts or updates based on conflictCols (ON CONFLICT clause).
	Upsert(ctx context.Context, table string, record interface{}, conflictCols []string) error

	// Migrate applies pending schema migrations in order.
	Migrate(ctx context.Context) error

	// Ping verifies the database connection is alive.
	Ping(ctx context.Context) error

	// Close releases the database connection.
	Close() error

	// Driver returns the backend name: "sqlite" or "mysql".
	Driver() string
}

// New returns a DB implementation matching cfg.Driver.
// SQLite is the default when driver is empty or unrecognised.
// The error path returns an untyped nil interface, so `db != nil`
// is a safe guard for callers that continue after a failed open.
func New(cfg config.DatabaseConfig) (DB, error) {
	switch cfg.Driver {
	case "mysql":
		db, err := NewMySQL(cfg)
		if err != nil {
			return nil, err
		}
		return db, nil
	case "sqlite", "sqlite3", "":
		db, err := NewSQLite(cfg)
		if err != nil {
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q (supported: sqlite, mysql)", cfg.Driver)
	}
}
