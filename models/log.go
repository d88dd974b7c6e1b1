package models

// LogLevel is the severity of an operational log entry.
type LogLevel string

const (
	LevelInfo  LogLevel = "info"
	LevelWarn  LogLevel = "warn"
	LevelError LogLevel = "error"
)

func (l LogLevel) String() string {
	return string(l)
}

// LogEntry is one row in the logs table. Entries are append-only: the
// application writes them and never updates or deletes them.
type LogEntry struct {
	ID        int64  `db:"id"`
	Level     string `db:"level"`
	Message   string `db:"message"`
	Context   string `db:"context"` // JSON-encoded structured context
	Source    string `db:"source"`
	CreatedAt string `db:"created_at"` // RFC3339 UTC
}
