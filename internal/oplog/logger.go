// Package oplog writes structured operational log entries to the persisted
// log store and escalates the critical subset to the notification channel.
// Nothing in this package returns an error: a failure to log is reported on
// process diagnostics (slog) and dropped, so logging can never abort the
// business operation that triggered it.
package oplog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/thelocalist/localist/internal/database"
	"github.com/thelocalist/localist/internal/notify"
	"github.com/thelocalist/localist/models"
)

// Logger records operational events. Construct one per process and inject
// it wherever events need recording.
type Logger struct {
	db         database.DB
	notifier   *notify.Client
	classifier Classifier
}

// New creates a Logger using the default KeywordClassifier.
func New(db database.DB, notifier *notify.Client) *Logger {
	return NewWithClassifier(db, notifier, KeywordClassifier{})
}

// NewWithClassifier creates a Logger with a custom escalation rule.
func NewWithClassifier(db database.DB, notifier *notify.Client, classifier Classifier) *Logger {
	return &Logger{db: db, notifier: notifier, classifier: classifier}
}

// HandleError records err at error level with the current stack captured in
// context, then escalates critical errors to the system-errors channel.
func (l *Logger) HandleError(ctx context.Context, err error, source string, logCtx map[string]any) {
	if err == nil {
		return
	}
	// Copy before annotating so the caller's map is left untouched.
	annotated := make(map[string]any, len(logCtx)+1)
	for k, v := range logCtx {
		annotated[k] = v
	}
	annotated["stack"] = string(debug.Stack())

	l.write(ctx, models.LevelError, err.Error(), annotated, source)

	if l.classifier.IsCritical(source, err.Error()) {
		l.notifier.SystemAlert(ctx,
			fmt.Sprintf("Critical error in %s: %s", source, err.Error()),
			notify.SeverityError)
	}
}

// LogInfo records an info-level entry. Info entries never alert.
func (l *Logger) LogInfo(ctx context.Context, message string, logCtx map[string]any, source string) {
	l.write(ctx, models.LevelInfo, message, logCtx, source)
}

// LogWarning records a warn-level entry and always sends a system-errors
// alert. Unlike errors there is no suppression rule for warnings: anything
// worth a warning is worth a ping.
func (l *Logger) LogWarning(ctx context.Context, message string, logCtx map[string]any, source string) {
	l.write(ctx, models.LevelWarn, message, logCtx, source)
	l.notifier.SystemAlert(ctx, fmt.Sprintf("Warning from %s: %s", source, message), notify.SeverityWarn)
}

// write appends one entry to the logs table. Store failures go to slog only.
func (l *Logger) write(ctx context.Context, level models.LogLevel, message string, logCtx map[string]any, source string) {
	if logCtx == nil {
		logCtx = map[string]any{}
	}
	encoded, err := json.Marshal(logCtx)
	if err != nil {
		encoded = []byte("{}")
	}
	entry := models.LogEntry{
		Level:     level.String(),
		Message:   message,
		Context:   string(encoded),
		Source:    source,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if _, err := l.db.Insert(ctx, "logs", &entry); err != nil {
		slog.Error("oplog: writing log entry failed",
			"level", level.String(), "message", message, "source", source, "error", err)
	}
}
