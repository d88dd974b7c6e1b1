// Package settings resolves persisted configuration values with a fail-open
// contract: a missing row, an unreachable store, or a malformed value never
// surfaces as an error, the caller's default wins instead. Notification
// plumbing must not be able to crash the business operation that uses it.
package settings

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"

	"github.com/thelocalist/localist/internal/database"
)

// KeyWebhookURL is the settings row holding the Slack webhook destination.
const KeyWebhookURL = "slack_webhook_url"

// Resolver reads settings rows. Construct one per process and share it.
type Resolver struct {
	db database.DB

	// defaultWebhookURL is the process-wide fallback destination, taken
	// from the config file. May be empty.
	defaultWebhookURL string
}

// NewResolver returns a Resolver backed by db. defaultWebhookURL is used
// when no slack_webhook_url row exists.
func NewResolver(db database.DB, defaultWebhookURL string) *Resolver {
	return &Resolver{db: db, defaultWebhookURL: defaultWebhookURL}
}

// String returns the value stored under key, or def when the row is absent
// or the store is unreachable.
func (r *Resolver) String(ctx context.Context, key, def string) string {
	raw, ok := r.lookup(ctx, key)
	if !ok {
		return def
	}
	return raw
}

// Bool returns the boolean stored under key, or def when the row is absent,
// the store is unreachable, or the value is not recognisably boolean.
func (r *Resolver) Bool(ctx context.Context, key string, def bool) bool {
	raw, ok := r.lookup(ctx, key)
	if !ok {
		return def
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return def
	}
}

// WebhookURL resolves the notification destination, falling back to the
// configured process-wide default. May return "" (delivery disabled).
func (r *Resolver) WebhookURL(ctx context.Context) string {
	return r.String(ctx, KeyWebhookURL, r.defaultWebhookURL)
}

func (r *Resolver) lookup(ctx context.Context, key string) (string, bool) {
	var value string
	err := r.db.Get(ctx, &value, `SELECT value FROM settings WHERE name = ?`, key)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Debug("settings lookup failed, using default", "key", key, "error", err)
		}
		return "", false
	}
	return value, true
}
