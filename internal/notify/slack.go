package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/thelocalist/localist/internal/database"
	"github.com/thelocalist/localist/internal/settings"
	"github.com/thelocalist/localist/models"
)

// auditSource tags every delivery-outcome log entry written by this package.
const auditSource = "notification_service"

// Client delivers messages to a Slack incoming webhook. Delivery is strictly
// best-effort: a missing destination, a muted category, or a transport
// failure is recorded in the logs table and swallowed; callers never
// receive an error. Construct one Client per process and pass it by
// reference into whatever needs to alert.
type Client struct {
	db       database.DB
	resolver *settings.Resolver
	httpc    *http.Client
}

// NewClient creates a Client. The destination URL is resolved per send via
// the settings resolver, so admin changes take effect without a restart.
func NewClient(db database.DB, resolver *settings.Resolver) *Client {
	return &Client{
		db:       db,
		resolver: resolver,
		// A stalled webhook must not hang a health check or a request
		// that happened to log a warning.
		httpc: &http.Client{Timeout: 5 * time.Second},
	}
}

// Send delivers text as-is. If no destination is configured it warns and
// returns; that is a no-op, not a failure.
func (c *Client) Send(ctx context.Context, text string) {
	dest := c.resolver.WebhookURL(ctx)
	if dest == "" {
		slog.Warn("notify: no webhook URL configured, dropping message")
		return
	}
	c.deliver(ctx, dest, text, map[string]any{})
}

// SendAlert delivers text prefixed with the severity glyph. When category is
// not CategoryNone, the category's enablement flag is consulted first; a
// muted category records a skip entry and sends nothing.
func (c *Client) SendAlert(ctx context.Context, text string, severity Severity, category Category) {
	dest := c.resolver.WebhookURL(ctx)
	if dest == "" {
		return
	}

	auditCtx := map[string]any{
		"severity": severity.String(),
		"category": category.String(),
	}

	if category != CategoryNone && !c.resolver.Bool(ctx, category.SettingKey(), true) {
		auditCtx["skipped"] = true
		c.audit(ctx, models.LevelInfo,
			fmt.Sprintf("Notification skipped (category %s disabled): %s", category, text), auditCtx)
		return
	}

	c.deliver(ctx, dest, severity.Glyph()+" "+text, auditCtx)
}

// deliver posts text to dest and records the outcome. Transport errors are
// logged, never returned.
func (c *Client) deliver(ctx context.Context, dest, text string, auditCtx map[string]any) {
	auditCtx["destination"] = redactDest(dest)

	if err := c.post(ctx, dest, text); err != nil {
		auditCtx["error"] = err.Error()
		c.audit(ctx, models.LevelError, fmt.Sprintf("Notification delivery failed: %s", text), auditCtx)
		return
	}
	c.audit(ctx, models.LevelInfo, fmt.Sprintf("Notification sent: %s", text), auditCtx)
}

// post performs the webhook HTTP POST. A 2xx response is success; anything
// else, including a transport error, is failure.
func (c *Client) post(ctx context.Context, dest, text string) error {
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, dest, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpc.Do(req) // #nosec G107 -- dest is an admin-configured webhook URL
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned %d", resp.StatusCode)
	}
	return nil
}

// audit appends a delivery-outcome entry to the logs table. A failed write
// falls back to process diagnostics; it never propagates.
func (c *Client) audit(ctx context.Context, level models.LogLevel, message string, logCtx map[string]any) {
	encoded, err := json.Marshal(logCtx)
	if err != nil {
		encoded = []byte("{}")
	}
	entry := models.LogEntry{
		Level:     level.String(),
		Message:   message,
		Context:   string(encoded),
		Source:    auditSource,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if _, err := c.db.Insert(ctx, "logs", &entry); err != nil {
		slog.Error("notify: writing audit log entry failed", "message", message, "error", err)
	}
}

// redactDest keeps only the scheme and host of the webhook URL so the
// secret path component never lands in the logs table.
func redactDest(dest string) string {
	u, err := url.Parse(dest)
	if err != nil || u.Host == "" {
		return "invalid"
	}
	return u.Scheme + "://" + u.Host
}
