package notify

import (
	"context"
	"fmt"
)

// Convenience formatters. Each is a pure template over SendAlert with a
// fixed category; none of them add routing logic of their own.

// FeedProcessed reports one feed-ingestion run (processing updates category).
func (c *Client) FeedProcessed(ctx context.Context, feed string, newItems, failed int) {
	severity := SeverityInfo
	if failed > 0 {
		severity = SeverityWarn
	}
	text := fmt.Sprintf("Feed %q processed: %d new item(s), %d failure(s)", feed, newItems, failed)
	c.SendAlert(ctx, text, severity, CategoryProcessing)
}

// CampaignSent reports one campaign send (delivery updates category).
func (c *Client) CampaignSent(ctx context.Context, subject string, recipients, failures int) {
	severity := SeverityInfo
	if failures > 0 {
		severity = SeverityWarn
	}
	text := fmt.Sprintf("Campaign %q sent to %d recipient(s), %d failure(s)", subject, recipients, failures)
	c.SendAlert(ctx, text, severity, CategoryDelivery)
}

// SystemAlert reports a generic operational condition (system errors category).
func (c *Client) SystemAlert(ctx context.Context, message string, severity Severity) {
	c.SendAlert(ctx, message, severity, CategorySystemErrors)
}

// HealthAlert reports one unhealthy probe (health check alerts category).
// A component reported "down" is an error; anything else ("degraded") warns.
func (c *Client) HealthAlert(ctx context.Context, component, status, detail string) {
	severity := SeverityWarn
	if status == "down" {
		severity = SeverityError
	}
	text := fmt.Sprintf("Health check: %s is %s", component, status)
	if detail != "" {
		text += " — " + detail
	}
	c.SendAlert(ctx, text, severity, CategoryHealth)
}
