package health

import (
	"context"
	"fmt"
	"time"
)

const (
	// perFeedErrorThreshold marks a single feed as failing once its
	// processing_errors counter reaches this value.
	perFeedErrorThreshold = 3
	// degradedFeedCount is the number of failing feeds tolerated before
	// feed processing counts as degraded. Strictly more than this
	// many failing feeds trips the probe; exactly this many does not.
	degradedFeedCount = 5
	// freshnessWindow is how far back the campaign-freshness probe looks.
	freshnessWindow = 24 * time.Hour
)

// probeDatabase verifies the data store answers a ping. A failed ping is
// the probe's business result (the store is down), not an infrastructure
// error, so it alerts directly.
func (m *Monitor) probeDatabase(ctx context.Context) ProbeResult {
	res := ProbeResult{Name: "database", Healthy: true, CheckedAt: time.Now().UTC()}
	if err := m.db.Ping(ctx); err != nil {
		res.Healthy = false
		res.Detail = fmt.Sprintf("ping failed: %s", err)
		m.notifier.HealthAlert(ctx, "database", "down", res.Detail)
	}
	return res
}

// probeFeedErrors counts enabled feeds whose error counter has climbed past
// the per-feed threshold. Too many of them means ingestion is degraded.
func (m *Monitor) probeFeedErrors(ctx context.Context) ProbeResult {
	res := ProbeResult{Name: "feed_processing", Healthy: true, CheckedAt: time.Now().UTC()}

	var failing int
	err := m.db.Get(ctx, &failing,
		`SELECT COUNT(*) FROM feeds WHERE enabled = 1 AND processing_errors >= ?`,
		perFeedErrorThreshold)
	if err != nil {
		m.logger.HandleError(ctx, fmt.Errorf("counting failing feeds: %w", err), "feed_error_probe", nil)
		res.Healthy = false
		res.Detail = fmt.Sprintf("probe query failed: %s", err)
		return res
	}

	if failing > degradedFeedCount {
		res.Healthy = false
		res.Detail = fmt.Sprintf("%d feeds have %d+ processing errors", failing, perFeedErrorThreshold)
		m.notifier.HealthAlert(ctx, "feed_processing", "degraded", res.Detail)
	}
	return res
}

// probeCampaignFreshness checks that at least one campaign was created
// within the trailing window. Zero recent campaigns means the publishing
// side of the app has gone quiet.
func (m *Monitor) probeCampaignFreshness(ctx context.Context) ProbeResult {
	res := ProbeResult{Name: "campaigns", Healthy: true, CheckedAt: time.Now().UTC()}

	cutoff := time.Now().UTC().Add(-freshnessWindow).Format(time.RFC3339)
	var recent int
	err := m.db.Get(ctx, &recent,
		`SELECT COUNT(*) FROM campaigns WHERE created_at >= ?`, cutoff)
	if err != nil {
		m.logger.HandleError(ctx, fmt.Errorf("counting recent campaigns: %w", err), "campaign_freshness_probe", nil)
		res.Healthy = false
		res.Detail = fmt.Sprintf("probe query failed: %s", err)
		return res
	}

	if recent == 0 {
		res.Healthy = false
		res.Detail = "no campaigns created in the last 24h"
		m.notifier.HealthAlert(ctx, "campaigns", "degraded", res.Detail)
	}
	return res
}
