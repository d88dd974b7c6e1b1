package health

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/thelocalist/localist/internal/config"
	"github.com/thelocalist/localist/internal/database"
	"github.com/thelocalist/localist/internal/notify"
	"github.com/thelocalist/localist/internal/oplog"
	"github.com/thelocalist/localist/internal/settings"
	"github.com/thelocalist/localist/models"
)

type fakeWebhook struct {
	mu    sync.Mutex
	texts []string
}

func (f *fakeWebhook) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var payload map[string]string
		_ = json.Unmarshal(body, &payload)
		f.mu.Lock()
		f.texts = append(f.texts, payload["text"])
		f.mu.Unlock()
	}
}

func (f *fakeWebhook) received() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.texts...)
}

func (f *fakeWebhook) countContaining(substr string) int {
	n := 0
	for _, txt := range f.received() {
		if strings.Contains(txt, substr) {
			n++
		}
	}
	return n
}

func newTestMonitor(t *testing.T) (*Monitor, database.DB, *fakeWebhook) {
	t.Helper()
	hook := &fakeWebhook{}
	srv := httptest.NewServer(hook.handler())
	t.Cleanup(srv.Close)

	db, err := database.NewSQLite(config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "test.db")})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("migrating: %v", err)
	}

	resolver := settings.NewResolver(db, srv.URL)
	notifier := notify.NewClient(db, resolver)
	logger := oplog.New(db, notifier)
	return NewMonitor(db, notifier, logger), db, hook
}

func seedFeeds(t *testing.T, db database.DB, failing, healthy int) {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC().Format(time.RFC3339)
	for i := 0; i < failing; i++ {
		feed := models.Feed{
			URL:              fmt.Sprintf("https://example.com/failing-%d.xml", i),
			Title:            fmt.Sprintf("failing %d", i),
			Enabled:          true,
			ProcessingErrors: perFeedErrorThreshold,
			LastError:        "parse error",
			LastFetchedAt:    now,
			CreatedAt:        now,
		}
		if _, err := db.Insert(ctx, "feeds", &feed); err != nil {
			t.Fatalf("seeding failing feed: %v", err)
		}
	}
	for i := 0; i < healthy; i++ {
		feed := models.Feed{
			URL:           fmt.Sprintf("https://example.com/ok-%d.xml", i),
			Title:         fmt.Sprintf("ok %d", i),
			Enabled:       true,
			LastFetchedAt: now,
			CreatedAt:     now,
		}
		if _, err := db.Insert(ctx, "feeds", &feed); err != nil {
			t.Fatalf("seeding healthy feed: %v", err)
		}
	}
}

func seedCampaign(t *testing.T, db database.DB, age time.Duration) {
	t.Helper()
	created := time.Now().UTC().Add(-age).Format(time.RFC3339)
	campaign := models.Campaign{
		Subject:    "Weekly Digest",
		Status:     "sent",
		Recipients: 100,
		CreatedAt:  created,
		SentAt:     created,
	}
	if _, err := db.Insert(context.Background(), "campaigns", &campaign); err != nil {
		t.Fatalf("seeding campaign: %v", err)
	}
}

func result(t *testing.T, report Report, name string) ProbeResult {
	t.Helper()
	for _, r := range report.Results {
		if r.Name == name {
			return r
		}
	}
	t.Fatalf("probe %q missing from report: %+v", name, report.Results)
	return ProbeResult{}
}

func TestRunFullCheckAllHealthy(t *testing.T) {
	monitor, db, hook := newTestMonitor(t)
	seedFeeds(t, db, 0, 3)
	seedCampaign(t, db, 2*time.Hour)

	report := monitor.RunFullCheck(context.Background())

	if !report.Healthy {
		t.Fatalf("expected healthy report, got %+v", report)
	}
	if len(report.Results) != 3 {
		t.Fatalf("expected 3 probe results, got %d", len(report.Results))
	}
	if n := len(hook.received()); n != 0 {
		t.Fatalf("healthy run sent %d alert(s): %v", n, hook.received())
	}

	var entries []models.LogEntry
	if err := db.Select(context.Background(), &entries,
		`SELECT id, level, message, context, source, created_at FROM logs WHERE source = ?`,
		"health_monitor"); err != nil {
		t.Fatalf("querying report entries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one recorded report, got %d", len(entries))
	}
}

func TestAggregationWithOneUnhealthyProbe(t *testing.T) {
	monitor, db, hook := newTestMonitor(t)
	// database healthy, feed probe unhealthy, campaigns healthy.
	seedFeeds(t, db, degradedFeedCount+1, 0)
	seedCampaign(t, db, time.Hour)

	report := monitor.RunFullCheck(context.Background())

	if report.Healthy {
		t.Fatal("expected overall unhealthy")
	}
	if len(report.Results) != 3 {
		t.Fatalf("all probe results must appear in the report, got %d", len(report.Results))
	}
	if !result(t, report, "database").Healthy || !result(t, report, "campaigns").Healthy {
		t.Fatalf("unexpected probe states: %+v", report.Results)
	}
	if result(t, report, "feed_processing").Healthy {
		t.Fatal("feed probe should be unhealthy")
	}

	if n := hook.countContaining("Health check failed"); n != 1 {
		t.Fatalf("expected exactly one system-level summary alert, got %d (%v)", n, hook.received())
	}
	if n := hook.countContaining("feed_processing is degraded"); n != 1 {
		t.Fatalf("expected one targeted degraded alert, got %d (%v)", n, hook.received())
	}

	// The recorded report carries every probe result.
	var entries []models.LogEntry
	if err := db.Select(context.Background(), &entries,
		`SELECT id, level, message, context, source, created_at FROM logs WHERE source = ?`,
		"health_monitor"); err != nil {
		t.Fatalf("querying report entries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one recorded report, got %d", len(entries))
	}
	for _, name := range []string{"database", "feed_processing", "campaigns"} {
		if !strings.Contains(entries[0].Context, name) {
			t.Errorf("recorded report missing probe %q: %s", name, entries[0].Context)
		}
	}
}

func TestFeedErrorThresholdBoundary(t *testing.T) {
	t.Run("exactly_at_threshold_is_healthy", func(t *testing.T) {
		monitor, db, _ := newTestMonitor(t)
		seedFeeds(t, db, degradedFeedCount, 2)
		seedCampaign(t, db, time.Hour)

		report := monitor.RunFullCheck(context.Background())
		if !result(t, report, "feed_processing").Healthy {
			t.Fatalf("%d failing feeds must not degrade (threshold is exclusive)", degradedFeedCount)
		}
	})

	t.Run("one_over_threshold_is_degraded", func(t *testing.T) {
		monitor, db, hook := newTestMonitor(t)
		seedFeeds(t, db, degradedFeedCount+1, 0)
		seedCampaign(t, db, time.Hour)

		report := monitor.RunFullCheck(context.Background())
		if result(t, report, "feed_processing").Healthy {
			t.Fatalf("%d failing feeds must degrade", degradedFeedCount+1)
		}
		if n := hook.countContaining("feed_processing is degraded"); n != 1 {
			t.Fatalf("expected one degraded alert, got %d", n)
		}
	})

	t.Run("feeds_below_per_feed_threshold_do_not_count", func(t *testing.T) {
		monitor, db, _ := newTestMonitor(t)
		// Plenty of feeds with a couple of errors each, none at the
		// per-feed cutoff.
		ctx := context.Background()
		now := time.Now().UTC().Format(time.RFC3339)
		for i := 0; i < degradedFeedCount+5; i++ {
			feed := models.Feed{
				URL:              fmt.Sprintf("https://example.com/flaky-%d.xml", i),
				Title:            "flaky",
				Enabled:          true,
				ProcessingErrors: perFeedErrorThreshold - 1,
				LastFetchedAt:    now,
				CreatedAt:        now,
			}
			if _, err := db.Insert(ctx, "feeds", &feed); err != nil {
				t.Fatalf("seeding: %v", err)
			}
		}
		seedCampaign(t, db, time.Hour)

		report := monitor.RunFullCheck(ctx)
		if !result(t, report, "feed_processing").Healthy {
			t.Fatal("feeds under the per-feed threshold must not count as failing")
		}
	})
}

func TestCampaignFreshnessProbe(t *testing.T) {
	t.Run("no_recent_campaigns_degrades", func(t *testing.T) {
		monitor, db, hook := newTestMonitor(t)
		seedCampaign(t, db, 48*time.Hour)

		report := monitor.RunFullCheck(context.Background())
		if result(t, report, "campaigns").Healthy {
			t.Fatal("stale campaigns should degrade the freshness probe")
		}
		if n := hook.countContaining("campaigns is degraded"); n != 1 {
			t.Fatalf("expected one degraded alert, got %d", n)
		}
	})

	t.Run("recent_campaign_is_healthy", func(t *testing.T) {
		monitor, db, _ := newTestMonitor(t)
		seedCampaign(t, db, 2*time.Hour)

		report := monitor.RunFullCheck(context.Background())
		if !result(t, report, "campaigns").Healthy {
			t.Fatal("a 2h-old campaign is inside the freshness window")
		}
	})
}

func TestProbeQueryFailureDoesNotStopOtherProbes(t *testing.T) {
	monitor, db, _ := newTestMonitor(t)
	seedCampaign(t, db, time.Hour)
	if err := db.Exec(context.Background(), `DROP TABLE feeds`); err != nil {
		t.Fatalf("dropping feeds table: %v", err)
	}

	report := monitor.RunFullCheck(context.Background())

	if len(report.Results) != 3 {
		t.Fatalf("a failing probe must not suppress the others, got %d results", len(report.Results))
	}
	if result(t, report, "feed_processing").Healthy {
		t.Fatal("probe with a broken query must report unhealthy")
	}
	if !result(t, report, "database").Healthy || !result(t, report, "campaigns").Healthy {
		t.Fatalf("independent probes affected: %+v", report.Results)
	}
	if report.Healthy {
		t.Fatal("overall health must be the AND of all probes")
	}

	// The query failure is an infrastructure error, so it lands in the
	// log store under the probe's source.
	var entries []models.LogEntry
	if err := db.Select(context.Background(), &entries,
		`SELECT id, level, message, context, source, created_at FROM logs WHERE source = ?`,
		"feed_error_probe"); err != nil {
		t.Fatalf("querying: %v", err)
	}
	if len(entries) != 1 || entries[0].Level != "error" {
		t.Fatalf("expected one error entry from the probe failure, got %+v", entries)
	}
}
