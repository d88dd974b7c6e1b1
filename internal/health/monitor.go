// Package health runs independent subsystem probes and aggregates them into
// a single report. Probes distinguish infrastructure failure (the probe
// itself blew up, routed through the error logger and its critical-error
// classifier) from business failure (the probe ran fine and found an
// unhealthy subsystem, alerted directly on the health channel).
package health

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/thelocalist/localist/internal/database"
	"github.com/thelocalist/localist/internal/notify"
	"github.com/thelocalist/localist/internal/oplog"
)

// ProbeResult is one probe's outcome.
type ProbeResult struct {
	Name      string    `json:"name"`
	Healthy   bool      `json:"healthy"`
	Detail    string    `json:"detail,omitempty"`
	CheckedAt time.Time `json:"checked_at"`
}

// Report aggregates all probe outcomes. Healthy is the AND of every probe.
type Report struct {
	Results   []ProbeResult `json:"results"`
	Healthy   bool          `json:"healthy"`
	CheckedAt time.Time     `json:"checked_at"`
}

// Monitor owns the probe set. Construct one per process; RunFullCheck holds
// no state between runs.
type Monitor struct {
	db       database.DB
	notifier *notify.Client
	logger   *oplog.Logger
}

// NewMonitor wires a Monitor to its collaborators.
func NewMonitor(db database.DB, notifier *notify.Client, logger *oplog.Logger) *Monitor {
	return &Monitor{db: db, notifier: notifier, logger: logger}
}

// probe is a named health check. Probes are independent: no ordering
// dependency and no shared mutable state.
type probe struct {
	name string
	run  func(ctx context.Context) ProbeResult
}

// RunFullCheck runs every probe concurrently, waits for all of them, and
// records the aggregate report. An unhealthy overall result additionally
// raises one system-level alert naming the failing components.
func (m *Monitor) RunFullCheck(ctx context.Context) Report {
	probes := []probe{
		{name: "database", run: m.probeDatabase},
		{name: "feed_processing", run: m.probeFeedErrors},
		{name: "campaigns", run: m.probeCampaignFreshness},
	}

	results := make([]ProbeResult, len(probes))
	var wg sync.WaitGroup
	for i, p := range probes {
		wg.Add(1)
		go func(i int, p probe) {
			defer wg.Done()
			results[i] = p.run(ctx)
		}(i, p)
	}
	wg.Wait()

	report := Report{
		Results:   results,
		Healthy:   true,
		CheckedAt: time.Now().UTC(),
	}
	var unhealthy []string
	for _, r := range results {
		if !r.Healthy {
			report.Healthy = false
			unhealthy = append(unhealthy, r.Name)
		}
	}

	m.logger.LogInfo(ctx, "Full health check completed", map[string]any{
		"healthy": report.Healthy,
		"results": results,
	}, "health_monitor")

	if !report.Healthy {
		m.notifier.SystemAlert(ctx,
			fmt.Sprintf("Health check failed: unhealthy components: %s", strings.Join(unhealthy, ", ")),
			notify.SeverityError)
	}
	return report
}
