package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

var monitorSchedule string

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Run health checks continuously on a cron schedule",
	Long: `Starts a long-running process that executes the full health check on a
cron schedule (default: hourly, configurable via monitor.schedule or the
--schedule flag). Stops cleanly on SIGINT/SIGTERM.`,
	RunE: runMonitor,
}

func init() {
	monitorCmd.Flags().StringVar(&monitorSchedule, "schedule", "",
		"cron expression overriding monitor.schedule from the config file")
}

func runMonitor(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc, err := openServices(ctx)
	if err != nil {
		return err
	}
	defer svc.Close()

	expr := svc.cfg.Monitor.Schedule
	if monitorSchedule != "" {
		expr = monitorSchedule
	}

	c := cron.New()
	if _, err := c.AddFunc(expr, func() {
		report := svc.monitor.RunFullCheck(ctx)
		slog.Info("monitor: health check completed", "healthy", report.Healthy)
	}); err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", expr, err)
	}
	c.Start()
	defer c.Stop()

	slog.Info("monitor started", "schedule", expr)

	// Run one check immediately so a freshly started monitor reports
	// status without waiting for the first cron tick.
	report := svc.monitor.RunFullCheck(ctx)
	slog.Info("monitor: initial health check completed", "healthy", report.Healthy)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	slog.Info("monitor stopping", "signal", sig.String())
	return nil
}
