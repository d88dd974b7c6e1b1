package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run a one-shot full health check",
	Long: `Runs every health probe once, records the aggregate report, and prints
per-probe results. Exits non-zero when any probe is unhealthy, so it can be
used from cron or CI.`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	svc, err := openServices(ctx)
	if err != nil {
		return err
	}
	defer svc.Close()

	report := svc.monitor.RunFullCheck(ctx)

	fmt.Println("=== localist health check ===")
	fmt.Println()
	for _, r := range report.Results {
		status := "OK"
		if !r.Healthy {
			status = "FAIL"
		}
		fmt.Printf("  %-18s ... %s", r.Name, status)
		if r.Detail != "" {
			fmt.Printf(" (%s)", r.Detail)
		}
		fmt.Println()
	}
	fmt.Println()

	if !report.Healthy {
		return fmt.Errorf("one or more components are unhealthy")
	}
	fmt.Println("All components healthy.")
	return nil
}
