package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thelocalist/localist/internal/config"
	"github.com/thelocalist/localist/internal/database"
	"github.com/thelocalist/localist/internal/notify"
	"github.com/thelocalist/localist/internal/settings"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Verify config, database connectivity, and notification setup",
	Long: `Checks that the config file parses, the database can be reached, and a
webhook destination is configured, then reports per-category alert policy.`,
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	allOK := true

	fmt.Println("=== localist doctor ===")
	fmt.Println()

	fmt.Print("Database ................. ")
	db, err := database.New(cfg.Database)
	if err != nil {
		fmt.Printf("FAIL (%s)\n", err)
		allOK = false
	} else {
		if err := db.Ping(ctx); err != nil {
			fmt.Printf("FAIL (%s)\n", err)
			allOK = false
		} else {
			fmt.Printf("OK (%s)\n", db.Driver())
		}
	}

	if err == nil {
		defer db.Close()
		resolver := settings.NewResolver(db, cfg.Notify.WebhookURL)

		fmt.Print("Webhook destination ...... ")
		if url := resolver.WebhookURL(ctx); url == "" {
			fmt.Println("NOT CONFIGURED (alerts will be dropped — set slack_webhook_url)")
			allOK = false
		} else {
			fmt.Println("OK")
		}

		fmt.Println()
		fmt.Println("Alert categories:")
		for _, cat := range notify.Categories {
			fmt.Printf("  %-22s ... ", cat)
			if resolver.Bool(ctx, cat.SettingKey(), true) {
				fmt.Println("enabled")
			} else {
				fmt.Println("disabled")
			}
		}
	}

	fmt.Print("\nMonitor schedule ......... ")
	fmt.Println(cfg.Monitor.Schedule)

	fmt.Println()
	if !allOK {
		return fmt.Errorf("some checks failed")
	}
	fmt.Println("All checks passed.")
	return nil
}
