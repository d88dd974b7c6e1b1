package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thelocalist/localist/internal/notify"
)

var (
	notifySeverity string
	notifyCategory string
)

var notifyCmd = &cobra.Command{
	Use:   "notify <message>",
	Short: "Send a test notification through the configured channel",
	Long: `Sends a message through the same path production alerts take, including
category enablement policy and outcome logging. Useful for verifying a
webhook URL after changing it.`,
	Args: cobra.ExactArgs(1),
	RunE: runNotify,
}

func init() {
	notifyCmd.Flags().StringVar(&notifySeverity, "severity", "info",
		"alert severity: info, warn, or error")
	notifyCmd.Flags().StringVar(&notifyCategory, "category", "",
		"alert category (empty bypasses the enablement check)")
}

func runNotify(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	severity := notify.Severity(notifySeverity)
	switch severity {
	case notify.SeverityInfo, notify.SeverityWarn, notify.SeverityError:
	default:
		return fmt.Errorf("unknown severity %q", notifySeverity)
	}
	category := notify.Category(notifyCategory)
	if !category.Valid() {
		return fmt.Errorf("unknown category %q", notifyCategory)
	}

	svc, err := openServices(ctx)
	if err != nil {
		return err
	}
	defer svc.Close()

	svc.notifier.SendAlert(ctx, args[0], severity, category)
	fmt.Println("notification attempted — check the logs table for the outcome")
	return nil
}
