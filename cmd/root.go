package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var (
	cfgFile string
	verbose bool
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "localist",
	Short: "Operational monitoring and alerting for the Localist newsletter platform",
	Long: `localist watches the newsletter/events platform from the outside: it runs
health probes against the data store, the feed-ingestion pipeline, and
campaign activity, and routes noteworthy events to a Slack webhook under
per-category policy stored in the application database.

Get started:
  localist doctor     Verify config and database connectivity
  localist check      Run a one-shot full health check
  localist monitor    Run health checks continuously on a cron schedule
  localist settings   Inspect or change persisted alerting settings
  localist notify     Send a test notification`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ~/.localist/config.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable verbose/debug output")

	rootCmd.Version = Version
	rootCmd.AddCommand(
		doctorCmd,
		checkCmd,
		monitorCmd,
		settingsCmd,
		notifyCmd,
		logsCmd,
	)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
	if verbose {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
		slog.Debug("Verbose logging enabled")
	}
}
