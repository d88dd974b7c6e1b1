package config

// Config is the root configuration structure for localist.
// Serialised to ~/.localist/config.json.
type Config struct {
	Database DatabaseConfig `mapstructure:"database" json:"database"`
	Notify   NotifyConfig   `mapstructure:"notify"   json:"notify"`
	Monitor  MonitorConfig  `mapstructure:"monitor"  json:"monitor"`
}

// DatabaseConfig controls the storage backend.
type DatabaseConfig struct {
	// Driver is "sqlite" (default) or "mysql".
	Driver string `mapstructure:"driver" json:"driver"`
	// Path is the SQLite file path (expanded at runtime).
	Path string `mapstructure:"path"   json:"path"`
	// DSN is the MySQL data source name (used when Driver == "mysql").
	DSN string `mapstructure:"dsn"    json:"dsn"`
}

// NotifyConfig controls the Slack notification channel.
type NotifyConfig struct {
	// WebhookURL is the fallback destination used when the settings table
	// has no slack_webhook_url row. May be empty, in which case delivery
	// stays off until an admin configures one.
	WebhookURL string `mapstructure:"webhook_url" json:"webhook_url"`
}

// MonitorConfig controls the background health-check daemon.
type MonitorConfig struct {
	// Schedule is a cron expression for periodic full health checks.
	Schedule string `mapstructure:"schedule" json:"schedule"`
}
