package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	DefaultConfigDir  = ".localist"
	DefaultConfigFile = "config.json"
	DefaultDBFile     = ".localist/localist.db"

	// DefaultMonitorSchedule runs the full health check at the top of
	// every hour unless overridden.
	DefaultMonitorSchedule = "0 * * * *"
)

// Load reads the config file (creating it with defaults if absent) and returns
// a populated Config. The configPath flag may override the default location.
func Load(configPath string) (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("cannot determine home directory: %w", err)
	}

	v := viper.New()
	v.SetConfigType("json")
	v.SetEnvPrefix("LOCALIST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(filepath.Join(home, DefaultConfigDir))
	}

	setDefaults(v, home)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file exists but is malformed.
			if !isNotExist(err) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
		// No config yet — defaults carry us until Save is called.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.Database.Path = expandHome(cfg.Database.Path, home)
	return &cfg, nil
}

// Save writes the config to disk as JSON.
func Save(cfg *Config, configPath string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("cannot determine home directory: %w", err)
	}

	if configPath == "" {
		configPath = filepath.Join(home, DefaultConfigDir, DefaultConfigFile)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("serialising config: %w", err)
	}

	return os.WriteFile(configPath, data, 0o600)
}

// ConfigPath returns the effective config file path.
func ConfigPath(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DefaultConfigDir, DefaultConfigFile), nil
}

// setDefaults populates viper with sensible out-of-the-box values.
func setDefaults(v *viper.Viper, home string) {
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", filepath.Join(home, DefaultDBFile))
	v.SetDefault("database.dsn", "")

	v.SetDefault("notify.webhook_url", "")

	v.SetDefault("monitor.schedule", DefaultMonitorSchedule)
}

func expandHome(path, home string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}

func isNotExist(err error) bool {
	return os.IsNotExist(err) || strings.Contains(err.Error(), "no such file")
}
