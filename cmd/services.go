package cmd

import (
	"context"
	"fmt"

	"github.com/thelocalist/localist/internal/config"
	"github.com/thelocalist/localist/internal/database"
	"github.com/thelocalist/localist/internal/health"
	"github.com/thelocalist/localist/internal/notify"
	"github.com/thelocalist/localist/internal/oplog"
	"github.com/thelocalist/localist/internal/settings"
)

// services bundles the per-process singletons: one DB handle, one settings
// resolver, one notification client, one logger, one monitor. Commands
// construct it once and pass pieces down by reference.
type services struct {
	cfg      *config.Config
	db       database.DB
	resolver *settings.Resolver
	notifier *notify.Client
	logger   *oplog.Logger
	monitor  *health.Monitor
}

// openServices loads config, opens the database (applying migrations), and
// wires the alerting stack. Callers must Close when done.
func openServices(ctx context.Context) (*services, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	db, err := database.New(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating database: %w", err)
	}

	resolver := settings.NewResolver(db, cfg.Notify.WebhookURL)
	notifier := notify.NewClient(db, resolver)
	logger := oplog.New(db, notifier)

	return &services{
		cfg:      cfg,
		db:       db,
		resolver: resolver,
		notifier: notifier,
		logger:   logger,
		monitor:  health.NewMonitor(db, notifier, logger),
	}, nil
}

func (s *services) Close() {
	s.db.Close()
}
