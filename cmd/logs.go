package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thelocalist/localist/models"
)

var (
	logsLimit  int
	logsLevel  string
	logsSource string
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show recent operational log entries",
	RunE:  runLogs,
}

func init() {
	logsCmd.Flags().IntVar(&logsLimit, "limit", 50, "maximum entries to show")
	logsCmd.Flags().StringVar(&logsLevel, "level", "", "filter by level (info, warn, error)")
	logsCmd.Flags().StringVar(&logsSource, "source", "", "filter by source")
}

func runLogs(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	svc, err := openServices(ctx)
	if err != nil {
		return err
	}
	defer svc.Close()

	query := `SELECT id, level, message, context, source, created_at FROM logs`
	var (
		conds []string
		qargs []interface{}
	)
	if logsLevel != "" {
		conds = append(conds, "level = ?")
		qargs = append(qargs, logsLevel)
	}
	if logsSource != "" {
		conds = append(conds, "source = ?")
		qargs = append(qargs, logsSource)
	}
	for i, c := range conds {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += " ORDER BY id DESC LIMIT ?"
	qargs = append(qargs, logsLimit)

	var entries []models.LogEntry
	if err := svc.db.Select(ctx, &entries, query, qargs...); err != nil {
		return fmt.Errorf("querying logs: %w", err)
	}

	for _, e := range entries {
		fmt.Printf("%s  %-5s  [%s]  %s\n", e.CreatedAt, e.Level, e.Source, e.Message)
	}
	if len(entries) == 0 {
		fmt.Println("no log entries")
	}
	return nil
}
