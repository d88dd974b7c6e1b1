package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/thelocalist/localist/models"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Inspect or change persisted alerting settings",
}

var settingsGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print the value stored under a settings key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		svc, err := openServices(ctx)
		if err != nil {
			return err
		}
		defer svc.Close()

		var value string
		if err := svc.db.Get(ctx, &value, `SELECT value FROM settings WHERE name = ?`, args[0]); err != nil {
			return fmt.Errorf("setting %q not found", args[0])
		}
		fmt.Println(value)
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Create or update a settings row",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		svc, err := openServices(ctx)
		if err != nil {
			return err
		}
		defer svc.Close()

		setting := models.Setting{
			Name:      args[0],
			Value:     args[1],
			UpdatedAt: time.Now().UTC().Format(time.RFC3339),
		}
		if err := svc.db.Upsert(ctx, "settings", &setting, []string{"name"}); err != nil {
			return fmt.Errorf("saving setting: %w", err)
		}
		fmt.Printf("%s = %s\n", args[0], args[1])
		return nil
	},
}

var settingsUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Delete a settings row (resolvers fall back to defaults)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		svc, err := openServices(ctx)
		if err != nil {
			return err
		}
		defer svc.Close()

		if err := svc.db.Exec(ctx, `DELETE FROM settings WHERE name = ?`, args[0]); err != nil {
			return fmt.Errorf("deleting setting: %w", err)
		}
		fmt.Printf("unset %s\n", args[0])
		return nil
	},
}

var settingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all persisted settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		svc, err := openServices(ctx)
		if err != nil {
			return err
		}
		defer svc.Close()

		var rows []models.Setting
		if err := svc.db.Select(ctx, &rows,
			`SELECT id, name, value, updated_at FROM settings ORDER BY name`); err != nil {
			return fmt.Errorf("listing settings: %w", err)
		}
		if len(rows) == 0 {
			fmt.Println("no settings stored")
			return nil
		}
		for _, s := range rows {
			fmt.Printf("%-40s %s\n", s.Name, s.Value)
		}
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsGetCmd, settingsSetCmd, settingsUnsetCmd, settingsListCmd)
}
