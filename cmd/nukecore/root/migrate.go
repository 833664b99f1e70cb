package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/nukecore/internal/storage"
	"github.com/sandeepkv93/nukecore/internal/update"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "migrate [up|down]",
		Short:     "Apply or roll back the database schema",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := update.RuntimeConfigFromEnv(update.DefaultRuntimeConfig())
			repo, err := storage.OpenSQLite(cfg.DatabasePath)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer repo.Close()

			var applied int
			switch args[0] {
			case "up":
				if applied, err = storage.MigrateUp(repo.DB()); err != nil {
					return fmt.Errorf("migrate up: %w", err)
				}
			case "down":
				if applied, err = storage.MigrateDown(repo.DB()); err != nil {
					return fmt.Errorf("migrate down: %w", err)
				}
			default:
				return fmt.Errorf("unknown direction: %s", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrate %s: applied %d (%s)\n", args[0], applied, cfg.DatabasePath)
			return nil
		},
	}
	return cmd
}
