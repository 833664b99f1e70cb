package root

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/nukecore/internal/alerts"
	"github.com/sandeepkv93/nukecore/internal/clock"
	"github.com/sandeepkv93/nukecore/internal/storage"
	"github.com/sandeepkv93/nukecore/internal/update"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Launch the TUI",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := update.RuntimeConfigFromEnv(update.DefaultRuntimeConfig())

			repo, err := storage.OpenSQLite(cfg.DatabasePath)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer repo.Close()
			if _, err := storage.MigrateUp(repo.DB()); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}

			engine := alerts.NewEngine(cfg.AlertBuffer)
			engine.Start()
			defer engine.Stop()

			model := update.NewModelWithConfig(repo, engine, clock.System{}, cfg)
			program := tea.NewProgram(model)
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("run: %w", err)
			}
			return nil
		},
	}
	return cmd
}
