package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "nukecore",
	Short:         "NukeCore — terminal day planner with goals, reflections and focus sprints",
	Long:          "NukeCore is a keyboard-driven TUI planner: a zoomable day timeline, priority-ranked tasks, goals with derived progress, a reflection journal and a focus sprint timer.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newRunCmd(),
		newMigrateCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "nukecore: "+err.Error())
		os.Exit(1)
	}
}
