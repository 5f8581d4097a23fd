package schedule

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/shridmishra/fixera-scheduling/adapter/cli"
	"github.com/shridmishra/fixera-scheduling/internal/scheduling/application/queries"
)

var (
	windowProjectID string
	windowStart     string
	windowSubproj   int
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Build the concrete window for an already-validated start",
	Long: `Recompute the execution-end and buffer-end instants for a start that has
already passed schedule validate, without re-checking block state.

Example:
  fixera-scheduling schedule window --project <id> --start 2026-08-10T09:00:00Z`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.BuildWindowHandler == nil {
			fmt.Println("Scheduling queries require a database connection.")
			return nil
		}

		projectID, err := uuid.Parse(windowProjectID)
		if err != nil {
			return fmt.Errorf("invalid --project: %w", err)
		}
		start, err := time.Parse(time.RFC3339, windowStart)
		if err != nil {
			return fmt.Errorf("invalid --start, use RFC3339: %w", err)
		}

		var subIdx *int
		if windowSubproj >= 0 {
			subIdx = &windowSubproj
		}

		window, err := app.BuildWindowHandler.Handle(cmd.Context(), queries.BuildWindowQuery{
			ProjectID:       projectID,
			Start:           start,
			SubprojectIndex: subIdx,
		})
		if err != nil {
			return fmt.Errorf("build_window failed: %w", err)
		}

		printProposal("Window", window)
		return nil
	},
}

func init() {
	windowCmd.Flags().StringVar(&windowProjectID, "project", "", "project ID (required)")
	windowCmd.Flags().StringVar(&windowStart, "start", "", "validated start, RFC3339 (required)")
	windowCmd.Flags().IntVar(&windowSubproj, "subproject", -1, "subproject index override (default: none)")
	_ = windowCmd.MarkFlagRequired("project")
	_ = windowCmd.MarkFlagRequired("start")
}
