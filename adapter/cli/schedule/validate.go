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
	validateProjectID string
	validateStart     string
	validateNow       string
	validateSubproj   int
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a customer's chosen start against a project's gates",
	Long: `Check a concrete start instant against working-day membership, the
preparation floor, block state, and (for multi-resource projects) team
overlap.

Example:
  fixera-scheduling schedule validate --project <id> --start 2026-08-10T09:00:00Z`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ValidateSelectionHandler == nil {
			fmt.Println("Scheduling queries require a database connection.")
			return nil
		}

		projectID, err := uuid.Parse(validateProjectID)
		if err != nil {
			return fmt.Errorf("invalid --project: %w", err)
		}
		start, err := time.Parse(time.RFC3339, validateStart)
		if err != nil {
			return fmt.Errorf("invalid --start, use RFC3339: %w", err)
		}

		now := time.Now()
		if validateNow != "" {
			now, err = time.Parse(time.RFC3339, validateNow)
			if err != nil {
				return fmt.Errorf("invalid --now, use RFC3339: %w", err)
			}
		}

		var subIdx *int
		if validateSubproj >= 0 {
			subIdx = &validateSubproj
		}

		result, err := app.ValidateSelectionHandler.Handle(cmd.Context(), queries.ValidateSelectionQuery{
			ProjectID:       projectID,
			Start:           start,
			SubprojectIndex: subIdx,
			Now:             now,
		})
		if err != nil {
			return fmt.Errorf("validate_selection failed: %w", err)
		}

		if !result.Valid {
			fmt.Printf("invalid: %s\n", result.Reason)
			return nil
		}
		fmt.Println("valid")
		if result.Window != nil {
			printProposal("Window", result.Window)
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVar(&validateProjectID, "project", "", "project ID (required)")
	validateCmd.Flags().StringVar(&validateStart, "start", "", "chosen start, RFC3339 (required)")
	validateCmd.Flags().StringVar(&validateNow, "now", "", "evaluate as of this RFC3339 instant (default: current time)")
	validateCmd.Flags().IntVar(&validateSubproj, "subproject", -1, "subproject index override (default: none)")
	_ = validateCmd.MarkFlagRequired("project")
	_ = validateCmd.MarkFlagRequired("start")
}
