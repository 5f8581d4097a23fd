package schedule

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/shridmishra/fixera-scheduling/adapter/cli"
	"github.com/shridmishra/fixera-scheduling/internal/scheduling/application/queries"
	"github.com/shridmishra/fixera-scheduling/internal/scheduling/domain"
)

var (
	proposeProjectID string
	proposeNow       string
	proposeSubproj   int
)

var proposeCmd = &cobra.Command{
	Use:   "propose",
	Short: "Compute the earliest bookable date and proposal set for a project",
	Long: `Resolve a project's external records and compute the earliest bookable
date, the earliest concrete proposal, and the shortest-throughput proposal.

Example:
  fixera-scheduling schedule propose --project 8f14e45f-ceea-467e-bb5f-7c4e01d7f2d1`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.BuildProposalsHandler == nil {
			fmt.Println("Scheduling queries require a database connection.")
			return nil
		}

		projectID, err := uuid.Parse(proposeProjectID)
		if err != nil {
			return fmt.Errorf("invalid --project: %w", err)
		}

		now := time.Now()
		if proposeNow != "" {
			now, err = time.Parse(time.RFC3339, proposeNow)
			if err != nil {
				return fmt.Errorf("invalid --now, use RFC3339: %w", err)
			}
		}

		var subIdx *int
		if proposeSubproj >= 0 {
			subIdx = &proposeSubproj
		}

		result, err := app.BuildProposalsHandler.Handle(cmd.Context(), queries.BuildProposalsQuery{
			ProjectID:       projectID,
			SubprojectIndex: subIdx,
			Now:             now,
		})
		if err != nil {
			return fmt.Errorf("build_proposals failed: %w", err)
		}

		d := result.EarliestBookableDate
		fmt.Printf("Earliest bookable date: %04d-%02d-%02d\n", d.Year, d.Month, d.Day)
		if result.EarliestProposal == nil {
			fmt.Println("No proposal found within the scan window.")
			return nil
		}
		printProposal("Earliest proposal", result.EarliestProposal)
		if result.ShortestThroughputProposal != nil && result.ShortestThroughputProposal != result.EarliestProposal {
			printProposal("Shortest-throughput proposal", result.ShortestThroughputProposal)
		}
		return nil
	},
}

func init() {
	proposeCmd.Flags().StringVar(&proposeProjectID, "project", "", "project ID (required)")
	proposeCmd.Flags().StringVar(&proposeNow, "now", "", "evaluate as of this RFC3339 instant (default: current time)")
	proposeCmd.Flags().IntVar(&proposeSubproj, "subproject", -1, "subproject index override (default: none)")
	_ = proposeCmd.MarkFlagRequired("project")
}

func printProposal(label string, p *domain.Proposal) {
	fmt.Printf("%s:\n", label)
	fmt.Printf("  start:         %s\n", p.Start.Format(time.RFC3339))
	fmt.Printf("  execution end: %s\n", p.ExecutionEnd.Format(time.RFC3339))
	fmt.Printf("  buffer end:    %s\n", p.BufferEnd.Format(time.RFC3339))
	if len(p.AssignedResources) > 0 {
		fmt.Printf("  resources:     %v\n", p.AssignedResources)
	}
	if p.ThroughputDays > 0 {
		fmt.Printf("  throughput:    %d working day(s)\n", p.ThroughputDays)
	}
}
