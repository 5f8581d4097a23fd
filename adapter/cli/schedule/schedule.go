// Package schedule provides the schedule command group: propose, validate,
// and window, each a thin wrapper over one of the engine's query handlers.
package schedule

import (
	"github.com/spf13/cobra"
)

// Cmd is the schedule command group.
var Cmd = &cobra.Command{
	Use:   "schedule",
	Short: "Compute and validate bookable windows",
	Long:  `Compute proposals for a project, validate a chosen start, and build its concrete window.`,
}

func init() {
	Cmd.AddCommand(proposeCmd)
	Cmd.AddCommand(validateCmd)
	Cmd.AddCommand(windowCmd)
}
