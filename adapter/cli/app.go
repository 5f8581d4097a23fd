package cli

import (
	"github.com/shridmishra/fixera-scheduling/internal/scheduling/application/queries"
)

// App holds the CLI application's query handlers. Unlike a full product
// CLI, this app has no command handlers: every scheduling operation the CLI
// exposes is a read.
type App struct {
	BuildProposalsHandler    *queries.BuildProposalsHandler
	ValidateSelectionHandler *queries.ValidateSelectionHandler
	BuildWindowHandler       *queries.BuildWindowHandler
}

// NewApp wires the three scheduling query handlers into an App.
func NewApp(
	buildProposals *queries.BuildProposalsHandler,
	validateSelection *queries.ValidateSelectionHandler,
	buildWindow *queries.BuildWindowHandler,
) *App {
	return &App{
		BuildProposalsHandler:    buildProposals,
		ValidateSelectionHandler: validateSelection,
		BuildWindowHandler:       buildWindow,
	}
}

// app is the global CLI application instance.
var app *App

// SetApp sets the global CLI application instance.
func SetApp(a *App) {
	app = a
}

// GetApp returns the global CLI application instance.
func GetApp() *App {
	return app
}
