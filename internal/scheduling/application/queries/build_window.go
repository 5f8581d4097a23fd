package queries

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/shridmishra/fixera-scheduling/internal/scheduling/application/services"
	"github.com/shridmishra/fixera-scheduling/internal/scheduling/domain"
	"github.com/shridmishra/fixera-scheduling/pkg/observability"
)

// BuildWindowQuery carries the parameters for the build_window operation:
// a start that has already passed validate_selection.
type BuildWindowQuery struct {
	ProjectID       uuid.UUID
	Start           time.Time
	CustomerBlocks  *domain.CustomerBlocks
	SubprojectIndex *int
}

// QueryName satisfies application.Query.
func (BuildWindowQuery) QueryName() string { return "build_window" }

// BuildWindowHandler resolves a project's external records and recomputes
// the concrete execution/buffer window for an already-validated start.
type BuildWindowHandler struct {
	resolver *services.Resolver
	logger   *slog.Logger
	metrics  observability.Metrics
}

// NewBuildWindowHandler wires a resolver into a handler for BuildWindowQuery.
// Pass nil metrics to disable operation metric recording.
func NewBuildWindowHandler(resolver *services.Resolver, logger *slog.Logger, metrics observability.Metrics) *BuildWindowHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	return &BuildWindowHandler{resolver: resolver, logger: logger, metrics: metrics}
}

// Handle executes the BuildWindowQuery.
func (h *BuildWindowHandler) Handle(ctx context.Context, query BuildWindowQuery) (*domain.Proposal, error) {
	return observability.TimeOperationResult(ctx, h.logger, h.metrics, BuildWindowQuery{}.QueryName(), func() (*domain.Proposal, error) {
		records, err := h.resolver.Resolve(ctx, query.ProjectID)
		if err != nil {
			return nil, err
		}
		bookings, err := h.resolver.ActiveBookings(ctx, query.ProjectID)
		if err != nil {
			return nil, err
		}

		return domain.BuildWindow(domain.BuildWindowInput{
			Project:         records.Project,
			Professional:    records.Professional,
			Resources:       records.Resources,
			Bookings:        bookings,
			CustomerBlocks:  query.CustomerBlocks,
			SubprojectIndex: query.SubprojectIndex,
			Start:           query.Start,
			Logger:          h.logger,
		})
	})
}
