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

// BuildProposalsQuery carries the parameters for the build_proposals
// operation: which project to schedule, the customer's supplied partial-day
// blocks, an optional subproject override, and the instant "now" is
// evaluated at.
type BuildProposalsQuery struct {
	ProjectID       uuid.UUID
	CustomerBlocks  *domain.CustomerBlocks
	SubprojectIndex *int
	Now             time.Time
}

// QueryName satisfies application.Query.
func (BuildProposalsQuery) QueryName() string { return "build_proposals" }

// BuildProposalsHandler resolves a project's external records, aggregates
// its blocks, and computes the earliest bookable date plus the earliest and
// shortest-throughput proposals, consulting the proposal cache first.
type BuildProposalsHandler struct {
	resolver *services.Resolver
	cache    *services.ProposalCache
	audit    *services.AuditPublisher
	logger   *slog.Logger
	metrics  observability.Metrics
}

// NewBuildProposalsHandler wires a resolver, cache, and audit publisher into
// a handler for BuildProposalsQuery. Pass nil metrics to disable operation
// metric recording.
func NewBuildProposalsHandler(resolver *services.Resolver, cache *services.ProposalCache, audit *services.AuditPublisher, logger *slog.Logger, metrics observability.Metrics) *BuildProposalsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	return &BuildProposalsHandler{resolver: resolver, cache: cache, audit: audit, logger: logger, metrics: metrics}
}

// Handle executes the BuildProposalsQuery.
func (h *BuildProposalsHandler) Handle(ctx context.Context, query BuildProposalsQuery) (*domain.ProposalSet, error) {
	return observability.TimeOperationResult(ctx, h.logger, h.metrics, BuildProposalsQuery{}.QueryName(), func() (*domain.ProposalSet, error) {
		cacheable := query.CustomerBlocks == nil
		if cacheable {
			if cached := h.cache.Get(ctx, query.ProjectID, query.SubprojectIndex, query.Now); cached != nil {
				h.logger.Debug("build_proposals cache hit", "project_id", query.ProjectID)
				return cached, nil
			}
		}

		records, err := h.resolver.Resolve(ctx, query.ProjectID)
		if err != nil {
			return nil, err
		}
		bookings, err := h.resolver.ActiveBookings(ctx, query.ProjectID)
		if err != nil {
			return nil, err
		}

		result, err := domain.BuildProposals(domain.BuildProposalsInput{
			Project:         records.Project,
			Professional:    records.Professional,
			Resources:       records.Resources,
			Bookings:        bookings,
			CustomerBlocks:  query.CustomerBlocks,
			SubprojectIndex: query.SubprojectIndex,
			Now:             query.Now,
			Logger:          h.logger,
		})
		if err != nil {
			return nil, err
		}

		if result.EarliestProposal == nil {
			h.audit.Publish(ctx, services.Diagnostic{
				Kind:      services.DiagnosticBlockedDay,
				ProjectID: query.ProjectID,
				Detail:    "no proposal found within the outer scan window",
				At:        query.Now,
			})
		}

		if cacheable {
			h.cache.Set(ctx, query.ProjectID, query.SubprojectIndex, query.Now, result)
		}
		return result, nil
	})
}
