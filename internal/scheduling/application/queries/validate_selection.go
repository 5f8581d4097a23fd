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

// ValidateSelectionQuery carries the parameters for the validate_selection
// operation: the customer's concrete chosen start. For multi-resource
// projects the eligible team is derived by the subset-search algorithm, not
// supplied by the caller.
type ValidateSelectionQuery struct {
	ProjectID       uuid.UUID
	Start           time.Time
	CustomerBlocks  *domain.CustomerBlocks
	SubprojectIndex *int
	Now             time.Time
}

// QueryName satisfies application.Query.
func (ValidateSelectionQuery) QueryName() string { return "validate_selection" }

// ValidateSelectionHandler resolves a project's external records and checks
// a customer's chosen start against every validate_selection gate.
type ValidateSelectionHandler struct {
	resolver *services.Resolver
	cache    *services.ProposalCache
	audit    *services.AuditPublisher
	logger   *slog.Logger
	metrics  observability.Metrics
}

// NewValidateSelectionHandler wires a resolver and audit publisher into a
// handler for ValidateSelectionQuery. The proposal cache is invalidated on a
// successful validation, since the engine's caller is expected to turn a
// valid selection into a booking that changes the project's block state.
// Pass nil metrics to disable operation metric recording.
func NewValidateSelectionHandler(resolver *services.Resolver, cache *services.ProposalCache, audit *services.AuditPublisher, logger *slog.Logger, metrics observability.Metrics) *ValidateSelectionHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	return &ValidateSelectionHandler{resolver: resolver, cache: cache, audit: audit, logger: logger, metrics: metrics}
}

// Handle executes the ValidateSelectionQuery.
func (h *ValidateSelectionHandler) Handle(ctx context.Context, query ValidateSelectionQuery) (*domain.ValidationResult, error) {
	return observability.TimeOperationResult(ctx, h.logger, h.metrics, ValidateSelectionQuery{}.QueryName(), func() (*domain.ValidationResult, error) {
		records, err := h.resolver.Resolve(ctx, query.ProjectID)
		if err != nil {
			return nil, err
		}
		bookings, err := h.resolver.ActiveBookings(ctx, query.ProjectID)
		if err != nil {
			return nil, err
		}

		result, err := domain.ValidateSelection(domain.ValidateSelectionInput{
			Project:         records.Project,
			Professional:    records.Professional,
			Resources:       records.Resources,
			Bookings:        bookings,
			CustomerBlocks:  query.CustomerBlocks,
			SubprojectIndex: query.SubprojectIndex,
			Now:             query.Now,
			Start:           query.Start,
			Logger:          h.logger,
		})
		if err != nil {
			return nil, err
		}

		if !result.Valid {
			h.audit.Publish(ctx, services.Diagnostic{
				Kind:      services.DiagnosticSelectionRejected,
				ProjectID: query.ProjectID,
				Reason:    result.Reason,
				At:        query.Now,
			})
			return result, nil
		}

		h.cache.Invalidate(ctx, query.ProjectID, query.SubprojectIndex, query.Now)
		return result, nil
	})
}
