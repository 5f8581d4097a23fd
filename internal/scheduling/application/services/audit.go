package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/shridmishra/fixera-scheduling/internal/shared/application"
	sharedDomain "github.com/shridmishra/fixera-scheduling/internal/shared/domain"
	"github.com/shridmishra/fixera-scheduling/internal/shared/infrastructure/eventbus"
	"github.com/shridmishra/fixera-scheduling/pkg/observability"
)

// auditRoutingKey namespaces published diagnostics by kind, mirroring the
// teacher's exchange-plus-routing-key convention.
const auditRoutingKey = "scheduling.diagnostic"

// DiagnosticKind identifies why a scheduling operation produced a notable
// outcome worth recording, independent of whether it failed outright.
type DiagnosticKind string

const (
	// DiagnosticBlockedDay is published by BuildProposalsHandler when the
	// scan finds no proposal.
	DiagnosticBlockedDay DiagnosticKind = "blocked_day"
	// DiagnosticSubsetCapExceeded names the case where ForEachSubset refuses
	// to search because the combination space exceeds MaxSubsetIterations; no
	// handler in this module publishes it.
	DiagnosticSubsetCapExceeded DiagnosticKind = "subset_cap_exceeded"
	// DiagnosticSelectionRejected fires when validate_selection returns
	// Valid=false, carrying the stable Reason code.
	DiagnosticSelectionRejected DiagnosticKind = "selection_rejected"
)

// Diagnostic is the audit payload published for a notable scheduling
// outcome. It is best-effort telemetry, never read back by the engine.
type Diagnostic struct {
	Kind      DiagnosticKind `json:"kind"`
	ProjectID uuid.UUID      `json:"project_id"`
	Reason    string         `json:"reason,omitempty"`
	Detail    string         `json:"detail,omitempty"`
	At        time.Time      `json:"at"`
}

// AuditPublisher publishes best-effort diagnostics about scheduling
// computations. Publish failures are logged and swallowed: audit events
// never block or fail the operation that produced them.
type AuditPublisher struct {
	publisher eventbus.Publisher
	logger    *slog.Logger
	metrics   observability.Metrics
}

// NewAuditPublisher wraps an eventbus.Publisher. Pass eventbus.NewNoopPublisher
// for local/offline mode. Pass nil metrics to disable publish-count recording.
func NewAuditPublisher(publisher eventbus.Publisher, logger *slog.Logger, metrics observability.Metrics) *AuditPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	return &AuditPublisher{publisher: publisher, logger: logger, metrics: metrics}
}

// Publish best-effort publishes a Diagnostic. Errors are logged, not
// returned, so a broker outage never surfaces to a scheduling caller.
func (a *AuditPublisher) Publish(ctx context.Context, diag Diagnostic) {
	meta := application.NewEventMetadata(uuid.Nil)
	envelope := struct {
		Metadata   sharedDomain.EventMetadata `json:"metadata"`
		Diagnostic Diagnostic                 `json:"diagnostic"`
	}{Metadata: meta, Diagnostic: diag}

	payload, err := json.Marshal(envelope)
	if err != nil {
		a.logger.Warn("audit diagnostic encode failed", "kind", diag.Kind, "error", err)
		return
	}
	if err := a.publisher.Publish(ctx, auditRoutingKey, payload); err != nil {
		a.logger.Warn("audit diagnostic publish failed", "kind", diag.Kind, "error", err)
		return
	}
	a.metrics.Counter(observability.MetricEventsPublished, 1, observability.T("kind", string(diag.Kind)))
}
