// Package services wires the domain's pure scheduling functions to external
// record resolution, caching, and audit publishing.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/sync/errgroup"

	"github.com/shridmishra/fixera-scheduling/internal/scheduling/domain"
)

// ResolverConfig tunes the circuit breaker wrapping each repository call.
// Mirrors the engine runtime's ExecutorConfig defaults.
type ResolverConfig struct {
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold uint32
}

// DefaultResolverConfig returns the breaker settings used when none are
// supplied.
func DefaultResolverConfig() ResolverConfig {
	return ResolverConfig{
		MaxRequests:      3,
		Interval:         10 * time.Second,
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
	}
}

// Resolver fetches the external records an engine operation needs
// (Project, Professional, Resources, active Bookings), running independent
// lookups concurrently and guarding each repository behind its own circuit
// breaker so a failing resource store doesn't cascade into the others.
type Resolver struct {
	projects      domain.ProjectRepository
	professionals domain.ProfessionalRepository
	resources     domain.ResourceRepository
	bookings      domain.BookingRepository

	projectBreaker      *gobreaker.CircuitBreaker[*domain.Project]
	professionalBreaker *gobreaker.CircuitBreaker[*domain.Professional]
	resourceBreaker     *gobreaker.CircuitBreaker[[]*domain.Resource]
	bookingBreaker      *gobreaker.CircuitBreaker[[]*domain.Booking]

	logger *slog.Logger
}

// Repositories is the minimal set of repository interfaces a Resolver needs;
// satisfied by persistence.Repositories.
type Repositories struct {
	Projects      domain.ProjectRepository
	Professionals domain.ProfessionalRepository
	Resources     domain.ResourceRepository
	Bookings      domain.BookingRepository
}

// NewResolver builds a Resolver with one circuit breaker per repository.
func NewResolver(repos Repositories, cfg ResolverConfig, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	onStateChange := func(name string, from, to gobreaker.State) {
		logger.Warn("resolver circuit breaker state changed", "repository", name, "from", from.String(), "to", to.String())
	}
	readyToTrip := func(counts gobreaker.Counts) bool {
		return counts.ConsecutiveFailures >= cfg.FailureThreshold
	}

	return &Resolver{
		projects:      repos.Projects,
		professionals: repos.Professionals,
		resources:     repos.Resources,
		bookings:      repos.Bookings,
		logger:        logger,
		projectBreaker: gobreaker.NewCircuitBreaker[*domain.Project](gobreaker.Settings{
			Name: "scheduling.projects", MaxRequests: cfg.MaxRequests, Interval: cfg.Interval, Timeout: cfg.Timeout,
			ReadyToTrip: readyToTrip, OnStateChange: onStateChange,
		}),
		professionalBreaker: gobreaker.NewCircuitBreaker[*domain.Professional](gobreaker.Settings{
			Name: "scheduling.professionals", MaxRequests: cfg.MaxRequests, Interval: cfg.Interval, Timeout: cfg.Timeout,
			ReadyToTrip: readyToTrip, OnStateChange: onStateChange,
		}),
		resourceBreaker: gobreaker.NewCircuitBreaker[[]*domain.Resource](gobreaker.Settings{
			Name: "scheduling.resources", MaxRequests: cfg.MaxRequests, Interval: cfg.Interval, Timeout: cfg.Timeout,
			ReadyToTrip: readyToTrip, OnStateChange: onStateChange,
		}),
		bookingBreaker: gobreaker.NewCircuitBreaker[[]*domain.Booking](gobreaker.Settings{
			Name: "scheduling.bookings", MaxRequests: cfg.MaxRequests, Interval: cfg.Interval, Timeout: cfg.Timeout,
			ReadyToTrip: readyToTrip, OnStateChange: onStateChange,
		}),
	}
}

// ResolvedRecords bundles everything the domain's build_proposals,
// validate_selection, and build_window operations need.
type ResolvedRecords struct {
	Project      *domain.Project
	Professional *domain.Professional
	Resources    []*domain.Resource
}

// Resolve fetches the project, its professional, and its resources
// concurrently. The professional lookup waits on the project result since it
// needs Project.ProfessionalID; the resource lookup waits on the same thing.
// Both then run in parallel via errgroup.
func (r *Resolver) Resolve(ctx context.Context, projectID uuid.UUID) (*ResolvedRecords, error) {
	project, err := r.projectBreaker.Execute(func() (*domain.Project, error) {
		return r.projects.FindByID(ctx, projectID)
	})
	if err != nil {
		return nil, fmt.Errorf("resolve project %s: %w", projectID, err)
	}

	group, gctx := errgroup.WithContext(ctx)
	var professional *domain.Professional
	var resources []*domain.Resource

	group.Go(func() error {
		p, err := r.professionalBreaker.Execute(func() (*domain.Professional, error) {
			return r.professionals.FindByID(gctx, project.ProfessionalID)
		})
		if err != nil {
			return fmt.Errorf("resolve professional %s: %w", project.ProfessionalID, err)
		}
		professional = p
		return nil
	})

	group.Go(func() error {
		if len(project.Resources) == 0 {
			return nil
		}
		res, err := r.resourceBreaker.Execute(func() ([]*domain.Resource, error) {
			return r.resources.FindByIDs(gctx, project.Resources)
		})
		if err != nil {
			return fmt.Errorf("resolve resources for project %s: %w", projectID, err)
		}
		resources = res
		return nil
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return &ResolvedRecords{Project: project, Professional: professional, Resources: resources}, nil
}

// ActiveBookings fetches a project's active bookings behind the booking
// repository's breaker. Kept separate from Resolve since build_window does
// not always need it (a caller that already validated a selection may reuse
// the same booking snapshot it validated against).
func (r *Resolver) ActiveBookings(ctx context.Context, projectID uuid.UUID) ([]*domain.Booking, error) {
	bookings, err := r.bookingBreaker.Execute(func() ([]*domain.Booking, error) {
		return r.bookings.FindActiveForProject(ctx, projectID)
	})
	if err != nil {
		return nil, fmt.Errorf("resolve active bookings for project %s: %w", projectID, err)
	}
	return bookings, nil
}
