package queries

import (
	"context"

	"github.com/google/uuid"

	"github.com/shridmishra/fixera-scheduling/internal/scheduling/application/services"
	"github.com/shridmishra/fixera-scheduling/internal/scheduling/domain"
)

// The fakes below stand in for persistence.Repositories across every handler
// test in this package: each query handler only ever resolves a project, its
// professional, its resources, and its active bookings.

type fakeProjectRepo struct{ project *domain.Project }

func (f *fakeProjectRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	return f.project, nil
}

type fakeProfessionalRepo struct{ professional *domain.Professional }

func (f *fakeProfessionalRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Professional, error) {
	return f.professional, nil
}

type fakeResourceRepo struct{ resources []*domain.Resource }

func (f *fakeResourceRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Resource, error) {
	return nil, nil
}

func (f *fakeResourceRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Resource, error) {
	return f.resources, nil
}

type fakeBookingRepo struct{ bookings []*domain.Booking }

func (f *fakeBookingRepo) FindActiveForProject(ctx context.Context, projectID uuid.UUID) ([]*domain.Booking, error) {
	return f.bookings, nil
}

func newTestResolver(project *domain.Project, professional *domain.Professional, resources []*domain.Resource, bookings []*domain.Booking) *services.Resolver {
	return services.NewResolver(services.Repositories{
		Projects:      &fakeProjectRepo{project: project},
		Professionals: &fakeProfessionalRepo{professional: professional},
		Resources:     &fakeResourceRepo{resources: resources},
		Bookings:      &fakeBookingRepo{bookings: bookings},
	}, services.DefaultResolverConfig(), nil)
}
