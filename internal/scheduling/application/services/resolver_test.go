package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shridmishra/fixera-scheduling/internal/scheduling/domain"
)

type stubProjectRepo struct {
	project *domain.Project
	err     error
}

func (s *stubProjectRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	return s.project, s.err
}

type stubProfessionalRepo struct {
	professional *domain.Professional
	err          error
}

func (s *stubProfessionalRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Professional, error) {
	return s.professional, s.err
}

type stubResourceRepo struct {
	resources []*domain.Resource
	err       error
}

func (s *stubResourceRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Resource, error) {
	return nil, nil
}

func (s *stubResourceRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Resource, error) {
	return s.resources, s.err
}

type stubBookingRepo struct {
	bookings []*domain.Booking
	err      error
}

func (s *stubBookingRepo) FindActiveForProject(ctx context.Context, projectID uuid.UUID) ([]*domain.Booking, error) {
	return s.bookings, s.err
}

func TestResolverResolveFetchesEverythingConcurrently(t *testing.T) {
	professionalID := uuid.New()
	resourceID := uuid.New()
	project := &domain.Project{ID: uuid.New(), ProfessionalID: professionalID, Resources: []uuid.UUID{resourceID}}
	professional := &domain.Professional{ID: professionalID}
	resources := []*domain.Resource{{ID: resourceID}}

	resolver := NewResolver(Repositories{
		Projects:      &stubProjectRepo{project: project},
		Professionals: &stubProfessionalRepo{professional: professional},
		Resources:     &stubResourceRepo{resources: resources},
		Bookings:      &stubBookingRepo{},
	}, DefaultResolverConfig(), nil)

	result, err := resolver.Resolve(context.Background(), project.ID)
	require.NoError(t, err)
	assert.Same(t, project, result.Project)
	assert.Same(t, professional, result.Professional)
	assert.Equal(t, resources, result.Resources)
}

func TestResolverResolveSkipsResourceLookupWhenProjectHasNone(t *testing.T) {
	professionalID := uuid.New()
	project := &domain.Project{ID: uuid.New(), ProfessionalID: professionalID}

	resolver := NewResolver(Repositories{
		Projects:      &stubProjectRepo{project: project},
		Professionals: &stubProfessionalRepo{professional: &domain.Professional{ID: professionalID}},
		Resources:     &stubResourceRepo{err: errors.New("should never be called")},
		Bookings:      &stubBookingRepo{},
	}, DefaultResolverConfig(), nil)

	result, err := resolver.Resolve(context.Background(), project.ID)
	require.NoError(t, err)
	assert.Nil(t, result.Resources)
}

func TestResolverResolvePropagatesProjectLookupFailure(t *testing.T) {
	resolver := NewResolver(Repositories{
		Projects:      &stubProjectRepo{err: errors.New("db down")},
		Professionals: &stubProfessionalRepo{},
		Resources:     &stubResourceRepo{},
		Bookings:      &stubBookingRepo{},
	}, DefaultResolverConfig(), nil)

	_, err := resolver.Resolve(context.Background(), uuid.New())
	assert.Error(t, err)
}

func TestResolverActiveBookings(t *testing.T) {
	bookings := []*domain.Booking{{ID: uuid.New()}}
	resolver := NewResolver(Repositories{
		Projects:      &stubProjectRepo{},
		Professionals: &stubProfessionalRepo{},
		Resources:     &stubResourceRepo{},
		Bookings:      &stubBookingRepo{bookings: bookings},
	}, DefaultResolverConfig(), nil)

	result, err := resolver.ActiveBookings(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, bookings, result)
}
