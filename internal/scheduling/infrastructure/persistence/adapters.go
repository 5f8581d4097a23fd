package persistence

import (
	"context"

	"github.com/google/uuid"

	"github.com/shridmishra/fixera-scheduling/internal/scheduling/domain"
)

// backend is satisfied by both PostgresRepositories and SQLiteRepositories;
// the narrow per-entity adapters below exist only to give each one the
// exact method name (FindByID) domain.ProjectRepository and friends require.
type backend interface {
	FindProjectByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	FindProfessionalByID(ctx context.Context, id uuid.UUID) (*domain.Professional, error)
	FindResourceByID(ctx context.Context, id uuid.UUID) (*domain.Resource, error)
	FindResourcesByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Resource, error)
	FindActiveBookingsForProject(ctx context.Context, projectID uuid.UUID) ([]*domain.Booking, error)
}

// Repositories bundles the four domain repository interfaces backed by a
// single storage connection. Call NewPostgresRepositories or
// NewSQLiteRepositories, then Repositories(backend) to get the set.
type Repositories struct {
	Projects      domain.ProjectRepository
	Professionals domain.ProfessionalRepository
	Resources     domain.ResourceRepository
	Bookings      domain.BookingRepository
}

// NewRepositories adapts any backend into the four narrow interfaces the
// engine's orchestration layer depends on.
func NewRepositories(b backend) Repositories {
	return Repositories{
		Projects:      projectRepository{b},
		Professionals: professionalRepository{b},
		Resources:     resourceRepository{b},
		Bookings:      bookingRepository{b},
	}
}

type projectRepository struct{ b backend }

func (r projectRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	return r.b.FindProjectByID(ctx, id)
}

type professionalRepository struct{ b backend }

func (r professionalRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Professional, error) {
	return r.b.FindProfessionalByID(ctx, id)
}

type resourceRepository struct{ b backend }

func (r resourceRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Resource, error) {
	return r.b.FindResourceByID(ctx, id)
}

func (r resourceRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Resource, error) {
	return r.b.FindResourcesByIDs(ctx, ids)
}

type bookingRepository struct{ b backend }

func (r bookingRepository) FindActiveForProject(ctx context.Context, projectID uuid.UUID) ([]*domain.Booking, error) {
	return r.b.FindActiveBookingsForProject(ctx, projectID)
}
