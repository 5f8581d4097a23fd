package domain

import (
	"context"

	"github.com/google/uuid"
)

// ProjectRepository resolves the project a scheduling request targets.
type ProjectRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Project, error)
}

// ProfessionalRepository resolves the professional who owns a project.
type ProfessionalRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Professional, error)
}

// ResourceRepository resolves the assignable resources a project lists.
type ResourceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Resource, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*Resource, error)
}

// BookingRepository resolves the pre-existing bookings that can attribute
// blocked time to a project's resources.
type BookingRepository interface {
	FindActiveForProject(ctx context.Context, projectID uuid.UUID) ([]*Booking, error)
}
