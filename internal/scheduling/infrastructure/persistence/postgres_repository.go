package persistence

import (
	"context"

	"github.com/google/uuid"

	"github.com/shridmishra/fixera-scheduling/internal/scheduling/domain"
	"github.com/shridmishra/fixera-scheduling/internal/shared/infrastructure/database"
)

// PostgresRepositories implements every repository interface the engine
// needs against a PostgreSQL connection, selected through DetectDriver the
// same way the teacher's sqlite/postgres connections self-register.
type PostgresRepositories struct {
	conn database.Connection
}

// NewPostgresRepositories wraps an already-open PostgreSQL connection.
func NewPostgresRepositories(conn database.Connection) *PostgresRepositories {
	return &PostgresRepositories{conn: conn}
}

func (r *PostgresRepositories) executor(ctx context.Context) database.Executor {
	return database.ExecutorFromContext(ctx, r.conn)
}

func (r *PostgresRepositories) FindProjectByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	row := r.executor(ctx).QueryRow(ctx, `
		SELECT id, professional_id, execution_value, execution_unit,
		       preparation_value, preparation_unit, buffer_value, buffer_unit,
		       resources, min_resources, min_overlap_percentage, subprojects
		FROM scheduling_projects WHERE id = $1`, id)
	return scanProject(row)
}

func (r *PostgresRepositories) FindProfessionalByID(ctx context.Context, id uuid.UUID) (*domain.Professional, error) {
	row := r.executor(ctx).QueryRow(ctx, `
		SELECT id, time_zone, company_availability, company_blocked_dates,
		       company_blocked_ranges, holiday_rules
		FROM scheduling_professionals WHERE id = $1`, id)
	return scanProfessional(row)
}

func (r *PostgresRepositories) FindResourceByID(ctx context.Context, id uuid.UUID) (*domain.Resource, error) {
	row := r.executor(ctx).QueryRow(ctx, `
		SELECT id, professional_id, blocked_dates, blocked_ranges
		FROM scheduling_resources WHERE id = $1`, id)
	return scanResource(row)
}

func (r *PostgresRepositories) FindResourcesByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Resource, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.executor(ctx).Query(ctx, `
		SELECT id, professional_id, blocked_dates, blocked_ranges
		FROM scheduling_resources WHERE id = ANY($1::uuid[])`, uuidStrings(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanResources(rows)
}

func (r *PostgresRepositories) FindActiveBookingsForProject(ctx context.Context, projectID uuid.UUID) ([]*domain.Booking, error) {
	rows, err := r.executor(ctx).Query(ctx, `
		SELECT id, project_id, professional_id, status, starts_at, execution_end, buffer_end, assigned_team_members
		FROM scheduling_bookings
		WHERE project_id = $1 AND status NOT IN ('completed', 'cancelled', 'refunded')`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
