package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/shridmishra/fixera-scheduling/internal/scheduling/domain"
	"github.com/shridmishra/fixera-scheduling/internal/shared/infrastructure/database"
)

// SQLiteRepositories implements every repository interface the engine needs
// against a SQLite connection, for the zero-config local-mode path.
type SQLiteRepositories struct {
	conn database.Connection
}

// NewSQLiteRepositories wraps an already-open SQLite connection.
func NewSQLiteRepositories(conn database.Connection) *SQLiteRepositories {
	return &SQLiteRepositories{conn: conn}
}

func (r *SQLiteRepositories) executor(ctx context.Context) database.Executor {
	return database.ExecutorFromContext(ctx, r.conn)
}

func (r *SQLiteRepositories) FindProjectByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	row := r.executor(ctx).QueryRow(ctx, `
		SELECT id, professional_id, execution_value, execution_unit,
		       preparation_value, preparation_unit, buffer_value, buffer_unit,
		       resources, min_resources, min_overlap_percentage, subprojects
		FROM scheduling_projects WHERE id = ?`, id.String())
	return scanProject(row)
}

func (r *SQLiteRepositories) FindProfessionalByID(ctx context.Context, id uuid.UUID) (*domain.Professional, error) {
	row := r.executor(ctx).QueryRow(ctx, `
		SELECT id, time_zone, company_availability, company_blocked_dates,
		       company_blocked_ranges, holiday_rules
		FROM scheduling_professionals WHERE id = ?`, id.String())
	return scanProfessional(row)
}

func (r *SQLiteRepositories) FindResourceByID(ctx context.Context, id uuid.UUID) (*domain.Resource, error) {
	row := r.executor(ctx).QueryRow(ctx, `
		SELECT id, professional_id, blocked_dates, blocked_ranges
		FROM scheduling_resources WHERE id = ?`, id.String())
	return scanResource(row)
}

func (r *SQLiteRepositories) FindResourcesByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Resource, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id.String()
	}
	rows, err := r.executor(ctx).Query(ctx, `
		SELECT id, professional_id, blocked_dates, blocked_ranges
		FROM scheduling_resources WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanResources(rows)
}

func (r *SQLiteRepositories) FindActiveBookingsForProject(ctx context.Context, projectID uuid.UUID) ([]*domain.Booking, error) {
	rows, err := r.executor(ctx).Query(ctx, `
		SELECT id, project_id, professional_id, status, starts_at, execution_end, buffer_end, assigned_team_members
		FROM scheduling_bookings
		WHERE project_id = ? AND status NOT IN ('completed', 'cancelled', 'refunded')`, projectID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}
