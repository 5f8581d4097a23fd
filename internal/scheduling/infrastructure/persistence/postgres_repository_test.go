package persistence

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shridmishra/fixera-scheduling/internal/scheduling/domain"
	"github.com/shridmishra/fixera-scheduling/internal/shared/infrastructure/database"
)

// pgPoolAdapter adapts *pgxpool.Pool to database.Connection. pgx.Row and
// pgx.Rows already satisfy database.Row/database.Rows, so only the
// Connection-level methods need wrapping.
type pgPoolAdapter struct{ pool *pgxpool.Pool }

func (c *pgPoolAdapter) Exec(ctx context.Context, query string, args ...any) (database.Result, error) {
	tag, err := c.pool.Exec(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgResult{tag.RowsAffected()}, nil
}

func (c *pgPoolAdapter) QueryRow(ctx context.Context, query string, args ...any) database.Row {
	return c.pool.QueryRow(ctx, query, args...)
}

func (c *pgPoolAdapter) Query(ctx context.Context, query string, args ...any) (database.Rows, error) {
	return c.pool.Query(ctx, query, args...)
}

func (c *pgPoolAdapter) BeginTx(ctx context.Context) (database.Transaction, error) { return nil, nil }
func (c *pgPoolAdapter) Close() error                                             { c.pool.Close(); return nil }
func (c *pgPoolAdapter) Ping(ctx context.Context) error                          { return c.pool.Ping(ctx) }
func (c *pgPoolAdapter) Driver() database.Driver                                  { return database.DriverPostgres }

type pgResult struct{ rows int64 }

func (r pgResult) RowsAffected() (int64, error) { return r.rows, nil }
func (r pgResult) LastInsertId() (int64, error) { return 0, nil }

func setupPostgresTestDB(t *testing.T) *PostgresRepositories {
	t.Helper()
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Skipf("failed to connect to test database: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		t.Skipf("failed to ping test database: %v", err)
	}
	t.Cleanup(pool.Close)

	_, _ = pool.Exec(ctx, "DELETE FROM scheduling_bookings")
	_, _ = pool.Exec(ctx, "DELETE FROM scheduling_projects")
	_, _ = pool.Exec(ctx, "DELETE FROM scheduling_resources")
	_, _ = pool.Exec(ctx, "DELETE FROM scheduling_professionals")

	return NewPostgresRepositories(&pgPoolAdapter{pool: pool})
}

func TestPostgresRepositoriesProjectRoundTrip(t *testing.T) {
	repo := setupPostgresTestDB(t)
	ctx := context.Background()
	professionalID := uuid.New()
	projectID := uuid.New()
	resourceID := uuid.New()

	_, err := repo.conn.Exec(ctx, `INSERT INTO scheduling_professionals (id, time_zone) VALUES ($1, $2)`,
		professionalID, "UTC")
	require.NoError(t, err)

	resourcesRaw, _ := encodeUUIDs([]uuid.UUID{resourceID})
	subprojectsRaw, _ := encodeSubprojects(nil)
	_, err = repo.conn.Exec(ctx, `INSERT INTO scheduling_projects
		(id, professional_id, execution_value, execution_unit, resources, min_resources, min_overlap_percentage, subprojects)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		projectID, professionalID, 2.0, "hours", string(resourcesRaw), 1, 90, string(subprojectsRaw))
	require.NoError(t, err)

	project, err := repo.FindProjectByID(ctx, projectID)
	require.NoError(t, err)
	assert.Equal(t, projectID, project.ID)
	assert.Equal(t, domain.Duration{Value: 2, Unit: domain.DurationHours}, project.ExecutionDuration)
	assert.Equal(t, []uuid.UUID{resourceID}, project.Resources)
}

func TestPostgresRepositoriesProjectNotFound(t *testing.T) {
	repo := setupPostgresTestDB(t)
	_, err := repo.FindProjectByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
}
