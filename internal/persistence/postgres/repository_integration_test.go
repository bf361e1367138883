//go:build integration

package postgres

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	postgrescontainer "github.com/testcontainers/testcontainers-go/modules/postgres"

	"example.com/fitapp/internal/domain"
)

func setupPool(t *testing.T, ctx context.Context) *pgxpool.Pool {
	t.Helper()

	pg, err := postgrescontainer.RunContainer(ctx,
		postgrescontainer.WithDatabase("fitapp"),
		postgrescontainer.WithUsername("fitapp"),
		postgrescontainer.WithPassword("fitapp"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(ctx) })

	connStr, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, waitForDatabase(ctx, connStr))
	runMigrations(t, ctx, connStr)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })
	return pool
}

func TestPersonalRepositoryOwnerScoping(t *testing.T) {
	ctx := context.Background()
	pool := setupPool(t, ctx)
	repo := NewPersonalRepository(pool)

	now := time.Now().UTC().Truncate(time.Second)
	mine := domain.PersonalWorkout{
		ID:          uuid.NewString(),
		OwnerID:     "owner-a",
		Name:        "Deadlift",
		Description: "Full-body strength exercise.",
		Duration:    40 * time.Minute,
		Calories:    250,
		RowVersion:  1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	theirs := mine
	theirs.ID = uuid.NewString()
	theirs.OwnerID = "owner-b"
	theirs.Name = "Yoga"

	require.NoError(t, repo.Insert(ctx, mine))
	require.NoError(t, repo.Insert(ctx, theirs))

	listed, err := repo.ListByOwner(ctx, "owner-a")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, mine.ID, listed[0].ID)
	require.Equal(t, 40*time.Minute, listed[0].Duration)
}

func TestPersonalRepositoryVersionedUpdate(t *testing.T) {
	ctx := context.Background()
	pool := setupPool(t, ctx)
	repo := NewPersonalRepository(pool)

	now := time.Now().UTC().Truncate(time.Second)
	workout := domain.PersonalWorkout{
		ID:         uuid.NewString(),
		OwnerID:    "owner-a",
		Name:       "Deadlift",
		Duration:   40 * time.Minute,
		Calories:   250,
		RowVersion: 1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, repo.Insert(ctx, workout))

	workout.Calories = 275
	require.NoError(t, repo.Update(ctx, workout))

	// Same version again: the row has moved on, the write must not apply.
	workout.Calories = 300
	err := repo.Update(ctx, workout)
	require.ErrorIs(t, err, domain.ErrVersionMismatch)

	stored, err := repo.Get(ctx, workout.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.Equal(t, float64(275), stored.Calories)
	require.Equal(t, int64(2), stored.RowVersion)
}

func TestCatalogRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	pool := setupPool(t, ctx)
	repo := NewCatalogRepository(pool)

	now := time.Now().UTC().Truncate(time.Second)
	workout := domain.CatalogWorkout{
		ID:          uuid.NewString(),
		Name:        "Squat",
		Description: "Leg workout.",
		Duration:    50 * time.Minute,
		Calories:    300,
		RowVersion:  1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, repo.Insert(ctx, workout))

	stored, err := repo.Get(ctx, workout.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.Equal(t, workout.Name, stored.Name)

	require.NoError(t, repo.Remove(ctx, workout.ID))

	gone, err := repo.Get(ctx, workout.ID)
	require.NoError(t, err)
	require.Nil(t, gone)
}

func runMigrations(t *testing.T, ctx context.Context, connStr string) {
	files := []string{
		"../../../db/postgres/migrations/0001_init.up.sql",
	}

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	defer pool.Close()

	for _, rel := range files {
		path := resolvePath(t, rel)
		contents, readErr := os.ReadFile(path)
		require.NoError(t, readErr)

		_, execErr := pool.Exec(ctx, string(contents))
		require.NoError(t, execErr)
	}
}

func resolvePath(t *testing.T, rel string) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)
	return filepath.Join(filepath.Dir(file), rel)
}

func waitForDatabase(ctx context.Context, connStr string) error {
	deadline := time.Now().Add(30 * time.Second)
	for {
		pool, err := pgxpool.New(ctx, connStr)
		if err == nil {
			pingErr := pool.Ping(ctx)
			pool.Close()
			if pingErr == nil {
				return nil
			}
			err = pingErr
		}
		if time.Now().After(deadline) {
			return err
		}
		time.Sleep(500 * time.Millisecond)
	}
}
