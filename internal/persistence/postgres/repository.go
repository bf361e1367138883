// Package postgres provides pgx-backed repositories for workout records.
package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/fitapp/internal/domain"
)

// CatalogRepository persists catalog workouts.
type CatalogRepository struct {
	pool *pgxpool.Pool
}

// NewCatalogRepository constructs a CatalogRepository.
func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

const catalogColumns = `workout_id, name, description, duration_secs, calories, row_version, created_at, updated_at`

// List returns every catalog workout.
func (r *CatalogRepository) List(ctx context.Context) ([]domain.CatalogWorkout, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+catalogColumns+` FROM catalog_workouts`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]domain.CatalogWorkout, 0)
	for rows.Next() {
		workout, err := scanCatalog(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, workout)
	}
	return results, rows.Err()
}

// Get fetches one catalog workout, returning (nil, nil) when absent.
func (r *CatalogRepository) Get(ctx context.Context, id string) (*domain.CatalogWorkout, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+catalogColumns+` FROM catalog_workouts WHERE workout_id=$1`, id)
	workout, err := scanCatalog(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &workout, nil
}

// Insert stores a new catalog workout.
func (r *CatalogRepository) Insert(ctx context.Context, w domain.CatalogWorkout) error {
	const stmt = `INSERT INTO catalog_workouts (workout_id, name, description, duration_secs, calories, row_version, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`
	_, err := r.pool.Exec(ctx, stmt,
		w.ID, w.Name, w.Description, int64(w.Duration/time.Second), w.Calories, w.RowVersion, w.CreatedAt, w.UpdatedAt)
	return err
}

// Update performs a compare-and-swap on row_version. When no row matches the
// (id, version) pair the record was concurrently modified or deleted and
// domain.ErrVersionMismatch is reported.
func (r *CatalogRepository) Update(ctx context.Context, w domain.CatalogWorkout) error {
	const stmt = `UPDATE catalog_workouts
        SET name=$3, description=$4, duration_secs=$5, calories=$6, row_version=row_version+1, updated_at=$7
        WHERE workout_id=$1 AND row_version=$2`
	tag, err := r.pool.Exec(ctx, stmt,
		w.ID, w.RowVersion, w.Name, w.Description, int64(w.Duration/time.Second), w.Calories, w.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrVersionMismatch
	}
	return nil
}

// Remove deletes the workout if present.
func (r *CatalogRepository) Remove(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM catalog_workouts WHERE workout_id=$1`, id)
	return err
}

func scanCatalog(row pgx.Row) (domain.CatalogWorkout, error) {
	var w domain.CatalogWorkout
	var durationSecs int64
	if err := row.Scan(&w.ID, &w.Name, &w.Description, &durationSecs, &w.Calories, &w.RowVersion, &w.CreatedAt, &w.UpdatedAt); err != nil {
		return domain.CatalogWorkout{}, err
	}
	w.Duration = time.Duration(durationSecs) * time.Second
	return w, nil
}

// PersonalRepository persists personal workouts.
type PersonalRepository struct {
	pool *pgxpool.Pool
}

// NewPersonalRepository constructs a PersonalRepository.
func NewPersonalRepository(pool *pgxpool.Pool) *PersonalRepository {
	return &PersonalRepository{pool: pool}
}

const personalColumns = `workout_id, owner_id, name, description, duration_secs, calories, row_version, created_at, updated_at`

// ListByOwner returns only the owner's rows. Owner scoping happens in the
// query, never in caller code.
func (r *PersonalRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.PersonalWorkout, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+personalColumns+` FROM personal_workouts WHERE owner_id=$1`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]domain.PersonalWorkout, 0)
	for rows.Next() {
		workout, err := scanPersonal(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, workout)
	}
	return results, rows.Err()
}

// Get fetches one personal workout, returning (nil, nil) when absent.
func (r *PersonalRepository) Get(ctx context.Context, id string) (*domain.PersonalWorkout, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+personalColumns+` FROM personal_workouts WHERE workout_id=$1`, id)
	workout, err := scanPersonal(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &workout, nil
}

// Insert stores a new personal workout.
func (r *PersonalRepository) Insert(ctx context.Context, w domain.PersonalWorkout) error {
	const stmt = `INSERT INTO personal_workouts (workout_id, owner_id, name, description, duration_secs, calories, row_version, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`
	_, err := r.pool.Exec(ctx, stmt,
		w.ID, w.OwnerID, w.Name, w.Description, int64(w.Duration/time.Second), w.Calories, w.RowVersion, w.CreatedAt, w.UpdatedAt)
	return err
}

// Update performs a compare-and-swap on row_version; see CatalogRepository.Update.
func (r *PersonalRepository) Update(ctx context.Context, w domain.PersonalWorkout) error {
	const stmt = `UPDATE personal_workouts
        SET name=$3, description=$4, duration_secs=$5, calories=$6, row_version=row_version+1, updated_at=$7
        WHERE workout_id=$1 AND row_version=$2`
	tag, err := r.pool.Exec(ctx, stmt,
		w.ID, w.RowVersion, w.Name, w.Description, int64(w.Duration/time.Second), w.Calories, w.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrVersionMismatch
	}
	return nil
}

// Remove deletes the workout if present.
func (r *PersonalRepository) Remove(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM personal_workouts WHERE workout_id=$1`, id)
	return err
}

func scanPersonal(row pgx.Row) (domain.PersonalWorkout, error) {
	var w domain.PersonalWorkout
	var durationSecs int64
	if err := row.Scan(&w.ID, &w.OwnerID, &w.Name, &w.Description, &durationSecs, &w.Calories, &w.RowVersion, &w.CreatedAt, &w.UpdatedAt); err != nil {
		return domain.PersonalWorkout{}, err
	}
	w.Duration = time.Duration(durationSecs) * time.Second
	return w, nil
}
