// Package memory provides map-backed repositories for local development and
// tests. The domain service only ever sees the repository interfaces.
package memory

import (
	"context"
	"sync"

	"example.com/fitapp/internal/domain"
)

// CatalogRepository stores catalog workouts in memory.
type CatalogRepository struct {
	mu       sync.RWMutex
	workouts map[string]domain.CatalogWorkout
}

// NewCatalogRepository constructs an empty catalog repository.
func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{workouts: make(map[string]domain.CatalogWorkout)}
}

// List implements domain.CatalogRepository.
func (r *CatalogRepository) List(ctx context.Context) ([]domain.CatalogWorkout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.CatalogWorkout, 0, len(r.workouts))
	for _, w := range r.workouts {
		out = append(out, w)
	}
	return out, nil
}

// Get returns the workout by ID, or (nil, nil) when absent.
func (r *CatalogRepository) Get(ctx context.Context, id string) (*domain.CatalogWorkout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	workout, ok := r.workouts[id]
	if !ok {
		return nil, nil
	}
	return &workout, nil
}

// Insert stores a new workout.
func (r *CatalogRepository) Insert(ctx context.Context, workout domain.CatalogWorkout) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.workouts[workout.ID] = workout
	return nil
}

// Update replaces the stored row when its version matches, bumping the
// version. A missing or changed row reports domain.ErrVersionMismatch.
func (r *CatalogRepository) Update(ctx context.Context, workout domain.CatalogWorkout) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.workouts[workout.ID]
	if !ok || current.RowVersion != workout.RowVersion {
		return domain.ErrVersionMismatch
	}
	workout.RowVersion++
	r.workouts[workout.ID] = workout
	return nil
}

// Remove deletes the row if present.
func (r *CatalogRepository) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.workouts, id)
	return nil
}

// PersonalRepository stores personal workouts in memory.
type PersonalRepository struct {
	mu       sync.RWMutex
	workouts map[string]domain.PersonalWorkout
}

// NewPersonalRepository constructs an empty personal repository.
func NewPersonalRepository() *PersonalRepository {
	return &PersonalRepository{workouts: make(map[string]domain.PersonalWorkout)}
}

// ListByOwner returns only rows belonging to ownerID.
func (r *PersonalRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.PersonalWorkout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.PersonalWorkout, 0)
	for _, w := range r.workouts {
		if w.OwnerID == ownerID {
			out = append(out, w)
		}
	}
	return out, nil
}

// Get returns the workout by ID, or (nil, nil) when absent.
func (r *PersonalRepository) Get(ctx context.Context, id string) (*domain.PersonalWorkout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	workout, ok := r.workouts[id]
	if !ok {
		return nil, nil
	}
	return &workout, nil
}

// Insert stores a new workout.
func (r *PersonalRepository) Insert(ctx context.Context, workout domain.PersonalWorkout) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.workouts[workout.ID] = workout
	return nil
}

// Update replaces the stored row when its version matches, bumping the
// version. A missing or changed row reports domain.ErrVersionMismatch.
func (r *PersonalRepository) Update(ctx context.Context, workout domain.PersonalWorkout) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.workouts[workout.ID]
	if !ok || current.RowVersion != workout.RowVersion {
		return domain.ErrVersionMismatch
	}
	workout.RowVersion++
	r.workouts[workout.ID] = workout
	return nil
}

// Remove deletes the row if present.
func (r *PersonalRepository) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.workouts, id)
	return nil
}
