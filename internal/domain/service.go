// Package domain defines the business logic for the workout service.
package domain

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"example.com/fitapp/internal/events"
	"example.com/fitapp/internal/observability"
)

var (
	// ErrWorkoutNotFound is returned when a record is absent, and also when
	// a personal record exists but belongs to another owner. The two causes
	// are deliberately indistinguishable to the caller.
	ErrWorkoutNotFound = errors.New("workout not found")
	// ErrForbidden is returned on role-based denial of a catalog mutation.
	ErrForbidden = errors.New("operation requires the admin role")
	// ErrUnauthenticated is returned when an operation requires a principal
	// and the request is anonymous.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrConcurrentModification is returned when a record changed between
	// fetch and write. It is surfaced, never retried: a silent retry could
	// overwrite a concurrent legitimate edit.
	ErrConcurrentModification = errors.New("workout was modified concurrently")
	// ErrVersionMismatch is reported by repositories when a versioned write
	// matches no row. The service translates it into ErrWorkoutNotFound or
	// ErrConcurrentModification after re-checking existence.
	ErrVersionMismatch = errors.New("row version mismatch")
)

// CatalogRepository captures persistence operations over catalog workouts.
// Get returns (nil, nil) when the record is absent. Update matches on ID and
// RowVersion and reports ErrVersionMismatch when no row qualifies.
type CatalogRepository interface {
	List(ctx context.Context) ([]CatalogWorkout, error)
	Get(ctx context.Context, id string) (*CatalogWorkout, error)
	Insert(ctx context.Context, workout CatalogWorkout) error
	Update(ctx context.Context, workout CatalogWorkout) error
	Remove(ctx context.Context, id string) error
}

// PersonalRepository captures persistence operations over personal workouts.
// Semantics match CatalogRepository; ListByOwner returns only rows whose
// owner matches ownerID.
type PersonalRepository interface {
	ListByOwner(ctx context.Context, ownerID string) ([]PersonalWorkout, error)
	Get(ctx context.Context, id string) (*PersonalWorkout, error)
	Insert(ctx context.Context, workout PersonalWorkout) error
	Update(ctx context.Context, workout PersonalWorkout) error
	Remove(ctx context.Context, id string) error
}

// Service orchestrates catalog and personal workout workflows. It is
// stateless between calls; all durable state lives in the repositories.
type Service struct {
	catalog   CatalogRepository
	personal  PersonalRepository
	publisher events.Publisher
}

// NewService constructs a Service. A nil publisher disables event emission.
func NewService(catalog CatalogRepository, personal PersonalRepository, publisher events.Publisher) *Service {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &Service{catalog: catalog, personal: personal, publisher: publisher}
}

// authorize consults the access gate, records the decision, and maps a
// denial to its sentinel error. Denials short-circuit before any store access.
func (s *Service) authorize(op Operation, kind ResourceKind, ownerID string, principal *Principal) error {
	decision := Authorize(op, kind, ownerID, principal)
	observability.RecordAuthzDecision(string(kind), string(op), string(decision))
	switch decision {
	case Allow:
		return nil
	case DenyUnauthenticated:
		return ErrUnauthenticated
	case DenyForbidden:
		return ErrForbidden
	default:
		return ErrWorkoutNotFound
	}
}

// ListCatalog returns the shared catalog filtered by searchTerm (name or
// description) and ordered by key. Anonymous callers are permitted.
func (s *Service) ListCatalog(ctx context.Context, principal *Principal, searchTerm string, key SortKey) ([]CatalogWorkout, error) {
	if err := s.authorize(OpRead, KindCatalog, "", principal); err != nil {
		return nil, err
	}
	records, err := s.catalog.List(ctx)
	if err != nil {
		return nil, err
	}
	return filterAndSortCatalog(records, searchTerm, key), nil
}

// GetCatalog fetches a single catalog workout.
func (s *Service) GetCatalog(ctx context.Context, principal *Principal, id string) (*CatalogWorkout, error) {
	if err := s.authorize(OpRead, KindCatalog, "", principal); err != nil {
		return nil, err
	}
	workout, err := s.catalog.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if workout == nil {
		return nil, ErrWorkoutNotFound
	}
	return workout, nil
}

// CreateCatalog adds a template to the shared catalog. Admin only.
func (s *Service) CreateCatalog(ctx context.Context, principal *Principal, fields WorkoutFields) (*CatalogWorkout, error) {
	if err := s.authorize(OpCreate, KindCatalog, "", principal); err != nil {
		return nil, err
	}
	if verr := fields.Validate(); verr != nil {
		return nil, verr
	}

	now := time.Now().UTC()
	workout := CatalogWorkout{
		ID:          uuid.NewString(),
		Name:        fields.Name,
		Description: fields.Description,
		Duration:    fields.Duration,
		Calories:    fields.Calories,
		RowVersion:  1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.catalog.Insert(ctx, workout); err != nil {
		return nil, err
	}

	observability.RecordWorkoutPersisted(now)
	s.publish(ctx, events.TypeCatalogChanged, workout.ID, events.CatalogChanged{
		WorkoutID:  workout.ID,
		Name:       workout.Name,
		Change:     events.ChangeCreated,
		OccurredAt: now,
	})
	return &workout, nil
}

// UpdateCatalog replaces a template's fields. Admin only; the write is
// version-checked so a lost update surfaces as ErrConcurrentModification.
func (s *Service) UpdateCatalog(ctx context.Context, principal *Principal, id string, fields WorkoutFields) (*CatalogWorkout, error) {
	if err := s.authorize(OpUpdate, KindCatalog, "", principal); err != nil {
		return nil, err
	}
	current, err := s.catalog.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrWorkoutNotFound
	}
	if verr := fields.Validate(); verr != nil {
		return nil, verr
	}

	now := time.Now().UTC()
	updated := *current
	updated.Name = fields.Name
	updated.Description = fields.Description
	updated.Duration = fields.Duration
	updated.Calories = fields.Calories
	updated.UpdatedAt = now

	if err := s.catalog.Update(ctx, updated); err != nil {
		if errors.Is(err, ErrVersionMismatch) {
			return nil, s.classifyCatalogConflict(ctx, id)
		}
		return nil, err
	}
	updated.RowVersion++

	observability.RecordWorkoutPersisted(now)
	s.publish(ctx, events.TypeCatalogChanged, updated.ID, events.CatalogChanged{
		WorkoutID:  updated.ID,
		Name:       updated.Name,
		Change:     events.ChangeUpdated,
		OccurredAt: now,
	})
	return &updated, nil
}

// DeleteCatalog removes a template from the shared catalog. Admin only.
func (s *Service) DeleteCatalog(ctx context.Context, principal *Principal, id string) error {
	if err := s.authorize(OpDelete, KindCatalog, "", principal); err != nil {
		return err
	}
	current, err := s.catalog.Get(ctx, id)
	if err != nil {
		return err
	}
	if current == nil {
		return ErrWorkoutNotFound
	}
	if err := s.catalog.Remove(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, events.TypeCatalogChanged, id, events.CatalogChanged{
		WorkoutID:  id,
		Name:       current.Name,
		Change:     events.ChangeDeleted,
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

// ListPersonal returns the principal's own workouts filtered by searchTerm
// (name only) and ordered by key. The base set is always scoped to the
// principal; other owners' rows never appear.
func (s *Service) ListPersonal(ctx context.Context, principal *Principal, searchTerm string, key SortKey) ([]PersonalWorkout, error) {
	if err := s.authorize(OpRead, KindPersonal, "", principal); err != nil {
		return nil, err
	}
	records, err := s.personal.ListByOwner(ctx, principal.ID)
	if err != nil {
		return nil, err
	}
	return filterAndSortPersonal(records, searchTerm, key), nil
}

// GetPersonal fetches a single personal workout owned by the principal. A
// record owned by someone else is reported as not found.
func (s *Service) GetPersonal(ctx context.Context, principal *Principal, id string) (*PersonalWorkout, error) {
	if err := s.authorize(OpRead, KindPersonal, "", principal); err != nil {
		return nil, err
	}
	workout, err := s.personal.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if workout == nil {
		return nil, ErrWorkoutNotFound
	}
	if err := s.authorize(OpRead, KindPersonal, workout.OwnerID, principal); err != nil {
		return nil, err
	}
	return workout, nil
}

// CreatePersonal records a new workout for the principal. The owner is
// stamped from the authenticated session regardless of any caller input.
func (s *Service) CreatePersonal(ctx context.Context, principal *Principal, fields WorkoutFields) (*PersonalWorkout, error) {
	if err := s.authorize(OpCreate, KindPersonal, "", principal); err != nil {
		return nil, err
	}
	if verr := fields.Validate(); verr != nil {
		return nil, verr
	}

	now := time.Now().UTC()
	workout := PersonalWorkout{
		ID:          uuid.NewString(),
		OwnerID:     principal.ID,
		Name:        fields.Name,
		Description: fields.Description,
		Duration:    fields.Duration,
		Calories:    fields.Calories,
		RowVersion:  1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.personal.Insert(ctx, workout); err != nil {
		return nil, err
	}

	observability.RecordWorkoutPersisted(now)
	s.publish(ctx, events.TypeWorkoutChanged, workout.ID, events.WorkoutChanged{
		WorkoutID:  workout.ID,
		OwnerID:    workout.OwnerID,
		Change:     events.ChangeCreated,
		OccurredAt: now,
	})
	return &workout, nil
}

// UpdatePersonal replaces a personal workout's fields. The sequence is
// fetch, ownership check, validate, versioned write; a version mismatch is
// re-checked so a deleted record reports not-found while a changed record
// reports a concurrency conflict.
func (s *Service) UpdatePersonal(ctx context.Context, principal *Principal, id string, fields WorkoutFields) (*PersonalWorkout, error) {
	if err := s.authorize(OpUpdate, KindPersonal, "", principal); err != nil {
		return nil, err
	}
	current, err := s.personal.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrWorkoutNotFound
	}
	if err := s.authorize(OpUpdate, KindPersonal, current.OwnerID, principal); err != nil {
		return nil, err
	}
	if verr := fields.Validate(); verr != nil {
		return nil, verr
	}

	now := time.Now().UTC()
	updated := *current
	updated.Name = fields.Name
	updated.Description = fields.Description
	updated.Duration = fields.Duration
	updated.Calories = fields.Calories
	updated.UpdatedAt = now

	if err := s.personal.Update(ctx, updated); err != nil {
		if errors.Is(err, ErrVersionMismatch) {
			return nil, s.classifyPersonalConflict(ctx, id)
		}
		return nil, err
	}
	updated.RowVersion++

	observability.RecordWorkoutPersisted(now)
	s.publish(ctx, events.TypeWorkoutChanged, updated.ID, events.WorkoutChanged{
		WorkoutID:  updated.ID,
		OwnerID:    updated.OwnerID,
		Change:     events.ChangeUpdated,
		OccurredAt: now,
	})
	return &updated, nil
}

// DeletePersonal removes a personal workout owned by the principal. The
// delete itself is unversioned: deleting an already-deleted record is
// observably the same as not-found, so no concurrency token is required.
func (s *Service) DeletePersonal(ctx context.Context, principal *Principal, id string) error {
	if err := s.authorize(OpDelete, KindPersonal, "", principal); err != nil {
		return err
	}
	current, err := s.personal.Get(ctx, id)
	if err != nil {
		return err
	}
	if current == nil {
		return ErrWorkoutNotFound
	}
	if err := s.authorize(OpDelete, KindPersonal, current.OwnerID, principal); err != nil {
		return err
	}
	if err := s.personal.Remove(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, events.TypeWorkoutChanged, id, events.WorkoutChanged{
		WorkoutID:  id,
		OwnerID:    current.OwnerID,
		Change:     events.ChangeDeleted,
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

// AdoptCatalogWorkout copies a catalog template into a new personal workout
// owned by the principal. It is a value copy: later edits to the template
// never touch the adopted record.
func (s *Service) AdoptCatalogWorkout(ctx context.Context, principal *Principal, catalogID string) (*PersonalWorkout, error) {
	if err := s.authorize(OpCreate, KindPersonal, "", principal); err != nil {
		return nil, err
	}
	template, err := s.catalog.Get(ctx, catalogID)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, ErrWorkoutNotFound
	}

	now := time.Now().UTC()
	workout := PersonalWorkout{
		ID:          uuid.NewString(),
		OwnerID:     principal.ID,
		Name:        template.Name,
		Description: template.Description,
		Duration:    template.Duration,
		Calories:    template.Calories,
		RowVersion:  1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.personal.Insert(ctx, workout); err != nil {
		return nil, err
	}

	observability.RecordWorkoutPersisted(now)
	s.publish(ctx, events.TypeWorkoutAdopted, workout.ID, events.WorkoutAdopted{
		WorkoutID:  workout.ID,
		CatalogID:  template.ID,
		OwnerID:    workout.OwnerID,
		Name:       workout.Name,
		OccurredAt: now,
	})
	return &workout, nil
}

// classifyPersonalConflict distinguishes a record deleted under a writer
// from one concurrently changed.
func (s *Service) classifyPersonalConflict(ctx context.Context, id string) error {
	current, err := s.personal.Get(ctx, id)
	if err != nil {
		return err
	}
	if current == nil {
		return ErrWorkoutNotFound
	}
	return ErrConcurrentModification
}

func (s *Service) classifyCatalogConflict(ctx context.Context, id string) error {
	current, err := s.catalog.Get(ctx, id)
	if err != nil {
		return err
	}
	if current == nil {
		return ErrWorkoutNotFound
	}
	return ErrConcurrentModification
}

// publish emits an event best-effort. Mutations never fail because the
// broker is unavailable; failures are logged instead.
func (s *Service) publish(ctx context.Context, eventType, key string, payload interface{}) {
	if err := s.publisher.Publish(ctx, eventType, key, payload); err != nil {
		log.Printf("event publish failed for %s %s: %v", eventType, key, err)
	}
}
