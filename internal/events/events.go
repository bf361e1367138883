// Package events defines the event payloads emitted on workout mutations.
package events

import "time"

// Event types carried in the message headers.
const (
	TypeCatalogChanged = "catalog.changed"
	TypeWorkoutChanged = "workout.changed"
	TypeWorkoutAdopted = "workout.adopted"
)

// Change values for CatalogChanged and WorkoutChanged.
const (
	ChangeCreated = "created"
	ChangeUpdated = "updated"
	ChangeDeleted = "deleted"
)

// CatalogChanged is emitted when an administrator mutates the shared catalog.
type CatalogChanged struct {
	WorkoutID  string    `json:"workout_id"`
	Name       string    `json:"name"`
	Change     string    `json:"change"`
	OccurredAt time.Time `json:"occurred_at"`
}

// WorkoutChanged is emitted when an owner mutates a personal workout.
type WorkoutChanged struct {
	WorkoutID  string    `json:"workout_id"`
	OwnerID    string    `json:"owner_id"`
	Change     string    `json:"change"`
	OccurredAt time.Time `json:"occurred_at"`
}

// WorkoutAdopted is emitted when a catalog template is copied into a
// personal workout.
type WorkoutAdopted struct {
	WorkoutID  string    `json:"workout_id"`
	CatalogID  string    `json:"catalog_id"`
	OwnerID    string    `json:"owner_id"`
	Name       string    `json:"name"`
	OccurredAt time.Time `json:"occurred_at"`
}
