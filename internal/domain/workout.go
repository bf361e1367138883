package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Field constraints carried over from the product's workout form rules.
const (
	MaxNameLength        = 100
	MaxDescriptionLength = 500
	MinDuration          = time.Minute
	MaxDuration          = 5 * time.Hour
	MinCalories          = 1
	MaxCalories          = 10000
)

// CatalogWorkout is a shared workout template managed by administrators.
type CatalogWorkout struct {
	ID          string
	Name        string
	Description string
	Duration    time.Duration
	Calories    float64
	RowVersion  int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PersonalWorkout is a private workout record owned by exactly one principal.
// OwnerID is stamped from the authenticated session and never taken from
// caller input.
type PersonalWorkout struct {
	ID          string
	OwnerID     string
	Name        string
	Description string
	Duration    time.Duration
	Calories    float64
	RowVersion  int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// WorkoutFields is the caller-settable portion of a workout record.
type WorkoutFields struct {
	Name        string
	Description string
	Duration    time.Duration
	Calories    float64
}

// FieldError describes a single invalid field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates field-level failures. No write happens when
// validation fails.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validate checks the field constraints shared by catalog and personal
// workouts. It returns nil when all fields are acceptable.
func (f WorkoutFields) Validate() *ValidationError {
	var fields []FieldError

	name := strings.TrimSpace(f.Name)
	if name == "" {
		fields = append(fields, FieldError{Field: "name", Message: "name is required"})
	} else if utf8.RuneCountInString(name) > MaxNameLength {
		fields = append(fields, FieldError{Field: "name", Message: fmt.Sprintf("name cannot exceed %d characters", MaxNameLength)})
	}

	if utf8.RuneCountInString(f.Description) > MaxDescriptionLength {
		fields = append(fields, FieldError{Field: "description", Message: fmt.Sprintf("description cannot exceed %d characters", MaxDescriptionLength)})
	}

	if f.Duration < MinDuration || f.Duration > MaxDuration {
		fields = append(fields, FieldError{Field: "duration", Message: "duration must be between 1 minute and 5 hours"})
	}

	if f.Calories < MinCalories || f.Calories > MaxCalories {
		fields = append(fields, FieldError{Field: "calories", Message: fmt.Sprintf("calories must be between %d and %d", MinCalories, MaxCalories)})
	}

	if fields == nil {
		return nil
	}
	return &ValidationError{Fields: fields}
}
