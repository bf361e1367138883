package domain

import (
	"strings"
	"testing"
	"time"
)

func validFields() WorkoutFields {
	return WorkoutFields{
		Name:        "Deadlift",
		Description: "Full-body strength exercise.",
		Duration:    40 * time.Minute,
		Calories:    250,
	}
}

func TestValidateAcceptsValidFields(t *testing.T) {
	if err := validFields().Validate(); err != nil {
		t.Fatalf("expected valid fields, got %v", err)
	}
}

func TestValidateFieldConstraints(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*WorkoutFields)
		field  string
	}{
		{"missing name", func(f *WorkoutFields) { f.Name = "  " }, "name"},
		{"name too long", func(f *WorkoutFields) { f.Name = strings.Repeat("x", 101) }, "name"},
		{"description too long", func(f *WorkoutFields) { f.Description = strings.Repeat("x", 501) }, "description"},
		{"duration too short", func(f *WorkoutFields) { f.Duration = 30 * time.Second }, "duration"},
		{"duration too long", func(f *WorkoutFields) { f.Duration = 6 * time.Hour }, "duration"},
		{"zero duration", func(f *WorkoutFields) { f.Duration = 0 }, "duration"},
		{"zero calories", func(f *WorkoutFields) { f.Calories = 0 }, "calories"},
		{"negative calories", func(f *WorkoutFields) { f.Calories = -10 }, "calories"},
		{"calories too high", func(f *WorkoutFields) { f.Calories = 10001 }, "calories"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fields := validFields()
			tc.mutate(&fields)
			verr := fields.Validate()
			if verr == nil {
				t.Fatal("expected validation error")
			}
			found := false
			for _, fe := range verr.Fields {
				if fe.Field == tc.field {
					found = true
				}
			}
			if !found {
				t.Fatalf("expected error on field %q, got %v", tc.field, verr.Fields)
			}
		})
	}
}

func TestValidateBoundaryValues(t *testing.T) {
	fields := validFields()
	fields.Duration = time.Minute
	fields.Calories = 1
	if err := fields.Validate(); err != nil {
		t.Fatalf("lower bounds should pass, got %v", err)
	}

	fields.Duration = 5 * time.Hour
	fields.Calories = 10000
	if err := fields.Validate(); err != nil {
		t.Fatalf("upper bounds should pass, got %v", err)
	}
}

func TestValidateCollectsAllFailures(t *testing.T) {
	fields := WorkoutFields{}
	verr := fields.Validate()
	if verr == nil {
		t.Fatal("expected validation error")
	}
	if len(verr.Fields) != 3 {
		t.Fatalf("expected 3 field errors, got %d: %v", len(verr.Fields), verr.Fields)
	}
}
