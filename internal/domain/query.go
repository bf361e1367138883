package domain

import (
	"slices"
	"strings"
	"time"
)

// SortKey selects the ordering of a workout listing. The tokens match the
// sort parameters the web UI has always sent.
type SortKey string

const (
	SortNameAsc      SortKey = "name"
	SortNameDesc     SortKey = "name_desc"
	SortCaloriesAsc  SortKey = "calories"
	SortCaloriesDesc SortKey = "calories_desc"
	SortDurationAsc  SortKey = "duration"
	SortDurationDesc SortKey = "duration_desc"
)

// ParseSortKey maps a raw sort parameter to a SortKey. Unknown or empty
// values fall back to name ascending.
func ParseSortKey(raw string) SortKey {
	switch SortKey(strings.ToLower(strings.TrimSpace(raw))) {
	case SortNameDesc:
		return SortNameDesc
	case SortCaloriesAsc:
		return SortCaloriesAsc
	case SortCaloriesDesc:
		return SortCaloriesDesc
	case SortDurationAsc:
		return SortDurationAsc
	case SortDurationDesc:
		return SortDurationDesc
	default:
		return SortNameAsc
	}
}

// matchesTerm reports whether value contains term under a locale-independent
// uppercase fold. An empty or whitespace-only term matches everything.
func matchesTerm(value, term string) bool {
	term = strings.TrimSpace(term)
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToUpper(value), strings.ToUpper(term))
}

// sortFields is the projection a workout record exposes for ordering.
type sortFields struct {
	name     string
	calories float64
	duration time.Duration
	id       string
}

// compareFields orders two records by the sort key. Ties on the chosen field
// are broken by identifier ascending so listings are deterministic.
func compareFields(a, b sortFields, key SortKey) int {
	var c int
	switch key {
	case SortNameDesc:
		c = strings.Compare(b.name, a.name)
	case SortCaloriesAsc:
		c = compareFloat(a.calories, b.calories)
	case SortCaloriesDesc:
		c = compareFloat(b.calories, a.calories)
	case SortDurationAsc:
		c = compareDuration(a.duration, b.duration)
	case SortDurationDesc:
		c = compareDuration(b.duration, a.duration)
	default:
		c = strings.Compare(a.name, b.name)
	}
	if c == 0 {
		c = strings.Compare(a.id, b.id)
	}
	return c
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareDuration(a, b time.Duration) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// filterAndSortPersonal retains records whose name contains the search term
// and orders the result. The input slice is not modified.
func filterAndSortPersonal(records []PersonalWorkout, searchTerm string, key SortKey) []PersonalWorkout {
	out := make([]PersonalWorkout, 0, len(records))
	for _, w := range records {
		if matchesTerm(w.Name, searchTerm) {
			out = append(out, w)
		}
	}
	slices.SortFunc(out, func(a, b PersonalWorkout) int {
		return compareFields(
			sortFields{name: a.Name, calories: a.Calories, duration: a.Duration, id: a.ID},
			sortFields{name: b.Name, calories: b.Calories, duration: b.Duration, id: b.ID},
			key,
		)
	})
	return out
}

// filterAndSortCatalog is the catalog variant. Catalog search matches name or
// description, mirroring the public browse page.
func filterAndSortCatalog(records []CatalogWorkout, searchTerm string, key SortKey) []CatalogWorkout {
	out := make([]CatalogWorkout, 0, len(records))
	for _, w := range records {
		if matchesTerm(w.Name, searchTerm) || matchesTerm(w.Description, searchTerm) {
			out = append(out, w)
		}
	}
	slices.SortFunc(out, func(a, b CatalogWorkout) int {
		return compareFields(
			sortFields{name: a.Name, calories: a.Calories, duration: a.Duration, id: a.ID},
			sortFields{name: b.Name, calories: b.Calories, duration: b.Duration, id: b.ID},
			key,
		)
	})
	return out
}
