package domain

import (
	"testing"
	"time"
)

func TestParseSortKey(t *testing.T) {
	cases := map[string]SortKey{
		"":              SortNameAsc,
		"name":          SortNameAsc,
		"NAME_DESC":     SortNameDesc,
		"calories":      SortCaloriesAsc,
		"calories_desc": SortCaloriesDesc,
		"duration":      SortDurationAsc,
		"duration_desc": SortDurationDesc,
		"bogus":         SortNameAsc,
		"  name_desc ":  SortNameDesc,
	}
	for raw, want := range cases {
		if got := ParseSortKey(raw); got != want {
			t.Fatalf("ParseSortKey(%q): expected %s got %s", raw, want, got)
		}
	}
}

func personalFixture() []PersonalWorkout {
	return []PersonalWorkout{
		{ID: "id-3", OwnerID: "u1", Name: "Yoga", Calories: 100, Duration: 60 * time.Minute},
		{ID: "id-1", OwnerID: "u1", Name: "HIIT", Calories: 200, Duration: 20 * time.Minute},
		{ID: "id-2", OwnerID: "u1", Name: "Run", Calories: 200, Duration: 40 * time.Minute},
	}
}

func namesOf(ws []PersonalWorkout) []string {
	out := make([]string, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.Name)
	}
	return out
}

func TestFilterByNameCaseInsensitive(t *testing.T) {
	got := filterAndSortPersonal(personalFixture(), "yoga", SortNameAsc)
	if len(got) != 1 || got[0].Name != "Yoga" {
		t.Fatalf("expected only Yoga, got %v", namesOf(got))
	}
}

func TestWhitespaceSearchTermMatchesAll(t *testing.T) {
	got := filterAndSortPersonal(personalFixture(), "   ", SortNameAsc)
	if len(got) != 3 {
		t.Fatalf("expected 3 records, got %d", len(got))
	}
}

func TestSortOrders(t *testing.T) {
	cases := []struct {
		key  SortKey
		want []string
	}{
		{SortNameAsc, []string{"HIIT", "Run", "Yoga"}},
		{SortNameDesc, []string{"Yoga", "Run", "HIIT"}},
		{SortCaloriesAsc, []string{"Yoga", "HIIT", "Run"}},
		{SortCaloriesDesc, []string{"HIIT", "Run", "Yoga"}},
		{SortDurationAsc, []string{"HIIT", "Run", "Yoga"}},
		{SortDurationDesc, []string{"Yoga", "Run", "HIIT"}},
	}

	for _, tc := range cases {
		got := namesOf(filterAndSortPersonal(personalFixture(), "", tc.key))
		for i := range tc.want {
			if got[i] != tc.want[i] {
				t.Fatalf("key %s: expected %v got %v", tc.key, tc.want, got)
			}
		}
	}
}

func TestCaloriesTieBrokenByID(t *testing.T) {
	// HIIT (id-1) and Run (id-2) both burn 200; id ascending decides.
	got := filterAndSortPersonal(personalFixture(), "", SortCaloriesDesc)
	if got[0].ID != "id-1" || got[1].ID != "id-2" {
		t.Fatalf("expected id-1 before id-2, got %v, %v", got[0].ID, got[1].ID)
	}
}

func TestSortIsIdempotent(t *testing.T) {
	first := filterAndSortPersonal(personalFixture(), "", SortCaloriesDesc)
	second := filterAndSortPersonal(first, "", SortCaloriesDesc)
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("re-sorting changed order at %d: %s vs %s", i, first[i].ID, second[i].ID)
		}
	}
}

func TestCatalogSearchMatchesDescription(t *testing.T) {
	records := []CatalogWorkout{
		{ID: "c1", Name: "Deadlift", Description: "Full-body strength exercise."},
		{ID: "c2", Name: "Squat", Description: "Leg workout."},
	}
	got := filterAndSortCatalog(records, "strength", SortNameAsc)
	if len(got) != 1 || got[0].ID != "c1" {
		t.Fatalf("expected only c1, got %d records", len(got))
	}
}
