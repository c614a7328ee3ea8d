package finalday

import (
	"reflect"
	"strings"
	"testing"

	"voyago/apperr"
	"voyago/models"
)

func TestValidateActivitiesRejectsMissingName(t *testing.T) {
	acts := []models.Activity{
		{ActivityID: "a1", Name: "Temple visit"},
		{ActivityID: "a2", Name: "   "},
	}
	err := ValidateActivities(acts, models.DayTypeCustomized)
	if !apperr.IsKind(err, apperr.KindBadRequest) {
		t.Fatalf("expected BadRequest, got %v", err)
	}
}

func TestValidateActivitiesRejectsDuplicateIDs(t *testing.T) {
	acts := []models.Activity{
		{ActivityID: "a1", Name: "Temple visit"},
		{ActivityID: "a1", Name: "Street food tour"},
	}
	err := ValidateActivities(acts, models.DayTypeCustomized)
	if !apperr.IsKind(err, apperr.KindBadRequest) {
		t.Fatalf("expected BadRequest for duplicate ids, got %v", err)
	}
}

func TestValidateActivitiesRejectsTourCostOverride(t *testing.T) {
	acts := []models.Activity{
		{ActivityID: "a1", Name: "Included lunch", Cost: 25000},
	}
	if err := ValidateActivities(acts, models.DayTypeTour); !apperr.IsKind(err, apperr.KindBadRequest) {
		t.Fatalf("expected BadRequest for tour cost override, got %v", err)
	}
	// same list is fine on a customized day
	if err := ValidateActivities(acts, models.DayTypeCustomized); err != nil {
		t.Fatalf("unexpected error on customized day: %v", err)
	}
}

func TestNormalizeFillsDefaults(t *testing.T) {
	acts := []models.Activity{{Name: "  Museum  ", Location: " Old town "}}
	out := NormalizeActivities(acts, 3)

	a := out[0]
	if a.Name != "Museum" || a.Location != "Old town" {
		t.Errorf("strings not trimmed: %+v", a)
	}
	if a.DurationMin != 60 {
		t.Errorf("expected default duration 60, got %d", a.DurationMin)
	}
	if a.Cost != 0 {
		t.Errorf("expected default cost 0, got %f", a.Cost)
	}
	if a.TimeSlot != "morning" {
		t.Errorf("expected default timeSlot morning, got %q", a.TimeSlot)
	}
	if a.Type != "other" {
		t.Errorf("expected default type other, got %q", a.Type)
	}
	if !strings.HasPrefix(a.ActivityID, "activity_3_") {
		t.Errorf("expected generated id with activity_3_ prefix, got %q", a.ActivityID)
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	acts := []models.Activity{
		{Name: "Museum", TimeSlot: "afternoon", Type: "culture", DurationMin: 90, Cost: 1200},
		{Name: "Night market", TimeSlot: "bogus"},
	}
	once := NormalizeActivities(acts, 2)
	twice := NormalizeActivities(once, 2)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("normalization not idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestNormalizePreservesExistingIDs(t *testing.T) {
	acts := []models.Activity{{ActivityID: "keep-me", Name: "Museum"}}
	out := NormalizeActivities(acts, 1)
	if out[0].ActivityID != "keep-me" {
		t.Fatalf("existing id was regenerated: %q", out[0].ActivityID)
	}
}

func TestNormalizeAssignsDistinctIDs(t *testing.T) {
	acts := []models.Activity{{Name: "First"}, {Name: "Second"}, {Name: "Third"}}
	out := NormalizeActivities(acts, 1)
	seen := map[string]bool{}
	for _, a := range out {
		if a.ActivityID == "" {
			t.Fatal("missing generated id")
		}
		if seen[a.ActivityID] {
			t.Fatalf("duplicate generated id %q", a.ActivityID)
		}
		seen[a.ActivityID] = true
	}
}
