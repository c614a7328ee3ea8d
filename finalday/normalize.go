package finalday

import (
	"fmt"
	"strings"
	"time"

	"voyago/apperr"
	"voyago/models"
)

// Pure activity validation and canonicalization. No I/O happens here; the
// service decides when lists are persisted.

const (
	defaultDurationMin = 60
	defaultTimeSlot    = "morning"
	defaultType        = "other"
)

// ValidateActivities checks a list before any mutation is attempted.
// Rules: every activity needs a name; activityIds must be unique within
// the list; tour days do not support per-activity cost overrides.
func ValidateActivities(activities []models.Activity, dayType string) error {
	seen := make(map[string]bool, len(activities))
	for i, a := range activities {
		if strings.TrimSpace(a.Name) == "" {
			return apperr.BadRequest(fmt.Sprintf("activity %d is missing a name", i))
		}
		if id := strings.TrimSpace(a.ActivityID); id != "" {
			if seen[id] {
				return apperr.BadRequest("duplicate activityId: " + id)
			}
			seen[id] = true
		}
		if dayType == models.DayTypeTour && a.Cost != 0 {
			return apperr.BadRequest("tour activities do not support cost overrides")
		}
	}
	return nil
}

// NormalizeActivities fills defaults, trims string fields and assigns ids
// to activities that lack one. Idempotent: normalizing an already
// normalized list changes nothing, and existing ids are never regenerated.
func NormalizeActivities(activities []models.Activity, dayNumber int) []models.Activity {
	out := make([]models.Activity, len(activities))
	taken := make(map[string]bool, len(activities))
	for _, a := range activities {
		if a.ActivityID != "" {
			taken[a.ActivityID] = true
		}
	}
	for i, a := range activities {
		norm := normalizeActivity(a, dayNumber)
		if norm.ActivityID == "" {
			norm.ActivityID = nextActivityID(dayNumber, taken)
		}
		taken[norm.ActivityID] = true
		out[i] = norm
	}
	return out
}

func normalizeActivity(a models.Activity, dayNumber int) models.Activity {
	a.ActivityID = strings.TrimSpace(a.ActivityID)
	a.Name = strings.TrimSpace(a.Name)
	a.Location = strings.TrimSpace(a.Location)
	if !models.ValidActivityTypes[a.Type] {
		a.Type = defaultType
	}
	if !models.ValidTimeSlots[a.TimeSlot] {
		a.TimeSlot = defaultTimeSlot
	}
	if a.DurationMin <= 0 {
		a.DurationMin = defaultDurationMin
	}
	if a.Cost < 0 {
		a.Cost = 0
	}
	return a
}

// nextActivityID produces activity_{day}_{unixMilli}, nudging the
// timestamp forward until the id is free within the list being built.
func nextActivityID(dayNumber int, taken map[string]bool) string {
	ts := time.Now().UnixMilli()
	for {
		id := fmt.Sprintf("activity_%d_%d", dayNumber, ts)
		if !taken[id] {
			return id
		}
		ts++
	}
}
