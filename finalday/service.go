package finalday

import (
	"context"
	"strings"
	"time"

	"voyago/apperr"
	"voyago/models"
	"voyago/utils"
)

// PlanSource resolves a parent plan's day list for customization seeding.
// Tour and AI-generated plans both satisfy it.
type PlanSource interface {
	PlanDays(ctx context.Context, originID string) ([]models.PlanDay, error)
}

// Service owns all mutation of customized day documents. It is stateless:
// every dependency is explicit and nothing is shared between requests
// beyond the backing store.
type Service struct {
	days     DayStore
	plans    PlanSource
	attempts int
	delay    time.Duration
}

func NewService(days DayStore, plans PlanSource) *Service {
	return &Service{
		days:     days,
		plans:    plans,
		attempts: 3,
		delay:    100 * time.Millisecond,
	}
}

// Mutations only ever touch customized days. Lookups against tour or
// ai_gen documents report NotFound even when (origin, day) matches one:
// system-generated content is immutable through this surface.
func (s *Service) loadCustomized(ctx context.Context, originID string, dayNumber int) (*models.ItineraryDay, error) {
	return s.days.Get(ctx, originID, dayNumber, models.DayTypeCustomized)
}

type ActivityResult struct {
	Activity models.Activity `json:"activity"`
	DayTotal float64         `json:"dayTotal"`
	Count    int             `json:"activityCount"`
}

type DeleteResult struct {
	Remaining int     `json:"remaining"`
	DayTotal  float64 `json:"dayTotal"`
}

type ReorderResult struct {
	Activities []models.Activity `json:"activities"`
	Count      int               `json:"activityCount"`
}

// GetDay reads a single day of any type (tour and ai_gen days are
// readable, just not mutable).
func (s *Service) GetDay(ctx context.Context, originID string, dayNumber int, dayType string) (*models.ItineraryDay, error) {
	if dayType == "" {
		dayType = models.DayTypeCustomized
	}
	if !models.ValidDayTypes[dayType] {
		return nil, apperr.BadRequest("invalid day type: " + dayType)
	}
	return s.days.Get(ctx, originID, dayNumber, dayType)
}

func (s *Service) ListDays(ctx context.Context, originID, dayType string) ([]models.ItineraryDay, error) {
	if dayType == "" {
		dayType = models.DayTypeCustomized
	}
	if !models.ValidDayTypes[dayType] {
		return nil, apperr.BadRequest("invalid day type: " + dayType)
	}
	return s.days.ListByOrigin(ctx, originID, dayType)
}

// UpdateDay overwrites only the summary fields present in the update.
// Retried on version conflicts; each attempt re-reads the document.
func (s *Service) UpdateDay(ctx context.Context, originID string, dayNumber int, upd models.DayUpdate) (*models.ItineraryDay, error) {
	var result *models.ItineraryDay
	err := withRetry(ctx, s.attempts, s.delay, func() error {
		day, err := s.loadCustomized(ctx, originID, dayNumber)
		if err != nil {
			return err
		}
		if upd.Title != nil {
			day.Title = strings.TrimSpace(*upd.Title)
		}
		if upd.Description != nil {
			day.Description = strings.TrimSpace(*upd.Description)
		}
		if upd.Notes != nil {
			day.Notes = strings.TrimSpace(*upd.Notes)
		}
		day.UserModified = true
		day.RecomputeTotal()
		if err := s.days.Update(ctx, day); err != nil {
			return err
		}
		result = day
		return nil
	})
	return result, err
}

// AddActivity appends one normalized activity. A caller-supplied id that
// collides with an existing one is regenerated rather than rejected, so
// the day's uniqueness invariant holds unconditionally; the response
// carries the final id.
func (s *Service) AddActivity(ctx context.Context, originID string, dayNumber int, payload models.Activity) (ActivityResult, error) {
	var result ActivityResult
	if strings.TrimSpace(payload.Name) == "" {
		return result, apperr.BadRequest("activity name is required")
	}
	err := withRetry(ctx, s.attempts, s.delay, func() error {
		day, err := s.loadCustomized(ctx, originID, dayNumber)
		if err != nil {
			return err
		}
		act := NormalizeActivities([]models.Activity{payload}, dayNumber)[0]
		if day.FindActivity(act.ActivityID) >= 0 {
			taken := make(map[string]bool, len(day.Activities))
			for _, existing := range day.Activities {
				taken[existing.ActivityID] = true
			}
			act.ActivityID = nextActivityID(dayNumber, taken)
		}
		act.UserModified = true
		day.Activities = append(day.Activities, act)
		if err := ValidateActivities(day.Activities, day.Type); err != nil {
			return err
		}
		day.UserModified = true
		day.RecomputeTotal()
		if err := s.days.Update(ctx, day); err != nil {
			return err
		}
		result = ActivityResult{Activity: act, DayTotal: day.DayTotal, Count: len(day.Activities)}
		return nil
	})
	return result, err
}

// UpdateActivity merges the supplied fields into the matching activity.
// Identifier fields never appear in ActivityUpdate, so attempts to change
// them are ignored by construction. Retried on version conflicts.
func (s *Service) UpdateActivity(ctx context.Context, originID string, dayNumber int, activityID string, upd models.ActivityUpdate) (ActivityResult, error) {
	var result ActivityResult
	err := withRetry(ctx, s.attempts, s.delay, func() error {
		day, err := s.loadCustomized(ctx, originID, dayNumber)
		if err != nil {
			return err
		}
		idx := day.FindActivity(activityID)
		if idx < 0 {
			return apperr.NotFound("activity not found")
		}
		act := &day.Activities[idx]
		if upd.Name != nil {
			if strings.TrimSpace(*upd.Name) == "" {
				return apperr.BadRequest("activity name cannot be empty")
			}
			act.Name = strings.TrimSpace(*upd.Name)
		}
		if upd.Location != nil {
			act.Location = strings.TrimSpace(*upd.Location)
		}
		if upd.Type != nil {
			act.Type = *upd.Type
		}
		if upd.TimeSlot != nil {
			act.TimeSlot = *upd.TimeSlot
		}
		if upd.DurationMin != nil {
			act.DurationMin = *upd.DurationMin
		}
		if upd.Cost != nil {
			act.Cost = *upd.Cost
		}
		*act = normalizeActivity(*act, dayNumber)
		act.UserModified = true
		day.UserModified = true
		day.RecomputeTotal()
		if err := s.days.Update(ctx, day); err != nil {
			return err
		}
		result = ActivityResult{Activity: *act, DayTotal: day.DayTotal, Count: len(day.Activities)}
		return nil
	})
	return result, err
}

// DeleteActivity removes the matching activity. Deletion is destructive,
// so a version conflict is surfaced immediately instead of retried: the
// caller must reload and resubmit against current state.
func (s *Service) DeleteActivity(ctx context.Context, originID string, dayNumber int, activityID string) (DeleteResult, error) {
	var result DeleteResult
	day, err := s.loadCustomized(ctx, originID, dayNumber)
	if err != nil {
		return result, err
	}
	kept := day.Activities[:0:0]
	for _, a := range day.Activities {
		if a.ActivityID != activityID {
			kept = append(kept, a)
		}
	}
	if len(kept) == len(day.Activities) {
		return result, apperr.NotFound("activity not found")
	}
	day.Activities = kept
	day.UserModified = true
	day.RecomputeTotal()
	if err := s.days.Update(ctx, day); err != nil {
		return result, err
	}
	return DeleteResult{Remaining: len(day.Activities), DayTotal: day.DayTotal}, nil
}

// ReorderActivities rebuilds the list in the requested order. Activities
// not named in the request keep their relative order and follow the named
// ones; requested ids that match nothing are skipped. The result is
// always a permutation of the original list.
func (s *Service) ReorderActivities(ctx context.Context, originID string, dayNumber int, orderedIDs []string) (ReorderResult, error) {
	var result ReorderResult
	if orderedIDs == nil {
		return result, apperr.BadRequest("activityIds must be an array")
	}
	err := withRetry(ctx, s.attempts, s.delay, func() error {
		day, err := s.loadCustomized(ctx, originID, dayNumber)
		if err != nil {
			return err
		}
		placed := make(map[string]bool, len(orderedIDs))
		reordered := make([]models.Activity, 0, len(day.Activities))
		for _, id := range orderedIDs {
			if placed[id] {
				continue
			}
			if idx := day.FindActivity(id); idx >= 0 {
				reordered = append(reordered, day.Activities[idx])
				placed[id] = true
			}
		}
		for _, a := range day.Activities {
			if !placed[a.ActivityID] {
				reordered = append(reordered, a)
			}
		}
		day.Activities = reordered
		day.UserModified = true
		day.RecomputeTotal()
		if err := s.days.Update(ctx, day); err != nil {
			return err
		}
		result = ReorderResult{Activities: day.Activities, Count: len(day.Activities)}
		return nil
	})
	return result, err
}

// InitializeCustomDays seeds customized day documents from the parent
// plan's days. Idempotence guard: a second initialization for the same
// origin reports Conflict rather than duplicating days.
func (s *Service) InitializeCustomDays(ctx context.Context, originID string) ([]models.ItineraryDay, error) {
	existing, err := s.days.CountByOrigin(ctx, originID, models.DayTypeCustomized)
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, apperr.Conflict("customized days already exist for this plan")
	}

	planDays, err := s.plans.PlanDays(ctx, originID)
	if err != nil {
		return nil, err
	}
	if len(planDays) == 0 {
		return nil, apperr.BadRequest("plan has no days to customize")
	}

	now := time.Now().Unix()
	days := make([]models.ItineraryDay, 0, len(planDays))
	for _, pd := range planDays {
		if err := ValidateActivities(pd.Activities, models.DayTypeCustomized); err != nil {
			return nil, err
		}
		day := models.ItineraryDay{
			DayID:       utils.GenerateRandomString(13),
			OriginID:    originID,
			Type:        models.DayTypeCustomized,
			DayNumber:   pd.DayNumber,
			Title:       pd.Title,
			Description: pd.Description,
			Activities:  NormalizeActivities(pd.Activities, pd.DayNumber),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		day.RecomputeTotal()
		days = append(days, day)
	}
	if err := s.days.InsertMany(ctx, days); err != nil {
		return nil, err
	}
	return days, nil
}
