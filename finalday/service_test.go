package finalday

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"voyago/apperr"
	"voyago/models"
)

// fakeDayStore is an in-memory DayStore with the same version-CAS
// semantics as the Mongo implementation. Setting conflictsLeft simulates a
// concurrent writer winning the race on the next N updates.
type fakeDayStore struct {
	mu            sync.Mutex
	days          map[string]models.ItineraryDay
	conflictsLeft int
	updateCalls   int
}

func newFakeDayStore() *fakeDayStore {
	return &fakeDayStore{days: map[string]models.ItineraryDay{}}
}

func dayKey(originID string, dayNumber int, dayType string) string {
	return fmt.Sprintf("%s|%d|%s", originID, dayNumber, dayType)
}

func copyDay(d models.ItineraryDay) models.ItineraryDay {
	out := d
	out.Activities = append([]models.Activity(nil), d.Activities...)
	return out
}

func (s *fakeDayStore) seed(day models.ItineraryDay) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.days[dayKey(day.OriginID, day.DayNumber, day.Type)] = copyDay(day)
}

func (s *fakeDayStore) Get(_ context.Context, originID string, dayNumber int, dayType string) (*models.ItineraryDay, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.days[dayKey(originID, dayNumber, dayType)]
	if !ok {
		return nil, apperr.NotFound("day not found")
	}
	out := copyDay(stored)
	return &out, nil
}

func (s *fakeDayStore) ListByOrigin(_ context.Context, originID, dayType string) ([]models.ItineraryDay, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.ItineraryDay{}
	for _, d := range s.days {
		if d.OriginID == originID && d.Type == dayType {
			out = append(out, copyDay(d))
		}
	}
	return out, nil
}

func (s *fakeDayStore) CountByOrigin(_ context.Context, originID, dayType string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, d := range s.days {
		if d.OriginID == originID && d.Type == dayType {
			count++
		}
	}
	return count, nil
}

func (s *fakeDayStore) Update(_ context.Context, day *models.ItineraryDay) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updateCalls++

	key := dayKey(day.OriginID, day.DayNumber, day.Type)
	stored, ok := s.days[key]
	if !ok {
		return apperr.NotFound("day not found")
	}
	if s.conflictsLeft > 0 {
		s.conflictsLeft--
		stored.Version++ // the concurrent writer commits first
		s.days[key] = stored
		return apperr.Conflict("day was modified concurrently, please retry")
	}
	if stored.Version != day.Version {
		return apperr.Conflict("day was modified concurrently, please retry")
	}
	day.Version++
	s.days[key] = copyDay(*day)
	return nil
}

func (s *fakeDayStore) InsertMany(_ context.Context, days []models.ItineraryDay) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range days {
		s.days[dayKey(d.OriginID, d.DayNumber, d.Type)] = copyDay(d)
	}
	return nil
}

func testService(store *fakeDayStore, source PlanSource) *Service {
	svc := NewService(store, source)
	svc.delay = time.Millisecond
	return svc
}

type stubPlans struct {
	days []models.PlanDay
	err  error
}

func (p *stubPlans) PlanDays(_ context.Context, _ string) ([]models.PlanDay, error) {
	return p.days, p.err
}

func seedCustomizedDay(store *fakeDayStore) models.ItineraryDay {
	day := models.ItineraryDay{
		DayID:     "day-1",
		OriginID:  "tour42",
		Type:      models.DayTypeCustomized,
		DayNumber: 1,
		Title:     "Arrival",
		Activities: []models.Activity{
			{ActivityID: "a", Name: "Airport transfer", Type: "transit", TimeSlot: "morning", DurationMin: 45, Cost: 100},
			{ActivityID: "b", Name: "Temple", Type: "culture", TimeSlot: "morning", DurationMin: 60, Cost: 200},
			{ActivityID: "c", Name: "Lunch", Type: "culinary", TimeSlot: "afternoon", DurationMin: 60, Cost: 300},
			{ActivityID: "d", Name: "Beach", Type: "relaxation", TimeSlot: "evening", DurationMin: 120, Cost: 400},
		},
		DayTotal: 1000,
		Version:  3,
	}
	store.seed(day)
	return day
}

func TestDayTotalFollowsEveryMutation(t *testing.T) {
	store := newFakeDayStore()
	seedCustomizedDay(store)
	svc := testService(store, &stubPlans{})
	ctx := context.Background()

	added, err := svc.AddActivity(ctx, "tour42", 1, models.Activity{Name: "Dinner", Cost: 500})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if added.DayTotal != 1500 {
		t.Errorf("after add expected total 1500, got %f", added.DayTotal)
	}

	cost := 250.0
	updated, err := svc.UpdateActivity(ctx, "tour42", 1, "b", models.ActivityUpdate{Cost: &cost})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.DayTotal != 1550 {
		t.Errorf("after update expected total 1550, got %f", updated.DayTotal)
	}

	for _, id := range []string{"a", "b", "c", "d", added.Activity.ActivityID} {
		if _, err := svc.DeleteActivity(ctx, "tour42", 1, id); err != nil {
			t.Fatalf("delete %s: %v", id, err)
		}
	}
	day, err := svc.GetDay(ctx, "tour42", 1, "")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(day.Activities) != 0 || day.DayTotal != 0 {
		t.Errorf("empty day should total 0, got %f with %d activities", day.DayTotal, len(day.Activities))
	}
}

func TestReorderIsMembershipPreservingPermutation(t *testing.T) {
	store := newFakeDayStore()
	seedCustomizedDay(store)
	svc := testService(store, &stubPlans{})

	result, err := svc.ReorderActivities(context.Background(), "tour42", 1, []string{"c", "a"})
	if err != nil {
		t.Fatalf("reorder: %v", err)
	}
	want := []string{"c", "a", "b", "d"}
	if result.Count != len(want) {
		t.Fatalf("expected %d activities, got %d", len(want), result.Count)
	}
	for i, id := range want {
		if result.Activities[i].ActivityID != id {
			t.Errorf("position %d: expected %q, got %q", i, id, result.Activities[i].ActivityID)
		}
	}
}

func TestReorderSkipsUnknownIDs(t *testing.T) {
	store := newFakeDayStore()
	seedCustomizedDay(store)
	svc := testService(store, &stubPlans{})

	result, err := svc.ReorderActivities(context.Background(), "tour42", 1, []string{"ghost", "d", "d", "b"})
	if err != nil {
		t.Fatalf("reorder: %v", err)
	}
	want := []string{"d", "b", "a", "c"}
	for i, id := range want {
		if result.Activities[i].ActivityID != id {
			t.Errorf("position %d: expected %q, got %q", i, id, result.Activities[i].ActivityID)
		}
	}
}

func TestReorderRejectsNilList(t *testing.T) {
	store := newFakeDayStore()
	seedCustomizedDay(store)
	svc := testService(store, &stubPlans{})

	_, err := svc.ReorderActivities(context.Background(), "tour42", 1, nil)
	if !apperr.IsKind(err, apperr.KindBadRequest) {
		t.Fatalf("expected BadRequest, got %v", err)
	}
}

func TestDeleteAbsentActivityIsNoOpNotFound(t *testing.T) {
	store := newFakeDayStore()
	seedCustomizedDay(store)
	svc := testService(store, &stubPlans{})

	_, err := svc.DeleteActivity(context.Background(), "tour42", 1, "ghost")
	if !apperr.IsNotFound(err) {
		t.Fatalf("expected NotFound, got %v", err)
	}
	day, _ := svc.GetDay(context.Background(), "tour42", 1, "")
	if len(day.Activities) != 4 {
		t.Fatalf("list changed on failed delete: %d activities", len(day.Activities))
	}
}

func TestMutationsAreScopedToCustomizedDays(t *testing.T) {
	store := newFakeDayStore()
	store.seed(models.ItineraryDay{
		DayID:     "day-t",
		OriginID:  "tour42",
		Type:      models.DayTypeTour,
		DayNumber: 1,
		Activities: []models.Activity{
			{ActivityID: "a", Name: "Guided walk"},
		},
	})
	svc := testService(store, &stubPlans{})
	ctx := context.Background()

	title := "New theme"
	if _, err := svc.UpdateDay(ctx, "tour42", 1, models.DayUpdate{Title: &title}); !apperr.IsNotFound(err) {
		t.Errorf("UpdateDay against tour day: expected NotFound, got %v", err)
	}
	if _, err := svc.AddActivity(ctx, "tour42", 1, models.Activity{Name: "Extra"}); !apperr.IsNotFound(err) {
		t.Errorf("AddActivity against tour day: expected NotFound, got %v", err)
	}
	if _, err := svc.DeleteActivity(ctx, "tour42", 1, "a"); !apperr.IsNotFound(err) {
		t.Errorf("DeleteActivity against tour day: expected NotFound, got %v", err)
	}
	if _, err := svc.ReorderActivities(ctx, "tour42", 1, []string{"a"}); !apperr.IsNotFound(err) {
		t.Errorf("ReorderActivities against tour day: expected NotFound, got %v", err)
	}
}

func TestUpdateDayTouchesOnlySuppliedFields(t *testing.T) {
	store := newFakeDayStore()
	seedCustomizedDay(store)
	svc := testService(store, &stubPlans{})

	notes := "bring sunscreen"
	day, err := svc.UpdateDay(context.Background(), "tour42", 1, models.DayUpdate{Notes: &notes})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if day.Notes != "bring sunscreen" {
		t.Errorf("notes not updated: %q", day.Notes)
	}
	if day.Title != "Arrival" {
		t.Errorf("title should be untouched, got %q", day.Title)
	}
	if !day.UserModified {
		t.Error("user_modified flag not set")
	}
}

func TestAddActivityRegeneratesCollidingID(t *testing.T) {
	store := newFakeDayStore()
	seedCustomizedDay(store)
	svc := testService(store, &stubPlans{})

	result, err := svc.AddActivity(context.Background(), "tour42", 1, models.Activity{ActivityID: "b", Name: "Dinner"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if result.Activity.ActivityID == "b" {
		t.Fatal("colliding id was not regenerated")
	}
	day, _ := svc.GetDay(context.Background(), "tour42", 1, "")
	seen := map[string]bool{}
	for _, a := range day.Activities {
		if seen[a.ActivityID] {
			t.Fatalf("duplicate id %q in day", a.ActivityID)
		}
		seen[a.ActivityID] = true
	}
}

func TestUpdateActivityUnknownIDNotFound(t *testing.T) {
	store := newFakeDayStore()
	seedCustomizedDay(store)
	svc := testService(store, &stubPlans{})

	name := "Renamed"
	_, err := svc.UpdateActivity(context.Background(), "tour42", 1, "ghost", models.ActivityUpdate{Name: &name})
	if !apperr.IsNotFound(err) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestConflictingUpdateRetriesAgainstNewVersion(t *testing.T) {
	store := newFakeDayStore()
	seedCustomizedDay(store)
	store.conflictsLeft = 1
	svc := testService(store, &stubPlans{})

	cost := 999.0
	result, err := svc.UpdateActivity(context.Background(), "tour42", 1, "a", models.ActivityUpdate{Cost: &cost})
	if err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if result.Activity.Cost != 999 {
		t.Errorf("update lost after retry: %+v", result.Activity)
	}
	if store.updateCalls != 2 {
		t.Errorf("expected 2 write attempts (conflict then success), got %d", store.updateCalls)
	}
}

func TestConflictSurfacesAfterRetriesExhausted(t *testing.T) {
	store := newFakeDayStore()
	seedCustomizedDay(store)
	store.conflictsLeft = 10
	svc := testService(store, &stubPlans{})

	cost := 999.0
	_, err := svc.UpdateActivity(context.Background(), "tour42", 1, "a", models.ActivityUpdate{Cost: &cost})
	if !apperr.IsConflict(err) {
		t.Fatalf("expected Conflict, got %v", err)
	}
	if store.updateCalls != 3 {
		t.Errorf("expected 3 attempts, got %d", store.updateCalls)
	}
}

func TestDeleteNeverRetriesOnConflict(t *testing.T) {
	store := newFakeDayStore()
	seedCustomizedDay(store)
	store.conflictsLeft = 1
	svc := testService(store, &stubPlans{})

	_, err := svc.DeleteActivity(context.Background(), "tour42", 1, "a")
	if !apperr.IsConflict(err) {
		t.Fatalf("expected immediate Conflict, got %v", err)
	}
	if store.updateCalls != 1 {
		t.Errorf("delete must not retry, got %d attempts", store.updateCalls)
	}
}

func TestInitializeCustomDays(t *testing.T) {
	store := newFakeDayStore()
	source := &stubPlans{days: []models.PlanDay{
		{DayNumber: 1, Title: "Arrival", Activities: []models.Activity{{Name: "Transfer", Cost: 100}}},
		{DayNumber: 2, Title: "Old town", Activities: []models.Activity{{Name: "Walking tour", Cost: 50}}},
	}}
	svc := testService(store, source)
	ctx := context.Background()

	days, err := svc.InitializeCustomDays(ctx, "tour42")
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if len(days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(days))
	}
	for _, d := range days {
		if d.Type != models.DayTypeCustomized {
			t.Errorf("day %d has type %q", d.DayNumber, d.Type)
		}
		if len(d.Activities) != 1 || d.Activities[0].ActivityID == "" {
			t.Errorf("day %d activities not normalized: %+v", d.DayNumber, d.Activities)
		}
	}
	if days[0].DayTotal != 100 || days[1].DayTotal != 50 {
		t.Errorf("day totals not derived: %f, %f", days[0].DayTotal, days[1].DayTotal)
	}

	if _, err := svc.InitializeCustomDays(ctx, "tour42"); !apperr.IsConflict(err) {
		t.Fatalf("second initialization should Conflict, got %v", err)
	}
}

func TestInitializeCustomDaysUnknownPlan(t *testing.T) {
	store := newFakeDayStore()
	svc := testService(store, &stubPlans{err: apperr.NotFound("plan not found")})

	_, err := svc.InitializeCustomDays(context.Background(), "nope")
	if !apperr.IsNotFound(err) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}
