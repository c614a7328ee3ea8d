package models

// Day document types. A customized plan owns one ItineraryDay per
// (origin_id, day_number, type); tour and ai_gen days are read-only
// snapshots seeded by plan generation.

const (
	DayTypeTour       = "tour"
	DayTypeAIGen      = "ai_gen"
	DayTypeCustomized = "customized"
)

var ValidDayTypes = map[string]bool{
	DayTypeTour:       true,
	DayTypeAIGen:      true,
	DayTypeCustomized: true,
}

// Activity is embedded in its day document; it is not a collection of its
// own. ActivityID is stable across reorders and unique within the day.
type Activity struct {
	ActivityID   string  `json:"activityId" bson:"activityId"`
	Name         string  `json:"name" bson:"name"`
	Location     string  `json:"location,omitempty" bson:"location,omitempty"`
	Type         string  `json:"type" bson:"type"`
	TimeSlot     string  `json:"timeSlot" bson:"timeSlot"`
	DurationMin  int     `json:"duration" bson:"duration"`
	Cost         float64 `json:"cost" bson:"cost"`
	UserModified bool    `json:"userModified" bson:"userModified"`
}

var ValidActivityTypes = map[string]bool{
	"sightseeing": true,
	"culture":     true,
	"nature":      true,
	"adventure":   true,
	"culinary":    true,
	"shopping":    true,
	"relaxation":  true,
	"transit":     true,
	"other":       true,
}

var ValidTimeSlots = map[string]bool{
	"morning":   true,
	"afternoon": true,
	"evening":   true,
	"night":     true,
}

// ItineraryDay is one day's worth of itinerary content. DayTotal is derived
// from the activity costs and recomputed on every save; Version is the
// optimistic-concurrency token bumped by every successful write.
type ItineraryDay struct {
	DayID        string     `json:"dayId" bson:"dayid"`
	OriginID     string     `json:"originId" bson:"origin_id"`
	Type         string     `json:"type" bson:"type"`
	DayNumber    int        `json:"dayNumber" bson:"day_number"`
	Title        string     `json:"title" bson:"title"`
	Description  string     `json:"description,omitempty" bson:"description,omitempty"`
	Notes        string     `json:"notes,omitempty" bson:"notes,omitempty"`
	Activities   []Activity `json:"activities" bson:"activities"`
	DayTotal     float64    `json:"dayTotal" bson:"day_total"`
	UserModified bool       `json:"userModified" bson:"user_modified"`
	Version      int64      `json:"version" bson:"version"`
	CreatedAt    int64      `json:"createdAt" bson:"createdAt"`
	UpdatedAt    int64      `json:"updatedAt" bson:"updatedAt"`
}

// RecomputeTotal derives day_total from the activity list. An empty list
// yields zero. Caller-supplied totals are always overwritten.
func (d *ItineraryDay) RecomputeTotal() {
	var total float64
	for _, a := range d.Activities {
		total += a.Cost
	}
	d.DayTotal = total
}

// FindActivity returns the index of the activity with the given id, or -1.
func (d *ItineraryDay) FindActivity(activityID string) int {
	for i := range d.Activities {
		if d.Activities[i].ActivityID == activityID {
			return i
		}
	}
	return -1
}

// DayUpdate is the allow-list of day summary fields a caller may change.
// Nil pointers mean "leave untouched"; there is no dynamic field copy.
type DayUpdate struct {
	Title       *string `json:"theme"`
	Description *string `json:"description"`
	Notes       *string `json:"notes"`
}

// ActivityUpdate is the allow-list for partial activity edits. Identifier
// fields are deliberately absent: payloads attempting to change them are
// ignored at decode time.
type ActivityUpdate struct {
	Name        *string  `json:"name"`
	Location    *string  `json:"location"`
	Type        *string  `json:"type"`
	TimeSlot    *string  `json:"timeSlot"`
	DurationMin *int     `json:"duration"`
	Cost        *float64 `json:"cost"`
}
