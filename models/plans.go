package models

// Parent plan records. These exist so origin ids can be validated and so
// customization can seed day documents from a plan's day list; full plan
// management lives elsewhere.

type PlanDay struct {
	DayNumber   int        `json:"dayNumber" bson:"day_number"`
	Title       string     `json:"title" bson:"title"`
	Description string     `json:"description,omitempty" bson:"description,omitempty"`
	Activities  []Activity `json:"activities" bson:"activities"`
}

type TourPlan struct {
	TourID      string    `json:"tourId" bson:"tourid"`
	Name        string    `json:"name" bson:"name"`
	Destination string    `json:"destination,omitempty" bson:"destination,omitempty"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	BasePrice   float64   `json:"basePrice" bson:"base_price"`
	Currency    string    `json:"currency,omitempty" bson:"currency,omitempty"`
	Days        []PlanDay `json:"days" bson:"days"`
	CreatedAt   int64     `json:"createdAt" bson:"createdAt"`
}

type AIPlan struct {
	PlanID    string    `json:"planId" bson:"planid"`
	UserID    string    `json:"userId,omitempty" bson:"user_id,omitempty"`
	Prompt    string    `json:"prompt,omitempty" bson:"prompt,omitempty"`
	Days      []PlanDay `json:"days" bson:"days"`
	CreatedAt int64     `json:"createdAt" bson:"createdAt"`
}
