package models

// Budget breakdown types. Items are an independent ledger keyed by
// itinerary id; they reference day documents only weakly (no cascade).

const (
	CategoryTransportation = "transportation"
	CategoryAccommodation  = "accommodation"
	CategoryMeals          = "meals"
	CategoryActivities     = "activities"
	CategoryEntranceFees   = "entrance_fees"
	CategoryGuideFees      = "guide_fees"
	CategoryInsurance      = "insurance"
	CategoryEquipment      = "equipment"
	CategoryOther          = "other"
)

var ValidBudgetCategories = map[string]bool{
	CategoryTransportation: true,
	CategoryAccommodation:  true,
	CategoryMeals:          true,
	CategoryActivities:     true,
	CategoryEntranceFees:   true,
	CategoryGuideFees:      true,
	CategoryInsurance:      true,
	CategoryEquipment:      true,
	CategoryOther:          true,
}

type Supplier struct {
	Name    string `json:"name,omitempty" bson:"name,omitempty"`
	Contact string `json:"contact,omitempty" bson:"contact,omitempty"`
}

// BudgetItem is one costed line. TotalPrice is always computed server-side
// from Quantity and UnitPrice; a caller-supplied total is never trusted.
type BudgetItem struct {
	ItemID      string   `json:"itemId" bson:"itemid"`
	ItineraryID string   `json:"itineraryId" bson:"itinerary_id"`
	DayNumber   int      `json:"dayNumber" bson:"day_number"`
	ActivityID  string   `json:"activityId,omitempty" bson:"activity_id,omitempty"`
	Category    string   `json:"category" bson:"category"`
	ItemName    string   `json:"itemName" bson:"item_name"`
	Description string   `json:"description,omitempty" bson:"description,omitempty"`
	Quantity    int      `json:"quantity" bson:"quantity"`
	UnitPrice   float64  `json:"unitPrice" bson:"unit_price"`
	TotalPrice  float64  `json:"totalPrice" bson:"total_price"`
	IsIncluded  bool     `json:"isIncluded" bson:"is_included"`
	IsOptional  bool     `json:"isOptional" bson:"is_optional"`
	Currency    string   `json:"currency,omitempty" bson:"currency,omitempty"`
	Supplier    Supplier `json:"supplier,omitempty" bson:"supplier,omitempty"`
	Notes       string   `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt   int64    `json:"createdAt" bson:"createdAt"`
	UpdatedAt   int64    `json:"updatedAt" bson:"updatedAt"`
}

// BudgetItemUpdate is the allow-list for partial edits. ItineraryID and
// ItemID are not here on purpose; total_price is recomputed, never merged.
type BudgetItemUpdate struct {
	DayNumber   *int      `json:"dayNumber"`
	ActivityID  *string   `json:"activityId"`
	Category    *string   `json:"category"`
	ItemName    *string   `json:"itemName"`
	Description *string   `json:"description"`
	Quantity    *int      `json:"quantity"`
	UnitPrice   *float64  `json:"unitPrice"`
	IsIncluded  *bool     `json:"isIncluded"`
	IsOptional  *bool     `json:"isOptional"`
	Currency    *string   `json:"currency"`
	Supplier    *Supplier `json:"supplier"`
	Notes       *string   `json:"notes"`
}

type CategoryBreakdown struct {
	Category   string  `json:"category" bson:"category"`
	Total      float64 `json:"total" bson:"total"`
	ItemsCount int     `json:"items_count" bson:"items_count"`
}

type BudgetSummary struct {
	ItineraryID   string              `json:"itineraryId"`
	Total         float64             `json:"total"`
	IncludedTotal float64             `json:"included_total"`
	OptionalTotal float64             `json:"optional_total"`
	Categories    []CategoryBreakdown `json:"categories"`
}
