package budget

import (
	"context"
	"strings"
	"time"

	"voyago/apperr"
	"voyago/models"
	"voyago/utils"
)

// PlanChecker validates that a referenced itinerary (tour or AI plan)
// actually exists before ledger rows are attached to it.
type PlanChecker interface {
	PlanExists(ctx context.Context, originID string) (bool, error)
}

// SummaryCache is an optional read-through cache for summaries. A nil
// cache disables caching entirely.
type SummaryCache interface {
	GetSummary(ctx context.Context, itineraryID string) (*models.BudgetSummary, bool)
	SetSummary(ctx context.Context, summary models.BudgetSummary)
	InvalidateSummary(ctx context.Context, itineraryID string)
}

type Service struct {
	store Store
	plans PlanChecker
	cache SummaryCache
}

func NewService(store Store, plans PlanChecker, cache SummaryCache) *Service {
	return &Service{store: store, plans: plans, cache: cache}
}

type CreateInput struct {
	ItineraryID string          `json:"itineraryId"`
	DayNumber   int             `json:"dayNumber"`
	ActivityID  string          `json:"activityId"`
	Category    string          `json:"category"`
	ItemName    string          `json:"itemName"`
	Description string          `json:"description"`
	Quantity    *int            `json:"quantity"`
	UnitPrice   *float64        `json:"unitPrice"`
	IsIncluded  *bool           `json:"isIncluded"`
	IsOptional  *bool           `json:"isOptional"`
	Currency    string          `json:"currency"`
	Supplier    models.Supplier `json:"supplier"`
	Notes       string          `json:"notes"`
}

// Create validates the required fields, confirms the parent plan exists
// and computes total_price server-side. Any total the caller sent along
// is ignored by construction: CreateInput has no such field.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.BudgetItem, error) {
	switch {
	case strings.TrimSpace(in.ItineraryID) == "":
		return nil, apperr.BadRequest("itineraryId is required")
	case strings.TrimSpace(in.ItemName) == "":
		return nil, apperr.BadRequest("itemName is required")
	case in.Category == "":
		return nil, apperr.BadRequest("category is required")
	case !models.ValidBudgetCategories[in.Category]:
		return nil, apperr.BadRequest("invalid category: " + in.Category)
	case in.UnitPrice == nil:
		return nil, apperr.BadRequest("unitPrice is required")
	case *in.UnitPrice < 0:
		return nil, apperr.BadRequest("unitPrice cannot be negative")
	case in.DayNumber < 1:
		return nil, apperr.BadRequest("dayNumber must be a positive integer")
	}

	exists, err := s.plans.PlanExists(ctx, in.ItineraryID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("itinerary not found")
	}

	quantity := 1
	if in.Quantity != nil {
		if *in.Quantity < 0 {
			return nil, apperr.BadRequest("quantity cannot be negative")
		}
		quantity = *in.Quantity
	}
	included := true
	if in.IsIncluded != nil {
		included = *in.IsIncluded
	}
	optional := false
	if in.IsOptional != nil {
		optional = *in.IsOptional
	}

	now := time.Now().Unix()
	item := &models.BudgetItem{
		ItemID:      utils.GetUUID(),
		ItineraryID: strings.TrimSpace(in.ItineraryID),
		DayNumber:   in.DayNumber,
		ActivityID:  strings.TrimSpace(in.ActivityID),
		Category:    in.Category,
		ItemName:    strings.TrimSpace(in.ItemName),
		Description: strings.TrimSpace(in.Description),
		Quantity:    quantity,
		UnitPrice:   *in.UnitPrice,
		TotalPrice:  float64(quantity) * *in.UnitPrice,
		IsIncluded:  included,
		IsOptional:  optional,
		Currency:    strings.TrimSpace(in.Currency),
		Supplier:    in.Supplier,
		Notes:       strings.TrimSpace(in.Notes),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.Insert(ctx, item); err != nil {
		return nil, err
	}
	s.invalidate(ctx, item.ItineraryID)
	return item, nil
}

// Update merges the allow-listed fields and recomputes total_price when
// quantity or unit_price changed, regardless of what the caller sent.
func (s *Service) Update(ctx context.Context, itineraryID, itemID string, upd models.BudgetItemUpdate) (*models.BudgetItem, error) {
	item, err := s.store.Get(ctx, itineraryID, itemID)
	if err != nil {
		return nil, err
	}

	if upd.DayNumber != nil {
		if *upd.DayNumber < 1 {
			return nil, apperr.BadRequest("dayNumber must be a positive integer")
		}
		item.DayNumber = *upd.DayNumber
	}
	if upd.ActivityID != nil {
		item.ActivityID = strings.TrimSpace(*upd.ActivityID)
	}
	if upd.Category != nil {
		if !models.ValidBudgetCategories[*upd.Category] {
			return nil, apperr.BadRequest("invalid category: " + *upd.Category)
		}
		item.Category = *upd.Category
	}
	if upd.ItemName != nil {
		if strings.TrimSpace(*upd.ItemName) == "" {
			return nil, apperr.BadRequest("itemName cannot be empty")
		}
		item.ItemName = strings.TrimSpace(*upd.ItemName)
	}
	if upd.Description != nil {
		item.Description = strings.TrimSpace(*upd.Description)
	}
	priceChanged := false
	if upd.Quantity != nil {
		if *upd.Quantity < 0 {
			return nil, apperr.BadRequest("quantity cannot be negative")
		}
		item.Quantity = *upd.Quantity
		priceChanged = true
	}
	if upd.UnitPrice != nil {
		if *upd.UnitPrice < 0 {
			return nil, apperr.BadRequest("unitPrice cannot be negative")
		}
		item.UnitPrice = *upd.UnitPrice
		priceChanged = true
	}
	if upd.IsIncluded != nil {
		item.IsIncluded = *upd.IsIncluded
	}
	if upd.IsOptional != nil {
		item.IsOptional = *upd.IsOptional
	}
	if upd.Currency != nil {
		item.Currency = strings.TrimSpace(*upd.Currency)
	}
	if upd.Supplier != nil {
		item.Supplier = *upd.Supplier
	}
	if upd.Notes != nil {
		item.Notes = strings.TrimSpace(*upd.Notes)
	}
	if priceChanged {
		item.TotalPrice = float64(item.Quantity) * item.UnitPrice
	}

	if err := s.store.Replace(ctx, item); err != nil {
		return nil, err
	}
	s.invalidate(ctx, item.ItineraryID)
	return item, nil
}

func (s *Service) Delete(ctx context.Context, itineraryID, itemID string) error {
	if err := s.store.Delete(ctx, itineraryID, itemID); err != nil {
		return err
	}
	s.invalidate(ctx, itineraryID)
	return nil
}

// DeleteByItinerary removes every item for the itinerary and reports the
// count. Day documents are untouched: the ledger never cascades.
func (s *Service) DeleteByItinerary(ctx context.Context, itineraryID string) (int64, error) {
	count, err := s.store.DeleteByItinerary(ctx, itineraryID)
	if err != nil {
		return 0, err
	}
	s.invalidate(ctx, itineraryID)
	return count, nil
}

func (s *Service) List(ctx context.Context, itineraryID string, dayNumber *int) ([]models.BudgetItem, error) {
	return s.store.List(ctx, itineraryID, dayNumber)
}

// Summary serves cached totals when available and rebuilds them from the
// ledger otherwise. An itinerary with no items yields all-zero totals.
func (s *Service) Summary(ctx context.Context, itineraryID string) (models.BudgetSummary, error) {
	if s.cache != nil {
		if cached, ok := s.cache.GetSummary(ctx, itineraryID); ok {
			return *cached, nil
		}
	}
	items, err := s.store.List(ctx, itineraryID, nil)
	if err != nil {
		return models.BudgetSummary{}, err
	}
	summary := Summarize(itineraryID, items)
	if s.cache != nil {
		s.cache.SetSummary(ctx, summary)
	}
	return summary, nil
}

func (s *Service) invalidate(ctx context.Context, itineraryID string) {
	if s.cache != nil {
		s.cache.InvalidateSummary(ctx, itineraryID)
	}
}
