package budget

import (
	"sort"

	"voyago/models"
)

// Pure summary math over a fetched item list. Derived data only: nothing
// here is ever authoritative, a summary can always be rebuilt from the
// ledger.

// CalculateByCategory groups items into per-category totals sorted
// descending by total (ties broken by category name for a stable order).
func CalculateByCategory(items []models.BudgetItem) []models.CategoryBreakdown {
	totals := map[string]*models.CategoryBreakdown{}
	for _, item := range items {
		bd, ok := totals[item.Category]
		if !ok {
			bd = &models.CategoryBreakdown{Category: item.Category}
			totals[item.Category] = bd
		}
		bd.Total += item.TotalPrice
		bd.ItemsCount++
	}

	out := make([]models.CategoryBreakdown, 0, len(totals))
	for _, bd := range totals {
		out = append(out, *bd)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// Summarize computes the grand totals gated by the inclusion flags.
func Summarize(itineraryID string, items []models.BudgetItem) models.BudgetSummary {
	summary := models.BudgetSummary{ItineraryID: itineraryID}
	for _, item := range items {
		summary.Total += item.TotalPrice
		if item.IsIncluded {
			summary.IncludedTotal += item.TotalPrice
		}
		if item.IsOptional {
			summary.OptionalTotal += item.TotalPrice
		}
	}
	summary.Categories = CalculateByCategory(items)
	return summary
}
