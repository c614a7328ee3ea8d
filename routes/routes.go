package routes

import (
	"voyago/budget"
	"voyago/finalday"
	"voyago/plans"
	"voyago/printout"
	"voyago/ratelim"

	"github.com/julienschmidt/httprouter"
)

func AddItineraryRoutes(router *httprouter.Router, h *finalday.Handler, p *printout.Handler, rl *ratelim.RateLimiter) {
	router.POST("/api/itineraries/:originid/customize", rl.Limit(h.InitializeCustomDays))
	router.GET("/api/itineraries/:originid/days", h.ListDays)
	router.GET("/api/itineraries/:originid/days/:daynumber", h.GetDay)
	router.PUT("/api/itineraries/:originid/days/:daynumber", rl.Limit(h.UpdateDay))
	router.PUT("/api/itineraries/:originid/days/:daynumber/reorder", rl.Limit(h.ReorderActivities))
	router.POST("/api/itineraries/:originid/days/:daynumber/activities", rl.Limit(h.AddActivity))
	router.PUT("/api/itineraries/:originid/days/:daynumber/activities/:activityid", rl.Limit(h.UpdateActivity))
	router.DELETE("/api/itineraries/:originid/days/:daynumber/activities/:activityid", rl.Limit(h.DeleteActivity))
	router.GET("/api/itineraries/:originid/days/:daynumber/print", p.PrintDayPlan)
}

func AddBudgetRoutes(router *httprouter.Router, h *budget.Handler, rl *ratelim.RateLimiter) {
	router.POST("/api/budget-items", rl.Limit(h.Create))
	router.GET("/api/budget-items/:itineraryid", h.List)
	router.GET("/api/budget-items/:itineraryid/summary", h.Summary)
	router.PUT("/api/budget-items/:itineraryid/:itemid", rl.Limit(h.Update))
	router.DELETE("/api/budget-items/:itineraryid", rl.Limit(h.DeleteByItinerary))
	router.DELETE("/api/budget-items/:itineraryid/:itemid", rl.Limit(h.Delete))
}

func AddPlanRoutes(router *httprouter.Router, h *plans.Handler, rl *ratelim.RateLimiter) {
	router.POST("/api/plans/tours", rl.Limit(h.CreateTour))
	router.GET("/api/plans/tours/:tourid", h.GetTour)
}
