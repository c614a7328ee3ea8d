package budget

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"voyago/apperr"
	"voyago/models"
	"voyago/utils"

	"github.com/julienschmidt/httprouter"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func requestCtx(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), 5*time.Second)
}

// POST /api/budget-items
func (h *Handler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := requestCtx(r)
	defer cancel()

	var in CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.Fail(w, apperr.BadRequest("invalid request payload"))
		return
	}
	item, err := h.svc.Create(ctx, in)
	if err != nil {
		utils.Fail(w, err)
		return
	}
	utils.Success(w, http.StatusCreated, "Budget item created", item)
}

// GET /api/budget-items/:itineraryid
func (h *Handler) List(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := requestCtx(r)
	defer cancel()

	var dayNumber *int
	if dayStr := r.URL.Query().Get("day"); dayStr != "" {
		day := utils.ParseInt(dayStr)
		if day < 1 {
			utils.Fail(w, apperr.BadRequest("day must be a positive integer"))
			return
		}
		dayNumber = &day
	}
	items, err := h.svc.List(ctx, ps.ByName("itineraryid"), dayNumber)
	if err != nil {
		utils.Fail(w, err)
		return
	}
	utils.Success(w, http.StatusOK, "", utils.M{"items": items, "count": len(items)})
}

// PUT /api/budget-items/:itineraryid/:itemid
func (h *Handler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := requestCtx(r)
	defer cancel()

	var upd models.BudgetItemUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		utils.Fail(w, apperr.BadRequest("invalid request payload"))
		return
	}
	item, err := h.svc.Update(ctx, ps.ByName("itineraryid"), ps.ByName("itemid"), upd)
	if err != nil {
		utils.Fail(w, err)
		return
	}
	utils.Success(w, http.StatusOK, "Budget item updated", item)
}

// DELETE /api/budget-items/:itineraryid/:itemid
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := requestCtx(r)
	defer cancel()

	if err := h.svc.Delete(ctx, ps.ByName("itineraryid"), ps.ByName("itemid")); err != nil {
		utils.Fail(w, err)
		return
	}
	utils.Success(w, http.StatusOK, "Budget item deleted", nil)
}

// DELETE /api/budget-items/:itineraryid
func (h *Handler) DeleteByItinerary(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := requestCtx(r)
	defer cancel()

	count, err := h.svc.DeleteByItinerary(ctx, ps.ByName("itineraryid"))
	if err != nil {
		utils.Fail(w, err)
		return
	}
	utils.Success(w, http.StatusOK, "Budget items deleted", utils.M{"deleted": count})
}

// GET /api/budget-items/:itineraryid/summary
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := requestCtx(r)
	defer cancel()

	summary, err := h.svc.Summary(ctx, ps.ByName("itineraryid"))
	if err != nil {
		utils.Fail(w, err)
		return
	}
	utils.Success(w, http.StatusOK, "", summary)
}
