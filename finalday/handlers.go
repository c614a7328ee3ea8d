package finalday

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

// POST /api/itineraries/:originid/customize
func (h *Handler) InitializeCustomDays(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := requestCtx(r)
	defer cancel()

	days, err := h.svc.InitializeCustomDays(ctx, ps.ByName("originid"))
	if err != nil {
		utils.Fail(w, err)
		return
	}
	utils.Success(w, http.StatusCreated, "Customized days created", utils.M{
		"days":  days,
		"count": len(days),
	})
}

// GET /api/itineraries/:originid/days
func (h *Handler) ListDays(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := requestCtx(r)
	defer cancel()

	days, err := h.svc.ListDays(ctx, ps.ByName("originid"), r.URL.Query().Get("type"))
	if err != nil {
		utils.Fail(w, err)
		return
	}
	utils.Success(w, http.StatusOK, "", utils.M{"days": days, "count": len(days)})
}

// GET /api/itineraries/:originid/days/:daynumber
func (h *Handler) GetDay(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := requestCtx(r)
	defer cancel()

	dayNumber := utils.ParseInt(ps.ByName("daynumber"))
	if dayNumber < 1 {
		utils.Fail(w, apperr.BadRequest("day number must be a positive integer"))
		return
	}
	day, err := h.svc.GetDay(ctx, ps.ByName("originid"), dayNumber, r.URL.Query().Get("type"))
	if err != nil {
		utils.Fail(w, err)
		return
	}
	utils.Success(w, http.StatusOK, "", day)
}

// PUT /api/itineraries/:originid/days/:daynumber
func (h *Handler) UpdateDay(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := requestCtx(r)
	defer cancel()

	dayNumber := utils.ParseInt(ps.ByName("daynumber"))
	if dayNumber < 1 {
		utils.Fail(w, apperr.BadRequest("day number must be a positive integer"))
		return
	}
	var upd models.DayUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		utils.Fail(w, apperr.BadRequest("invalid request payload"))
		return
	}
	day, err := h.svc.UpdateDay(ctx, ps.ByName("originid"), dayNumber, upd)
	if err != nil {
		utils.Fail(w, err)
		return
	}
	utils.Success(w, http.StatusOK, "Day updated", utils.M{
		"title":       day.Title,
		"description": day.Description,
		"notes":       day.Notes,
		"dayTotal":    day.DayTotal,
	})
}

// POST /api/itineraries/:originid/days/:daynumber/activities
func (h *Handler) AddActivity(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := requestCtx(r)
	defer cancel()

	dayNumber := utils.ParseInt(ps.ByName("daynumber"))
	if dayNumber < 1 {
		utils.Fail(w, apperr.BadRequest("day number must be a positive integer"))
		return
	}
	var payload models.Activity
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.Fail(w, apperr.BadRequest("invalid request payload"))
		return
	}
	result, err := h.svc.AddActivity(ctx, ps.ByName("originid"), dayNumber, payload)
	if err != nil {
		utils.Fail(w, err)
		return
	}
	utils.Success(w, http.StatusCreated, "Activity added", result)
}

// PUT /api/itineraries/:originid/days/:daynumber/activities/:activityid
func (h *Handler) UpdateActivity(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := requestCtx(r)
	defer cancel()

	dayNumber := utils.ParseInt(ps.ByName("daynumber"))
	if dayNumber < 1 {
		utils.Fail(w, apperr.BadRequest("day number must be a positive integer"))
		return
	}
	var upd models.ActivityUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		utils.Fail(w, apperr.BadRequest("invalid request payload"))
		return
	}
	result, err := h.svc.UpdateActivity(ctx, ps.ByName("originid"), dayNumber, ps.ByName("activityid"), upd)
	if err != nil {
		utils.Fail(w, err)
		return
	}
	utils.Success(w, http.StatusOK, "Activity updated", result)
}

// DELETE /api/itineraries/:originid/days/:daynumber/activities/:activityid
func (h *Handler) DeleteActivity(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := requestCtx(r)
	defer cancel()

	dayNumber := utils.ParseInt(ps.ByName("daynumber"))
	if dayNumber < 1 {
		utils.Fail(w, apperr.BadRequest("day number must be a positive integer"))
		return
	}
	result, err := h.svc.DeleteActivity(ctx, ps.ByName("originid"), dayNumber, ps.ByName("activityid"))
	if err != nil {
		utils.Fail(w, err)
		return
	}
	utils.Success(w, http.StatusOK, "Activity deleted", result)
}

// PUT /api/itineraries/:originid/days/:daynumber/activities/reorder
func (h *Handler) ReorderActivities(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := requestCtx(r)
	defer cancel()

	dayNumber := utils.ParseInt(ps.ByName("daynumber"))
	if dayNumber < 1 {
		utils.Fail(w, apperr.BadRequest("day number must be a positive integer"))
		return
	}
	var body struct {
		ActivityIDs []string `json:"activityIds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.Fail(w, apperr.BadRequest("activityIds must be an array"))
		return
	}
	result, err := h.svc.ReorderActivities(ctx, ps.ByName("originid"), dayNumber, body.ActivityIDs)
	if err != nil {
		utils.Fail(w, err)
		return
	}
	utils.Success(w, http.StatusOK, "Activities reordered", result)
}
