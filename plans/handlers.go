package plans

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"voyago/apperr"
	"voyago/models"
	"voyago/utils"

	"github.com/julienschmidt/httprouter"
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// POST /api/plans/tours
func (h *Handler) CreateTour(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var tour models.TourPlan
	if err := json.NewDecoder(r.Body).Decode(&tour); err != nil {
		utils.Fail(w, apperr.BadRequest("invalid request payload"))
		return
	}
	if strings.TrimSpace(tour.Name) == "" {
		utils.Fail(w, apperr.BadRequest("tour name is required"))
		return
	}
	for i := range tour.Days {
		if tour.Days[i].DayNumber < 1 {
			utils.Fail(w, apperr.BadRequest("day numbers must be positive integers"))
			return
		}
	}

	tour.TourID = utils.GenerateRandomString(13)
	tour.CreatedAt = time.Now().Unix()
	if err := h.store.InsertTour(ctx, &tour); err != nil {
		utils.Fail(w, err)
		return
	}
	utils.Success(w, http.StatusCreated, "Tour created", tour)
}

// GET /api/plans/tours/:tourid
func (h *Handler) GetTour(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	tour, err := h.store.GetTour(ctx, ps.ByName("tourid"))
	if err != nil {
		utils.Fail(w, err)
		return
	}
	utils.Success(w, http.StatusOK, "", tour)
}
