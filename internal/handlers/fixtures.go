package handlers

import (
	"net/http"

	"github.com/fpladvisor/advisor-api/internal/models"
)

// GetFixturePlanner lays out every team's upcoming fixture run
// @Summary Fixture Planner
// @Tags Fixtures
// @Produce json
// @Param horizon query int false "Gameweeks to plan (1-15, default 8)"
// @Success 200 {object} models.FixturePlan
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /api/v1/fixtures/planner [get]
func (h *Handler) GetFixturePlanner(w http.ResponseWriter, r *http.Request) {
	horizon, err := queryInt(r, "horizon")
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	req := models.PlannerRequest{Horizon: horizon}
	if !h.validate(w, req) {
		return
	}

	plan, err := h.fixtures.Planner(r.Context(), req.Horizon)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, plan)
}

// GetMatchPredictions returns the most likely score for each fixture
// @Summary Match Predictions
// @Tags Fixtures
// @Produce json
// @Param event query string false "current, next or a gameweek number"
// @Success 200 {array} models.MatchPrediction
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /api/v1/fixtures/predictions [get]
func (h *Handler) GetMatchPredictions(w http.ResponseWriter, r *http.Request) {
	sel, err := models.ParseGameweekSelector(r.URL.Query().Get("event"))
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	preds, err := h.fixtures.Predictions(r.Context(), sel)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, preds)
}
