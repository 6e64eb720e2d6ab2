package handlers

import (
	"net/http"

	"github.com/fpladvisor/advisor-api/internal/models"
)

// GetLeagueStandings returns one page of a classic league
// @Summary League Standings
// @Tags Leagues
// @Produce json
// @Param leagueId path int true "Classic league id"
// @Param page query int false "Standings page (default 1)"
// @Success 200 {object} models.LeagueStandings
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /api/v1/leagues/{leagueId}/standings [get]
func (h *Handler) GetLeagueStandings(w http.ResponseWriter, r *http.Request) {
	leagueID, err := pathInt(r, "leagueId")
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	page, err := queryInt(r, "page")
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	req := models.StandingsRequest{LeagueID: leagueID, Page: page}
	if !h.validate(w, req) {
		return
	}

	st, err := h.leagues.Standings(r.Context(), req.LeagueID, req.Page)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, st)
}

// GetOptimalSquad builds a budget squad for a formation
// @Summary Optimal Squad
// @Tags Squad
// @Produce json
// @Param formation query string false "Formation such as 3-4-3 (default)"
// @Success 200 {object} models.Squad
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /api/v1/squad/optimal [get]
func (h *Handler) GetOptimalSquad(w http.ResponseWriter, r *http.Request) {
	req := models.SquadRequest{Formation: r.URL.Query().Get("formation")}
	if !h.validate(w, req) {
		return
	}

	squad, err := h.squads.OptimalSquad(r.Context(), req.Formation)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, squad)
}
