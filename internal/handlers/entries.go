package handlers

import (
	"net/http"

	"github.com/fpladvisor/advisor-api/internal/models"
)

// entryRequest parses and validates the entry id and event selector shared by
// the per-manager endpoints.
func (h *Handler) entryRequest(w http.ResponseWriter, r *http.Request) (int, models.GameweekSelector, bool) {
	id, err := pathInt(r, "entryId")
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return 0, models.GameweekSelector{}, false
	}
	req := models.EntryRequest{EntryID: id, Event: r.URL.Query().Get("event")}
	if !h.validate(w, req) {
		return 0, models.GameweekSelector{}, false
	}
	sel, err := models.ParseGameweekSelector(req.Event)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return 0, models.GameweekSelector{}, false
	}
	return req.EntryID, sel, true
}

// GetLineup returns a manager's squad split into starters and bench
// @Summary Get Lineup
// @Description Reconstruct a manager's squad for a gameweek, falling back to earlier gameweeks when picks are missing
// @Tags Entries
// @Produce json
// @Param entryId path int true "FPL entry (manager) id"
// @Param event query string false "current, next or a gameweek number"
// @Success 200 {object} models.LineupResult
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /api/v1/entries/{entryId}/lineup [get]
func (h *Handler) GetLineup(w http.ResponseWriter, r *http.Request) {
	entryID, sel, ok := h.entryRequest(w, r)
	if !ok {
		return
	}
	res, err := h.advisor.GetLineup(r.Context(), entryID, sel)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, res)
}

// SuggestTransfers returns the best single transfers for a manager
// @Summary Suggest Transfers
// @Description Rank affordable one-for-one transfers by expected points gain
// @Tags Entries
// @Produce json
// @Param entryId path int true "FPL entry (manager) id"
// @Param event query string false "current, next or a gameweek number"
// @Success 200 {object} models.TransfersResult
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /api/v1/entries/{entryId}/transfers [get]
func (h *Handler) SuggestTransfers(w http.ResponseWriter, r *http.Request) {
	entryID, sel, ok := h.entryRequest(w, r)
	if !ok {
		return
	}
	res, err := h.advisor.SuggestTransfers(r.Context(), entryID, sel)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, res)
}

// SuggestCaptain ranks a manager's starters as captain options
// @Summary Suggest Captain
// @Tags Entries
// @Produce json
// @Param entryId path int true "FPL entry (manager) id"
// @Param event query string false "current, next or a gameweek number"
// @Success 200 {object} models.CaptainResult
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /api/v1/entries/{entryId}/captain [get]
func (h *Handler) SuggestCaptain(w http.ResponseWriter, r *http.Request) {
	entryID, sel, ok := h.entryRequest(w, r)
	if !ok {
		return
	}
	res, err := h.advisor.SuggestCaptain(r.Context(), entryID, sel)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, res)
}

// GetChipStrategy reports remaining chips and when to play them
// @Summary Chip Strategy
// @Tags Entries
// @Produce json
// @Param entryId path int true "FPL entry (manager) id"
// @Success 200 {object} models.ChipStrategy
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /api/v1/entries/{entryId}/chips [get]
func (h *Handler) GetChipStrategy(w http.ResponseWriter, r *http.Request) {
	entryID, _, ok := h.entryRequest(w, r)
	if !ok {
		return
	}
	res, err := h.squads.ChipStrategy(r.Context(), entryID)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, res)
}

// GetLiveGameweek scores a manager's squad against the live gameweek feed
// @Summary Live Gameweek
// @Description Live points, top performers and fixture scores for the gameweek in progress
// @Tags Entries
// @Produce json
// @Param entryId path int true "FPL entry (manager) id"
// @Success 200 {object} models.LiveGameweekResult
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /api/v1/entries/{entryId}/live [get]
func (h *Handler) GetLiveGameweek(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "entryId")
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	req := models.EntryRequest{EntryID: id}
	if !h.validate(w, req) {
		return
	}

	res, err := h.live.LiveGameweek(r.Context(), req.EntryID)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, res)
}
