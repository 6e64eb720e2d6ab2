package handlers

import (
	"net/http"
	"strings"

	"github.com/fpladvisor/advisor-api/internal/logic"
	"github.com/fpladvisor/advisor-api/internal/models"
)

// GetDifferentials returns low-ownership players with good form and fixtures
// @Summary Differentials
// @Tags Players
// @Produce json
// @Param maxOwnership query number false "Maximum ownership percent (default 10)"
// @Param minForm query number false "Minimum form"
// @Param maxPrice query number false "Maximum price in millions"
// @Param position query string false "GK, DEF, MID or FWD"
// @Param limit query int false "Result count (default 20)"
// @Success 200 {array} models.Differential
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /api/v1/players/differentials [get]
func (h *Handler) GetDifferentials(w http.ResponseWriter, r *http.Request) {
	q := &queryParser{r: r}
	req := models.DifferentialsRequest{
		MaxOwnership: q.floatParam("maxOwnership"),
		MinForm:      q.floatParam("minForm"),
		MaxPrice:     q.floatParam("maxPrice"),
		Position:     queryPosition(r),
		Limit:        q.intParam("limit"),
	}
	if q.err != nil {
		h.errorResponse(w, http.StatusBadRequest, q.err.Error())
		return
	}
	if !h.validate(w, req) {
		return
	}

	res, err := h.insights.Differentials(r.Context(), logic.DifferentialFilter{
		MaxOwnership: req.MaxOwnership,
		MinForm:      req.MinForm,
		MaxPrice:     req.MaxPrice,
		Position:     req.Position,
		Limit:        req.Limit,
	})
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, res)
}

// GetValuePicks returns players ranked by points per million
// @Summary Value Picks
// @Tags Players
// @Produce json
// @Param maxPrice query number false "Maximum price in millions"
// @Param position query string false "GK, DEF, MID or FWD"
// @Param sortBy query string false "value, points or form"
// @Param limit query int false "Result count (default 20)"
// @Success 200 {array} models.ValuePick
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /api/v1/players/value [get]
func (h *Handler) GetValuePicks(w http.ResponseWriter, r *http.Request) {
	q := &queryParser{r: r}
	req := models.ValuePicksRequest{
		MaxPrice: q.floatParam("maxPrice"),
		Position: queryPosition(r),
		SortBy:   strings.ToLower(strings.TrimSpace(r.URL.Query().Get("sortBy"))),
		Limit:    q.intParam("limit"),
	}
	if q.err != nil {
		h.errorResponse(w, http.StatusBadRequest, q.err.Error())
		return
	}
	if !h.validate(w, req) {
		return
	}

	res, err := h.insights.ValuePicks(r.Context(), logic.ValueFilter{
		MaxPrice: req.MaxPrice,
		Position: req.Position,
		SortBy:   req.SortBy,
		Limit:    req.Limit,
	})
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, res)
}

// GetPriceMovements returns this gameweek's price risers and fallers
// @Summary Price Movements
// @Tags Players
// @Produce json
// @Success 200 {object} models.PriceMovements
// @Router /api/v1/players/prices [get]
func (h *Handler) GetPriceMovements(w http.ResponseWriter, r *http.Request) {
	res, err := h.insights.PriceMovements(r.Context())
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, res)
}

// GetInjuryNews returns flagged players with news, newest first
// @Summary Injury News
// @Tags Players
// @Produce json
// @Param limit query int false "Result count (default 10)"
// @Success 200 {array} models.InjuryNews
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /api/v1/players/injuries [get]
func (h *Handler) GetInjuryNews(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	req := models.InjuryNewsRequest{Limit: limit}
	if !h.validate(w, req) {
		return
	}

	res, err := h.insights.InjuryNews(r.Context(), req.Limit)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, res)
}

// GetTransferTrends returns the most transferred in and out players
// @Summary Transfer Trends
// @Tags Players
// @Produce json
// @Param limit query int false "Players per direction (default 5)"
// @Success 200 {object} models.TransferTrends
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /api/v1/players/transfers [get]
func (h *Handler) GetTransferTrends(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	req := models.TransferTrendsRequest{Limit: limit}
	if !h.validate(w, req) {
		return
	}

	res, err := h.insights.TransferTrends(r.Context(), req.Limit)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, res)
}

// SearchPlayers fuzzy-matches player names
// @Summary Search Players
// @Tags Players
// @Produce json
// @Param q query string true "Name fragment"
// @Param position query string false "GK, DEF, MID or FWD"
// @Param limit query int false "Result count (default 20)"
// @Success 200 {array} models.PlayerMatch
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /api/v1/players/search [get]
func (h *Handler) SearchPlayers(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	req := models.PlayerSearchRequest{
		Query:    strings.TrimSpace(r.URL.Query().Get("q")),
		Position: queryPosition(r),
		Limit:    limit,
	}
	if !h.validate(w, req) {
		return
	}

	res, err := h.insights.SearchPlayers(r.Context(), req.Query, req.Position, req.Limit)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, res)
}
