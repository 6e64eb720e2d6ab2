package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/fpladvisor/advisor-api/internal/logic"
	"github.com/fpladvisor/advisor-api/internal/models"
)

func (h *Handler) teamImageRequest(w http.ResponseWriter, r *http.Request) (*models.Team, models.TeamImageRequest, bool) {
	var req models.TeamImageRequest
	id, err := pathInt(r, "teamId")
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return nil, req, false
	}
	size, err := queryInt(r, "size")
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return nil, req, false
	}
	req = models.TeamImageRequest{TeamID: id, Size: size}
	if gk := r.URL.Query().Get("gk"); gk != "" {
		if req.Goalkeeper, err = strconv.ParseBool(gk); err != nil {
			h.errorResponse(w, http.StatusBadRequest, fmt.Sprintf("invalid gk %q: must be true or false", gk))
			return nil, req, false
		}
	}
	if !h.validate(w, req) {
		return nil, req, false
	}

	boot, err := h.teams.Bootstrap(r.Context())
	if err != nil {
		h.serviceError(w, r, err)
		return nil, req, false
	}
	team, ok := boot.Team(req.TeamID)
	if !ok {
		h.serviceError(w, r, logic.NotFoundError("team %d does not exist", req.TeamID))
		return nil, req, false
	}
	return team, req, true
}

// GetTeamCrest resolves a club badge URL
// @Summary Team Crest
// @Description Returns the first reachable badge URL, or a placeholder path
// @Tags Images
// @Produce json
// @Param teamId path int true "FPL team id"
// @Param size query int false "50 or 70 (default)"
// @Success 200 {object} models.ImageResult
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /api/v1/teams/{teamId}/crest [get]
func (h *Handler) GetTeamCrest(w http.ResponseWriter, r *http.Request) {
	team, req, ok := h.teamImageRequest(w, r)
	if !ok {
		return
	}
	h.jsonResponse(w, http.StatusOK, h.images.Crest(r.Context(), *team, req.Size))
}

// GetTeamKit resolves a club shirt URL
// @Summary Team Kit
// @Description Goalkeeper kits fall back to the outfield shirt, then the crest, then a placeholder path
// @Tags Images
// @Produce json
// @Param teamId path int true "FPL team id"
// @Param gk query bool false "Goalkeeper shirt"
// @Param size query int false "66 or 110 (default)"
// @Success 200 {object} models.ImageResult
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /api/v1/teams/{teamId}/kit [get]
func (h *Handler) GetTeamKit(w http.ResponseWriter, r *http.Request) {
	team, req, ok := h.teamImageRequest(w, r)
	if !ok {
		return
	}
	h.jsonResponse(w, http.StatusOK, h.images.Kit(r.Context(), *team, req.Goalkeeper, req.Size))
}

// GetPlayerPhoto resolves a player headshot URL
// @Summary Player Photo
// @Description Falls back to the player's club crest, then a placeholder path
// @Tags Images
// @Produce json
// @Param playerId path int true "FPL element id"
// @Success 200 {object} models.ImageResult
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /api/v1/players/{playerId}/photo [get]
func (h *Handler) GetPlayerPhoto(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "playerId")
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	req := models.PlayerPhotoRequest{PlayerID: id}
	if !h.validate(w, req) {
		return
	}

	boot, err := h.teams.Bootstrap(r.Context())
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	player, ok := boot.Player(req.PlayerID)
	if !ok {
		h.serviceError(w, r, logic.NotFoundError("player %d does not exist", req.PlayerID))
		return
	}
	teamCode := 0
	if team, ok := boot.Team(player.TeamID); ok {
		teamCode = team.Code
	}
	h.jsonResponse(w, http.StatusOK, h.images.PlayerPhoto(r.Context(), *player, teamCode))
}
