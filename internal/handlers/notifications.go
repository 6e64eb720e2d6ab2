package handlers

import "net/http"

// GetNotifications returns the deadline, price and squad alert feed
// @Summary Notifications
// @Description Alerts ordered by priority, newest first within a priority
// @Tags Notifications
// @Produce json
// @Success 200 {object} models.NotificationFeed
// @Router /api/v1/notifications [get]
func (h *Handler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	res, err := h.notify.Notifications(r.Context())
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, res)
}
