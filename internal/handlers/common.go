package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/fpladvisor/advisor-api/internal/logic"
	"github.com/fpladvisor/advisor-api/internal/models"
	"github.com/fpladvisor/advisor-api/internal/scoring"
)

// Health check endpoint
// @Summary Liveness check
// @Tags System
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}

// Ready check endpoint
// @Summary Readiness check
// @Description Reports whether the shared cache is reachable.
// @Tags System
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /ready [get]
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	checks := map[string]bool{}
	if h.cache != nil {
		checks["cache"] = h.cache.Ping(r.Context()) == nil
	}

	ready := true
	for _, ok := range checks {
		if !ok {
			ready = false
			break
		}
	}

	status := http.StatusOK
	if !ready {
		status = http.StatusServiceUnavailable
	}
	h.jsonResponse(w, status, map[string]interface{}{
		"ready":  ready,
		"checks": checks,
	})
}

func (h *Handler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, map[string]string{"error": message})
}

// serviceError maps a service error onto a status code. Only validation and
// not-found messages reach the client.
func (h *Handler) serviceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, logic.ErrValidation):
		h.errorResponse(w, http.StatusBadRequest, err.Error())
	case logic.IsNotFound(err):
		h.logger.Infow("Resource not found",
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"error", err,
		)
		h.errorResponse(w, http.StatusNotFound, logic.NotFoundMessage(err))
	default:
		h.logger.Errorw("Request failed",
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"error", err,
		)
		h.errorResponse(w, http.StatusInternalServerError, "internal server error")
	}
}

// validate runs struct validation and writes a 400 on failure.
func (h *Handler) validate(w http.ResponseWriter, req interface{}) bool {
	if err := h.validator.Struct(req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, validationMessage(err))
		return false
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request"
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed %q", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return "invalid request: " + strings.Join(parts, ", ")
}

func pathInt(r *http.Request, name string) (int, error) {
	raw := chi.URLParam(r, name)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: must be a positive integer", name, raw)
	}
	return n, nil
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: must be an integer", name, raw)
	}
	return n, nil
}

func queryFloat(r *http.Request, name string) (float64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid %s %q: must be a number", name, raw)
	}
	return f, nil
}

func queryPosition(r *http.Request) models.Position {
	raw := strings.TrimSpace(r.URL.Query().Get("position"))
	if raw == "" {
		return ""
	}
	return scoring.NormalizePosition(raw)
}

// queryParser collects the first parse error across several parameters.
type queryParser struct {
	r   *http.Request
	err error
}

func (p *queryParser) intParam(name string) int {
	n, err := queryInt(p.r, name)
	if err != nil && p.err == nil {
		p.err = err
	}
	return n
}

func (p *queryParser) floatParam(name string) float64 {
	f, err := queryFloat(p.r, name)
	if err != nil && p.err == nil {
		p.err = err
	}
	return f
}
