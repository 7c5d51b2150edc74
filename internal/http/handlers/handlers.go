package handlers

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"team-schedule-service/internal/app/schedule"
	"team-schedule-service/internal/calendar"
	"team-schedule-service/internal/refresher"
	"team-schedule-service/internal/window"
)

// Handler wires HTTP routes to the view service.
type Handler struct {
	svc      *schedule.Service
	cal      *calendar.Builder
	logger   *slog.Logger
	statusFn func() refresher.Status
}

// NewHandler constructs a Handler.
func NewHandler(svc *schedule.Service, cal *calendar.Builder, logger *slog.Logger, statusFn func() refresher.Status) *Handler {
	return &Handler{
		svc:      svc,
		cal:      cal,
		logger:   logger,
		statusFn: statusFn,
	}
}

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic (e.g., for Kubernetes probes).
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	if h.statusFn == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	if h.statusFn().IsReady() {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := h.statusFn().LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, http.StatusServiceUnavailable, msg, h.logger)
}

// Events serves the windowed event view. Query params: view
// (today|week|season), weekOffset (signed integer, week view only) and
// sport (a catalog sport key or "all").
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}

	mode, err := window.ParseMode(r.URL.Query().Get("view"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid view (expected today, week or season)", h.logger)
		return
	}

	weekOffset := 0
	if raw := r.URL.Query().Get("weekOffset"); raw != "" {
		weekOffset, err = strconv.Atoi(raw)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid weekOffset", h.logger)
			return
		}
	}

	sport := r.URL.Query().Get("sport")

	resp := h.svc.View(mode, weekOffset, sport)

	logger := loggerFromContext(r, h.logger)
	if logger != nil {
		logger.Info("served events view",
			slog.String("view", resp.View),
			slog.Int("week_offset", resp.WeekOffset),
			slog.String("sport", resp.Sport),
			slog.Int("count", len(resp.Events)),
		)
	}

	writeJSON(w, http.StatusOK, resp, h.logger)
}

// EventByID returns one annotated event.
func (h *Handler) EventByID(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}

	id, ok := eventIDFromPath(r.URL.Path)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid event id", h.logger)
		return
	}

	ev, found := h.svc.EventByID(id)
	if !found {
		writeError(w, r, http.StatusNotFound, "event not found", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, ev, h.logger)
}

// eventIDFromPath extracts the id from /events/{id} or
// /events/{id}/calendar.
func eventIDFromPath(path string) (string, bool) {
	trimmed := strings.TrimPrefix(path, "/events/")
	trimmed = strings.TrimSuffix(trimmed, "/calendar")
	trimmed = strings.TrimSuffix(trimmed, "/")

	id, err := url.PathUnescape(trimmed)
	if err != nil || id == "" || strings.ContainsAny(id, " \t/") {
		return "", false
	}
	return id, true
}
