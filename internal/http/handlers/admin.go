package handlers

import (
	"log/slog"
	"net/http"

	"team-schedule-service/internal/http/requestutil"
	"team-schedule-service/internal/logging"
	"team-schedule-service/internal/refresher"
)

// AdminHandler exposes admin-only endpoints (e.g., manual refresh).
type AdminHandler struct {
	refresher *refresher.Refresher
	token     string
	logger    *slog.Logger
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(r *refresher.Refresher, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		refresher: r,
		token:     token,
		logger:    logger,
	}
}

// Refresh runs one refresh cycle immediately instead of waiting for the
// next tick. Guarded by ADMIN_TOKEN; returns 401 if missing/invalid.
func (h *AdminHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost, h.logger) {
		return
	}
	if !h.authorize(r) {
		logging.Warn(h.logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return
	}
	if h.refresher == nil {
		writeError(w, r, http.StatusServiceUnavailable, "refresher not configured", h.logger)
		return
	}

	logger := loggerFromContext(r, h.logger)
	if err := h.refresher.RefreshOnce(r.Context()); err != nil {
		logging.Warn(logger, "admin refresh failed", slog.Any("err", err))
		writeError(w, r, http.StatusBadGateway, "refresh failed", logger)
		return
	}

	status := h.refresher.Status()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"lastSuccess": status.LastSuccess,
	}, logger)
	logging.Info(logger, "admin refresh complete")
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	return r.Header.Get("Authorization") == "Bearer "+h.token
}
