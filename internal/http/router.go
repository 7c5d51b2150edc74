// Package http wires the service's routes onto a ServeMux.
package http

import (
	nethttp "net/http"
	"strings"

	"team-schedule-service/internal/http/handlers"
)

// NewRouter registers HTTP routes on a ServeMux.
func NewRouter(handler *handlers.Handler, admin *handlers.AdminHandler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/health", handler.Health)
	mux.HandleFunc("/ready", handler.Ready)
	mux.HandleFunc("/events", handler.Events)
	mux.HandleFunc("/events/calendar", handler.EventsCalendar)
	mux.HandleFunc("/events/", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if strings.HasSuffix(r.URL.Path, "/calendar") {
			handler.EventCalendar(w, r)
			return
		}
		handler.EventByID(w, r)
	})
	if admin != nil {
		mux.HandleFunc("/admin/refresh", admin.Refresh)
	}
	return mux
}
