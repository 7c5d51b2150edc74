package handlers

import (
	"net/http"
	"strconv"

	"team-schedule-service/internal/domain/events"
	"team-schedule-service/internal/window"
)

const icsContentType = "text/calendar; charset=utf-8"

// EventCalendar serves one event as an ICS download, or its calendar
// deep links when links=1 is set.
func (h *Handler) EventCalendar(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}

	id, ok := eventIDFromPath(r.URL.Path)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid event id", h.logger)
		return
	}

	annotated, found := h.svc.EventByID(id)
	if !found {
		writeError(w, r, http.StatusNotFound, "event not found", h.logger)
		return
	}
	if annotated.Completed {
		writeError(w, r, http.StatusConflict, "event already completed", h.logger)
		return
	}

	if r.URL.Query().Get("links") == "1" {
		writeJSON(w, http.StatusOK, map[string]string{
			"google":  h.cal.GoogleURL(annotated.Event),
			"outlook": h.cal.OutlookURL(annotated.Event),
		}, h.logger)
		return
	}

	h.writeICS(w, "event.ics", []events.Event{annotated.Event})
}

// EventsCalendar serves the current view's upcoming events as one ICS
// download. Accepts the same view/weekOffset/sport params as Events.
func (h *Handler) EventsCalendar(w http.ResponseWriter, r *http.Request) {
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
		if weekOffset, err = strconv.Atoi(raw); err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid weekOffset", h.logger)
			return
		}
	}

	resp := h.svc.View(mode, weekOffset, r.URL.Query().Get("sport"))

	upcoming := make([]events.Event, 0, len(resp.Events))
	for _, ev := range resp.Events {
		if !ev.Completed {
			upcoming = append(upcoming, ev.Event)
		}
	}
	if len(upcoming) == 0 {
		writeError(w, r, http.StatusNotFound, "no upcoming events in view", h.logger)
		return
	}

	h.writeICS(w, "schedule.ics", upcoming)
}

func (h *Handler) writeICS(w http.ResponseWriter, filename string, evs []events.Event) {
	w.Header().Set("Content-Type", icsContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(h.cal.ICS(evs))); err != nil && h.logger != nil {
		h.logger.Error("failed to write calendar response", "err", err)
	}
}
