package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"team-schedule-service/internal/app/schedule"
	"team-schedule-service/internal/calendar"
	"team-schedule-service/internal/domain/events"
	"team-schedule-service/internal/domain/odds"
	router "team-schedule-service/internal/http"
	"team-schedule-service/internal/http/handlers"
	"team-schedule-service/internal/metrics"
	"team-schedule-service/internal/refresher"
	"team-schedule-service/internal/store"
	"team-schedule-service/internal/teststubs"
	"team-schedule-service/internal/testutil"
	"team-schedule-service/internal/window"
)

var testNow = testutil.MustParseRFC3339("2025-11-29T12:00:00Z")

func readyStatus() refresher.Status {
	return refresher.Status{LastSuccess: testNow}
}

func testEvents() []events.Event {
	upcoming := events.Event{
		ID:        "evt-1",
		Sport:     "football",
		StartTime: time.Date(2025, time.November, 29, 17, 0, 0, 0, time.UTC),
		Opponent:  events.Opponent{Name: "Ohio State Buckeyes", Abbreviation: "OSU"},
		IsHome:    true,
		Venue:     "Michigan Stadium",
		Broadcast: "FOX",
		Status:    events.StatusScheduled,
	}
	done := events.Event{
		ID:        "evt-done",
		Sport:     "football",
		StartTime: time.Date(2025, time.November, 22, 17, 0, 0, 0, time.UTC),
		Opponent:  events.Opponent{Name: "Maryland Terrapins"},
		Status:    events.StatusCompleted,
		Completed: true,
	}
	return []events.Event{done, upcoming}
}

func newTestHandler(statusFn func() refresher.Status) http.Handler {
	catalog := testutil.MichiganCatalog()

	idx := odds.BuildIndex(odds.BuildConfig{
		SportKey:  "americanfootball_ncaaf",
		TeamKey:   catalog.TeamKey,
		Matcher:   testutil.MichiganMatcher(),
		LocalZone: time.UTC,
	}, []odds.RawGame{
		testutil.SampleRawGame("Ohio State Buckeyes", "Michigan Wolverines", time.Date(2025, time.November, 29, 17, 0, 0, 0, time.UTC), 3.5, 44.5),
	})

	st := store.NewMemoryStore()
	st.Replace(store.Snapshot{
		Events:      testEvents(),
		Indexes:     map[string]*odds.Index{"football": idx},
		RefreshedAt: testNow,
	})

	filter := window.New(time.UTC, false)
	filter.Now = func() time.Time { return testNow }

	svc := schedule.NewService(st, filter, catalog, nil, metrics.NewRecorder())
	handler := handlers.NewHandler(svc, calendar.NewBuilder(catalog), nil, statusFn)
	return router.NewRouter(handler, nil)
}

func doRequest(t *testing.T, h http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, into any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), into); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
}

func TestHealth(t *testing.T) {
	h := newTestHandler(readyStatus)
	rec := doRequest(t, h, http.MethodGet, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]string
	decodeBody(t, rec, &body)
	if body["status"] != "ok" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestReady(t *testing.T) {
	h := newTestHandler(readyStatus)
	if rec := doRequest(t, h, http.MethodGet, "/ready"); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReadyBeforeFirstRefresh(t *testing.T) {
	h := newTestHandler(func() refresher.Status {
		return refresher.Status{LastError: "schedule fetch failed"}
	})
	rec := doRequest(t, h, http.MethodGet, "/ready")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}

	var body map[string]string
	decodeBody(t, rec, &body)
	if body["error"] != "schedule fetch failed" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestEventsDefaultViewIsToday(t *testing.T) {
	h := newTestHandler(readyStatus)
	rec := doRequest(t, h, http.MethodGet, "/events")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp schedule.ViewResponse
	decodeBody(t, rec, &resp)
	if resp.View != "today" || resp.Sport != "all" {
		t.Fatalf("unexpected view metadata %+v", resp)
	}
	if len(resp.Events) != 1 || resp.Events[0].ID != "evt-1" {
		t.Fatalf("expected the game today, got %+v", resp.Events)
	}
	if resp.Events[0].Odds == nil {
		t.Fatalf("expected odds annotation on today's game")
	}
	if !resp.RefreshedAt.Equal(testNow) {
		t.Fatalf("unexpected refreshedAt %s", resp.RefreshedAt)
	}
}

func TestEventsSeasonViewWithSportFilter(t *testing.T) {
	h := newTestHandler(readyStatus)
	rec := doRequest(t, h, http.MethodGet, "/events?view=season&sport=basketball")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp schedule.ViewResponse
	decodeBody(t, rec, &resp)
	if resp.Sport != "basketball" || len(resp.Events) != 0 {
		t.Fatalf("expected empty basketball season view, got %+v", resp)
	}
}

func TestEventsInvalidView(t *testing.T) {
	h := newTestHandler(readyStatus)
	if rec := doRequest(t, h, http.MethodGet, "/events?view=fortnight"); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestEventsInvalidWeekOffset(t *testing.T) {
	h := newTestHandler(readyStatus)
	if rec := doRequest(t, h, http.MethodGet, "/events?view=week&weekOffset=soon"); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestEventsMethodNotAllowed(t *testing.T) {
	h := newTestHandler(readyStatus)
	if rec := doRequest(t, h, http.MethodPost, "/events"); rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestEventByID(t *testing.T) {
	h := newTestHandler(readyStatus)
	rec := doRequest(t, h, http.MethodGet, "/events/evt-1")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp schedule.AnnotatedEvent
	decodeBody(t, rec, &resp)
	if resp.ID != "evt-1" || resp.Odds == nil {
		t.Fatalf("unexpected event %+v", resp)
	}
}

func TestEventByIDNotFound(t *testing.T) {
	h := newTestHandler(readyStatus)
	if rec := doRequest(t, h, http.MethodGet, "/events/nope"); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestEventByIDRejectsMalformedID(t *testing.T) {
	h := newTestHandler(readyStatus)
	if rec := doRequest(t, h, http.MethodGet, "/events/%20evt"); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestEventCalendarICS(t *testing.T) {
	h := newTestHandler(readyStatus)
	rec := doRequest(t, h, http.MethodGet, "/events/evt-1/calendar")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/calendar; charset=utf-8" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "event.ics") {
		t.Fatalf("unexpected disposition %q", cd)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "BEGIN:VCALENDAR") || !strings.Contains(body, "UID:evt-1") {
		t.Fatalf("unexpected calendar body:\n%s", body)
	}
}

func TestEventCalendarLinks(t *testing.T) {
	h := newTestHandler(readyStatus)
	rec := doRequest(t, h, http.MethodGet, "/events/evt-1/calendar?links=1")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]string
	decodeBody(t, rec, &body)
	if !strings.HasPrefix(body["google"], "https://calendar.google.com/") {
		t.Fatalf("unexpected google link %q", body["google"])
	}
	if !strings.HasPrefix(body["outlook"], "https://outlook.live.com/") {
		t.Fatalf("unexpected outlook link %q", body["outlook"])
	}
}

func TestEventCalendarCompletedConflict(t *testing.T) {
	h := newTestHandler(readyStatus)
	if rec := doRequest(t, h, http.MethodGet, "/events/evt-done/calendar"); rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestEventsCalendarServesUpcoming(t *testing.T) {
	h := newTestHandler(readyStatus)
	rec := doRequest(t, h, http.MethodGet, "/events/calendar?view=season")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, "UID:evt-1") {
		t.Fatalf("missing upcoming event:\n%s", body)
	}
	if strings.Contains(body, "UID:evt-done") {
		t.Fatalf("completed event must not be exported:\n%s", body)
	}
}

func TestEventsCalendarEmptyView(t *testing.T) {
	h := newTestHandler(readyStatus)
	if rec := doRequest(t, h, http.MethodGet, "/events/calendar?view=week&weekOffset=40"); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func newAdminRouter(t *testing.T, token string) (http.Handler, *store.MemoryStore) {
	t.Helper()
	catalog := testutil.MichiganCatalog()
	st := store.NewMemoryStore()

	provider := &teststubs.StubScheduleProvider{
		BySport: map[string][]events.Event{
			"football": {testutil.SampleEvent("fb-1", testNow.Add(24 * time.Hour))},
		},
	}

	ref := refresher.New(refresher.Options{
		Catalog:  catalog,
		Schedule: provider,
		Store:    st,
		Now:      func() time.Time { return testNow },
	})

	filter := window.New(time.UTC, false)
	filter.Now = func() time.Time { return testNow }
	svc := schedule.NewService(st, filter, catalog, nil, metrics.NewRecorder())
	handler := handlers.NewHandler(svc, calendar.NewBuilder(catalog), nil, ref.Status)
	admin := handlers.NewAdminHandler(ref, token, nil)
	return router.NewRouter(handler, admin), st
}

func TestAdminRefreshRequiresToken(t *testing.T) {
	h, _ := newAdminRouter(t, "s3cret")
	if rec := doRequest(t, h, http.MethodPost, "/admin/refresh"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAdminRefreshRejectsGet(t *testing.T) {
	h, _ := newAdminRouter(t, "s3cret")
	if rec := doRequest(t, h, http.MethodGet, "/admin/refresh"); rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestAdminRefreshRunsCycle(t *testing.T) {
	h, st := newAdminRouter(t, "s3cret")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/refresh", nil)
	req.Header.Set("Authorization", "Bearer s3cret")
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if evs := st.Events(); len(evs) != 1 || evs[0].ID != "fb-1" {
		t.Fatalf("expected refreshed store, got %+v", evs)
	}

	var body map[string]any
	decodeBody(t, rec, &body)
	if body["status"] != "ok" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestRouterOmitsAdminWhenNotConfigured(t *testing.T) {
	h := newTestHandler(readyStatus)
	if rec := doRequest(t, h, http.MethodPost, "/admin/refresh"); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
