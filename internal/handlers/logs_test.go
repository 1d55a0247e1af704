package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"field_station/internal/models"
	"field_station/internal/service"
)

func TestLogsHandler_ListAndValidation(t *testing.T) {
	auth := &mockAuth{parseID: 99}
	now := time.Now().UTC().Truncate(time.Second)
	events := []models.StationEvent{
		{EventID: "e1", OccurredAt: now, Type: "STARTUP", Message: "collector started"},
		{EventID: "e2", OccurredAt: now.Add(1 * time.Second), Type: "RELAY_CHANGE", Message: "relay switched on"},
	}
	logs := &mockEventLog{resp: events}
	s := &service.Service{
		Authorization: auth,
		EventLog:      logs,
	}
	r := newTestRouter(s)

	// Missing/invalid 'from' → 400
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/logs/?from=notatime", nil)
	for k, vv := range authHeader("valid") {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 invalid 'from', got %d", w.Code)
	}

	// Valid range and type (lowercase type should be normalized to upper in service call)
	w = httptest.NewRecorder()
	q := "/api/v1/logs/?from=" + now.Format(time.RFC3339) + "&to=" + now.Add(2*time.Second).Format(time.RFC3339) + "&type=relay_change&limit=25"
	req = httptest.NewRequest(http.MethodGet, q, nil)
	for k, vv := range authHeader("valid") {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("logs status=%d, body=%s", w.Code, w.Body.String())
	}
	var out struct {
		Count  int                   `json:"count"`
		Events []models.StationEvent `json:"events"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if out.Count != 2 || len(out.Events) != 2 {
		t.Fatalf("unexpected response: %+v", out)
	}
	if logs.lastType != "RELAY_CHANGE" {
		t.Fatalf("expected lastType RELAY_CHANGE, got %q", logs.lastType)
	}
	if logs.lastLimit != 25 {
		t.Fatalf("expected lastLimit 25, got %d", logs.lastLimit)
	}
}

func TestLogsHandler_DateOnlyToIsEndOfDay(t *testing.T) {
	auth := &mockAuth{parseID: 99}
	logs := &mockEventLog{}
	s := &service.Service{Authorization: auth, EventLog: logs}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/logs/?from=2026-08-01&to=2026-08-02", nil)
	req.Header.Set("Authorization", "Bearer valid")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("logs status=%d, body=%s", w.Code, w.Body.String())
	}

	wantFrom := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	if !logs.lastFrom.Equal(wantFrom) {
		t.Fatalf("from: got %v, want %v", logs.lastFrom, wantFrom)
	}
	wantTo := time.Date(2026, 8, 2, 23, 59, 59, 999999999, time.UTC)
	if !logs.lastTo.Equal(wantTo) {
		t.Fatalf("to: got %v, want end of day %v", logs.lastTo, wantTo)
	}
}

func TestLogsHandler_RangeAndLimitValidation(t *testing.T) {
	auth := &mockAuth{parseID: 99}
	logs := &mockEventLog{}
	s := &service.Service{Authorization: auth, EventLog: logs}
	r := newTestRouter(s)

	// from after to → 400
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/logs/?from=2026-08-02&to=2026-08-01", nil)
	req.Header.Set("Authorization", "Bearer valid")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for inverted range, got %d", w.Code)
	}

	// non-numeric limit → 400
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/logs/?limit=ten", nil)
	req.Header.Set("Authorization", "Bearer valid")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad limit, got %d", w.Code)
	}

	// negative limit → 400
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/logs/?limit=-5", nil)
	req.Header.Set("Authorization", "Bearer valid")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative limit, got %d", w.Code)
	}
}
