package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/liuhaochen/site-analytics/internal/entity"
	"github.com/liuhaochen/site-analytics/internal/repository"
	"github.com/liuhaochen/site-analytics/internal/service/tracker"
)

func newTestRouter(t *testing.T) (*gin.Engine, tracker.TrackerService, repository.EventStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := repository.NewFileEventStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	svc := tracker.New(store, time.UTC, slog.New(slog.NewTextHandler(io.Discard, nil)))
	h := NewReportHandler(svc, store)

	r := gin.New()
	r.GET("/api/report/:date", func(c *gin.Context) {
		if c.Param("date") == "latest" {
			h.Latest(c)
			return
		}
		h.ByDate(c)
	})
	r.GET("/api/dates", h.Dates)
	r.GET("/api/health", h.Health)
	return r, svc, store
}

func get(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func ptr[T any](v T) *T { return &v }

func TestLatestReportFromLiveBuffer(t *testing.T) {
	r, svc, _ := newTestRouter(t)

	ts := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC).UnixMilli()
	events := []entity.TrackEvent{
		{Type: "pageview", Timestamp: ptr(ts), VisitorID: "visitor-1", SessionID: "s1", PagePath: "/home", IsNewVisitor: true},
		{Type: "pageview", Timestamp: ptr(ts), VisitorID: "visitor-2", SessionID: "s2", PagePath: "/about"},
	}
	for _, e := range events {
		if err := svc.Track(context.Background(), e); err != nil {
			t.Fatal(err)
		}
	}

	w := get(t, r, "/api/report/latest")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var rep entity.DailyReport
	if err := json.Unmarshal(w.Body.Bytes(), &rep); err != nil {
		t.Fatal(err)
	}
	if rep.Summary.PV != 2 || rep.Summary.UV != 2 {
		t.Errorf("summary = %+v, want pv=2 uv=2", rep.Summary)
	}
	if rep.Date != svc.Today() {
		t.Errorf("date = %q, want %q", rep.Date, svc.Today())
	}
	if len(rep.HourlyData) != 24 {
		t.Errorf("hourly entries = %d", len(rep.HourlyData))
	}
}

func TestHistoricalReport(t *testing.T) {
	r, _, store := newTestRouter(t)

	batch := []entity.EventRecord{
		{Type: entity.EventTypePageView, VisitorHash: "uA", PagePath: "/home", Referrer: "direct", Hour: 9},
		{Type: entity.EventTypePageView, VisitorHash: "uA", PagePath: "/about", Referrer: "direct", Hour: 10},
	}
	if err := store.SaveBatch(context.Background(), "2026-01-10", batch); err != nil {
		t.Fatal(err)
	}

	w := get(t, r, "/api/report/2026-01-10")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var rep entity.DailyReport
	if err := json.Unmarshal(w.Body.Bytes(), &rep); err != nil {
		t.Fatal(err)
	}
	if rep.Date != "2026-01-10" || rep.Summary.PV != 2 || rep.Summary.UV != 1 {
		t.Errorf("report = %q %+v", rep.Date, rep.Summary)
	}
}

func TestHistoricalReportNotFound(t *testing.T) {
	r, _, _ := newTestRouter(t)

	for _, path := range []string{"/api/report/1999-12-31", "/api/report/not-a-date"} {
		w := get(t, r, path)
		if w.Code != http.StatusNotFound {
			t.Errorf("%s: status = %d, want 404", path, w.Code)
		}

		var resp ErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatal(err)
		}
		if resp.Error == "" {
			t.Errorf("%s: expected error message", path)
		}
	}
}

func TestDatesListing(t *testing.T) {
	r, _, store := newTestRouter(t)
	ctx := context.Background()

	store.SaveBatch(ctx, "2026-01-10", nil)
	store.SaveBatch(ctx, "2026-01-12", nil)

	w := get(t, r, "/api/dates")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var dates []string
	if err := json.Unmarshal(w.Body.Bytes(), &dates); err != nil {
		t.Fatal(err)
	}
	if len(dates) != 2 || dates[0] != "2026-01-12" || dates[1] != "2026-01-10" {
		t.Errorf("dates = %v", dates)
	}
}

func TestDatesEmpty(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := get(t, r, "/api/dates")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if body := w.Body.String(); body != "[]" {
		t.Errorf("body = %q, want empty array", body)
	}
}

func TestHealth(t *testing.T) {
	r, svc, _ := newTestRouter(t)

	ts := time.Now().UnixMilli()
	svc.Track(context.Background(), entity.TrackEvent{
		Type: "pageview", Timestamp: ptr(ts), VisitorID: "v", SessionID: "s", PagePath: "/",
	})

	w := get(t, r, "/api/health")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != "ok" || resp.Records != 1 || resp.Today != svc.Today() {
		t.Errorf("health = %+v", resp)
	}
	if _, err := time.Parse(time.RFC3339, resp.Timestamp); err != nil {
		t.Errorf("timestamp %q not RFC3339: %v", resp.Timestamp, err)
	}
}
