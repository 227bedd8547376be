package interfaces

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"maintainiq/internal/auth"
	fleet "maintainiq/internal/fleet/domain"
	"maintainiq/internal/fleet/infrastructure/memory"
	"maintainiq/internal/reporting/application"
)

type fixedClock struct {
	at time.Time
}

func (c fixedClock) Now() time.Time { return c.at }

func testHandler(t *testing.T, events []fleet.DowntimeEvent) *ReportHandler {
	t.Helper()
	store := memory.NewEventRepository()
	store.Seed("company-a", events, 24)
	service, err := application.NewReportService(store, testConfig(), fixedClock{at: time.Date(2026, 2, 26, 12, 0, 0, 0, time.UTC)})
	if err != nil {
		t.Fatalf("NewReportService: %v", err)
	}
	handler, err := NewReportHandler(service, nil, fixedClock{at: time.Date(2026, 2, 26, 12, 0, 0, 0, time.UTC)})
	if err != nil {
		t.Fatalf("NewReportHandler: %v", err)
	}
	return handler
}

func identified(r *http.Request) *http.Request {
	ctx := auth.WithIdentity(r.Context(), "company-a", auth.RoleOperator, "user-1")
	return r.WithContext(ctx)
}

func TestReportSummary(t *testing.T) {
	events := []fleet.DowntimeEvent{
		{ID: 1, Asset: "Drill Rig DR750", Date: time.Date(2026, 2, 26, 0, 0, 0, 0, time.UTC), Hours: "3.5", Cost: "175.00", Category: fleet.CategoryMechanical},
		{ID: 2, Asset: "Excavator CAT 390", Date: time.Date(2026, 2, 25, 0, 0, 0, 0, time.UTC), Hours: "1", Cost: "45.00", Category: fleet.CategoryElectrical},
	}
	handler := testHandler(t, events)

	req := identified(httptest.NewRequest(http.MethodGet, "/api/v1/reports/summary?start=2026-02-20&end=2026-02-26", nil))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", resp.Code, resp.Body.String())
	}

	var body struct {
		EventCount int     `json:"event_count"`
		TotalHours float64 `json:"total_hours"`
		TotalCost  float64 `json:"total_cost"`
		AssetCount int     `json:"asset_count"`
		ChartScale float64 `json:"chart_scale"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.EventCount != 2 || body.TotalHours != 4.5 || body.TotalCost != 220 {
		t.Fatalf("summary totals = %+v", body)
	}
	if body.AssetCount != 24 {
		t.Fatalf("asset_count = %d, want 24", body.AssetCount)
	}
	if body.ChartScale != 3.5 {
		t.Fatalf("chart_scale = %v, want 3.5", body.ChartScale)
	}
}

func TestReportSummary_PresetRange(t *testing.T) {
	handler := testHandler(t, nil)

	req := identified(httptest.NewRequest(http.MethodGet, "/api/v1/reports/summary?preset=7d", nil))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d", resp.Code)
	}
	var body struct {
		Start string `json:"start"`
		End   string `json:"end"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Start != "2026-02-20" || body.End != "2026-02-26" {
		t.Fatalf("preset range = %s..%s", body.Start, body.End)
	}
}

func TestReportSummary_BadRange(t *testing.T) {
	handler := testHandler(t, nil)
	req := identified(httptest.NewRequest(http.MethodGet, "/api/v1/reports/summary?start=26/02/2026&end=2026-02-28", nil))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.Code)
	}
}

func TestReportExportPDFDownload(t *testing.T) {
	events := []fleet.DowntimeEvent{
		{ID: 1, Asset: "Drill Rig DR750", Date: time.Date(2026, 2, 26, 0, 0, 0, 0, time.UTC), Hours: "3.5", Cost: "175.00", Category: fleet.CategoryMechanical},
	}
	handler := testHandler(t, events)

	req := identified(httptest.NewRequest(http.MethodGet, "/api/v1/reports/export.pdf?start=2026-02-20&end=2026-02-26", nil))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("content type = %q", ct)
	}
	disposition := resp.Header().Get("Content-Disposition")
	if !strings.Contains(disposition, "MaintainIQ-Report-2026-02-20-to-2026-02-26.pdf") {
		t.Fatalf("disposition = %q", disposition)
	}
	if !strings.HasPrefix(resp.Body.String(), "%PDF") {
		t.Fatal("body is not a PDF")
	}
}

func TestReportExportXLSXDownload(t *testing.T) {
	handler := testHandler(t, nil)

	req := identified(httptest.NewRequest(http.MethodGet, "/api/v1/reports/export.xlsx?start=2026-02-20&end=2026-02-26", nil))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d", resp.Code)
	}
	disposition := resp.Header().Get("Content-Disposition")
	if !strings.Contains(disposition, "MaintainIQ-Report-2026-02-20-to-2026-02-26.xlsx") {
		t.Fatalf("disposition = %q", disposition)
	}
	if resp.Body.Len() == 0 {
		t.Fatal("empty workbook body")
	}
}

func TestReportRoutes(t *testing.T) {
	handler := testHandler(t, nil)

	req := identified(httptest.NewRequest(http.MethodPost, "/api/v1/reports/summary", nil))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusMethodNotAllowed {
		t.Fatalf("POST status = %d, want 405", resp.Code)
	}

	req = identified(httptest.NewRequest(http.MethodGet, "/api/v1/reports/export.csv", nil))
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("unknown format status = %d, want 404", resp.Code)
	}
}
