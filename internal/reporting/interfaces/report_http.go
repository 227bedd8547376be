package interfaces

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"maintainiq/internal/audit"
	"maintainiq/internal/auth"
	"maintainiq/internal/observability/metrics"
	"maintainiq/internal/reporting/application"
	reporting "maintainiq/internal/reporting/domain"
)

// ReportHandler serves the report summary and both export downloads.
type ReportHandler struct {
	service     *application.ReportService
	auditLogger audit.Logger
	clock       application.Clock

	// Exports write one artifact at a time; a second trigger waits for
	// the first rather than interleaving.
	exportMu sync.Mutex
}

// NewReportHandler constructs a handler.
func NewReportHandler(service *application.ReportService, auditLogger audit.Logger, clock application.Clock) (*ReportHandler, error) {
	if service == nil {
		return nil, errors.New("report handler: nil service")
	}
	if clock == nil {
		clock = application.SystemClock{}
	}
	return &ReportHandler{service: service, auditLogger: auditLogger, clock: clock}, nil
}

// ServeHTTP handles report routes under /api/v1/reports.
func (h *ReportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	switch r.URL.Path {
	case "/api/v1/reports/summary":
		h.handleSummary(w, r)
	case "/api/v1/reports/export.pdf":
		h.handleExport(w, r, "pdf")
	case "/api/v1/reports/export.xlsx":
		h.handleExport(w, r, "xlsx")
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *ReportHandler) handleSummary(w http.ResponseWriter, r *http.Request) {
	companyID := auth.CompanyIDFromContext(r.Context())
	dateRange, err := h.parseRange(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	snapshot, err := h.service.Snapshot(r.Context(), companyID, dateRange)
	if err != nil {
		http.Error(w, "could not load downtime data", http.StatusBadGateway)
		return
	}
	assetCount, err := h.service.AssetCount(r.Context(), companyID)
	if err != nil {
		http.Error(w, "could not load downtime data", http.StatusBadGateway)
		return
	}

	cfg := h.service.Config()
	resp := struct {
		Start       string                    `json:"start"`
		End         string                    `json:"end"`
		GeneratedAt time.Time                 `json:"generated_at"`
		EventCount  int                       `json:"event_count"`
		TotalHours  float64                   `json:"total_hours"`
		TotalCost   float64                   `json:"total_cost"`
		AssetCount  int                       `json:"asset_count"`
		Categories  []reporting.CategoryTotal `json:"categories"`
		TopAssets   []reporting.AssetTotal    `json:"top_assets"`
		ChartScale  float64                   `json:"chart_scale"`
	}{
		Start:       snapshot.Range.Start.Format("2006-01-02"),
		End:         snapshot.Range.End.Format("2006-01-02"),
		GeneratedAt: snapshot.GeneratedAt,
		EventCount:  snapshot.EventCount,
		TotalHours:  snapshot.TotalHours,
		TotalCost:   snapshot.TotalCost,
		AssetCount:  assetCount,
		Categories:  snapshot.Categories,
		TopAssets:   reporting.TopAssets(snapshot.Assets, cfg.TopAssets),
		ChartScale:  reporting.ChartScale(snapshot.Categories, snapshot.Assets),
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (h *ReportHandler) handleExport(w http.ResponseWriter, r *http.Request, format string) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveReportExport(format, result, time.Since(start))
	}()

	companyID := auth.CompanyIDFromContext(r.Context())
	dateRange, err := h.parseRange(r)
	if err != nil {
		result = metrics.ResultError
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.exportMu.Lock()
	defer h.exportMu.Unlock()

	snapshot, err := h.service.Snapshot(r.Context(), companyID, dateRange)
	if err != nil {
		result = metrics.ResultError
		http.Error(w, "could not load downtime data", http.StatusBadGateway)
		return
	}

	cfg := h.service.Config()
	var data []byte
	var contentType string
	switch format {
	case "pdf":
		data, err = BuildReportPDF(cfg, snapshot)
		contentType = "application/pdf"
	case "xlsx":
		data, err = BuildReportWorkbook(cfg, snapshot)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		err = errors.New("report handler: unknown format")
	}
	if err != nil {
		result = metrics.ResultError
		http.Error(w, "export "+format+" error", http.StatusInternalServerError)
		return
	}

	filename := ExportFilename(cfg.Product, dateRange, format)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)

	h.logAudit(r, filename, format, snapshot)
}

// parseRange reads start/end query params or a preset shortcut. The
// presets only pick the bounds; filtering and aggregation downstream
// are identical.
func (h *ReportHandler) parseRange(r *http.Request) (reporting.DateRange, error) {
	query := r.URL.Query()
	if preset := query.Get("preset"); preset != "" {
		now := h.clock.Now()
		switch preset {
		case "7d":
			return reporting.LastNDays(now, 7), nil
		case "30d":
			return reporting.LastNDays(now, 30), nil
		case "month":
			return reporting.ThisMonth(now), nil
		default:
			return reporting.DateRange{}, errors.New("report handler: unknown preset")
		}
	}
	start := query.Get("start")
	end := query.Get("end")
	if start == "" && end == "" {
		return reporting.LastNDays(h.clock.Now(), 30), nil
	}
	return reporting.ParseDateRange(start, end)
}

func (h *ReportHandler) logAudit(r *http.Request, filename, format string, snapshot reporting.Snapshot) {
	if h.auditLogger == nil {
		return
	}
	companyID := auth.CompanyIDFromContext(r.Context())
	if companyID == "" {
		return
	}
	payload, _ := json.Marshal(map[string]any{
		"format":      format,
		"start":       snapshot.Range.Start.Format("2006-01-02"),
		"end":         snapshot.Range.End.Format("2006-01-02"),
		"event_count": snapshot.EventCount,
	})
	_ = h.auditLogger.Log(r.Context(), audit.Entry{
		CompanyID:    companyID,
		Actor:        auth.SubjectFromContext(r.Context()),
		Role:         string(auth.RoleFromContext(r.Context())),
		Action:       "report.export",
		ResourceType: "report",
		ResourceID:   filename,
		Metadata:     payload,
		IP:           audit.ClientIP(r),
		UserAgent:    r.UserAgent(),
	})
}
