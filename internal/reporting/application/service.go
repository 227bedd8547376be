package application

import (
	"context"
	"errors"
	"time"

	fleet "maintainiq/internal/fleet/domain"
	"maintainiq/internal/observability/metrics"
	reporting "maintainiq/internal/reporting/domain"
)

// EventStore is the record-store boundary this service reads from.
// The reporting core never writes through it.
type EventStore interface {
	ListByCompany(ctx context.Context, companyID string) ([]fleet.DowntimeEvent, error)
	CountAssets(ctx context.Context, companyID string) (int, error)
}

// Clock supplies the generation timestamp.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production clock.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time { return time.Now().UTC() }

// ReportService builds report snapshots. One fetch and one aggregation
// back every consumer of a report request, so the on-screen summary
// and both export formats cannot drift apart numerically.
type ReportService struct {
	store EventStore
	cfg   Config
	clock Clock
}

// NewReportService constructs a service.
func NewReportService(store EventStore, cfg Config, clock Clock) (*ReportService, error) {
	if store == nil {
		return nil, errors.New("report service: nil store")
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &ReportService{store: store, cfg: cfg, clock: clock}, nil
}

// Config exposes the branding configuration to interface adapters.
func (s *ReportService) Config() Config {
	return s.cfg
}

// Snapshot fetches the company's events once and aggregates them for
// the given range.
func (s *ReportService) Snapshot(ctx context.Context, companyID string, r reporting.DateRange) (reporting.Snapshot, error) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveReportBuild(result, time.Since(start))
	}()

	if companyID == "" {
		result = metrics.ResultError
		return reporting.Snapshot{}, errors.New("report service: company_id required")
	}

	events, err := s.fetchEvents(ctx, companyID)
	if err != nil {
		result = metrics.ResultError
		return reporting.Snapshot{}, err
	}
	return reporting.BuildSnapshot(events, r, s.clock.Now()), nil
}

// AssetCount returns the company's registered asset count for the
// dashboard stat block.
func (s *ReportService) AssetCount(ctx context.Context, companyID string) (int, error) {
	if companyID == "" {
		return 0, errors.New("report service: company_id required")
	}
	return s.store.CountAssets(ctx, companyID)
}

func (s *ReportService) fetchEvents(ctx context.Context, companyID string) ([]fleet.DowntimeEvent, error) {
	start := time.Now()
	result := metrics.ResultSuccess
	events, err := s.store.ListByCompany(ctx, companyID)
	if err != nil {
		result = metrics.ResultError
	}
	metrics.ObserveRecordFetch(result, time.Since(start))
	return events, err
}
