package postgres

import (
	"context"
	"database/sql"
	"errors"

	fleet "maintainiq/internal/fleet/domain"
)

// EventRepository reads downtime events and asset counts for a company.
// This service never writes to these tables; the downtime log and asset
// registry own them.
type EventRepository struct {
	db *sql.DB
}

// NewEventRepository constructs a repository.
func NewEventRepository(db *sql.DB) *EventRepository {
	if db == nil {
		return nil
	}
	return &EventRepository{db: db}
}

// ListByCompany returns every downtime event for a company, newest date
// first. Hours and cost come back as stored text so malformed values
// survive the scan and degrade at the aggregation boundary instead.
func (r *EventRepository) ListByCompany(ctx context.Context, companyID string) ([]fleet.DowntimeEvent, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("event repo: nil db")
	}
	if companyID == "" {
		return nil, errors.New("event repo: empty company id")
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT id, company_id, asset, event_date,
	COALESCE(start_time, ''), COALESCE(end_time, ''),
	COALESCE(hours::text, ''), COALESCE(cost::text, ''),
	COALESCE(category, ''), COALESCE(description, ''), COALESCE(reported_by, '')
FROM downtime_events
WHERE company_id = $1
ORDER BY event_date DESC, id DESC`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []fleet.DowntimeEvent
	for rows.Next() {
		var event fleet.DowntimeEvent
		if err := rows.Scan(
			&event.ID, &event.CompanyID, &event.Asset, &event.Date,
			&event.StartTime, &event.EndTime,
			&event.Hours, &event.Cost,
			&event.Category, &event.Description, &event.ReportedBy,
		); err != nil {
			return nil, err
		}
		event.Date = fleet.Day(event.Date)
		events = append(events, event)
	}
	return events, rows.Err()
}

// CountAssets returns the number of registered assets for a company.
func (r *EventRepository) CountAssets(ctx context.Context, companyID string) (int, error) {
	if r == nil || r.db == nil {
		return 0, errors.New("event repo: nil db")
	}
	if companyID == "" {
		return 0, errors.New("event repo: empty company id")
	}

	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM assets WHERE company_id = $1`, companyID,
	).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
