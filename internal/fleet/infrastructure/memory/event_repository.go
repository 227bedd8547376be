package memory

import (
	"context"
	"sync"

	fleet "maintainiq/internal/fleet/domain"
)

// EventRepository is an in-memory downtime event store used by tests
// and demo seeding.
type EventRepository struct {
	mu     sync.RWMutex
	events map[string][]fleet.DowntimeEvent
	assets map[string]int
}

// NewEventRepository constructs an empty repository.
func NewEventRepository() *EventRepository {
	return &EventRepository{
		events: make(map[string][]fleet.DowntimeEvent),
		assets: make(map[string]int),
	}
}

// Seed replaces the stored events and asset count for a company.
func (r *EventRepository) Seed(companyID string, events []fleet.DowntimeEvent, assetCount int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := make([]fleet.DowntimeEvent, len(events))
	copy(copied, events)
	r.events[companyID] = copied
	r.assets[companyID] = assetCount
}

// ListByCompany returns a copy of the company's events.
func (r *EventRepository) ListByCompany(ctx context.Context, companyID string) ([]fleet.DowntimeEvent, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored := r.events[companyID]
	copied := make([]fleet.DowntimeEvent, len(stored))
	copy(copied, stored)
	return copied, nil
}

// CountAssets returns the seeded asset count.
func (r *EventRepository) CountAssets(ctx context.Context, companyID string) (int, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.assets[companyID], nil
}
