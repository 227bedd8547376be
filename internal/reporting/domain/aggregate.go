package reporting

import (
	"sort"
	"time"

	fleet "maintainiq/internal/fleet/domain"
)

// CategoryTotal is summed downtime hours for one fault category.
type CategoryTotal struct {
	Category string  `json:"category"`
	Hours    float64 `json:"hours"`
}

// AssetTotal is summed downtime for one asset.
type AssetTotal struct {
	Asset  string  `json:"asset"`
	Hours  float64 `json:"hours"`
	Cost   float64 `json:"cost"`
	Events int     `json:"events"`
}

// TotalHours sums event hours. Malformed values count as zero.
func TotalHours(events []fleet.DowntimeEvent) float64 {
	var total float64
	for _, event := range events {
		total += fleet.Numeric(event.Hours)
	}
	return total
}

// TotalCost sums event cost with the same zero-coercion policy.
func TotalCost(events []fleet.DowntimeEvent) float64 {
	var total float64
	for _, event := range events {
		total += fleet.Numeric(event.Cost)
	}
	return total
}

// CategoryTotals groups hours by fault category, sorted by hours
// descending. Events with no category are excluded entirely rather
// than bucketed under a placeholder, so the category sum only equals
// TotalHours when every event is categorized.
func CategoryTotals(events []fleet.DowntimeEvent) []CategoryTotal {
	sums := make(map[string]float64)
	var order []string
	for _, event := range events {
		if event.Category == "" {
			continue
		}
		if _, seen := sums[event.Category]; !seen {
			order = append(order, event.Category)
		}
		sums[event.Category] += fleet.Numeric(event.Hours)
	}

	totals := make([]CategoryTotal, 0, len(order))
	for _, category := range order {
		totals = append(totals, CategoryTotal{Category: category, Hours: sums[category]})
	}
	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Hours > totals[j].Hours
	})
	return totals
}

// AssetTotals groups hours, cost and event counts by asset, sorted by
// hours descending. The full sequence is returned; callers that want
// the on-screen top slice take TopAssets. Exports must never truncate.
func AssetTotals(events []fleet.DowntimeEvent) []AssetTotal {
	index := make(map[string]int)
	var totals []AssetTotal
	for _, event := range events {
		if event.Asset == "" {
			continue
		}
		i, seen := index[event.Asset]
		if !seen {
			i = len(totals)
			index[event.Asset] = i
			totals = append(totals, AssetTotal{Asset: event.Asset})
		}
		totals[i].Hours += fleet.Numeric(event.Hours)
		totals[i].Cost += fleet.Numeric(event.Cost)
		totals[i].Events++
	}
	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Hours > totals[j].Hours
	})
	return totals
}

// TopAssets returns a prefix of an already-sorted asset sequence for
// summary display. It is a view over the same slice, not a recompute.
func TopAssets(totals []AssetTotal, n int) []AssetTotal {
	if n < 0 {
		n = 0
	}
	if n > len(totals) {
		n = len(totals)
	}
	return totals[:n]
}

// FilterByDateRange returns the events whose date falls inside the
// range, inclusive on both bounds. Order is preserved.
func FilterByDateRange(events []fleet.DowntimeEvent, r DateRange) []fleet.DowntimeEvent {
	filtered := make([]fleet.DowntimeEvent, 0, len(events))
	for _, event := range events {
		if r.Contains(event.Date) {
			filtered = append(filtered, event)
		}
	}
	return filtered
}

// Snapshot is the derived analytics for one date range, computed once
// per report generation and shared by the on-screen summary and both
// exporters so the three stay numerically consistent. Never persisted.
type Snapshot struct {
	Range       DateRange
	GeneratedAt time.Time

	Events     []fleet.DowntimeEvent
	EventCount int
	TotalHours float64
	TotalCost  float64
	Categories []CategoryTotal
	Assets     []AssetTotal
}

// BuildSnapshot filters events to the range and aggregates them.
func BuildSnapshot(events []fleet.DowntimeEvent, r DateRange, now time.Time) Snapshot {
	filtered := FilterByDateRange(events, r)
	return Snapshot{
		Range:       r,
		GeneratedAt: now.UTC(),
		Events:      filtered,
		EventCount:  len(filtered),
		TotalHours:  TotalHours(filtered),
		TotalCost:   TotalCost(filtered),
		Categories:  CategoryTotals(filtered),
		Assets:      AssetTotals(filtered),
	}
}
