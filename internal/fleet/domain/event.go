package fleet

import (
	"strconv"
	"strings"
	"time"
)

// DowntimeEvent is a logged interval during which an asset was not
// operational. Hours and Cost carry the raw stored values; the record
// store derives them at entry time and this service never recomputes
// them from the start/end times.
type DowntimeEvent struct {
	ID          int64
	CompanyID   string
	Asset       string
	Date        time.Time
	StartTime   string
	EndTime     string
	Hours       string
	Cost        string
	Category    string
	Description string
	ReportedBy  string
}

// Fault categories offered by the downtime log form. Free text is
// still accepted; these are the canonical values.
const (
	CategoryMechanical    = "Mechanical"
	CategoryElectrical    = "Electrical"
	CategoryOperatorError = "Operator Error"
	CategoryScheduled     = "Scheduled"
	CategoryEnvironmental = "Environmental"
	CategoryOther         = "Other"
)

// Numeric coerces a stored decimal field to a float64. Absent or
// unparseable values count as zero; aggregation never fails on a
// malformed record.
func Numeric(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return value
}

// Day normalizes a timestamp to a UTC calendar date.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
