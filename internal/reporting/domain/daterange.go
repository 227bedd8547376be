package reporting

import (
	"errors"
	"time"

	fleet "maintainiq/internal/fleet/domain"
)

// DateRange is an inclusive calendar-date window. Start and End are
// UTC midnights.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange normalizes both bounds to calendar dates.
func NewDateRange(start, end time.Time) (DateRange, error) {
	r := DateRange{Start: fleet.Day(start), End: fleet.Day(end)}
	if r.End.Before(r.Start) {
		return DateRange{}, errors.New("reporting: date range end before start")
	}
	return r, nil
}

// ParseDateRange parses YYYY-MM-DD bounds.
func ParseDateRange(start, end string) (DateRange, error) {
	from, err := time.Parse("2006-01-02", start)
	if err != nil {
		return DateRange{}, errors.New("reporting: start must be YYYY-MM-DD")
	}
	to, err := time.Parse("2006-01-02", end)
	if err != nil {
		return DateRange{}, errors.New("reporting: end must be YYYY-MM-DD")
	}
	return NewDateRange(from, to)
}

// Contains reports whether a date falls inside the range, inclusive on
// both bounds.
func (r DateRange) Contains(date time.Time) bool {
	day := fleet.Day(date)
	return !day.Before(r.Start) && !day.After(r.End)
}

// LastNDays returns the range covering today and the n-1 preceding
// days. Backs the "last 7 days" and "last 30 days" presets; presets
// only construct a range, the pipeline downstream is identical.
func LastNDays(now time.Time, n int) DateRange {
	if n < 1 {
		n = 1
	}
	end := fleet.Day(now)
	return DateRange{Start: end.AddDate(0, 0, -(n - 1)), End: end}
}

// ThisMonth returns the range from the first of the current month
// through today.
func ThisMonth(now time.Time) DateRange {
	end := fleet.Day(now)
	return DateRange{
		Start: time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC),
		End:   end,
	}
}
