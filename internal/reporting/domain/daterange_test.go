package reporting

import (
	"testing"
	"time"
)

func TestParseDateRange(t *testing.T) {
	r, err := ParseDateRange("2026-02-20", "2026-02-26")
	if err != nil {
		t.Fatalf("ParseDateRange: %v", err)
	}
	if !r.Contains(date("2026-02-20")) || !r.Contains(date("2026-02-26")) {
		t.Fatalf("bounds must be inclusive: %+v", r)
	}
	if r.Contains(date("2026-02-19")) || r.Contains(date("2026-02-27")) {
		t.Fatalf("dates outside the range must be excluded: %+v", r)
	}

	if _, err := ParseDateRange("2026-02-26", "2026-02-20"); err == nil {
		t.Fatal("expected error for end before start")
	}
	if _, err := ParseDateRange("26/02/2026", "2026-02-27"); err == nil {
		t.Fatal("expected error for non-ISO start")
	}
}

func TestLastNDays(t *testing.T) {
	now := time.Date(2026, 2, 26, 15, 4, 0, 0, time.UTC)
	r := LastNDays(now, 7)
	if !r.End.Equal(date("2026-02-26")) {
		t.Fatalf("end = %v, want today", r.End)
	}
	if !r.Start.Equal(date("2026-02-20")) {
		t.Fatalf("start = %v, want 2026-02-20", r.Start)
	}
	if days := int(r.End.Sub(r.Start).Hours()/24) + 1; days != 7 {
		t.Fatalf("range spans %d days, want 7", days)
	}
}

func TestThisMonth(t *testing.T) {
	now := time.Date(2026, 2, 26, 15, 4, 0, 0, time.UTC)
	r := ThisMonth(now)
	if !r.Start.Equal(date("2026-02-01")) || !r.End.Equal(date("2026-02-26")) {
		t.Fatalf("ThisMonth = %+v", r)
	}
}

func TestFormatHours(t *testing.T) {
	if got := FormatHours(3.5); got != "3.5h" {
		t.Fatalf("FormatHours = %q", got)
	}
	if got := FormatHours(0); got != "0.0h" {
		t.Fatalf("FormatHours zero = %q", got)
	}
}

func TestFormatCurrency(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{220, "$220.00"},
		{1234.5, "$1,234.50"},
		{1234567.891, "$1,234,567.89"},
		{0, "$0.00"},
		{-45.25, "-$45.25"},
	}
	for _, c := range cases {
		if got := FormatCurrency("$", c.amount); got != c.want {
			t.Errorf("FormatCurrency(%v) = %q, want %q", c.amount, got, c.want)
		}
	}
}
