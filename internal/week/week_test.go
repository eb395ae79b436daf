package week

import (
	"testing"
	"time"
)

func date(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

// TestBoundsSameWeek verifies that every day of a calendar week maps to the
// same Sunday-Saturday bounds.
func TestBoundsSameWeek(t *testing.T) {
	inputs := []string{
		"2026-01-25T12:00:00Z", // Sunday
		"2026-01-26T00:30:00Z",
		"2026-01-28T12:00:00Z", // midweek
		"2026-01-31T23:00:00Z", // Saturday
	}
	for _, in := range inputs {
		start, end := Bounds(date(in))
		if got := start.Format("2006-01-02"); got != "2026-01-25" {
			t.Errorf("Bounds(%s) start = %s, want 2026-01-25", in, got)
		}
		if got := end.Format("2006-01-02"); got != "2026-01-31" {
			t.Errorf("Bounds(%s) end = %s, want 2026-01-31", in, got)
		}
	}
}

// TestBoundsYearBoundary verifies that a week spanning two calendar years is
// handled. Dec 31, 2025 is a Wednesday.
func TestBoundsYearBoundary(t *testing.T) {
	start, end := Bounds(date("2025-12-31T12:00:00Z"))
	if got := start.Format("2006-01-02"); got != "2025-12-28" {
		t.Errorf("start = %s, want 2025-12-28", got)
	}
	if got := end.Format("2006-01-02"); got != "2026-01-03" {
		t.Errorf("end = %s, want 2026-01-03", got)
	}
}

// TestBoundsClockEdges verifies that start sits at midnight and end at the
// last millisecond of Saturday.
func TestBoundsClockEdges(t *testing.T) {
	start, end := Bounds(date("2026-01-28T12:00:00Z"))
	if start.Weekday() != time.Sunday {
		t.Errorf("start weekday = %s, want Sunday", start.Weekday())
	}
	if start.Hour() != 0 || start.Minute() != 0 || start.Second() != 0 || start.Nanosecond() != 0 {
		t.Errorf("start = %v, want midnight", start)
	}
	if end.Weekday() != time.Saturday {
		t.Errorf("end weekday = %s, want Saturday", end.Weekday())
	}
	if end.Hour() != 23 || end.Minute() != 59 || end.Second() != 59 {
		t.Errorf("end = %v, want 23:59:59", end)
	}
}

// TestParseISOWeek verifies Monday resolution for known ISO weeks, including
// week 1 of a year that begins mid-week.
func TestParseISOWeek(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2026-W04", "2026-01-19"},
		{"2026-W01", "2025-12-29"},
		{"2026-W52", "2026-12-21"},
	}
	for _, c := range cases {
		got, err := ParseISOWeek(c.in)
		if err != nil {
			t.Errorf("ParseISOWeek(%q) error: %v", c.in, err)
			continue
		}
		if d := got.Format("2006-01-02"); d != c.want {
			t.Errorf("ParseISOWeek(%q) = %s, want %s", c.in, d, c.want)
		}
		if got.Weekday() != time.Monday {
			t.Errorf("ParseISOWeek(%q) weekday = %s, want Monday", c.in, got.Weekday())
		}
	}
}

// TestParseISOWeekInvalid verifies that malformed tokens are rejected.
func TestParseISOWeekInvalid(t *testing.T) {
	for _, in := range []string{"bad", "2026-04", "", "2026-W00", "2026-W54", "2026-Wxx"} {
		if _, err := ParseISOWeek(in); err == nil {
			t.Errorf("ParseISOWeek(%q) succeeded, want error", in)
		}
	}
}
