// Package week provides calendar-week and ISO-week date math for history
// queries. Calendar weeks run Sunday through Saturday.
package week

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var isoWeekRe = regexp.MustCompile(`^(\d{4})-W(\d{2})$`)

// Bounds returns the Sunday 00:00:00.000 through Saturday 23:59:59.999 span
// of the calendar week containing t, in UTC. All seven days of a week map to
// the same bounds, including weeks spanning a year boundary.
func Bounds(t time.Time) (start, end time.Time) {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	start = day.AddDate(0, 0, -int(day.Weekday()))
	end = start.AddDate(0, 0, 7).Add(-time.Millisecond)
	return start, end
}

// ParseISOWeek parses a YYYY-Www token and returns the Monday of that ISO
// week at 00:00:00 UTC. Any other shape, or a week outside 01-53, is an
// error.
func ParseISOWeek(s string) (time.Time, error) {
	m := isoWeekRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, fmt.Errorf("invalid ISO week %q", s)
	}
	year, _ := strconv.Atoi(m[1])
	wk, _ := strconv.Atoi(m[2])
	if wk < 1 || wk > 53 {
		return time.Time{}, fmt.Errorf("invalid ISO week number %d", wk)
	}

	// January 4th is always in ISO week 1.
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	isoWeekday := int(jan4.Weekday())
	if isoWeekday == 0 {
		isoWeekday = 7
	}
	week1Monday := jan4.AddDate(0, 0, -(isoWeekday - 1))
	return week1Monday.AddDate(0, 0, (wk-1)*7), nil
}
