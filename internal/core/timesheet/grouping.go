package timesheet

import (
	"math"
	"strconv"
	"strings"

	"payroll.service/internal/core/model"
)

// DateGroup is one calendar date together with its timesheet entries, in
// their original relative order.
type DateGroup struct {
	Date       string            `json:"date"`
	Entries    []model.Timesheet `json:"entries"`
	TotalHours float64           `json:"totalHours"`
}

// GroupByDate buckets records by calendar date. Group order is the
// first-seen order of distinct dates in the input; within a group the
// original relative order is preserved. No sorting happens here: callers
// that want chronological groups pre-sort the input.
func GroupByDate(records []model.Timesheet) []DateGroup {
	index := make(map[string]int, len(records))
	var groups []DateGroup

	for _, r := range records {
		i, ok := index[r.Date]
		if !ok {
			i = len(groups)
			index[r.Date] = i
			groups = append(groups, DateGroup{Date: r.Date})
		}
		groups[i].Entries = append(groups[i].Entries, r)
	}
	for i := range groups {
		groups[i].TotalHours = SumHours(groups[i].Entries)
	}
	return groups
}

// SumHours adds up total hours over the records. A missing TotalHours
// counts as zero. The sum is not rounded; rounding is a display concern.
func SumHours(records []model.Timesheet) float64 {
	var sum float64
	for _, r := range records {
		if r.TotalHours != nil {
			sum += *r.TotalHours
		}
	}
	return sum
}

// CountLocked returns how many of the records are locked.
func CountLocked(records []model.Timesheet) int {
	n := 0
	for _, r := range records {
		if r.IsLocked {
			n++
		}
	}
	return n
}

// ComputeTotalHours is the single authoritative work-duration function:
// elapsed time from start to end minus the lunch interval, rounded to two
// decimals. It is used at entry time and wherever hours are recomputed, so
// the stored value and a recomputation can never drift apart. A shift that
// ends past midnight wraps into the next day. Missing or malformed times
// yield zero rather than an error.
func ComputeTotalHours(start, end, lunchStart, lunchEnd *string) float64 {
	hours := spanHours(start, end)
	lunch := spanHours(lunchStart, lunchEnd)

	total := hours - lunch
	if total < 0 {
		return 0
	}
	return math.Round(total*100) / 100
}

// spanHours returns the elapsed hours between two times of day, wrapping
// across midnight when the end precedes the start.
func spanHours(start, end *string) float64 {
	sh, sm, ok := parseClock(start)
	if !ok {
		return 0
	}
	eh, em, ok := parseClock(end)
	if !ok {
		return 0
	}

	hours := eh - sh
	minutes := em - sm
	if minutes < 0 {
		hours--
		minutes += 60
	}
	if hours < 0 {
		hours += 24
	}
	return float64(hours) + float64(minutes)/60
}

// parseClock accepts "15:04" and "15:04:05"; seconds are ignored.
func parseClock(v *string) (hours, minutes int, ok bool) {
	if v == nil || *v == "" {
		return 0, 0, false
	}
	parts := strings.Split(*v, ":")
	if len(parts) < 2 {
		return 0, 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	return h, m, true
}
