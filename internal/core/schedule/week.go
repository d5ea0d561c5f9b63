package schedule

import "time"

// DateLayout is the calendar-date form used across the service: in the
// database, on the wire and as grouping keys. It sorts lexicographically.
const DateLayout = "2006-01-02"

// MondayOf returns the Monday that starts the payroll week containing t.
// A Sunday rolls backward to the previous Monday: Sunday closes the week
// that started six days earlier, it never opens a new one.
func MondayOf(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	delta := 1 - int(day.Weekday()) // Sunday = 0
	if day.Weekday() == time.Sunday {
		delta = -6
	}
	return day.AddDate(0, 0, delta)
}

// WeekWindow is the Monday-to-Sunday 7-day span used for payroll
// reporting, inclusive on both ends.
type WeekWindow struct {
	start time.Time
}

// Window builds the week window containing the reference date.
func Window(ref time.Time) WeekWindow {
	return WeekWindow{start: MondayOf(ref)}
}

// WindowFrom parses a calendar date and returns its week window.
func WindowFrom(date string) (WeekWindow, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return WeekWindow{}, err
	}
	return Window(t), nil
}

// Start returns the Monday opening the window.
func (w WeekWindow) Start() time.Time { return w.start }

// From returns the window's Monday as a calendar date.
func (w WeekWindow) From() string { return w.start.Format(DateLayout) }

// To returns the window's Sunday as a calendar date.
func (w WeekWindow) To() string { return w.start.AddDate(0, 0, 6).Format(DateLayout) }

// Days returns the seven calendar dates of the window, Monday first.
func (w WeekWindow) Days() []string {
	days := make([]string, 7)
	for i := range days {
		days[i] = w.start.AddDate(0, 0, i).Format(DateLayout)
	}
	return days
}

// Contains reports whether the calendar date falls inside the window.
// ISO dates compare correctly as strings.
func (w WeekWindow) Contains(date string) bool {
	return date >= w.From() && date <= w.To()
}
