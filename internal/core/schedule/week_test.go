package schedule_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payroll.service/internal/core/schedule"
)

func date(s string) time.Time {
	t, err := time.Parse(schedule.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestMondayOf(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-01-08", "2024-01-08"}, // Monday maps to itself
		{"2024-01-09", "2024-01-08"}, // Tuesday
		{"2024-01-10", "2024-01-08"}, // Wednesday
		{"2024-01-13", "2024-01-08"}, // Saturday
		{"2024-01-14", "2024-01-08"}, // Sunday rolls backward, not forward
		{"2024-03-03", "2024-02-26"}, // Sunday across a month boundary
		{"2024-01-01", "2024-01-01"}, // New Year's Monday
	}
	for _, tt := range tests {
		got := schedule.MondayOf(date(tt.in))
		assert.Equal(t, tt.want, got.Format(schedule.DateLayout), "MondayOf(%s)", tt.in)
	}
}

func TestMondayOfProperties(t *testing.T) {
	start := date("2024-01-01")
	for i := 0; i < 60; i++ {
		d := start.AddDate(0, 0, i)
		monday := schedule.MondayOf(d)

		assert.Equal(t, time.Monday, monday.Weekday())
		assert.False(t, monday.After(d), "MondayOf(%s) must not be after the input", d)
		assert.True(t, monday.Equal(schedule.MondayOf(monday)), "MondayOf must be idempotent")
	}
}

func TestWindowDays(t *testing.T) {
	w := schedule.Window(date("2024-01-10"))

	assert.Equal(t, "2024-01-08", w.From())
	assert.Equal(t, "2024-01-14", w.To())
	assert.Equal(t, []string{
		"2024-01-08", "2024-01-09", "2024-01-10", "2024-01-11",
		"2024-01-12", "2024-01-13", "2024-01-14",
	}, w.Days())
}

func TestWindowContains(t *testing.T) {
	w := schedule.Window(date("2024-01-10"))

	assert.True(t, w.Contains("2024-01-08"))
	assert.True(t, w.Contains("2024-01-14"))
	assert.False(t, w.Contains("2024-01-07"))
	assert.False(t, w.Contains("2024-01-15"))
}

func TestWindowFrom(t *testing.T) {
	w, err := schedule.WindowFrom("2024-01-14")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-08", w.From())

	_, err = schedule.WindowFrom("14/01/2024")
	assert.Error(t, err)
}
