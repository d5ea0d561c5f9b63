package timesheet_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payroll.service/internal/core/model"
	"payroll.service/internal/core/timesheet"
)

func ptr[T any](v T) *T { return &v }

func entry(id, date string, hours *float64) model.Timesheet {
	return model.Timesheet{ID: id, EmployeeID: "e1", Date: date, TotalHours: hours}
}

func TestGroupByDatePreservesOrder(t *testing.T) {
	// Five records over two dates, deliberately interleaved and out of
	// chronological order. Group order must follow first-seen dates and
	// within-group order must follow the input.
	records := []model.Timesheet{
		entry("a", "2024-01-10", ptr(2.0)),
		entry("b", "2024-01-09", ptr(1.0)),
		entry("c", "2024-01-10", ptr(3.0)),
		entry("d", "2024-01-09", ptr(4.0)),
		entry("e", "2024-01-10", nil),
	}

	groups := timesheet.GroupByDate(records)
	require.Len(t, groups, 2)

	assert.Equal(t, "2024-01-10", groups[0].Date)
	assert.Equal(t, "2024-01-09", groups[1].Date)

	ids := func(g timesheet.DateGroup) []string {
		var out []string
		for _, e := range g.Entries {
			out = append(out, e.ID)
		}
		return out
	}
	assert.Equal(t, []string{"a", "c", "e"}, ids(groups[0]))
	assert.Equal(t, []string{"b", "d"}, ids(groups[1]))

	assert.InDelta(t, 5.0, groups[0].TotalHours, 1e-9)
	assert.InDelta(t, 5.0, groups[1].TotalHours, 1e-9)
}

func TestGroupByDateEmpty(t *testing.T) {
	assert.Empty(t, timesheet.GroupByDate(nil))
}

func TestSumHoursTreatsNilAsZero(t *testing.T) {
	records := []model.Timesheet{
		entry("a", "2024-01-10", nil),
		entry("b", "2024-01-10", ptr(3.5)),
		entry("c", "2024-01-10", nil),
	}
	assert.InDelta(t, 3.5, timesheet.SumHours(records), 1e-9)
	assert.Zero(t, timesheet.SumHours(nil))
}

func TestCountLocked(t *testing.T) {
	records := []model.Timesheet{
		{ID: "a", IsLocked: true},
		{ID: "b"},
		{ID: "c", IsLocked: true},
	}
	assert.Equal(t, 2, timesheet.CountLocked(records))
}

func TestComputeTotalHours(t *testing.T) {
	tests := []struct {
		name                         string
		start, end, lunchS, lunchE   *string
		want                         float64
	}{
		{"plain shift", ptr("08:00"), ptr("16:00"), nil, nil, 8},
		{"with lunch", ptr("08:00"), ptr("16:30"), ptr("12:00"), ptr("12:30"), 8},
		{"minute borrow", ptr("08:45"), ptr("16:15"), nil, nil, 7.5},
		{"overnight", ptr("22:00"), ptr("06:00"), nil, nil, 8},
		{"seconds ignored", ptr("08:00:00"), ptr("12:15:00"), nil, nil, 4.25},
		{"missing end", ptr("08:00"), nil, nil, nil, 0},
		{"missing both", nil, nil, nil, nil, 0},
		{"lunch exceeds span", ptr("08:00"), ptr("08:30"), ptr("08:00"), ptr("09:30"), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := timesheet.ComputeTotalHours(tt.start, tt.end, tt.lunchS, tt.lunchE)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}
