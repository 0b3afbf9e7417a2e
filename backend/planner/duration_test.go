package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(dateLayout, s)
	require.NoError(t, err)
	return d
}

func TestDuration(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  int
	}{
		{"same day", "2024-01-01", "2024-01-01", 1},
		{"five days", "2024-01-01", "2024-01-05", 5},
		{"reversed", "2024-01-05", "2024-01-01", 5},
		{"across month", "2024-02-28", "2024-03-01", 3},
		{"across year", "2023-12-31", "2024-01-01", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Duration(mustDate(t, tt.start), mustDate(t, tt.end)))
		})
	}
}

func TestPlanningRequestValidate(t *testing.T) {
	valid := PlanningRequest{
		Destination: "Tokyo",
		StartDate:   "2024-03-01",
		EndDate:     "2024-03-03",
		Budget:      3000,
		Travelers:   2,
	}
	require.NoError(t, valid.Validate())

	reversed := valid
	reversed.StartDate, reversed.EndDate = valid.EndDate, valid.StartDate
	assert.NoError(t, reversed.Validate())
	assert.Equal(t, 3, reversed.Days())

	longest := valid
	longest.EndDate = "2024-03-30"
	assert.Equal(t, MaxTripDays, longest.Days())
	assert.NoError(t, longest.Validate())

	tests := []struct {
		name   string
		mutate func(r *PlanningRequest)
	}{
		{"blank destination", func(r *PlanningRequest) { r.Destination = "  " }},
		{"bad start", func(r *PlanningRequest) { r.StartDate = "03/01/2024" }},
		{"bad end", func(r *PlanningRequest) { r.EndDate = "" }},
		{"zero budget", func(r *PlanningRequest) { r.Budget = 0 }},
		{"no travelers", func(r *PlanningRequest) { r.Travelers = 0 }},
		{"too long", func(r *PlanningRequest) { r.EndDate = "9999-12-31" }},
		{"one day too long", func(r *PlanningRequest) { r.EndDate = "2024-03-31" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)
			assert.ErrorIs(t, r.Validate(), ErrInvalidRequest)
		})
	}
}
