package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackTokyo(t *testing.T) {
	plan := Fallback(tokyoRequest())

	assert.Equal(t, "Tokyo 3日游", plan.Title)
	assert.Equal(t, "Tokyo", plan.Destination)
	assert.Equal(t, []string{"food"}, plan.Preferences)
	require.NotNil(t, plan.TotalCost)
	assert.InDelta(t, 2700, *plan.TotalCost, 1e-9)
	require.Len(t, plan.Itinerary, 3)

	wantDates := []string{"2024-03-01", "2024-03-02", "2024-03-03"}
	for i, day := range plan.Itinerary {
		assert.Equal(t, i+1, day.Day)
		assert.Equal(t, wantDates[i], day.Date)
		assert.Equal(t, 1000.0, day.DailyCost)

		require.Len(t, day.Activities, 1)
		assert.Equal(t, ActivityAttraction, day.Activities[0].Type)
		assert.InDelta(t, 300, day.Activities[0].Cost, 1e-9)

		require.Len(t, day.Transportation, 1)
		assert.Equal(t, "subway", day.Transportation[0].Type)
		assert.Equal(t, 20.0, day.Transportation[0].Cost)

		require.Len(t, day.Meals, 2)
		assert.Equal(t, "lunch", day.Meals[0].Type)
		assert.Equal(t, "dinner", day.Meals[1].Type)
		assert.InDelta(t, 150, day.Meals[0].Cost, 1e-9)

		if i < len(plan.Itinerary)-1 {
			require.NotNil(t, day.Accommodation)
			assert.InDelta(t, 400, day.Accommodation.Cost, 1e-9)
		} else {
			assert.Nil(t, day.Accommodation)
		}
	}
}

func TestFallbackDeterministic(t *testing.T) {
	req := tokyoRequest()
	req.SpecialRequirements = "vegetarian"

	assert.Equal(t, Fallback(req), Fallback(req))
}

func TestFallbackFloorsDailyBudget(t *testing.T) {
	req := tokyoRequest()
	req.Budget = 1000 // 1000 / 3 = 333.33

	plan := Fallback(req)
	for _, day := range plan.Itinerary {
		assert.Equal(t, 333.0, day.DailyCost)
	}
	assert.InDelta(t, 900, *plan.TotalCost, 1e-9)
}

func TestFallbackSingleDay(t *testing.T) {
	req := tokyoRequest()
	req.EndDate = req.StartDate

	plan := Fallback(req)
	require.Len(t, plan.Itinerary, 1)
	assert.Nil(t, plan.Itinerary[0].Accommodation)
	assert.Equal(t, 3000.0, plan.Itinerary[0].DailyCost)
}

func TestFallbackIDsUnique(t *testing.T) {
	req := tokyoRequest()
	req.EndDate = "2024-03-14"

	plan := Fallback(req)
	require.Len(t, plan.Itinerary, 14)

	seen := map[string]bool{}
	for _, day := range plan.Itinerary {
		for _, act := range day.Activities {
			assert.False(t, seen[act.ID])
			seen[act.ID] = true
		}
	}
}

func TestFallbackNeverPanics(t *testing.T) {
	req := tokyoRequest()
	req.StartDate = "not-a-date"

	var plan *TravelPlan
	require.NotPanics(t, func() { plan = Fallback(req) })

	require.Len(t, plan.Itinerary, 1)
	day := plan.Itinerary[0]
	assert.Equal(t, 1, day.Day)
	assert.Equal(t, "not-a-date", day.Date)
	assert.Nil(t, day.Accommodation, "a single day is also the last day")
	assert.NotEmpty(t, day.Activities)
	require.NotNil(t, plan.TotalCost)
	assert.InDelta(t, req.Budget*0.9, *plan.TotalCost, 0.001)
}
