package planner

import "math"

// Fallback budget split, as fractions of the daily budget.
const (
	fallbackActivityShare      = 0.3
	fallbackAccommodationShare = 0.4
	fallbackMealShare          = 0.15
	fallbackTransportCost      = 20
	fallbackTotalShare         = 0.9
)

// Fallback builds a complete itinerary from the request alone. It never fails.
// Service only calls it for validated requests; a direct call with
// unparseable dates yields a single-day plan dated req.StartDate.
func Fallback(req PlanningRequest) *TravelPlan {
	days := 1
	var dates []string
	if start, end, err := req.Dates(); err == nil {
		days = Duration(start, end)
		dates = expandDates(start, days)
	} else {
		dates = []string{req.StartDate}
	}

	dailyBudget := math.Floor(req.Budget / float64(days))
	place := Location{Name: req.Destination, Address: req.Destination}

	itinerary := make([]DayItinerary, days)
	for i := 0; i < days; i++ {
		day := DayItinerary{
			Day:  i + 1,
			Date: dates[i],
			Activities: []Activity{
				{
					ID:          activityID(i, 0),
					Name:        req.Destination + "景点游览",
					Type:        ActivityAttraction,
					Location:    place,
					Duration:    180,
					Cost:        dailyBudget * fallbackActivityShare,
					Time:        "09:00",
					Description: "探索" + req.Destination + "的著名景点",
				},
			},
			Transportation: []Transportation{
				{
					Type:     "subway",
					From:     "住宿地",
					To:       "景点",
					Cost:     fallbackTransportCost,
					Duration: 30,
					Time:     "08:30",
				},
			},
			Meals: []Meal{
				{Type: "lunch", Restaurant: "当地餐厅", Location: place, Cost: dailyBudget * fallbackMealShare, Time: "12:00"},
				{Type: "dinner", Restaurant: "特色餐厅", Location: place, Cost: dailyBudget * fallbackMealShare, Time: "18:00"},
			},
			DailyCost: dailyBudget,
		}

		if i < days-1 {
			day.Accommodation = &Accommodation{
				Name:     req.Destination + "酒店",
				Type:     "标准酒店",
				Location: place,
				Cost:     dailyBudget * fallbackAccommodationShare,
				CheckIn:  "15:00",
				CheckOut: "次日12:00",
			}
		}

		itinerary[i] = day
	}

	total := req.Budget * fallbackTotalShare
	return &TravelPlan{
		Title:       defaultTitle(req.Destination, days),
		Destination: req.Destination,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Budget:      req.Budget,
		Travelers:   req.Travelers,
		Preferences: append([]string{}, req.Preferences...),
		Itinerary:   itinerary,
		TotalCost:   &total,
	}
}
