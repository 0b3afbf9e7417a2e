package planner

import (
	"encoding/json"
	"fmt"
	"time"
)

// Normalizer turns raw model output into a canonical TravelPlan.
type Normalizer struct {
	extractor Extractor
}

// NewNormalizer uses BraceExtractor when e is nil.
func NewNormalizer(e Extractor) *Normalizer {
	if e == nil {
		e = BraceExtractor{}
	}
	return &Normalizer{extractor: e}
}

// Parse locates and decodes the JSON object embedded in raw. It returns
// ErrUnparseable when there is no valid object and ErrSchemaMismatch when
// the object has fields of the wrong type.
func (n *Normalizer) Parse(raw string) (*TravelPlan, error) {
	obj, ok := n.extractor.Extract(raw)
	if !ok {
		return nil, fmt.Errorf("%w: no JSON object found", ErrUnparseable)
	}
	if !json.Valid([]byte(obj)) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrUnparseable)
	}

	var plan TravelPlan
	if err := json.Unmarshal([]byte(obj), &plan); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}
	return &plan, nil
}

// Normalize parses raw, overwrites the trip metadata with the values from req
// and checks the itinerary against the trip length.
func (n *Normalizer) Normalize(raw string, req PlanningRequest) (*TravelPlan, error) {
	plan, err := n.Parse(raw)
	if err != nil {
		return nil, err
	}

	start, end, err := req.Dates()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	mergeRequest(plan, req)
	if err := canonicalize(plan, start, Duration(start, end)); err != nil {
		return nil, err
	}
	return plan, nil
}

// mergeRequest copies the request metadata over whatever the model echoed.
func mergeRequest(plan *TravelPlan, req PlanningRequest) {
	plan.Destination = req.Destination
	plan.StartDate = req.StartDate
	plan.EndDate = req.EndDate
	plan.Budget = req.Budget
	plan.Travelers = req.Travelers
	plan.Preferences = append([]string{}, req.Preferences...)
}

// canonicalize validates the itinerary and rewrites the fields that are
// derivable from position: day numbers, dates, activity ids and the absence
// of accommodation on the final day.
func canonicalize(plan *TravelPlan, start time.Time, days int) error {
	if plan.Itinerary == nil {
		return fmt.Errorf("%w: missing itinerary", ErrSchemaMismatch)
	}
	if len(plan.Itinerary) != days {
		return fmt.Errorf("%w: itinerary has %d days, trip has %d", ErrSchemaMismatch, len(plan.Itinerary), days)
	}
	if plan.TotalCost != nil && *plan.TotalCost < 0 {
		return fmt.Errorf("%w: negative total_cost", ErrSchemaMismatch)
	}
	if plan.Title == "" {
		plan.Title = defaultTitle(plan.Destination, days)
	}

	dates := expandDates(start, days)
	seen := make(map[string]bool)

	for i := range plan.Itinerary {
		day := &plan.Itinerary[i]
		last := i == days-1

		day.Day = i + 1
		day.Date = dates[i]

		if len(day.Activities) == 0 {
			return fmt.Errorf("%w: day %d has no activities", ErrSchemaMismatch, day.Day)
		}
		if day.DailyCost < 0 {
			return fmt.Errorf("%w: day %d has negative daily_cost", ErrSchemaMismatch, day.Day)
		}

		if last {
			day.Accommodation = nil
		} else if day.Accommodation == nil {
			return fmt.Errorf("%w: day %d has no accommodation", ErrSchemaMismatch, day.Day)
		} else if day.Accommodation.Cost < 0 {
			return fmt.Errorf("%w: day %d accommodation has negative cost", ErrSchemaMismatch, day.Day)
		}

		for j := range day.Activities {
			act := &day.Activities[j]
			if act.Cost < 0 {
				return fmt.Errorf("%w: day %d activity %d has negative cost", ErrSchemaMismatch, day.Day, j+1)
			}
			if act.ID == "" || seen[act.ID] {
				act.ID = freeActivityID(seen, i, j)
			}
			seen[act.ID] = true
			act.Type = activityType(act.Type)
		}

		if day.Transportation == nil {
			day.Transportation = []Transportation{}
		}
		for _, t := range day.Transportation {
			if t.Cost < 0 {
				return fmt.Errorf("%w: day %d transportation has negative cost", ErrSchemaMismatch, day.Day)
			}
		}

		if day.Meals == nil {
			day.Meals = []Meal{}
		}
		for _, m := range day.Meals {
			if m.Cost < 0 {
				return fmt.Errorf("%w: day %d meal has negative cost", ErrSchemaMismatch, day.Day)
			}
		}
	}
	return nil
}

func activityID(dayIndex, n int) string {
	return fmt.Sprintf("act_%d_%d", dayIndex, n+1)
}

// freeActivityID returns activityID(dayIndex, n), suffixed until it is not in seen.
func freeActivityID(seen map[string]bool, dayIndex, n int) string {
	base := activityID(dayIndex, n)
	id := base
	for k := 2; seen[id]; k++ {
		id = fmt.Sprintf("%s_%d", base, k)
	}
	return id
}

func activityType(t string) string {
	switch t {
	case ActivityAttraction, ActivityShopping, ActivityEntertainment, ActivityOther:
		return t
	default:
		return ActivityOther
	}
}

func defaultTitle(destination string, days int) string {
	return fmt.Sprintf("%s %d日游", destination, days)
}
