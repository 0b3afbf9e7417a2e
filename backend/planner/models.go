// Package planner turns a trip request into a day-by-day travel plan.
//
// Plans come from a remote language model when it answers with a usable JSON
// itinerary, and from a deterministic local template otherwise.
package planner

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// MaxTripDays is the longest trip Validate accepts.
const MaxTripDays = 30

// ========== Request ==========

// PlanningRequest is the trip the user asked for.
type PlanningRequest struct {
	Destination         string   `json:"destination" binding:"required"`
	StartDate           string   `json:"startDate" binding:"required"`
	EndDate             string   `json:"endDate" binding:"required"`
	Budget              float64  `json:"budget" binding:"required,gt=0"`
	Travelers           int      `json:"travelers" binding:"required,gt=0"`
	Preferences         []string `json:"preferences"`
	SpecialRequirements string   `json:"specialRequirements,omitempty"`
}

// Dates parses StartDate and EndDate.
func (r PlanningRequest) Dates() (time.Time, time.Time, error) {
	start, err := time.Parse(dateLayout, r.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start date %q: %w", r.StartDate, err)
	}
	end, err := time.Parse(dateLayout, r.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end date %q: %w", r.EndDate, err)
	}
	return start, end, nil
}

// Days returns the inclusive trip length, or 1 when the dates do not parse.
func (r PlanningRequest) Days() int {
	start, end, err := r.Dates()
	if err != nil {
		return 1
	}
	return Duration(start, end)
}

// Validate reports whether the request can be planned. A reversed date range
// is accepted and counted by absolute difference.
func (r PlanningRequest) Validate() error {
	if strings.TrimSpace(r.Destination) == "" {
		return fmt.Errorf("%w: destination is required", ErrInvalidRequest)
	}
	if _, _, err := r.Dates(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if days := r.Days(); days > MaxTripDays {
		return fmt.Errorf("%w: trip is %d days, at most %d allowed", ErrInvalidRequest, days, MaxTripDays)
	}
	if r.Budget <= 0 {
		return fmt.Errorf("%w: budget must be positive", ErrInvalidRequest)
	}
	if r.Travelers < 1 {
		return fmt.Errorf("%w: travelers must be at least 1", ErrInvalidRequest)
	}
	return nil
}

// ========== Plan ==========

// TravelPlan is the canonical itinerary record.
type TravelPlan struct {
	Title       string         `json:"title" bson:"title"`
	Destination string         `json:"destination" bson:"destination"`
	StartDate   string         `json:"start_date" bson:"start_date"`
	EndDate     string         `json:"end_date" bson:"end_date"`
	Budget      float64        `json:"budget" bson:"budget"`
	Travelers   int            `json:"travelers" bson:"travelers"`
	Preferences []string       `json:"preferences" bson:"preferences"`
	Itinerary   []DayItinerary `json:"itinerary" bson:"itinerary"`
	TotalCost   *float64       `json:"total_cost,omitempty" bson:"total_cost,omitempty"`
}

type DayItinerary struct {
	Day            int              `json:"day" bson:"day"`
	Date           string           `json:"date" bson:"date"`
	Activities     []Activity       `json:"activities" bson:"activities"`
	Accommodation  *Accommodation   `json:"accommodation,omitempty" bson:"accommodation,omitempty"`
	Transportation []Transportation `json:"transportation" bson:"transportation"`
	Meals          []Meal           `json:"meals" bson:"meals"`
	DailyCost      float64          `json:"daily_cost" bson:"daily_cost"`
}

// Activity types.
const (
	ActivityAttraction    = "attraction"
	ActivityShopping      = "shopping"
	ActivityEntertainment = "entertainment"
	ActivityOther         = "other"
)

type Activity struct {
	ID          string   `json:"id" bson:"id"`
	Name        string   `json:"name" bson:"name"`
	Type        string   `json:"type" bson:"type"`
	Location    Location `json:"location" bson:"location"`
	Duration    int      `json:"duration" bson:"duration"` // minutes
	Cost        float64  `json:"cost" bson:"cost"`
	Time        string   `json:"time" bson:"time"`
	Description string   `json:"description,omitempty" bson:"description,omitempty"`
}

// Location coordinates are zero when unknown.
type Location struct {
	Name    string  `json:"name" bson:"name"`
	Address string  `json:"address" bson:"address"`
	Lat     float64 `json:"lat" bson:"lat"`
	Lng     float64 `json:"lng" bson:"lng"`
}

type Accommodation struct {
	Name     string   `json:"name" bson:"name"`
	Type     string   `json:"type" bson:"type"`
	Location Location `json:"location" bson:"location"`
	Cost     float64  `json:"cost" bson:"cost"`
	CheckIn  string   `json:"checkIn" bson:"checkIn"`
	CheckOut string   `json:"checkOut" bson:"checkOut"`
}

type Transportation struct {
	Type     string  `json:"type" bson:"type"` // flight, train, bus, subway, taxi, walk
	From     string  `json:"from" bson:"from"`
	To       string  `json:"to" bson:"to"`
	Cost     float64 `json:"cost" bson:"cost"`
	Duration int     `json:"duration" bson:"duration"`
	Time     string  `json:"time" bson:"time"`
}

type Meal struct {
	Type       string   `json:"type" bson:"type"` // breakfast, lunch, dinner, snack
	Restaurant string   `json:"restaurant" bson:"restaurant"`
	Location   Location `json:"location" bson:"location"`
	Cost       float64  `json:"cost" bson:"cost"`
	Time       string   `json:"time" bson:"time"`
}
