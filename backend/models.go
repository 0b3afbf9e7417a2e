package main

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"travelplanner/backend/planner"
)

// ========== 資料模型 ==========

// PlanRecord is a saved travel plan owned by one user.
type PlanRecord struct {
	MongoID primitive.ObjectID `bson:"_id,omitempty" json:"-"`

	ID                 string `json:"id" bson:"id"`
	UserID             string `json:"user_id" bson:"user_id"`
	planner.TravelPlan `bson:",inline"`
	CreatedAt          time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" bson:"updated_at"`
}

// planUpdate carries the fields a client may change. Nil means untouched.
type planUpdate struct {
	Title       *string                 `json:"title"`
	Destination *string                 `json:"destination"`
	StartDate   *string                 `json:"start_date"`
	EndDate     *string                 `json:"end_date"`
	Budget      *float64                `json:"budget"`
	Travelers   *int                    `json:"travelers"`
	Preferences *[]string               `json:"preferences"`
	Itinerary   *[]planner.DayItinerary `json:"itinerary"`
	TotalCost   *float64                `json:"total_cost"`
}

func (u planUpdate) fields() bson.M {
	set := bson.M{}
	if u.Title != nil {
		set["title"] = *u.Title
	}
	if u.Destination != nil {
		set["destination"] = *u.Destination
	}
	if u.StartDate != nil {
		set["start_date"] = *u.StartDate
	}
	if u.EndDate != nil {
		set["end_date"] = *u.EndDate
	}
	if u.Budget != nil {
		set["budget"] = *u.Budget
	}
	if u.Travelers != nil {
		set["travelers"] = *u.Travelers
	}
	if u.Preferences != nil {
		set["preferences"] = *u.Preferences
	}
	if u.Itinerary != nil {
		set["itinerary"] = *u.Itinerary
	}
	if u.TotalCost != nil {
		set["total_cost"] = *u.TotalCost
	}
	return set
}

// Expense categories.
var expenseCategories = map[string]bool{
	"accommodation":  true,
	"food":           true,
	"transportation": true,
	"activity":       true,
	"shopping":       true,
	"other":          true,
}

// Expense is money spent against a plan.
type Expense struct {
	MongoID primitive.ObjectID `bson:"_id,omitempty" json:"-"`

	ID          string    `json:"id" bson:"id"`
	PlanID      string    `json:"plan_id" bson:"plan_id" binding:"required"`
	UserID      string    `json:"user_id" bson:"user_id"`
	Category    string    `json:"category" bson:"category" binding:"required,oneof=accommodation food transportation activity shopping other"`
	Amount      float64   `json:"amount" bson:"amount" binding:"gte=0"`
	Description string    `json:"description" bson:"description"`
	Date        string    `json:"date" bson:"date"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

type expenseUpdate struct {
	Category    *string  `json:"category"`
	Amount      *float64 `json:"amount"`
	Description *string  `json:"description"`
	Date        *string  `json:"date"`
}

func (u expenseUpdate) fields() bson.M {
	set := bson.M{}
	if u.Category != nil {
		set["category"] = *u.Category
	}
	if u.Amount != nil {
		set["amount"] = *u.Amount
	}
	if u.Description != nil {
		set["description"] = *u.Description
	}
	if u.Date != nil {
		set["date"] = *u.Date
	}
	return set
}

// ExpenseSummary totals a plan's expenses.
type ExpenseSummary struct {
	Total      float64            `json:"total"`
	ByCategory map[string]float64 `json:"byCategory"`
}

func summarize(expenses []Expense) ExpenseSummary {
	s := ExpenseSummary{ByCategory: map[string]float64{}}
	for _, e := range expenses {
		s.Total += e.Amount
		s.ByCategory[e.Category] += e.Amount
	}
	return s
}
