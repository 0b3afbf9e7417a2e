package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// ========== MongoDB ==========

const (
	plansCollection    = "travel_plans"
	expensesCollection = "expenses"
)

// ErrNotFound is returned when a record does not exist or belongs to another user.
var ErrNotFound = errors.New("record not found")

// Store persists plans and expenses. Every query is scoped to a user id.
type Store interface {
	Ping(ctx context.Context) error

	CreatePlan(ctx context.Context, plan *PlanRecord) error
	ListPlans(ctx context.Context, userID string) ([]PlanRecord, error)
	GetPlan(ctx context.Context, userID, id string) (*PlanRecord, error)
	UpdatePlan(ctx context.Context, userID, id string, set bson.M) (*PlanRecord, error)
	DeletePlan(ctx context.Context, userID, id string) error

	CreateExpense(ctx context.Context, expense *Expense) error
	ListExpenses(ctx context.Context, userID, planID string) ([]Expense, error)
	UpdateExpense(ctx context.Context, userID, id string, set bson.M) (*Expense, error)
	DeleteExpense(ctx context.Context, userID, id string) error
}

func connectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

type mongoStore struct {
	db       *mongo.Database
	plans    *mongo.Collection
	expenses *mongo.Collection
}

func newMongoStore(db *mongo.Database) *mongoStore {
	return &mongoStore{
		db:       db,
		plans:    db.Collection(plansCollection),
		expenses: db.Collection(expensesCollection),
	}
}

// ensureIndexes creates the lookup indexes used by the queries below.
func (s *mongoStore) ensureIndexes(ctx context.Context) error {
	_, err := s.plans.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("plan indexes: %w", err)
	}

	_, err = s.expenses.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "plan_id", Value: 1}, {Key: "user_id", Value: 1}, {Key: "date", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("expense indexes: %w", err)
	}
	return nil
}

func (s *mongoStore) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, readpref.Primary())
}

// ---------- plans ----------

func (s *mongoStore) CreatePlan(ctx context.Context, plan *PlanRecord) error {
	if _, err := s.plans.InsertOne(ctx, plan); err != nil {
		return fmt.Errorf("insert plan: %w", err)
	}
	return nil
}

func (s *mongoStore) ListPlans(ctx context.Context, userID string) ([]PlanRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.plans.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find plans: %w", err)
	}
	defer cursor.Close(ctx)

	plans := []PlanRecord{}
	if err := cursor.All(ctx, &plans); err != nil {
		return nil, fmt.Errorf("decode plans: %w", err)
	}
	return plans, nil
}

func (s *mongoStore) GetPlan(ctx context.Context, userID, id string) (*PlanRecord, error) {
	var plan PlanRecord
	err := s.plans.FindOne(ctx, bson.M{"id": id, "user_id": userID}).Decode(&plan)
	if err != nil {
		return nil, notFound(err, "find plan")
	}
	return &plan, nil
}

func (s *mongoStore) UpdatePlan(ctx context.Context, userID, id string, set bson.M) (*PlanRecord, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var plan PlanRecord
	err := s.plans.FindOneAndUpdate(ctx,
		bson.M{"id": id, "user_id": userID},
		bson.M{"$set": set},
		opts,
	).Decode(&plan)
	if err != nil {
		return nil, notFound(err, "update plan")
	}
	return &plan, nil
}

// DeletePlan removes the plan and the expenses recorded against it.
func (s *mongoStore) DeletePlan(ctx context.Context, userID, id string) error {
	result, err := s.plans.DeleteOne(ctx, bson.M{"id": id, "user_id": userID})
	if err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}

	if _, err := s.expenses.DeleteMany(ctx, bson.M{"plan_id": id, "user_id": userID}); err != nil {
		return fmt.Errorf("delete plan expenses: %w", err)
	}
	return nil
}

// ---------- expenses ----------

func (s *mongoStore) CreateExpense(ctx context.Context, expense *Expense) error {
	if _, err := s.expenses.InsertOne(ctx, expense); err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

func (s *mongoStore) ListExpenses(ctx context.Context, userID, planID string) ([]Expense, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := s.expenses.Find(ctx, bson.M{"plan_id": planID, "user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find expenses: %w", err)
	}
	defer cursor.Close(ctx)

	expenses := []Expense{}
	if err := cursor.All(ctx, &expenses); err != nil {
		return nil, fmt.Errorf("decode expenses: %w", err)
	}
	return expenses, nil
}

func (s *mongoStore) UpdateExpense(ctx context.Context, userID, id string, set bson.M) (*Expense, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var expense Expense
	err := s.expenses.FindOneAndUpdate(ctx,
		bson.M{"id": id, "user_id": userID},
		bson.M{"$set": set},
		opts,
	).Decode(&expense)
	if err != nil {
		return nil, notFound(err, "update expense")
	}
	return &expense, nil
}

func (s *mongoStore) DeleteExpense(ctx context.Context, userID, id string) error {
	result, err := s.expenses.DeleteOne(ctx, bson.M{"id": id, "user_id": userID})
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func notFound(err error, op string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
