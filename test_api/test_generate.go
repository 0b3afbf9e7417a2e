package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"travelplanner/backend/planner"
)

// test_generate runs one request through the full planning pipeline and
// prints the resulting plan.
func test_generate() {
	key := os.Getenv("DASHSCOPE_API_KEY")
	if key == "" {
		log.Fatal("DASHSCOPE_API_KEY not set")
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	client := planner.NewDashScopeClient(planner.DashScopeConfig{
		BaseURL: os.Getenv("DASHSCOPE_BASE_URL"),
		Model:   os.Getenv("DASHSCOPE_MODEL"),
	}, logger)
	svc := planner.NewService(client, planner.WithLogger(logger))

	start := time.Now().AddDate(0, 0, 14)
	req := planner.PlanningRequest{
		Destination: "东京",
		StartDate:   start.Format("2006-01-02"),
		EndDate:     start.AddDate(0, 0, 2).Format("2006-01-02"),
		Budget:      8000,
		Travelers:   2,
		Preferences: []string{"美食", "动漫"},
	}

	plan, err := svc.Generate(context.Background(), req, key)
	if err != nil {
		log.Fatal(err)
	}

	out, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(out))
}
