package main

import (
	"context"
	"fmt"
	"log"

	"google.golang.org/genai"

	"travelplanner/backend/planner"
)

func test_gemini() {
	ctx := context.Background()
	req := planner.PlanningRequest{
		Destination: "京都",
		StartDate:   "2025-04-01",
		EndDate:     "2025-04-02",
		Budget:      3000,
		Travelers:   1,
	}

	// 金鑰由 GEMINI_API_KEY 環境變數提供
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		log.Fatal(err)
	}

	result, err := client.Models.GenerateContent(
		ctx,
		planner.DefaultGeminiModel,
		genai.Text(planner.BuildPrompt(req, req.Days())),
		nil,
	)
	if err != nil {
		log.Fatal(err)
	}
	plan, err := planner.NewNormalizer(planner.BalancedExtractor{}).Normalize(result.Text(), req)
	if err != nil {
		fmt.Println(result.Text())
		log.Fatalf("模型回覆無法轉成行程: %v", err)
	}
	fmt.Printf("%s: %d 天\n", plan.Title, len(plan.Itinerary))
	if plan.TotalCost != nil {
		fmt.Printf("total_cost=%.0f budget=%.0f\n", *plan.TotalCost, plan.Budget)
	}
}
