package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt(t *testing.T) {
	req := PlanningRequest{
		Destination: "东京",
		StartDate:   "2024-03-01",
		EndDate:     "2024-03-03",
		Budget:      3000,
		Travelers:   2,
		Preferences: []string{"美食", "动漫"},
	}

	prompt := BuildPrompt(req, 3)

	assert.Contains(t, prompt, "目的地：东京")
	assert.Contains(t, prompt, "2024-03-01 至 2024-03-03（共3天）")
	assert.Contains(t, prompt, "预算：3000元")
	assert.Contains(t, prompt, "人数：2人")
	assert.Contains(t, prompt, "偏好：美食、动漫")
	assert.NotContains(t, prompt, "特殊要求")
	assert.Contains(t, prompt, `"itinerary"`)
	assert.Contains(t, prompt, `"total_cost"`)
	assert.Contains(t, prompt, `"daily_cost"`)
}

func TestBuildPromptSpecialRequirements(t *testing.T) {
	req := PlanningRequest{
		Destination:         "Kyoto",
		StartDate:           "2024-04-01",
		EndDate:             "2024-04-01",
		Budget:              999.5,
		Travelers:           1,
		SpecialRequirements: "wheelchair access",
	}

	prompt := BuildPrompt(req, 1)

	assert.Contains(t, prompt, "特殊要求：wheelchair access")
	assert.Contains(t, prompt, "预算：999.50元")
	assert.Contains(t, prompt, "偏好：\n")
}
