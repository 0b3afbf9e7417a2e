package planner

import (
	"fmt"
	"strings"
)

// SystemPrompt is sent as the system message of every generation call.
const SystemPrompt = "你是一个专业的旅行规划助手，能够根据用户需求生成详细的旅行计划，包括交通、住宿、景点、餐厅和费用预算。请以 JSON 格式返回结果。"

// outputShape is the reply format the Normalizer expects. Keep the two in sync.
const outputShape = `请提供包含以下内容的JSON格式旅行计划：
1. 每天的详细行程（包括景点、活动、用餐建议）
2. 推荐的住宿（名称、类型、大概费用）
3. 交通方式和预计费用
4. 每个活动的预计花费
5. 总预算分析

返回格式示例：
{
  "title": "行程标题",
  "itinerary": [
    {
      "day": 1,
      "date": "YYYY-MM-DD",
      "activities": [
        {
          "name": "活动名称",
          "type": "attraction",
          "location": {
            "name": "地点名称",
            "address": "详细地址",
            "lat": 纬度,
            "lng": 经度
          },
          "duration": 120,
          "cost": 100,
          "time": "09:00",
          "description": "活动描述"
        }
      ],
      "accommodation": {
        "name": "酒店名称",
        "type": "酒店类型",
        "location": {...},
        "cost": 500,
        "checkIn": "15:00",
        "checkOut": "次日12:00"
      },
      "transportation": [...],
      "meals": [...],
      "daily_cost": 1000
    }
  ],
  "total_cost": 5000
}`

// BuildPrompt renders the user message for a request lasting days days.
func BuildPrompt(req PlanningRequest, days int) string {
	var b strings.Builder

	b.WriteString("请为以下旅行需求生成一份详细的旅行计划：\n\n")
	fmt.Fprintf(&b, "目的地：%s\n", req.Destination)
	fmt.Fprintf(&b, "旅行日期：%s 至 %s（共%d天）\n", req.StartDate, req.EndDate, days)
	fmt.Fprintf(&b, "预算：%s元\n", formatAmount(req.Budget))
	fmt.Fprintf(&b, "人数：%d人\n", req.Travelers)
	fmt.Fprintf(&b, "偏好：%s\n", strings.Join(req.Preferences, "、"))
	if req.SpecialRequirements != "" {
		fmt.Fprintf(&b, "特殊要求：%s\n", req.SpecialRequirements)
	}
	b.WriteString("\n")
	b.WriteString(outputShape)

	return b.String()
}

// formatAmount prints whole amounts without a decimal part.
func formatAmount(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
