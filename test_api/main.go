package main

import (
	"fmt"
	"log"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("用法:")
		fmt.Println("  go run ./test_api generate   # 測 DashScope 行程生成 (DASHSCOPE_API_KEY)")
		fmt.Println("  go run ./test_api gemini     # 測 Gemini AI 內容生成 (GEMINI_API_KEY)")
		return
	}

	switch os.Args[1] {
	case "generate":
		test_generate()
	case "gemini":
		test_gemini()
	default:
		log.Fatalf("未知指令: %s\n", os.Args[1])
	}
}
