package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AI providers.
const (
	ProviderDashScope = "dashscope"
	ProviderGemini    = "gemini"
)

// Config holds application configuration. It is read once at startup.
type Config struct {
	// Server
	ServerPort  string
	GinMode     string
	CORSOrigins []string

	// MongoDB
	MongoURI string
	MongoDB  string

	// AI Provider
	AIProvider        string
	DashScopeBaseURL  string
	DashScopeModel    string
	GeminiModel       string
	GenerationTimeout time.Duration

	// Auth
	JWTSecret string

	// Rate limiting
	RateLimitMax    int
	RateLimitWindow time.Duration

	LogLevel string
}

// Load loads configuration from environment variables
func Load() *Config {
	// Try to load .env file (optional for local development)
	_ = godotenv.Load()

	config := &Config{
		ServerPort:  getEnv("SERVER_PORT", "5000"),
		GinMode:     getEnv("GIN_MODE", "release"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),

		MongoURI: getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "travel_planner"),

		AIProvider:        strings.ToLower(getEnv("AI_PROVIDER", ProviderDashScope)),
		DashScopeBaseURL:  getEnv("DASHSCOPE_BASE_URL", "https://dashscope.aliyuncs.com"),
		DashScopeModel:    getEnv("DASHSCOPE_MODEL", "qwen-max"),
		GeminiModel:       getEnv("GEMINI_MODEL", "gemini-2.5-flash-lite"),
		GenerationTimeout: getDuration("GENERATION_TIMEOUT", 60*time.Second),

		JWTSecret: os.Getenv("SUPABASE_JWT_SECRET"),

		RateLimitMax:    getInt("RATE_LIMIT_MAX", 100),
		RateLimitWindow: getDuration("RATE_LIMIT_WINDOW", 15*time.Minute),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	switch config.AIProvider {
	case ProviderDashScope, ProviderGemini:
	default:
		log.Printf("WARNING: Unknown AI_PROVIDER: %s (using %s)\n", config.AIProvider, ProviderDashScope)
		config.AIProvider = ProviderDashScope
	}

	if len(config.CORSOrigins) == 0 {
		config.CORSOrigins = []string{"*"}
	}

	if config.JWTSecret == "" {
		log.Println("WARNING: SUPABASE_JWT_SECRET not set, authenticated routes will reject every request")
	}

	return config
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return defaultValue
	}
	return v
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return defaultValue
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
