package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"travelplanner/backend/config"
	"travelplanner/backend/planner"
)

// ========== 主程式 ==========
func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// 連線資料庫
	ctx := context.Background()
	client, err := connectMongo(ctx, cfg.MongoURI)
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	store := newMongoStore(client.Database(cfg.MongoDB))
	if err := store.ensureIndexes(ctx); err != nil {
		logger.Warn("Failed to create indexes", zap.Error(err))
	}
	logger.Info("Connected to MongoDB", zap.String("database", cfg.MongoDB))

	s := &server{
		store:   store,
		planner: planner.NewService(newGenerator(cfg, logger), planner.WithLogger(logger)),
		log:     logger,
	}

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: setupRouter(cfg, s),
	}

	// 啟動伺服器
	go func() {
		logger.Info("Server starting",
			zap.String("port", cfg.ServerPort),
			zap.String("ai_provider", cfg.AIProvider),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 等待中斷訊號後優雅關閉
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	logger.Info("Server exited")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if cfg.GinMode == gin.DebugMode {
		zcfg = zap.NewDevelopmentConfig()
	}
	if level, err := zapcore.ParseLevel(cfg.LogLevel); err == nil {
		zcfg.Level = zap.NewAtomicLevelAt(level)
	}
	return zcfg.Build()
}

// newGenerator picks the model backend configured by AI_PROVIDER.
func newGenerator(cfg *config.Config, logger *zap.Logger) planner.Generator {
	if cfg.AIProvider == config.ProviderGemini {
		return planner.NewGeminiClient(planner.GeminiConfig{
			Model:   cfg.GeminiModel,
			Timeout: cfg.GenerationTimeout,
		}, logger)
	}
	return planner.NewDashScopeClient(planner.DashScopeConfig{
		BaseURL: cfg.DashScopeBaseURL,
		Model:   cfg.DashScopeModel,
		Timeout: cfg.GenerationTimeout,
	}, logger)
}

func setupRouter(cfg *config.Config, s *server) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(s.log))
	r.Use(securityHeaders())

	// CORS 設定 - 允許前端跨域請求
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: !allowsAll(cfg.CORSOrigins),
		MaxAge:           12 * time.Hour,
	}))

	// 健康檢查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC(),
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	limiter := newRateLimiter(cfg.RateLimitMax, cfg.RateLimitWindow)
	api := r.Group("/api", limiter.middleware())
	{
		api.GET("/db-test", s.dbTest)

		// 語音輸入不需登入
		api.POST("/voice/parse", s.parseVoice)

		auth := api.Group("", authMiddleware([]byte(cfg.JWTSecret)))

		// 行程相關
		auth.POST("/plans/generate", s.generatePlan)
		auth.POST("/plans", s.createPlan)
		auth.GET("/plans", s.listPlans)
		auth.GET("/plans/:id", s.getPlan)
		auth.PUT("/plans/:id", s.updatePlan)
		auth.DELETE("/plans/:id", s.deletePlan)

		// 花費紀錄
		auth.POST("/expenses", s.createExpense)
		auth.GET("/expenses/plan/:planId", s.listExpenses)
		auth.GET("/expenses/plan/:planId/summary", s.expenseSummary)
		auth.PUT("/expenses/:id", s.updateExpense)
		auth.DELETE("/expenses/:id", s.deleteExpense)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})

	return r
}

// GET /api/db-test
func (s *server) dbTest(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		s.log.Error("database ping", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Database connection failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Database connection successful"})
}

func allowsAll(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
