package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"marketmood/db"
	"marketmood/internal/analyzer"
	"marketmood/internal/collector"
	"marketmood/internal/config"
	"marketmood/internal/handler"
	"marketmood/internal/model"
	"marketmood/internal/orchestrator"
	"marketmood/internal/prompt"
	"marketmood/internal/repository"
	"marketmood/internal/scheduler"
	"marketmood/pkg/llm"
)

func main() {
	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	err = db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	var publish orchestrator.LatestPublisher
	if cfg.RedisURL != "" {
		if err := db.ConnectRedis(); err != nil {
			log.Fatalf("error connecting to Redis: %v", err)
		}
		defer db.CloseRedis()
		publish = db.PublishLatestAnalysis
	}

	var provider llm.Provider
	switch cfg.LLMProvider {
	case config.ProviderAnthropic:
		provider = llm.NewAnthropicProvider(cfg.AnthropicAPIKey)
	default:
		provider = llm.NewOpenAIProvider(cfg.OpenAIAPIKey)
	}

	meta := model.AnalysisMeta{
		Provider:    provider.Name(),
		Model:       provider.ModelName(),
		WindowHours: cfg.LookbackHours,
	}

	tweetRepo := repository.NewTweetRepository(db.DB)
	analysisRepo := repository.NewAnalysisRepository(db.DB, cfg.ResultsTable)

	orch := orchestrator.New(
		collector.New(tweetRepo),
		analyzer.New(provider, prompt.NewBuilder()),
		analysisRepo,
		publish,
		meta,
	)

	sched := scheduler.New()
	err = sched.AddJob("sentiment-analysis", cfg.CronSchedule, func(ctx context.Context) error {
		_, err := orch.RunCycle(ctx)
		return err
	})
	if err != nil {
		log.Fatalf("error scheduling analysis job: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	analysisHandler := handler.NewAnalysisHandler(orch, cfg, meta)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}
	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.GET("/", analysisHandler.GetRoot)
	r.POST("/analyze", analysisHandler.Analyze)
	r.GET("/history", analysisHandler.GetHistory)
	r.GET("/status", analysisHandler.GetStatus)

	slog.Info("starting marketmood",
		"port", cfg.Port,
		"provider", meta.Provider,
		"model", meta.Model,
		"lookback_hours", cfg.LookbackHours,
		"cron", cfg.CronSchedule)

	err = r.Run(":" + cfg.Port)
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
