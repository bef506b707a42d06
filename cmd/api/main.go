package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"alfredoptarigan/resume-analyzer/internal/config"
	"alfredoptarigan/resume-analyzer/internal/handlers"
	"alfredoptarigan/resume-analyzer/internal/ratelimit"
	"alfredoptarigan/resume-analyzer/internal/repositories"
	"alfredoptarigan/resume-analyzer/internal/server"
	"alfredoptarigan/resume-analyzer/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}
	log.Println("✅ Config loaded successfully")

	// Analysis history is optional
	historyRepo := repositories.NewNoopAnalysisRepository()
	if cfg.Database.Enabled {
		db, err := config.InitDatabase(cfg)
		if err != nil {
			log.Fatalf("❌ Failed to initialize database: %v", err)
		}
		historyRepo = repositories.NewAnalysisRepository(db)
		log.Println("✅ Analysis history enabled")
	}

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	aiClient, err := newAIClient(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize AI client: %v", err)
	}
	log.Printf("✅ AI client initialized (%s, model %s)\n", cfg.AI.Provider, cfg.AI.Model)

	analyzer := services.NewAnalyzerService(
		services.NewFileValidator(cfg.Storage.MaxFileSize),
		storageService,
		services.NewPDFParserService(),
		aiClient,
		cfg.Analysis.ExtractConcurrency,
	)
	log.Println("✅ Services initialized successfully")

	var limiter ratelimit.Limiter
	if cfg.RateLimit.Enabled() {
		rl, err := ratelimit.NewRedisFixedWindowLimiter(
			cfg.RateLimit.RedisAddr,
			cfg.RateLimit.RedisPassword,
			"",
			cfg.RateLimit.Requests,
			cfg.RateLimit.Window,
		)
		if err != nil {
			log.Fatalf("❌ Failed to initialize rate limiter: %v", err)
		}
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rl.Ping(pingCtx); err != nil {
			log.Printf("⚠️  Rate limiter redis unreachable, requests will be rejected until it recovers: %v\n", err)
		}
		cancel()
		defer rl.Close()
		limiter = rl
		log.Printf("✅ Rate limit enabled (%d requests per %s)\n", cfg.RateLimit.Requests, cfg.RateLimit.Window)
	}

	// Initialize Handlers
	app := server.NewApp(server.Handlers{
		Analyze:  handlers.NewAnalyzeHandler(analyzer, historyRepo, cfg.Analysis.Mode),
		Download: handlers.NewDownloadHandler(storageService),
		Result:   handlers.NewResultHandler(historyRepo),
	}, server.Options{
		BodyLimit:    cfg.Server.MaxBodySize,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: cfg.AI.Timeout + 30*time.Second,
		Limiter:      limiter,
	})
	log.Println("✅ Handlers initialized")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func newAIClient(cfg *config.Config) (services.AIClient, error) {
	if cfg.AI.Provider == config.ProviderGemini {
		return services.NewGeminiClient(
			context.Background(),
			cfg.AI.APIKey,
			cfg.AI.Model,
			cfg.AI.Temperature,
			cfg.AI.Timeout,
			"",
		)
	}

	return services.NewChatCompletionClient(
		cfg.AI.Endpoint,
		cfg.AI.APIKey,
		cfg.AI.Model,
		cfg.AI.Temperature,
		cfg.AI.Timeout,
	), nil
}
