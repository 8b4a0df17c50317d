package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "feiyi/docs"
	"feiyi/internal/api"
	"feiyi/internal/api/handlers"
	"feiyi/internal/repository"
	"feiyi/internal/service"
	"feiyi/pkg/config"
	"feiyi/pkg/database"
	"feiyi/pkg/logger"
	"feiyi/pkg/metrics"
	"feiyi/web"

	"go.uber.org/zap"
)

// @title Feiyi API
// @version 1.0
// @description 非遗文化展示与智能问答服务
// @termsOfService http://swagger.io/terms/

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:5000
// @BasePath /

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level, cfg.Logger.File); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting Feiyi service")

	// Initialize database
	ctx := context.Background()
	db, err := database.Open(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	itemRepo := repository.NewItemRepository(db, appLogger)
	knowledgeRepo := repository.NewKnowledgeRepository(db, appLogger)
	interactionRepo := repository.NewInteractionRepository(db, appLogger)

	m := metrics.New("feiyi")

	// Initialize services
	completer, closeCompleter := newCompleter(ctx, &cfg.AI, appLogger)
	defer closeCompleter()

	resolver := service.NewAnswerResolver(completer, cfg.AI.Timeout, m, appLogger)
	interactionService := service.NewInteractionService(interactionRepo, appLogger)
	ragService := service.NewRAGService(itemRepo, knowledgeRepo, appLogger)
	chatService := service.NewChatService(resolver, interactionService, ragService, appLogger)
	catalogService := service.NewCatalogService(itemRepo, knowledgeRepo, appLogger)

	if days := cfg.Retention.InteractionDays; days > 0 {
		if _, err := interactionService.Prune(ctx, days); err != nil {
			appLogger.Warn("Interaction pruning failed", zap.Error(err))
		}
	}

	// Initialize handlers
	h := api.Handlers{
		Catalog: handlers.NewCatalogHandler(catalogService, appLogger),
		Chat:    handlers.NewChatHandler(chatService, appLogger),
		Pages:   handlers.NewPageHandler(catalogService, chatService, appLogger),
	}

	// Setup router
	app := api.SetupRouter(h, web.NewViews(), db, m, api.Options{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}

// newCompleter picks the remote provider. A nil completer makes the resolver answer locally.
func newCompleter(ctx context.Context, cfg *config.AIConfig, logger *zap.Logger) (service.ChatCompleter, func()) {
	noop := func() {}
	if !cfg.Configured() {
		logger.Warn("AI service not configured, answering from local knowledge only",
			zap.String("provider", cfg.Provider))
		return nil, noop
	}

	switch cfg.Provider {
	case config.ProviderGigaChat:
		client, err := service.NewGigaChatCompleter(ctx, cfg, logger)
		if err != nil {
			logger.Warn("Failed to initialize GigaChat, answering from local knowledge only", zap.Error(err))
			return nil, noop
		}
		return client, func() { _ = client.Close() }
	default:
		return service.NewOpenAICompleter(cfg, logger), noop
	}
}
