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

	"memoai-backend/internal/api"
	"memoai-backend/internal/config"
	"memoai-backend/internal/handlers"
	"memoai-backend/internal/llm"
	"memoai-backend/internal/models"
	"memoai-backend/internal/services"
	"memoai-backend/internal/store/notion"
)

func main() {
	log.Println("Starting Memo AI Backend...")

	// 1. Load Configuration
	cfg, err := config.LoadConfig() // Using the function from internal/config
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}
	log.Println("Configuration loaded successfully.")

	// 2. Initialize Notion Store
	notionStore := notion.NewNotionStore(cfg.NotionAPIKey)
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer pingCancel()
	if err := notionStore.Ping(pingCtx); err != nil {
		// Notion being unreachable at boot is not fatal; requests will
		// surface their own errors once it is back.
		log.Printf("WARN: Notion ping failed: %v", err)
	} else {
		log.Println("Notion store initialized and pinged successfully.")
	}

	// 3. Initialize Completion Client
	generator := llm.NewClient(llm.Config{
		BaseURL:        cfg.LLMBaseURL,
		APIKey:         cfg.LLMAPIKey,
		AttemptTimeout: cfg.LLMTimeout,
		MaxRetries:     cfg.LLMMaxRetries,
		RetryBackoff:   cfg.LLMRetryBackoff,
		Verbose:        cfg.LLMVerbose,
	})
	log.Println("Completion client initialized.")

	// --- Initialize Services ---
	analyzeService := services.NewAnalyzeService(notionStore, generator, cfg.DefaultTextModel, cfg.Location)
	log.Println("AnalyzeService initialized.")
	chatService := services.NewChatService(notionStore, generator, cfg.DefaultTextModel, cfg.DefaultMultimodalModel, cfg.Location)
	log.Println("ChatService initialized.")
	saveService := services.NewSaveService(notionStore)
	log.Println("SaveService initialized.")
	targetsService := services.NewTargetsService(notionStore, cfg.NotionRootPageID)
	log.Println("TargetsService initialized.")
	contentService := services.NewContentService(notionStore)
	log.Println("ContentService initialized.")
	configService := services.NewConfigService(notionStore, cfg.NotionRootPageID, cfg.NotionConfigDBID)
	log.Println("ConfigService initialized.")

	// --- Initialize Handlers ---
	analyzeHandler := handlers.NewAnalyzeHandler(analyzeService)
	chatHandler := handlers.NewChatHandler(chatService)
	saveHandler := handlers.NewSaveHandler(saveService)
	targetsHandler := handlers.NewTargetsHandler(targetsService)
	contentHandler := handlers.NewContentHandler(contentService)
	metaHandler := handlers.NewMetaHandler(configService, models.ModelDefaults{
		Text:       cfg.DefaultTextModel,
		Multimodal: cfg.DefaultMultimodalModel,
	})
	log.Println("Handlers initialized.")

	// 4. Setup Router & Inject Dependencies
	routerDeps := api.RouterDependencies{
		AnalyzeHandler: analyzeHandler,
		ChatHandler:    chatHandler,
		SaveHandler:    saveHandler,
		TargetsHandler: targetsHandler,
		ContentHandler: contentHandler,
		MetaHandler:    metaHandler,
	}
	router := api.NewRouter(routerDeps) // Use the NewRouter function from internal/api
	log.Println("HTTP router configured.")

	// 5. Configure and Start HTTP Server
	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
		// Production hardening: Set timeouts to avoid Slowloris attacks.
		// WriteTimeout must outlast the 60s request timeout, since a slow
		// completion with retries can legitimately take most of that.
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Channel to listen for OS signals for graceful shutdown
	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, syscall.SIGINT, syscall.SIGTERM)

	// Run server in a goroutine so it doesn't block
	go func() {
		log.Printf("Server starting and listening on port %s", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: Could not listen on %s: %v\n", cfg.HTTPPort, err)
		}
		log.Println("Server listener routine stopped.")
	}()

	// Wait for interrupt signal
	<-stopChan
	log.Println("Shutdown signal received, initiating graceful shutdown...")

	// Create a deadline context for shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	// Attempt graceful shutdown
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("WARN: Server graceful shutdown failed: %v", err)
		log.Fatal("Forcing shutdown due to error.") // Or handle more gracefully
	}

	log.Println("Server shutdown complete.")
}
