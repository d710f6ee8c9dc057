package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/benvon/diary-bot/internal/bot"
	"github.com/benvon/diary-bot/internal/catalog"
	"github.com/benvon/diary-bot/internal/config"
	"github.com/benvon/diary-bot/internal/database"
	"github.com/benvon/diary-bot/internal/handlers"
	"github.com/benvon/diary-bot/internal/logger"
	"github.com/benvon/diary-bot/internal/services/transcription"
	"github.com/benvon/diary-bot/internal/session"
)

func main() {
	debugFlag := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	debugMode := cfg.BotDebugMode || *debugFlag

	// Initialize logger
	zapLogger, err := logger.NewProductionLogger(debugMode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() {
		if syncErr := zapLogger.Sync(); syncErr != nil {
			// Ignore sync errors in production
			_ = syncErr
		}
	}()

	zapLogger.Info("starting_bot",
		zap.Bool("debug_mode", debugMode),
		zap.String("transcription_model", cfg.TranscriptionModel),
		zap.String("health_addr", cfg.HealthAddr),
	)

	// Load the tag catalog
	tagCatalog := catalog.Default()
	if cfg.TagsFile != "" {
		tagCatalog, err = catalog.Load(cfg.TagsFile)
		if err != nil {
			zapLogger.Fatal("failed_to_load_tag_catalog",
				zap.String("tags_file", cfg.TagsFile),
				zap.Error(err),
			)
		}
	}
	zapLogger.Info("tag_catalog_loaded", zap.Int("tag_count", tagCatalog.Len()))

	// Connect to database
	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		zapLogger.Fatal("failed_to_connect_to_database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			zapLogger.Warn("failed_to_close_database_connection", zap.Error(err))
		}
	}()
	zapLogger.Info("connected_to_database")

	// Initialize repositories and services
	entryRepo := database.NewEntryRepository(db)
	transcriber := transcription.NewOpenAIProvider(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.TranscriptionModel, zapLogger)
	sessions := session.NewStore()

	// Connect to Telegram
	api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		zapLogger.Fatal("failed_to_connect_to_telegram", zap.Error(err))
	}
	zapLogger.Info("connected_to_telegram", zap.String("bot_username", api.Self.UserName))

	handler := bot.NewHandler(api, transcriber, entryRepo, sessions, tagCatalog, zapLogger)
	diaryBot := bot.New(api, handler, zapLogger)

	// Health endpoint
	var healthSrv *http.Server
	if cfg.HealthAddr != "" {
		r := mux.NewRouter()
		handlers.NewHealthChecker(db).RegisterRoutes(r)

		healthSrv = &http.Server{
			Addr:         cfg.HealthAddr,
			Handler:      r,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
		}

		go func() {
			zapLogger.Info("health_server_starting", zap.String("addr", cfg.HealthAddr))
			if err := healthSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				zapLogger.Error("health_server_failed", zap.Error(err))
			}
		}()
	}

	// Run the polling loop until interrupted
	runCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		diaryBot.Run(runCtx)
		close(done)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("bot_shutting_down")
	cancel()
	<-done

	if healthSrv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := healthSrv.Shutdown(shutdownCtx); err != nil {
			zapLogger.Warn("health_server_forced_to_shutdown", zap.Error(err))
		}
	}

	zapLogger.Info("bot_exited")
}
