package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wordtrainer/internal/config"
	"wordtrainer/internal/handler"
	"wordtrainer/internal/repository"
	"wordtrainer/internal/repository/memory"
	"wordtrainer/internal/repository/postgres"
	"wordtrainer/internal/repository/redisstore"
	"wordtrainer/internal/service"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting word trainer bot")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	logger.Info("Configuration loaded successfully", zap.String("storage", cfg.StorageDriver))

	// Initialize repositories
	store, users, closer, err := openStorage(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open storage", zap.Error(err))
	}
	defer closer.Close()

	// Initialize Telegram bot
	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.BotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	logger.Info("Telegram bot initialized")

	// Initialize services
	renderer := handler.NewEventRenderer(bot, logger)
	trainers := service.NewRegistry(store, renderer.For, service.TrainerOptions{
		AnswerDelay: cfg.Trainer.AnswerDelay,
	}, logger)
	authService := service.NewAuthService(users, cfg.BotPassword)

	// Initialize handler
	h := handler.NewHandler(bot, authService, trainers, cfg.Trainer.SystemPrefersDark, logger)
	h.RegisterHandlers()

	logger.Info("Handlers registered")

	// Start autosave job in background
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		runAutosaveJob(ctx, trainers, cfg.Trainer.AutosaveInterval, logger)
	}()

	// Start bot in background
	go func() {
		logger.Info("Bot started successfully")
		bot.Start()
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping bot...")

	// Graceful shutdown
	bot.Stop()
	cancel()
	<-done

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	trainers.StopAll(shutdownCtx)
	if err := trainers.FlushAll(shutdownCtx); err != nil {
		logger.Error("Failed to save trainers on shutdown", zap.Error(err))
	}

	logger.Info("Bot stopped gracefully")
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// openStorage builds the repositories for the configured driver
func openStorage(cfg *config.Config, logger *zap.Logger) (repository.KeyValueStore, repository.UserRepository, io.Closer, error) {
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		db, err := connectDatabase(cfg.DSN(), logger)
		if err != nil {
			return nil, nil, nil, err
		}
		logger.Info("Database connection established")

		if err := postgres.Migrate(db, logger); err != nil {
			db.Close()
			return nil, nil, nil, err
		}
		logger.Info("Database migrations completed")

		return postgres.NewKVRepo(db), postgres.NewUserRepo(db), db, nil

	case config.DriverRedis:
		client, err := redisstore.NewClient(redisstore.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, nil, err
		}
		logger.Info("Redis connection established", zap.String("addr", cfg.Redis.Addr))

		return redisstore.NewKVRepo(client), redisstore.NewUserRepo(client), client, nil

	default:
		logger.Warn("Using in-memory storage, nothing survives a restart")
		return memory.NewKVStore(), memory.NewUserRepo(), nopCloser{}, nil
	}
}

// connectDatabase connects to PostgreSQL with retries
func connectDatabase(dsn string, logger *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(retryDelay)
			continue
		}

		// Test connection
		if err = db.Ping(); err != nil {
			logger.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(retryDelay)
			continue
		}

		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(2)
		db.SetConnMaxLifetime(5 * time.Minute)

		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// runAutosaveJob periodically saves every loaded trainer
func runAutosaveJob(ctx context.Context, trainers *service.Registry, interval time.Duration, logger *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Autosave job stopped")
			return
		case <-ticker.C:
			if err := trainers.FlushAll(ctx); err != nil {
				logger.Error("Scheduled autosave failed", zap.Error(err))
			}
		}
	}
}
