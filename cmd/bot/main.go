package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Freeeeeet/event_registration_bot/internal/app"
	"github.com/Freeeeeet/event_registration_bot/internal/config"
	"github.com/Freeeeeet/event_registration_bot/internal/controller"
	"github.com/Freeeeeet/event_registration_bot/internal/repository"
	"github.com/Freeeeeet/event_registration_bot/internal/repository/memory"
	"github.com/Freeeeeet/event_registration_bot/internal/service"
	"github.com/Freeeeeet/event_registration_bot/internal/sheets"
	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := app.NewLogger(cfg.Environment)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	logger.Sugar().Infow("Starting event registration bot",
		"environment", cfg.Environment,
		"storage", cfg.StorageDriver,
		"admins", len(cfg.AdminIDs),
		"export_enabled", cfg.ExportEnabled())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("Bot exited with error", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("Bot shut down gracefully")
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	// nil-интерфейс означает "выгрузка выключена"
	var exporter service.Exporter
	if cfg.ExportEnabled() {
		client, err := sheets.New(ctx, cfg.GoogleCredentialsFile, cfg.SpreadsheetID, logger)
		if err != nil {
			return fmt.Errorf("init google sheets: %w", err)
		}
		exporter = client
	} else {
		logger.Warn("Google Sheets export is not configured")
	}

	b, err := bot.New(cfg.TelegramToken)
	if err != nil {
		return fmt.Errorf("create bot: %w", err)
	}

	notifier := controller.NewNotifier(b)
	roster := service.NewRosterService(store, notifier, cfg.NotifyTimeout, logger)
	confirmation := service.NewConfirmationService(store, notifier, cfg.NotifyTimeout, logger)
	export := service.NewExportService(store, exporter, logger)
	admin := service.NewAdminService(cfg.AdminIDs, roster, confirmation, export, logger)

	botController := controller.NewBotController(b, controller.Services{
		Roster:       roster,
		Confirmation: confirmation,
		Admin:        admin,
	}, cfg.SessionTTL, logger)

	if err := botController.RegisterHandlers(ctx); err != nil {
		// Без меню команд бот всё равно работает
		logger.Warn("Bot commands menu not set", zap.Error(err))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return botController.Start(gctx)
	})
	g.Go(func() error {
		return app.NewScheduler(export, cfg.ExportInterval, logger).Run(gctx)
	})

	return g.Wait()
}

// openStore выбирает хранилище по STORAGE_DRIVER
func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.Store, func(), error) {
	if cfg.StorageDriver == config.StorageMemory {
		if cfg.IsProduction() {
			return nil, nil, fmt.Errorf("storage %q is not allowed in production", config.StorageMemory)
		}
		logger.Warn("Using in-memory storage, data will be lost on restart")
		return memory.NewStore(), func() {}, nil
	}

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}

	migrator, err := app.NewMigrator(pool, logger)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}
	if err := migrator.Run(ctx); err != nil {
		migrator.Close()
		pool.Close()
		return nil, nil, err
	}

	return repository.NewPgStore(pool), func() {
		if err := migrator.Close(); err != nil {
			logger.Warn("Failed to close migrator", zap.Error(err))
		}
		pool.Close()
	}, nil
}
