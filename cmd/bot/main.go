package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Freeeeeet/afterschool_planner/internal/app"
	"github.com/Freeeeeet/afterschool_planner/internal/catalog"
	"github.com/Freeeeeet/afterschool_planner/internal/checkout"
	"github.com/Freeeeeet/afterschool_planner/internal/config"
	"github.com/Freeeeeet/afterschool_planner/internal/controller"
	"github.com/Freeeeeet/afterschool_planner/internal/controller/state"
	httpx "github.com/Freeeeeet/afterschool_planner/internal/infra/http"
	"github.com/Freeeeeet/afterschool_planner/internal/metrics"
	"github.com/Freeeeeet/afterschool_planner/internal/planner"
	"github.com/Freeeeeet/afterschool_planner/internal/repository"
	"github.com/Freeeeeet/afterschool_planner/internal/service"
	"github.com/Freeeeeet/afterschool_planner/migrations"
	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment, cfg.LogLevel)
	defer logger.Sync()

	logger.Sugar().Infow("Starting afterschool planner",
		"environment", cfg.Environment,
		"catalog_source", cfg.CatalogSource,
		"center", cfg.Center,
		"token_length", len(cfg.TelegramToken))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	// База нужна для каталога из postgres и для хранения заявок
	var pool *pgxpool.Pool
	if cfg.GetDBDSN() != "" {
		pool, err = openDatabase(ctx, cfg.GetDBDSN(), logger)
		if err != nil {
			logger.Fatal("Database setup failed", zap.Error(err))
		}
		defer pool.Close()
	}

	var (
		provider  catalog.Provider
		writer    service.SlotWriter
		submitter checkout.Submitter = checkout.NewLogSubmitter(logger)
		userStore service.UserStore
	)
	if pool != nil {
		submitter = repository.NewEnrollmentRepository(pool)
		userStore = repository.NewUserRepository(pool)
	}

	switch cfg.CatalogSource {
	case config.CatalogSourceFile:
		provider = catalog.NewFileProvider(cfg.CatalogPath)
	case config.CatalogSourceMinIO:
		provider, err = catalog.NewMinIOProvider(catalog.MinIOConfig{
			Endpoint:  cfg.MinIOEndpoint,
			AccessKey: cfg.MinIOAccessKey,
			SecretKey: cfg.MinIOSecretKey,
			UseSSL:    cfg.MinIOUseSSL,
			Bucket:    cfg.MinIOBucket,
			Object:    cfg.MinIOObject,
		})
		if err != nil {
			logger.Fatal("Failed to create MinIO catalog provider", zap.Error(err))
		}
	case config.CatalogSourcePostgres:
		slotRepo := repository.NewClassSlotRepository(pool)
		provider = catalog.ProviderFunc(slotRepo.List)
		writer = slotRepo
	}

	store := catalog.NewStore(provider, logger.Named("catalog"))
	scheduler := app.NewScheduler(store, m, logger.Named("scheduler"))

	// Без каталога бот бесполезен, поэтому первая загрузка обязательна
	if err := scheduler.ReloadCatalog(ctx); err != nil {
		logger.Fatal("Initial catalog load failed", zap.Error(err))
	}
	logger.Info("✅ Catalog loaded",
		zap.Int("slots", store.Len()),
		zap.Int64("version", store.Version()))

	if err := scheduler.Start(ctx, cfg.CatalogReloadCron); err != nil {
		logger.Fatal("Failed to start scheduler", zap.Error(err))
	}
	defer scheduler.Stop()

	plannerService := service.NewPlannerService(store, writer, planner.DefaultTiers, m, logger.Named("planner"))
	checkoutService := checkout.NewService(submitter, planner.DefaultTiers, cfg.Center, logger.Named("checkout"))
	userService := service.NewUserService(userStore, logger.Named("users"))

	var routerMetrics *metrics.Metrics
	if cfg.MetricsEnabled {
		routerMetrics = m
	}
	srv := httpx.New(cfg.HTTPAddr, plannerService, routerMetrics, logger)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", zap.Error(err))
		}
	}()
	logger.Info("HTTP server started", zap.String("addr", cfg.HTTPAddr))

	if cfg.TelegramToken == "" {
		logger.Warn("TELEGRAM_TOKEN is empty, running HTTP API only")
		<-ctx.Done()
	} else {
		sessions := state.NewManager(cfg.SessionTTL)
		sessions.OnEvicted(func(int64) {
			m.ActiveSessions.Set(float64(sessions.Count()))
		})

		b, err := bot.New(cfg.TelegramToken)
		if err != nil {
			logger.Fatal("Failed to create bot", zap.Error(err))
		}

		botController := controller.NewBotController(
			b,
			plannerService,
			userService,
			checkoutService,
			sessions,
			m,
			controller.Options{
				Center:  cfg.Center,
				DevMode: !cfg.IsProduction(),
				Reload:  scheduler.ReloadCatalog,
			},
			logger.Named("bot"),
		)

		if err := botController.RegisterHandlers(ctx); err != nil {
			logger.Warn("Bot commands menu not set", zap.Error(err))
		}

		// Start блокируется до отмены контекста
		_ = botController.Start(ctx)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", zap.Error(err))
	}
	logger.Info("Graceful shutdown complete")
}

// openDatabase подключается к postgres и применяет миграции
func openDatabase(ctx context.Context, dsn string, logger *zap.Logger) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	logger.Info("✅ Database connected")

	migrator, err := app.NewMigrator(pool, migrations.FS, ".", logger.Named("migrator"))
	if err != nil {
		pool.Close()
		return nil, err
	}
	defer migrator.Close()

	if err := migrator.Run(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
