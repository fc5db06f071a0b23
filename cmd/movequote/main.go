package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/movequote/movequote/internal/app"
	"github.com/movequote/movequote/internal/catalog"
	"github.com/movequote/movequote/internal/defaults"
	"github.com/movequote/movequote/internal/observability"
	"github.com/movequote/movequote/internal/options"
	pricinghttp "github.com/movequote/movequote/internal/pricing/http"
	"github.com/movequote/movequote/internal/quote"
	"github.com/movequote/movequote/internal/rates"
	"github.com/movequote/movequote/internal/season"
	"github.com/movequote/movequote/internal/snapshot"
	"github.com/movequote/movequote/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Default().Warn("load .env", slog.Any("error", err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}
	logger := app.NewLogger(cfg)

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("movequote", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *app.Config, logger *slog.Logger) error {
	seed, err := defaults.Load(cfg.DefaultsFile)
	if err != nil {
		return err
	}

	store, closeStore, err := app.OpenStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	metrics := observability.NewMetrics()

	var persister snapshot.Persister = snapshot.StorePersister{Store: store}
	var inspector *asynq.Inspector
	if cfg.PersistAsync {
		redisOpts := asynq.RedisClientOpt{Addr: cfg.RedisAddr}
		client := jobs.NewClient(redisOpts)
		defer func() {
			if err := client.Close(); err != nil {
				logger.Warn("asynq client close", slog.Any("error", err))
			}
		}()
		inspector = asynq.NewInspector(redisOpts)
		defer func() {
			if err := inspector.Close(); err != nil {
				logger.Warn("inspector close", slog.Any("error", err))
			}
		}()
		persister = client
	}
	persister = metrics.InstrumentPersister(persister)

	itemCatalog, err := catalog.New(seed.Catalog, persister, logger)
	if err != nil {
		return err
	}
	rateService, err := rates.NewService(seed.Rates, persister, logger)
	if err != nil {
		return err
	}
	seasonService := season.NewService(persister, logger)
	optionRegistry, err := options.NewRegistry(seed.Options)
	if err != nil {
		return err
	}

	restoreCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := itemCatalog.Restore(restoreCtx, store); err != nil {
		return err
	}
	if err := rateService.Restore(restoreCtx, store); err != nil {
		return err
	}
	if err := seasonService.Restore(restoreCtx, store); err != nil {
		return err
	}

	quoteService := quote.NewService(itemCatalog, rateService, seasonService, optionRegistry, metrics, logger)

	var jobHandler *jobs.Handler
	if inspector != nil {
		jobHandler = jobs.NewHandler(inspector, logger)
	} else {
		jobHandler = jobs.NewHandler(nil, logger)
	}

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		PricingHandler: pricinghttp.NewHandler(logger, itemCatalog, rateService, seasonService, optionRegistry, quoteService),
		JobHandler:     jobHandler,
		Metrics:        metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting http server",
			slog.String("addr", cfg.AppAddr),
			slog.String("store", cfg.StoreDriver),
			slog.Bool("persist_async", cfg.PersistAsync))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
