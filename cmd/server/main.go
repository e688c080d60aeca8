package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"munidocs/internal/accounting"
	"munidocs/internal/config"
	"munidocs/internal/handler"
	"munidocs/internal/llm"
	"munidocs/internal/logger"
	"munidocs/internal/observability"
	"munidocs/internal/port"
	"munidocs/internal/repository/postgres"
	"munidocs/internal/router"
	"munidocs/internal/service"
	"munidocs/internal/signature"
	s3storage "munidocs/internal/storage/s3"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	zl, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = zl.Sync() }()

	// Missing secrets degrade the affected requests instead of blocking startup.
	for _, cfgErr := range cfg.Validate() {
		zl.Warn("configuration incomplete", zap.String("key", cfgErr.Key))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.InitTracing(ctx, &cfg.Tracing, cfg.Server.Environment, zl)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			zl.Warn("tracing shutdown failed", zap.Error(err))
		}
	}()

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	docRepo := postgres.NewDocumentRepo(db)
	usageRepo := postgres.NewUsageRepo(db)
	userConfigRepo := postgres.NewUserConfigRepo(db)
	normativaRepo := postgres.NewNormativaRepo(db)

	// Initialize storage
	var archive port.ArchiveStorage
	if cfg.S3.Enabled() {
		archive, err = s3storage.NewArchiveStore(ctx, &cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	} else {
		zl.Info("archive storage disabled; set MUNIDOCS_S3_BUCKET to enable")
	}

	invoker, err := llm.NewInvoker(&cfg.LLM)
	if err != nil {
		return fmt.Errorf("failed to initialize llm invoker: %w", err)
	}
	accountant := accounting.NewAccountant(accounting.Rates{
		InputPerToken:  cfg.LLM.RateIn,
		OutputPerToken: cfg.LLM.RateOut,
	}, nil)
	composer := signature.NewComposer(cfg.Institution.Name, cfg.Institution.DefaultRole)

	// Initialize services
	authSvc := service.NewAuthService(cfg.JWT)
	writer := service.NewDocumentWriter(docRepo, usageRepo, zl)
	generationSvc := service.NewGenerationService(invoker, accountant, composer, writer, userConfigRepo, zl)
	documentSvc := service.NewDocumentService(docRepo, archive, zl)
	usageSvc := service.NewUsageService(usageRepo)
	userConfigSvc := service.NewUserConfigService(userConfigRepo)
	normativaSvc := service.NewNormativaService(normativaRepo)

	// Setup router
	r := router.Setup(authSvc, router.Handlers{
		Generation: handler.NewGenerationHandler(generationSvc),
		Document:   handler.NewDocumentHandler(documentSvc),
		Usage:      handler.NewUsageHandler(usageSvc),
		UserConfig: handler.NewUserConfigHandler(userConfigSvc),
		Normativa:  handler.NewNormativaHandler(normativaSvc),
		Health:     handler.NewHealthHandler(db),
	}, router.Options{
		ServiceName:    cfg.Tracing.ServiceName,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Tracing:        cfg.Tracing.Enabled,
	}, zl)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("server starting",
			zap.String("addr", cfg.Server.Port),
			zap.String("llm_provider", invoker.Provider()),
			zap.String("environment", cfg.Server.Environment),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		zl.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
