package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/mdesouza/encomendas/internal"
	"github.com/mdesouza/encomendas/internal/cep"
	"github.com/mdesouza/encomendas/internal/handler"
	"github.com/mdesouza/encomendas/internal/middleware"
	"github.com/mdesouza/encomendas/internal/postgres"
	"github.com/mdesouza/encomendas/internal/routes"
	"github.com/mdesouza/encomendas/internal/validate"
)

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Run migrations over a short-lived database/sql connection
	logger.Info().Msg("Connecting to database...")
	sqlDB, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return fmt.Errorf("database ping failed: %w", err)
	}

	logger.Info().Msg("Running database migrations...")
	if err := internal.RunMigrations(sqlDB); err != nil {
		sqlDB.Close()
		return fmt.Errorf("migration failed: %w", err)
	}
	sqlDB.Close()
	logger.Info().Msg("Database migrations completed successfully")

	// Initialize pgx connection pool for the application
	pool, err := postgres.Open(ctx, cfg.DatabaseUrl)
	if err != nil {
		return err
	}
	defer pool.Close()
	logger.Info().Msg("Database connection established")

	// Wire dependencies
	store := postgres.NewEncomendaStore(pool)
	resolver := cep.NewClient(cfg.ViaCEP.BaseURL, cfg.ViaCEP.Timeout)
	validator := validate.New()
	metrics := middleware.NewMetrics("encomendas", nil)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(
		echomw.RequestID(),
		echomw.Recover(),
		metrics.Middleware(),
		middleware.RequestLogger(logger),
	)

	routes.Register(e, routes.Deps{
		Encomendas: handler.NewEncomendaHandler(store, validator, logger),
		Endereco:   handler.NewCEPHandler(resolver, logger),
		Metrics:    metrics,
	})

	// Serve until interrupted, then drain in-flight requests
	addr := fmt.Sprintf(":%d", cfg.Port)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("address", addr).Msg("Starting server")
		errCh <- e.Start(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		logger.Info().Msg("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
