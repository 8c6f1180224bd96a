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

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/adaai/leadcapture/internal/config"
	"github.com/adaai/leadcapture/internal/database"
	"github.com/adaai/leadcapture/internal/handler"
	middlewarepkg "github.com/adaai/leadcapture/internal/middleware"
	"github.com/adaai/leadcapture/internal/observability"
	"github.com/adaai/leadcapture/internal/repository"
	"github.com/adaai/leadcapture/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, cleanup, err := newRepository(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer cleanup()

	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatalf("failed to ensure schema: %v", err)
	}

	leadsService := service.NewLeadsService(repo, cfg.PhoneRegion)
	metrics := observability.NewLeadMetrics()
	leadsHandler := handler.NewLeadsHandler(leadsService, metrics)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging())
	e.Use(echoMiddleware.Recover())

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, handler.HealthResponse{Status: "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.POST("/api/leads", leadsHandler.Submit, middlewarepkg.SubmitRateLimiter(cfg.RateLimitSubmit))
	e.GET("/api/leads", leadsHandler.List)
	e.Match([]string{http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodHead, http.MethodOptions},
		"/api/leads", leadsHandler.MethodNotAllowed)

	log.Printf("lead capture api listening port=%s backend=%s", cfg.Port, cfg.StoreBackend)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}

// newRepository constructs the store selected by the injected configuration
// value. The rest of the process depends only on the repository contract.
func newRepository(ctx context.Context, cfg *config.Config) (repository.LeadsRepository, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		pool, err := database.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect database: %w", err)
		}
		return repository.NewPGXLeadsRepository(pool), pool.Close, nil
	default:
		db, err := database.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite: %w", err)
		}
		return repository.NewSQLiteLeadsRepository(db), func() { _ = db.Close() }, nil
	}
}
