package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Raymond9734/community-site/internal/config"
	"github.com/Raymond9734/community-site/internal/db"
	"github.com/Raymond9734/community-site/internal/handler"
	"github.com/Raymond9734/community-site/internal/queue"
	"github.com/Raymond9734/community-site/internal/repository"
	"github.com/Raymond9734/community-site/internal/service"
	"github.com/Raymond9734/community-site/web"
)

func main() {
	// Initialize logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	logger.Info("starting community site")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("community site stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	checks := map[string]handler.HealthChecker{
		"database": nil,
		"queue":    nil,
	}

	// Load the catalogue file; it seeds the database when the catalogue lives in PostgreSQL
	products, err := repository.LoadCatalogFile(cfg.Catalog.Path)
	if err != nil {
		return err
	}

	var productRepo repository.ProductRepository
	if cfg.UsesDatabase() {
		database, err := db.New(db.Config{
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			DBName:   cfg.Database.DBName,
			SSLMode:  cfg.Database.SSLMode,
		})
		if err != nil {
			return err
		}
		defer database.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := database.Migrate(ctx); err != nil {
			return err
		}

		logger.Info("connected to database")
		checks["database"] = database
		productRepo = repository.NewProductRepository(database.DB)
	} else {
		productRepo = repository.NewYAMLProductRepository(products)
	}

	catalogSvc := service.NewCatalogService(productRepo, logger)
	if cfg.UsesDatabase() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := catalogSvc.Import(ctx, products); err != nil {
			return fmt.Errorf("failed to seed catalogue: %w", err)
		}
	}
	logger.Info("catalogue loaded",
		slog.String("source", cfg.Catalog.Source),
		slog.Int("products", len(products)),
	)

	// Choose how accepted enquiries are handed off
	templateSvc := service.NewTemplateService()
	if err := templateSvc.CheckConfirmations(); err != nil {
		return fmt.Errorf("invalid confirmation templates: %w", err)
	}
	var submitter service.SubmissionService
	if cfg.UsesQueue() {
		queueClient, err := queue.NewRedisClient(queue.RedisConfig{
			URL:       cfg.Queue.RedisURL,
			QueueName: cfg.Queue.QueueName,
		}, logger)
		if err != nil {
			return err
		}
		defer queueClient.Close()

		logger.Info("connected to Redis queue")
		checks["queue"] = queueClient
		submitter = service.NewQueueSubmitter(queueClient, templateSvc, logger)
	} else {
		submitter = service.NewSimulatedSubmitter(cfg.Submit.Delay, templateSvc, logger)
	}

	validator := service.NewEnquiryValidator()
	sessions := handler.NewControllerStore(func() *service.EnquiryController {
		return service.NewEnquiryController(validator, submitter, logger)
	})

	templates, err := web.TemplatesFS()
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}
	renderer, err := handler.NewRenderer(templates, logger)
	if err != nil {
		return err
	}
	static, err := web.StaticFS()
	if err != nil {
		return fmt.Errorf("failed to load assets: %w", err)
	}

	router := handler.NewRouter(handler.RouterDeps{
		Pages:     handler.NewPageHandler(renderer),
		Products:  handler.NewProductHandler(catalogSvc, renderer, logger),
		Enquiries: handler.NewEnquiryHandler(sessions, renderer, logger),
		Health:    handler.NewHealthHandler(checks, logger),
		Static:    static,
		Logger:    logger,
	})

	// Create server
	addr := fmt.Sprintf(":%d", cfg.API.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("listening",
			slog.String("addr", addr),
			slog.String("submit_mode", cfg.Submit.Mode),
		)
		serverErrors <- server.ListenAndServe()
	}()

	// Wait for interrupt signal or server error
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case sig := <-quit:
		logger.Info("shutting down server", slog.String("signal", sig.String()))

		// In-flight submissions get the full simulated delay to finish
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info("server stopped gracefully")
	}
	return nil
}
