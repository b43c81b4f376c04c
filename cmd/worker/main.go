package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Raymond9734/community-site/internal/config"
	"github.com/Raymond9734/community-site/internal/models"
	"github.com/Raymond9734/community-site/internal/queue"
	"github.com/Raymond9734/community-site/internal/worker"
)

func main() {
	// Initialize logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	logger.Info("starting enquiry intake worker")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("worker stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	// Connect to Redis queue
	queueClient, err := queue.NewRedisClient(queue.RedisConfig{
		URL:       cfg.Queue.RedisURL,
		QueueName: cfg.Queue.QueueName,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	defer queueClient.Close()

	if pending, err := queueClient.Length(context.Background()); err == nil {
		logger.Info("connected to Redis queue", slog.Int64("pending", pending))
	} else {
		logger.Warn("failed to read queue length", slog.String("error", err.Error()))
	}

	sender := worker.NewMockIntakeSender(cfg.Worker.IntakeSuccessRate)
	processor := worker.NewEnquiryProcessor(
		queueClient,
		sender,
		cfg.Worker.MaxRetryCount,
		logger,
	)

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consumerErrors := make(chan error, 1)
	go func() {
		logger.Info("starting enquiry consumer",
			slog.Int("concurrency", cfg.Worker.Concurrency),
			slog.Int("max_retry_count", cfg.Worker.MaxRetryCount),
		)

		handler := func(ctx context.Context, job *models.EnquiryJob) error {
			return processor.Process(ctx, job)
		}

		consumerErrors <- queueClient.Consume(ctx, handler, cfg.Worker.Concurrency)
	}()

	// Wait for interrupt signal or consumer error
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-consumerErrors:
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("consumer error: %w", err)
		}

	case sig := <-quit:
		logger.Info("shutting down worker", slog.String("signal", sig.String()))
		cancel()

		// Consume returns once in-flight deliveries finish
		select {
		case <-consumerErrors:
		case <-time.After(30 * time.Second):
			logger.Warn("timed out waiting for in-flight deliveries")
		}

		logger.Info("worker stopped gracefully")
	}
	return nil
}
