package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Raymond9734/community-site/internal/models"
)

const maxConcurrency = 5

// redisClient implements Client on a Redis list
type redisClient struct {
	client    *redis.Client
	queueName string
	logger    *slog.Logger
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL       string
	QueueName string
}

// NewRedisClient connects to Redis and returns a queue client
func NewRedisClient(cfg RedisConfig, logger *slog.Logger) (Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("connected to Redis",
		slog.String("addr", opts.Addr),
		slog.String("queue", cfg.QueueName),
	)

	return &redisClient{
		client:    client,
		queueName: cfg.QueueName,
		logger:    logger,
	}, nil
}

// Publish serialises the job and pushes it on the list (LPUSH + BRPOP gives FIFO)
func (c *redisClient) Publish(ctx context.Context, job *models.EnquiryJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}

	if err := c.client.LPush(ctx, c.queueName, data).Err(); err != nil {
		return fmt.Errorf("failed to push job to queue: %w", err)
	}

	c.logger.Debug("enquiry job published",
		slog.String("enquiry_id", job.ID),
		slog.Int("attempt", job.Attempt),
	)

	return nil
}

// Consume blocks popping jobs until ctx is cancelled, then waits for in-flight jobs
func (c *redisClient) Consume(ctx context.Context, handler JobHandler, concurrency int) error {
	if concurrency < 1 {
		concurrency = 1
	}
	if concurrency > maxConcurrency {
		concurrency = maxConcurrency
	}

	c.logger.Info("starting queue consumer",
		slog.String("queue", c.queueName),
		slog.Int("concurrency", concurrency),
	)

	semaphore := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for {
		if ctx.Err() != nil {
			c.logger.Info("consumer stopped, waiting for in-flight jobs")
			wg.Wait()
			return ctx.Err()
		}

		result, err := c.client.BRPop(ctx, 1*time.Second, c.queueName).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				continue
			}
			c.logger.Error("failed to pop from queue", slog.String("error", err.Error()))
			select {
			case <-time.After(1 * time.Second):
			case <-ctx.Done():
			}
			continue
		}

		// BRPOP returns [queueName, value]
		if len(result) < 2 {
			c.logger.Error("unexpected BRPOP result format")
			continue
		}

		var job models.EnquiryJob
		if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
			c.logger.Error("failed to unmarshal job",
				slog.String("error", err.Error()),
				slog.String("data", result[1]),
			)
			continue
		}

		semaphore <- struct{}{}
		wg.Add(1)

		go func(job models.EnquiryJob) {
			defer func() {
				<-semaphore
				wg.Done()
			}()

			// Jobs already popped are finished even when shutdown starts
			if err := handler(context.WithoutCancel(ctx), &job); err != nil {
				c.logger.Error("handler failed to process job",
					slog.String("enquiry_id", job.ID),
					slog.String("error", err.Error()),
				)
			}
		}(job)
	}
}

// Length returns the number of queued jobs
func (c *redisClient) Length(ctx context.Context) (int64, error) {
	length, err := c.client.LLen(ctx, c.queueName).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get queue length: %w", err)
	}
	return length, nil
}

// Close closes the Redis connection
func (c *redisClient) Close() error {
	c.logger.Info("closing Redis connection")
	return c.client.Close()
}

// Health checks if Redis is healthy
func (c *redisClient) Health(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis health check failed: %w", err)
	}
	return nil
}
