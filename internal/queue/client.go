package queue

import (
	"context"

	"github.com/Raymond9734/community-site/internal/models"
)

// Client defines the interface for the enquiry hand-off queue
type Client interface {
	// Publish appends an enquiry job to the queue
	Publish(ctx context.Context, job *models.EnquiryJob) error

	// Consume pops jobs and runs handler on them, at most concurrency at a time
	Consume(ctx context.Context, handler JobHandler, concurrency int) error

	// Length returns the number of jobs waiting
	Length(ctx context.Context) (int64, error)

	// Close closes the queue connection
	Close() error

	// Health checks if the queue is healthy
	Health(ctx context.Context) error
}

// JobHandler processes one enquiry job
type JobHandler func(ctx context.Context, job *models.EnquiryJob) error
