package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Raymond9734/community-site/internal/models"
	"github.com/Raymond9734/community-site/internal/queue"
)

// EnquiryProcessor forwards queued enquiries to the intake and requeues failures
type EnquiryProcessor struct {
	queueClient queue.Client
	sender      IntakeSender
	maxAttempts int
	logger      *slog.Logger
}

// NewEnquiryProcessor creates a new enquiry processor
func NewEnquiryProcessor(
	queueClient queue.Client,
	sender IntakeSender,
	maxAttempts int,
	logger *slog.Logger,
) *EnquiryProcessor {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &EnquiryProcessor{
		queueClient: queueClient,
		sender:      sender,
		maxAttempts: maxAttempts,
		logger:      logger,
	}
}

// Process delivers one enquiry job
func (p *EnquiryProcessor) Process(ctx context.Context, job *models.EnquiryJob) error {
	if job.ID == "" {
		return models.ErrInvalidInput("enquiry job has no id")
	}

	p.logger.Info("delivering enquiry",
		slog.String("enquiry_id", job.ID),
		slog.String("inquiry_type", job.Enquiry.InquiryType),
		slog.Int("attempt", job.Attempt),
	)

	if err := p.sender.Deliver(ctx, job); err != nil {
		p.logger.Warn("enquiry delivery failed",
			slog.String("enquiry_id", job.ID),
			slog.Int("attempt", job.Attempt),
			slog.String("error", err.Error()),
		)
		return p.handleFailure(ctx, job, err)
	}

	p.logger.Info("enquiry delivered",
		slog.String("enquiry_id", job.ID),
		slog.Int("attempt", job.Attempt),
	)
	return nil
}

// handleFailure requeues the job until maxAttempts deliveries have been tried
func (p *EnquiryProcessor) handleFailure(ctx context.Context, job *models.EnquiryJob, sendErr error) error {
	if job.Attempt >= p.maxAttempts {
		p.logger.Error("enquiry dropped after max attempts",
			slog.String("enquiry_id", job.ID),
			slog.Int("attempts", job.Attempt),
			slog.Int("max_attempts", p.maxAttempts),
		)
		return fmt.Errorf("max attempts exceeded: %w", sendErr)
	}

	retry := *job
	retry.Attempt++

	if err := p.queueClient.Publish(ctx, &retry); err != nil {
		p.logger.Error("failed to requeue enquiry",
			slog.String("enquiry_id", job.ID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to requeue enquiry: %w", err)
	}

	p.logger.Info("enquiry will be retried",
		slog.String("enquiry_id", job.ID),
		slog.Int("next_attempt", retry.Attempt),
		slog.Int("max_attempts", p.maxAttempts),
	)
	return nil
}
