package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Raymond9734/community-site/internal/models"
	"github.com/Raymond9734/community-site/internal/queue"
)

// SubmissionService hands an accepted enquiry to the intake and returns the confirmation to show
type SubmissionService interface {
	Submit(ctx context.Context, form models.EnquiryForm) (string, error)
}

// simulatedSubmitter stands in for the intake with a fixed latency
type simulatedSubmitter struct {
	delay       time.Duration
	templateSvc TemplateService
	logger      *slog.Logger
}

// NewSimulatedSubmitter creates a submitter that answers after delay.
// The wait is not cancellable: once started it always runs to completion.
func NewSimulatedSubmitter(delay time.Duration, templateSvc TemplateService, logger *slog.Logger) SubmissionService {
	return &simulatedSubmitter{
		delay:       delay,
		templateSvc: templateSvc,
		logger:      logger,
	}
}

// Submit waits out the simulated latency and renders the confirmation
func (s *simulatedSubmitter) Submit(ctx context.Context, form models.EnquiryForm) (string, error) {
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		<-timer.C
	}

	confirmation, err := s.templateSvc.Confirmation(&form)
	if err != nil {
		return "", fmt.Errorf("failed to render confirmation: %w", err)
	}

	s.logger.Info("enquiry submitted",
		slog.String("mode", "simulated"),
		slog.String("inquiry_type", form.InquiryType),
		slog.Duration("delay", s.delay),
	)

	return confirmation, nil
}

// queueSubmitter publishes accepted enquiries for the intake worker
type queueSubmitter struct {
	queueClient queue.Client
	templateSvc TemplateService
	logger      *slog.Logger
	now         func() time.Time
	newID       func() string
}

// NewQueueSubmitter creates a submitter that hands enquiries to the queue
func NewQueueSubmitter(queueClient queue.Client, templateSvc TemplateService, logger *slog.Logger) SubmissionService {
	return &queueSubmitter{
		queueClient: queueClient,
		templateSvc: templateSvc,
		logger:      logger,
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// Submit enqueues the enquiry and renders the confirmation once it is queued
func (s *queueSubmitter) Submit(ctx context.Context, form models.EnquiryForm) (string, error) {
	confirmation, err := s.templateSvc.Confirmation(&form)
	if err != nil {
		return "", fmt.Errorf("failed to render confirmation: %w", err)
	}

	job := &models.EnquiryJob{
		ID:          s.newID(),
		Enquiry:     form,
		Attempt:     1,
		SubmittedAt: s.now().UTC(),
	}

	if err := s.queueClient.Publish(ctx, job); err != nil {
		s.logger.Error("failed to queue enquiry",
			slog.String("enquiry_id", job.ID),
			slog.String("error", err.Error()),
		)
		return "", fmt.Errorf("failed to queue enquiry: %w", err)
	}

	s.logger.Info("enquiry submitted",
		slog.String("mode", "queue"),
		slog.String("enquiry_id", job.ID),
		slog.String("inquiry_type", form.InquiryType),
	)

	return confirmation, nil
}
