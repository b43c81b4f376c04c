package worker

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/Raymond9734/community-site/internal/models"
)

// ErrIntakeUnavailable is returned by the mock intake on a simulated failure
var ErrIntakeUnavailable = errors.New("enquiry intake unavailable")

// IntakeSender delivers an enquiry to the external intake service
type IntakeSender interface {
	Deliver(ctx context.Context, job *models.EnquiryJob) error
}

// mockIntakeSender simulates the intake with latency and a success rate
type mockIntakeSender struct {
	successRate float64
	minDelay    time.Duration
	maxDelay    time.Duration
}

// NewMockIntakeSender creates a new mock intake.
// successRate is the probability of success (0.0 to 1.0), default 0.92.
func NewMockIntakeSender(successRate float64) IntakeSender {
	if successRate <= 0 || successRate > 1.0 {
		successRate = 0.92
	}

	return &mockIntakeSender{
		successRate: successRate,
		minDelay:    50 * time.Millisecond,
		maxDelay:    200 * time.Millisecond,
	}
}

// Deliver waits a random latency, then succeeds or fails at the configured rate
func (s *mockIntakeSender) Deliver(ctx context.Context, job *models.EnquiryJob) error {
	delay := s.minDelay + time.Duration(rand.Int63n(int64(s.maxDelay-s.minDelay)))

	select {
	case <-time.After(delay):
	case <-ctx.Done():
		return ctx.Err()
	}

	if rand.Float64() > s.successRate {
		return ErrIntakeUnavailable
	}
	return nil
}
