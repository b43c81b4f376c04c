package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/Raymond9734/community-site/internal/models"
)

// Status texts shown in the form's result area
const (
	StatusCorrectErrors   = "Please correct the errors in the form."
	StatusSubmitting      = "Submitting your enquiry..."
	StatusStillSubmitting = "Your previous enquiry is still being submitted."
	StatusSubmitFailed    = "We could not submit your enquiry. Please try again."
)

// FormView is the set of slots the controller writes to.
// Implementations render them; the controller never reads them back.
type FormView interface {
	// ClearErrors empties every field error slot
	ClearErrors()
	SetFieldError(field models.Field, message string)
	SetStatus(text string, style models.StatusStyle)
	// Reset empties every input field
	Reset()
}

// EnquiryController validates one form's submissions and forwards accepted ones.
// A controller belongs to a single form; it refuses a second submission while one is in flight.
type EnquiryController struct {
	validator *EnquiryValidator
	submitter SubmissionService
	logger    *slog.Logger
	inFlight  atomic.Bool
}

// NewEnquiryController creates a controller for one form
func NewEnquiryController(validator *EnquiryValidator, submitter SubmissionService, logger *slog.Logger) *EnquiryController {
	return &EnquiryController{
		validator: validator,
		submitter: submitter,
		logger:    logger,
	}
}

// InFlight reports whether a submission is waiting on the intake
func (c *EnquiryController) InFlight() bool {
	return c.inFlight.Load()
}

// ValidateAndSubmit runs every rule against form and writes the results into view.
// Rejected outcomes are not errors; errors mean the enquiry could not be handed off.
func (c *EnquiryController) ValidateAndSubmit(ctx context.Context, form models.EnquiryForm, view FormView) (*models.Outcome, error) {
	view.ClearErrors()
	view.SetStatus("", models.StatusNormal)

	result, err := c.validator.Validate(form)
	if err != nil {
		return nil, fmt.Errorf("failed to validate enquiry: %w", err)
	}

	if !result.Valid() {
		for _, fe := range result.Ordered() {
			view.SetFieldError(fe.Field, fe.Message)
		}
		view.SetStatus(StatusCorrectErrors, models.StatusError)

		c.logger.Info("enquiry rejected",
			slog.Int("error_count", len(result.Errors)),
		)
		return models.Rejected(result), nil
	}

	if !c.inFlight.CompareAndSwap(false, true) {
		view.SetStatus(StatusStillSubmitting, models.StatusError)
		c.logger.Warn("enquiry refused while another is in flight")
		return nil, models.ErrConflictWithMsg("an enquiry is already being submitted", models.ErrSubmissionInFlight)
	}
	defer c.inFlight.Store(false)

	view.SetStatus(StatusSubmitting, models.StatusNormal)

	confirmation, err := c.submitter.Submit(ctx, form)
	if err != nil {
		view.SetStatus(StatusSubmitFailed, models.StatusError)
		c.logger.Error("enquiry submission failed", slog.String("error", err.Error()))
		return nil, models.ErrSubmissionFailed(err)
	}

	view.SetStatus(confirmation, models.StatusNormal)
	view.Reset()

	return models.Accepted(confirmation), nil
}
