package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/Raymond9734/community-site/internal/models"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "invalid input", err: models.ErrInvalidInput("bad"), wantStatus: http.StatusBadRequest, wantCode: models.CodeInvalidInput},
		{name: "not found", err: models.ErrNotFoundWithMsg("gone"), wantStatus: http.StatusNotFound, wantCode: models.CodeNotFound},
		{name: "in flight", err: models.ErrConflictWithMsg("busy", models.ErrSubmissionInFlight), wantStatus: http.StatusConflict, wantCode: models.CodeConflict},
		{name: "submission failed", err: models.ErrSubmissionFailed(errors.New("down")), wantStatus: http.StatusServiceUnavailable, wantCode: models.CodeSubmissionFailed},
		{name: "wrapped sentinel", err: fmt.Errorf("lookup: %w", models.ErrNotFound), wantStatus: http.StatusNotFound, wantCode: models.CodeNotFound},
		{name: "unknown", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantCode: "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code, _ := classifyError(tt.err, testLogger())
			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d", status, tt.wantStatus)
			}
			if code != tt.wantCode {
				t.Errorf("code = %q, want %q", code, tt.wantCode)
			}
		})
	}
}

func TestClassifyError_HidesInternalDetails(t *testing.T) {
	_, _, message := classifyError(errors.New("pq: password authentication failed"), testLogger())
	if message != "An unexpected error occurred" {
		t.Errorf("message = %q", message)
	}
}
