package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Raymond9734/community-site/internal/models"
)

// handleError maps service errors to JSON error responses
func handleError(w http.ResponseWriter, err error, logger *slog.Logger) {
	status, code, message := classifyError(err, logger)
	respondError(w, status, code, message)
}

// handleHTMLError maps service errors to the error page
func handleHTMLError(w http.ResponseWriter, r *http.Request, err error, rd *Renderer, logger *slog.Logger) {
	status, _, message := classifyError(err, logger)
	rd.RenderError(w, r, status, message)
}

// classifyError resolves status, code and client-safe message for err
func classifyError(err error, logger *slog.Logger) (int, string, string) {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		status := mapErrorCodeToHTTPStatus(appErr.Code)
		if status >= http.StatusInternalServerError {
			logger.Error("request failed",
				slog.String("code", appErr.Code),
				slog.String("error", err.Error()),
			)
		}
		return status, appErr.Code, appErr.Message
	}

	switch {
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound, models.CodeNotFound, err.Error()

	case errors.Is(err, models.ErrConflict):
		return http.StatusConflict, models.CodeConflict, err.Error()

	default:
		// Log internal errors but don't expose details to client
		logger.Error("internal server error",
			slog.String("error", err.Error()),
		)
		return http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred"
	}
}

// mapErrorCodeToHTTPStatus maps error codes to HTTP status codes
func mapErrorCodeToHTTPStatus(code string) int {
	switch code {
	case models.CodeInvalidInput:
		return http.StatusBadRequest
	case models.CodeNotFound:
		return http.StatusNotFound
	case models.CodeConflict:
		return http.StatusConflict
	case models.CodeSubmissionFailed:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
