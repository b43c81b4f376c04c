package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Raymond9734/community-site/internal/models"
	"github.com/Raymond9734/community-site/internal/service"
)

const maxEnquiryBodyBytes = 64 << 10

// EnquiryHandler handles the enquiry form and its JSON API
type EnquiryHandler struct {
	sessions *ControllerStore
	renderer *Renderer
	logger   *slog.Logger
}

// NewEnquiryHandler creates a new enquiry handler
func NewEnquiryHandler(sessions *ControllerStore, renderer *Renderer, logger *slog.Logger) *EnquiryHandler {
	return &EnquiryHandler{
		sessions: sessions,
		renderer: renderer,
		logger:   logger,
	}
}

// ShowForm handles GET /enquiries
func (h *EnquiryHandler) ShowForm(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, http.StatusOK, "enquiries", "Enquiries", newFormView(models.EnquiryForm{}))
}

// SubmitForm handles POST /enquiries
func (h *EnquiryHandler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxEnquiryBodyBytes)
	if err := r.ParseForm(); err != nil {
		h.renderer.RenderError(w, r, http.StatusBadRequest, "The form could not be read.")
		return
	}

	form := formFromValues(r.PostForm)
	view := newFormView(form)
	controller := h.sessions.ControllerFor(w, r)

	outcome, err := controller.ValidateAndSubmit(r.Context(), form, view)
	status := http.StatusOK
	switch {
	case err != nil:
		status, _, _ = classifyError(err, h.logger)
	case !outcome.IsAccepted():
		status = http.StatusUnprocessableEntity
	}

	h.renderer.Render(w, r, status, "enquiries", "Enquiries", view)
}

// SubmitAPI handles POST /api/enquiries
func (h *EnquiryHandler) SubmitAPI(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxEnquiryBodyBytes)

	var form models.EnquiryForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON format")
		return
	}

	controller := h.sessions.ClientControllerFor(r)
	outcome, err := controller.ValidateAndSubmit(r.Context(), form, newFormView(form))
	if err != nil {
		if errors.Is(err, models.ErrSubmissionInFlight) {
			respondError(w, http.StatusConflict, models.CodeConflict, service.StatusStillSubmitting)
			return
		}
		handleError(w, err, h.logger)
		return
	}

	if !outcome.IsAccepted() {
		respondJSON(w, http.StatusUnprocessableEntity, service.NewEnquiryResponse(outcome))
		return
	}

	respondSuccess(w, service.NewEnquiryResponse(outcome))
}
