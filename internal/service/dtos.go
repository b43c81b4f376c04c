package service

import "github.com/Raymond9734/community-site/internal/models"

// ProductListResult represents a page of search results
type ProductListResult struct {
	Data       []*models.ProductView   `json:"data"`
	Term       string                  `json:"term"`
	Pagination models.PaginationResult `json:"pagination"`
}

// EnquiryResponse is the JSON body returned for an enquiry submission
type EnquiryResponse struct {
	Status  string                  `json:"status"`
	Message string                  `json:"message"`
	Errors  map[models.Field]string `json:"errors,omitempty"`
}

// NewEnquiryResponse flattens an outcome for API clients
func NewEnquiryResponse(outcome *models.Outcome) *EnquiryResponse {
	if outcome.IsAccepted() {
		return &EnquiryResponse{
			Status:  outcome.Status,
			Message: outcome.Confirmation,
		}
	}

	result := models.ValidationResult{Errors: outcome.Errors}
	return &EnquiryResponse{
		Status:  outcome.Status,
		Message: StatusCorrectErrors,
		Errors:  result.Messages(),
	}
}
