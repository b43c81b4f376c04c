package service

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Raymond9734/community-site/internal/models"
)

const confirmationGreeting = "Thank you for your enquiry, {name}!"

// confirmationSuffixes is keyed by inquiry type; unknown types fall back to general
var confirmationSuffixes = map[string]string{
	models.InquiryTypeProducts:  " We will get back to you shortly regarding our products and their availability.",
	models.InquiryTypeServices:  " We have received your query about our services and will respond soon.",
	models.InquiryTypeVolunteer: " Thank you for your interest in volunteering! We will contact you with more information.",
	models.InquiryTypeSponsor:   " We appreciate your interest in sponsoring. Our team will reach out to discuss partnership opportunities.",
	models.InquiryTypeGeneral:   " We have received your general enquiry and will get back to you soon.",
}

var validPlaceholders = map[string]bool{
	"name":         true,
	"email":        true,
	"phone":        true,
	"inquiry_type": true,
}

// TemplateService renders enquiry confirmation messages
type TemplateService interface {
	Render(template string, form *models.EnquiryForm) (string, error)
	ValidateTemplate(template string) error
	ExtractPlaceholders(template string) []string
	Confirmation(form *models.EnquiryForm) (string, error)
	CheckConfirmations() error
}

type templateService struct {
	placeholderPattern *regexp.Regexp
}

// NewTemplateService creates a new template service
func NewTemplateService() TemplateService {
	return &templateService{
		placeholderPattern: regexp.MustCompile(`\{([a-z_]+)\}`),
	}
}

// Render replaces placeholders in template with the submitted values.
// Unknown placeholders render as empty strings.
func (s *templateService) Render(template string, form *models.EnquiryForm) (string, error) {
	if form == nil {
		return "", models.ErrInvalidInput("enquiry cannot be nil")
	}

	fieldMap := map[string]string{
		"name":         form.Name,
		"email":        form.Email,
		"phone":        form.Phone,
		"inquiry_type": form.InquiryType,
	}

	result := s.placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		return fieldMap[strings.Trim(match, "{}")]
	})

	return result, nil
}

// ValidateTemplate checks that a template only uses known placeholders
func (s *templateService) ValidateTemplate(template string) error {
	if template == "" {
		return models.ErrInvalidInput("template cannot be empty")
	}

	var invalid []string
	for _, placeholder := range s.ExtractPlaceholders(template) {
		if !validPlaceholders[placeholder] {
			invalid = append(invalid, placeholder)
		}
	}

	if len(invalid) > 0 {
		return models.ErrInvalidInput(
			fmt.Sprintf("invalid placeholders: %s. Valid placeholders are: name, email, phone, inquiry_type",
				strings.Join(invalid, ", ")),
		)
	}

	return nil
}

// ExtractPlaceholders returns all placeholders found in template
func (s *templateService) ExtractPlaceholders(template string) []string {
	matches := s.placeholderPattern.FindAllStringSubmatch(template, -1)
	placeholders := make([]string, 0, len(matches))

	for _, match := range matches {
		if len(match) > 1 {
			placeholders = append(placeholders, match[1])
		}
	}

	return placeholders
}

// Confirmation builds the greeting for form followed by the suffix of its inquiry type
func (s *templateService) Confirmation(form *models.EnquiryForm) (string, error) {
	if form == nil {
		return "", models.ErrInvalidInput("enquiry cannot be nil")
	}

	inquiryType := form.InquiryType
	if !models.IsKnownInquiryType(inquiryType) {
		inquiryType = models.InquiryTypeGeneral
	}
	return s.Render(confirmationGreeting+confirmationSuffixes[inquiryType], form)
}

// CheckConfirmations validates the confirmation template of every inquiry type
func (s *templateService) CheckConfirmations() error {
	for _, inquiryType := range models.InquiryTypes {
		suffix, ok := confirmationSuffixes[inquiryType]
		if !ok {
			return fmt.Errorf("no confirmation for inquiry type %q", inquiryType)
		}
		if err := s.ValidateTemplate(confirmationGreeting + suffix); err != nil {
			return fmt.Errorf("confirmation for inquiry type %q: %w", inquiryType, err)
		}
	}
	return nil
}
