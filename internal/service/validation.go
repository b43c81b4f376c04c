package service

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/Raymond9734/community-site/internal/models"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[0-9]{10}$`)
)

// isBlank widens the RE2 \s class to every Unicode space and the BOM
func isBlank(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// Length bounds of the enquiry fields, in characters
const (
	MinNameLength    = 2
	MinMessageLength = 10
	MaxMessageLength = 500
)

// enquiryRules mirrors models.EnquiryForm with the rule of every field.
// Values are trimmed before they are copied in.
type enquiryRules struct {
	Name        string `json:"name" validate:"min=2"`
	Email       string `json:"email" validate:"simpleemail"`
	Phone       string `json:"phone" validate:"omitempty,phone10"`
	InquiryType string `json:"inquiry_type" validate:"required"`
	Message     string `json:"message" validate:"min=10,max=500"`
}

type fieldRule struct {
	kind    models.ErrorKind
	message string
}

// Each field fails in exactly one way, whatever tag tripped
var fieldRules = map[models.Field]fieldRule{
	models.FieldName:        {models.ErrorKindMinLength, "Name must be at least 2 characters long."},
	models.FieldEmail:       {models.ErrorKindInvalidFormat, "Please enter a valid email address."},
	models.FieldPhone:       {models.ErrorKindInvalidFormat, "Please enter a 10-digit phone number (digits only)."},
	models.FieldInquiryType: {models.ErrorKindRequired, "Please select an inquiry type."},
	models.FieldMessage:     {models.ErrorKindLengthOutOfRange, "Message must be between 10 and 500 characters."},
}

// EnquiryValidator runs every enquiry rule and collects all failures
type EnquiryValidator struct {
	validate *validator.Validate
}

// NewEnquiryValidator creates a validator with the enquiry-specific rules registered
func NewEnquiryValidator() *EnquiryValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Registration only fails for empty tags or nil funcs
	_ = v.RegisterValidation("simpleemail", func(fl validator.FieldLevel) bool {
		email := fl.Field().String()
		return emailPattern.MatchString(email) && strings.IndexFunc(email, isBlank) < 0
	})
	_ = v.RegisterValidation("phone10", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})

	return &EnquiryValidator{validate: v}
}

// Validate checks every field of the form; it never stops at the first failure
func (ev *EnquiryValidator) Validate(form models.EnquiryForm) (models.ValidationResult, error) {
	trimmed := form.Trimmed()
	rules := enquiryRules{
		Name:        trimmed.Name,
		Email:       trimmed.Email,
		Phone:       trimmed.Phone,
		InquiryType: trimmed.InquiryType,
		Message:     trimmed.Message,
	}

	result := models.ValidationResult{Errors: map[models.Field]models.FieldError{}}

	err := ev.validate.Struct(rules)
	if err == nil {
		return result, nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return result, fmt.Errorf("failed to run enquiry rules: %w", err)
	}

	for _, ve := range validationErrors {
		field := models.Field(ve.Field())
		rule, ok := fieldRules[field]
		if !ok {
			return result, fmt.Errorf("no rule registered for field %q", field)
		}
		result.Errors[field] = models.FieldError{
			Field:   field,
			Kind:    rule.kind,
			Message: rule.message,
		}
	}

	return result, nil
}
