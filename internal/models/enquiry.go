package models

import (
	"strings"
	"time"
)

// Inquiry types offered by the enquiry form
const (
	InquiryTypeProducts  = "products"
	InquiryTypeServices  = "services"
	InquiryTypeVolunteer = "volunteer"
	InquiryTypeSponsor   = "sponsor"
	InquiryTypeGeneral   = "general"
)

// InquiryTypes lists the known inquiry types in the order the form offers them
var InquiryTypes = []string{
	InquiryTypeProducts,
	InquiryTypeServices,
	InquiryTypeVolunteer,
	InquiryTypeSponsor,
	InquiryTypeGeneral,
}

// Field names one validated input of the enquiry form
type Field string

// Enquiry form fields
const (
	FieldName        Field = "name"
	FieldEmail       Field = "email"
	FieldPhone       Field = "phone"
	FieldInquiryType Field = "inquiry_type"
	FieldMessage     Field = "message"
)

// Fields lists the enquiry fields in form order
var Fields = []Field{FieldName, FieldEmail, FieldPhone, FieldInquiryType, FieldMessage}

// ErrorKind classifies a field-level validation failure
type ErrorKind string

// Validation error kinds
const (
	ErrorKindMinLength        ErrorKind = "MinLength"
	ErrorKindInvalidFormat    ErrorKind = "InvalidFormat"
	ErrorKindRequired         ErrorKind = "Required"
	ErrorKindLengthOutOfRange ErrorKind = "LengthOutOfRange"
)

// EnquiryForm holds the values of one submission attempt.
// It is rebuilt from the submitted values every time and never kept.
type EnquiryForm struct {
	Name        string `json:"name" form:"name"`
	Email       string `json:"email" form:"email"`
	Phone       string `json:"phone,omitempty" form:"phone"`
	InquiryType string `json:"inquiry_type" form:"inquiry_type"`
	Message     string `json:"message" form:"message"`
}

// Trimmed returns a copy with surrounding whitespace removed from every value
func (f EnquiryForm) Trimmed() EnquiryForm {
	return EnquiryForm{
		Name:        strings.TrimSpace(f.Name),
		Email:       strings.TrimSpace(f.Email),
		Phone:       strings.TrimSpace(f.Phone),
		InquiryType: strings.TrimSpace(f.InquiryType),
		Message:     strings.TrimSpace(f.Message),
	}
}

// Value returns the raw value of a field
func (f EnquiryForm) Value(field Field) string {
	switch field {
	case FieldName:
		return f.Name
	case FieldEmail:
		return f.Email
	case FieldPhone:
		return f.Phone
	case FieldInquiryType:
		return f.InquiryType
	case FieldMessage:
		return f.Message
	default:
		return ""
	}
}

// IsKnownInquiryType reports whether t is one of the offered inquiry types
func IsKnownInquiryType(t string) bool {
	for _, known := range InquiryTypes {
		if t == known {
			return true
		}
	}
	return false
}

// FieldError describes why one field failed validation
type FieldError struct {
	Field   Field     `json:"field"`
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// ValidationResult maps each failing field to its error.
// A field without an entry is valid.
type ValidationResult struct {
	Errors map[Field]FieldError `json:"errors"`
}

// Valid is true iff no field failed
func (r ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Error returns the error recorded for a field, if any
func (r ValidationResult) Error(field Field) (FieldError, bool) {
	fe, ok := r.Errors[field]
	return fe, ok
}

// Ordered returns the recorded errors in form order
func (r ValidationResult) Ordered() []FieldError {
	out := make([]FieldError, 0, len(r.Errors))
	for _, field := range Fields {
		if fe, ok := r.Errors[field]; ok {
			out = append(out, fe)
		}
	}
	return out
}

// Messages flattens the result into field -> message
func (r ValidationResult) Messages() map[Field]string {
	out := make(map[Field]string, len(r.Errors))
	for field, fe := range r.Errors {
		out[field] = fe.Message
	}
	return out
}

// Outcome status constants
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
)

// Outcome is the result of one submission attempt
type Outcome struct {
	Status       string               `json:"status"`
	Confirmation string               `json:"message,omitempty"`
	Errors       map[Field]FieldError `json:"errors,omitempty"`
}

// Accepted builds the outcome of a successful submission
func Accepted(confirmation string) *Outcome {
	return &Outcome{Status: OutcomeAccepted, Confirmation: confirmation}
}

// Rejected builds the outcome of a submission that failed validation
func Rejected(result ValidationResult) *Outcome {
	return &Outcome{Status: OutcomeRejected, Errors: result.Errors}
}

// IsAccepted reports whether the enquiry was accepted
func (o *Outcome) IsAccepted() bool {
	return o != nil && o.Status == OutcomeAccepted
}

// StatusStyle selects how the status area is rendered
type StatusStyle string

// Status styles
const (
	StatusNormal StatusStyle = "normal"
	StatusError  StatusStyle = "error"
)

// EnquiryJob is queued for delivery to the enquiry intake
type EnquiryJob struct {
	ID          string      `json:"id"`
	Enquiry     EnquiryForm `json:"enquiry"`
	Attempt     int         `json:"attempt"`
	SubmittedAt time.Time   `json:"submitted_at"`
}
