package service

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Raymond9734/community-site/internal/models"
)

func validForm() models.EnquiryForm {
	return models.EnquiryForm{
		Name:        "Jo",
		Email:       "jo@x.com",
		Phone:       "",
		InquiryType: models.InquiryTypeProducts,
		Message:     "Interested in your goods",
	}
}

func errorKinds(result models.ValidationResult) map[models.Field]models.ErrorKind {
	out := map[models.Field]models.ErrorKind{}
	for field, fe := range result.Errors {
		out[field] = fe.Kind
	}
	return out
}

func TestEnquiryValidator_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *models.EnquiryForm)
		want   map[models.Field]models.ErrorKind
	}{
		{
			name:   "valid form",
			mutate: func(f *models.EnquiryForm) {},
			want:   map[models.Field]models.ErrorKind{},
		},
		{
			name: "every rule fails",
			mutate: func(f *models.EnquiryForm) {
				*f = models.EnquiryForm{Name: "J", Email: "bad-email", Phone: "12345", InquiryType: "", Message: "hi"}
			},
			want: map[models.Field]models.ErrorKind{
				models.FieldName:        models.ErrorKindMinLength,
				models.FieldEmail:       models.ErrorKindInvalidFormat,
				models.FieldPhone:       models.ErrorKindInvalidFormat,
				models.FieldInquiryType: models.ErrorKindRequired,
				models.FieldMessage:     models.ErrorKindLengthOutOfRange,
			},
		},
		{
			name:   "name is trimmed before measuring",
			mutate: func(f *models.EnquiryForm) { f.Name = "  J  " },
			want:   map[models.Field]models.ErrorKind{models.FieldName: models.ErrorKindMinLength},
		},
		{
			name:   "name counts characters not bytes",
			mutate: func(f *models.EnquiryForm) { f.Name = "Ë" },
			want:   map[models.Field]models.ErrorKind{models.FieldName: models.ErrorKindMinLength},
		},
		{
			name:   "empty email",
			mutate: func(f *models.EnquiryForm) { f.Email = "" },
			want:   map[models.Field]models.ErrorKind{models.FieldEmail: models.ErrorKindInvalidFormat},
		},
		{
			name:   "email without dot after at",
			mutate: func(f *models.EnquiryForm) { f.Email = "jo@localhost" },
			want:   map[models.Field]models.ErrorKind{models.FieldEmail: models.ErrorKindInvalidFormat},
		},
		{
			name:   "email with two at signs",
			mutate: func(f *models.EnquiryForm) { f.Email = "jo@@x.com" },
			want:   map[models.Field]models.ErrorKind{models.FieldEmail: models.ErrorKindInvalidFormat},
		},
		{
			name:   "email with inner space",
			mutate: func(f *models.EnquiryForm) { f.Email = "jo smith@x.com" },
			want:   map[models.Field]models.ErrorKind{models.FieldEmail: models.ErrorKindInvalidFormat},
		},
		{
			name:   "email with no-break space",
			mutate: func(f *models.EnquiryForm) { f.Email = "jo\u00a0x@x.com" },
			want:   map[models.Field]models.ErrorKind{models.FieldEmail: models.ErrorKindInvalidFormat},
		},
		{
			name:   "email with vertical tab",
			mutate: func(f *models.EnquiryForm) { f.Email = "jo\vx@x.com" },
			want:   map[models.Field]models.ErrorKind{models.FieldEmail: models.ErrorKindInvalidFormat},
		},
		{
			name:   "email with em space in domain",
			mutate: func(f *models.EnquiryForm) { f.Email = "jo@x\u2003y.com" },
			want:   map[models.Field]models.ErrorKind{models.FieldEmail: models.ErrorKindInvalidFormat},
		},
		{
			name:   "email with byte order mark",
			mutate: func(f *models.EnquiryForm) { f.Email = "jo@x\ufeffy.com" },
			want:   map[models.Field]models.ErrorKind{models.FieldEmail: models.ErrorKindInvalidFormat},
		},
		{
			name:   "email with surrounding space is trimmed",
			mutate: func(f *models.EnquiryForm) { f.Email = " jo@x.co.uk " },
			want:   map[models.Field]models.ErrorKind{},
		},
		{
			name:   "blank phone is optional",
			mutate: func(f *models.EnquiryForm) { f.Phone = "   " },
			want:   map[models.Field]models.ErrorKind{},
		},
		{
			name:   "ten digit phone",
			mutate: func(f *models.EnquiryForm) { f.Phone = "0712345678" },
			want:   map[models.Field]models.ErrorKind{},
		},
		{
			name:   "eleven digit phone",
			mutate: func(f *models.EnquiryForm) { f.Phone = "07123456789" },
			want:   map[models.Field]models.ErrorKind{models.FieldPhone: models.ErrorKindInvalidFormat},
		},
		{
			name:   "phone with plus sign",
			mutate: func(f *models.EnquiryForm) { f.Phone = "+712345678" },
			want:   map[models.Field]models.ErrorKind{models.FieldPhone: models.ErrorKindInvalidFormat},
		},
		{
			name:   "unknown inquiry type is only checked for presence",
			mutate: func(f *models.EnquiryForm) { f.InquiryType = "unknown-value" },
			want:   map[models.Field]models.ErrorKind{},
		},
		{
			name:   "whitespace inquiry type is missing",
			mutate: func(f *models.EnquiryForm) { f.InquiryType = " " },
			want:   map[models.Field]models.ErrorKind{models.FieldInquiryType: models.ErrorKindRequired},
		},
		{
			name:   "message of exactly 10 characters",
			mutate: func(f *models.EnquiryForm) { f.Message = "0123456789" },
			want:   map[models.Field]models.ErrorKind{},
		},
		{
			name:   "message of 9 characters after trim",
			mutate: func(f *models.EnquiryForm) { f.Message = "  012345678  " },
			want:   map[models.Field]models.ErrorKind{models.FieldMessage: models.ErrorKindLengthOutOfRange},
		},
		{
			name:   "message of exactly 500 characters",
			mutate: func(f *models.EnquiryForm) { f.Message = strings.Repeat("a", 500) },
			want:   map[models.Field]models.ErrorKind{},
		},
		{
			name:   "message of 501 characters",
			mutate: func(f *models.EnquiryForm) { f.Message = strings.Repeat("a", 501) },
			want:   map[models.Field]models.ErrorKind{models.FieldMessage: models.ErrorKindLengthOutOfRange},
		},
	}

	v := NewEnquiryValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)

			result, err := v.Validate(form)
			if err != nil {
				t.Fatalf("Validate() error = %v", err)
			}

			if diff := cmp.Diff(tt.want, errorKinds(result)); diff != "" {
				t.Errorf("Validate() kinds mismatch (-want +got):\n%s", diff)
			}
			if result.Valid() != (len(tt.want) == 0) {
				t.Errorf("Valid() = %v with %d errors", result.Valid(), len(tt.want))
			}
		})
	}
}

func TestEnquiryValidator_Messages(t *testing.T) {
	v := NewEnquiryValidator()
	result, err := v.Validate(models.EnquiryForm{Name: "J", Email: "bad-email", Phone: "12345", Message: "hi"})
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	want := map[models.Field]string{
		models.FieldName:        "Name must be at least 2 characters long.",
		models.FieldEmail:       "Please enter a valid email address.",
		models.FieldPhone:       "Please enter a 10-digit phone number (digits only).",
		models.FieldInquiryType: "Please select an inquiry type.",
		models.FieldMessage:     "Message must be between 10 and 500 characters.",
	}
	if diff := cmp.Diff(want, result.Messages()); diff != "" {
		t.Errorf("Messages() mismatch (-want +got):\n%s", diff)
	}
}

func TestEnquiryValidator_Idempotent(t *testing.T) {
	v := NewEnquiryValidator()
	form := models.EnquiryForm{Name: "J", Email: "jo@x.com", Message: "short"}

	first, err := v.Validate(form)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	second, err := v.Validate(form)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated Validate() differs (-first +second):\n%s", diff)
	}
}
