package handler

import (
	"net/url"

	"github.com/Raymond9734/community-site/internal/models"
)

var inquiryLabels = map[string]string{
	models.InquiryTypeProducts:  "Products",
	models.InquiryTypeServices:  "Services",
	models.InquiryTypeVolunteer: "Volunteering",
	models.InquiryTypeSponsor:   "Sponsorship",
	models.InquiryTypeGeneral:   "General enquiry",
}

// formView holds the slots of the enquiry page for one request
type formView struct {
	Values      models.EnquiryForm
	FieldErrors map[models.Field]string
	Status      string
	StatusStyle models.StatusStyle
}

func newFormView(values models.EnquiryForm) *formView {
	return &formView{
		Values:      values,
		FieldErrors: map[models.Field]string{},
		StatusStyle: models.StatusNormal,
	}
}

func (v *formView) ClearErrors() {
	v.FieldErrors = map[models.Field]string{}
}

func (v *formView) SetFieldError(field models.Field, message string) {
	v.FieldErrors[field] = message
}

func (v *formView) SetStatus(text string, style models.StatusStyle) {
	v.Status = text
	v.StatusStyle = style
}

func (v *formView) Reset() {
	v.Values = models.EnquiryForm{}
}

// Error returns the message in a field's error slot
func (v *formView) Error(field string) string {
	return v.FieldErrors[models.Field(field)]
}

// Value returns the current content of an input
func (v *formView) Value(field string) string {
	return v.Values.Value(models.Field(field))
}

type inquiryOption struct {
	Value    string
	Label    string
	Selected bool
}

// InquiryOptions lists the select options with the current choice marked
func (v *formView) InquiryOptions() []inquiryOption {
	opts := make([]inquiryOption, 0, len(models.InquiryTypes))
	for _, t := range models.InquiryTypes {
		opts = append(opts, inquiryOption{
			Value:    t,
			Label:    inquiryLabels[t],
			Selected: v.Values.InquiryType == t,
		})
	}
	return opts
}

// formFromValues reads the enquiry fields of a posted form
func formFromValues(values url.Values) models.EnquiryForm {
	return models.EnquiryForm{
		Name:        values.Get(string(models.FieldName)),
		Email:       values.Get(string(models.FieldEmail)),
		Phone:       values.Get(string(models.FieldPhone)),
		InquiryType: values.Get(string(models.FieldInquiryType)),
		Message:     values.Get(string(models.FieldMessage)),
	}
}
