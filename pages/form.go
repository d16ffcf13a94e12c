package pages

import (
	"errors"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"onboarding-console/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// RegistrationForm is the new-customer form.
type RegistrationForm struct {
	DocumentType   string `form:"documentType" json:"documentType" validate:"required"`
	DocumentNumber string `form:"documentNumber" json:"documentNumber" validate:"required"`
	FullName       string `form:"fullName" json:"fullName" validate:"required"`
	Email          string `form:"email" json:"email" validate:"required,email"`
	CreateAccount  bool   `form:"createAccount" json:"createAccount"`
}

// DefaultForm is the form as first shown and after every completed submission.
func DefaultForm() RegistrationForm {
	return RegistrationForm{DocumentType: models.DefaultDocumentType}
}

// Normalize trims surrounding whitespace from the text fields.
func (f RegistrationForm) Normalize() RegistrationForm {
	f.DocumentType = strings.TrimSpace(f.DocumentType)
	f.DocumentNumber = strings.TrimSpace(f.DocumentNumber)
	f.FullName = strings.TrimSpace(f.FullName)
	f.Email = strings.TrimSpace(f.Email)
	return f
}

// CustomerCreate is the payload sent to the backend.
func (f RegistrationForm) CustomerCreate() models.CustomerCreate {
	return models.CustomerCreate{
		DocumentType:   f.DocumentType,
		DocumentNumber: f.DocumentNumber,
		FullName:       f.FullName,
		Email:          f.Email,
	}
}

// ValidationErrors maps a form field to the hint shown next to it.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+v[f])
	}
	return "invalid form: " + strings.Join(parts, ", ")
}

// Validate returns nil when the form may be submitted.
func (f RegistrationForm) Validate() ValidationErrors {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return ValidationErrors{"form": err.Error()}
	}
	hints := make(ValidationErrors, len(fieldErrs))
	for _, fe := range fieldErrs {
		hints[fe.Field()] = hint(fe.Tag())
	}
	return hints
}

func hint(tag string) string {
	switch tag {
	case "required":
		return "Este campo es obligatorio"
	case "email":
		return "Ingrese un correo electrónico válido"
	default:
		return "Valor inválido"
	}
}
