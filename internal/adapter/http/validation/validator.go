package http

import (
	"strings"

	"mygene/internal/core/model/response"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	Validator  *validator.Validate
	Translator ut.Translator
)

func init() {
	Validator = validator.New(validator.WithRequiredStructEnabled())

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)

	var found bool
	Translator, found = uni.GetTranslator("en")

	if !found {
		panic("translator en not found")
	}

	if err := en_translations.RegisterDefaultTranslations(Validator, Translator); err != nil {
		panic(err)
	}

	addCustomTranslations()
}

func addCustomTranslations() {
	Validator.RegisterTranslation("required", Translator, func(ut ut.Translator) error {
		return ut.Add("required", "{0} is required", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("required", getFieldName(fe.Field()))
		return t
	})

	Validator.RegisterTranslation("min", Translator, func(ut ut.Translator) error {
		return ut.Add("min", "{0} must be at least {1} characters", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("min", getFieldName(fe.Field()), fe.Param())
		return t
	})

	Validator.RegisterTranslation("max", Translator, func(ut ut.Translator) error {
		return ut.Add("max", "{0} must be at most {1} characters", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("max", getFieldName(fe.Field()), fe.Param())
		return t
	})

	Validator.RegisterTranslation("email", Translator, func(ut ut.Translator) error {
		return ut.Add("email", "{0} must be a valid email", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("email", getFieldName(fe.Field()))
		return t
	})

	// lte on a time.Time compares against time.Now
	Validator.RegisterTranslation("lte", Translator, func(ut ut.Translator) error {
		return ut.Add("lte", "{0} cannot be in the future", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("lte", getFieldName(fe.Field()))
		return t
	})

	Validator.RegisterTranslation("gtefield", Translator, func(ut ut.Translator) error {
		return ut.Add("gtefield", "{0} cannot be earlier than {1}", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("gtefield", getFieldName(fe.Field()), getFieldName(fe.Param()))
		return t
	})

	Validator.RegisterTranslation("len", Translator, func(ut ut.Translator) error {
		return ut.Add("len", "{0} must be exactly {1} characters", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("len", getFieldName(fe.Field()), fe.Param())
		return t
	})
}

func getFieldName(field string) string {
	fieldNames := map[string]string{
		"Name":          "Name",
		"Email":         "Email",
		"Password":      "Password",
		"ImageURL":      "Image URL",
		"BirthDate":     "Birth date",
		"DeathDate":     "Death date",
		"FamilyDetails": "Family details",
		"Religion":      "Religion",
		"Education":     "Education",
		"Occupation":    "Occupation",
		"BurialInfo":    "Burial information",
		"Country":       "Country",
		"Question":      "Question",
		"Code":          "Code",
	}

	if name, exists := fieldNames[field]; exists {
		return name
	}

	return field
}

func FormatValidationErrors(err error) []response.ValidationError {
	var errors []response.ValidationError

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			errors = append(errors, response.ValidationError{
				Field:   strings.ToLower(fieldError.Field()),
				Message: fieldError.Translate(Translator),
			})
		}
	}

	return errors
}
