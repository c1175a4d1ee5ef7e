package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// bloodPressureRe matches the "120/80" systolic/diastolic form.
var bloodPressureRe = regexp.MustCompile(`^\d{2,3}/\d{2,3}$`)

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New()
	// "bp" validates a blood pressure reading like 120/80.
	v.RegisterValidation("bp", func(fl validator.FieldLevel) bool {
		return bloodPressureRe.MatchString(fl.Field().String())
	})
	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func (cv *CustomValidator) FormatValidationErrors(err error) map[string]string {
	errors := make(map[string]string)

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := e.Field()
			switch e.Tag() {
			case "required":
				errors[field] = field + " is required"
			case "required_if":
				errors[field] = field + " is required"
			case "email":
				errors[field] = field + " must be a valid email address"
			case "min":
				errors[field] = field + " must be at least " + e.Param() + " characters"
			case "max":
				errors[field] = field + " must be at most " + e.Param() + " characters"
			case "oneof":
				errors[field] = field + " must be one of: " + e.Param()
			case "gte":
				errors[field] = field + " must be greater than or equal to " + e.Param()
			case "lte":
				errors[field] = field + " must be less than or equal to " + e.Param()
			case "bp":
				errors[field] = field + " must look like 120/80"
			default:
				errors[field] = field + " is invalid"
			}
		}
	}

	return errors
}
