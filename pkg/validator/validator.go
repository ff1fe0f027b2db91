package validator

import (
	"github.com/go-playground/validator/v10"
)

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	return &CustomValidator{
		validator: validator.New(),
	}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// FormatValidationErrors converts validator errors into the
// [{field, message}] list the API returns on 400s.
func (cv *CustomValidator) FormatValidationErrors(err error) []map[string]string {
	out := make([]map[string]string, 0)

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := e.Field()
			var message string
			switch e.Tag() {
			case "required":
				message = field + " is required"
			case "email":
				message = field + " must be a valid email address"
			case "min":
				message = field + " must be at least " + e.Param() + " characters"
			case "max":
				message = field + " must be at most " + e.Param() + " characters"
			case "oneof":
				message = field + " must be one of: " + e.Param()
			case "gte":
				message = field + " must be greater than or equal to " + e.Param()
			case "lte":
				message = field + " must be less than or equal to " + e.Param()
			default:
				message = field + " is invalid"
			}
			out = append(out, map[string]string{"field": field, "message": message})
		}
	}

	return out
}
