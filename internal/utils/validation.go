package utils

import (
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	validate.RegisterValidation("latitude_range", validateLatitude)
	validate.RegisterValidation("longitude_range", validateLongitude)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateLatitude(fl validator.FieldLevel) bool {
	lat := fl.Field().Float()
	return lat >= -90 && lat <= 90
}

func validateLongitude(fl validator.FieldLevel) bool {
	lng := fl.Field().Float()
	return lng >= -180 && lng <= 180
}

// ValidationDetails flattens validator errors into a field -> tag map for
// the error response envelope.
func ValidationDetails(err error) map[string]string {
	details := make(map[string]string)
	if errs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range errs {
			details[fe.Field()] = fe.Tag()
		}
	}
	return details
}
