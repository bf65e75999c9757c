package utils

import (
	"github.com/go-playground/validator/v10"

	"clinrec-service/internal/pkg/exceptions"
)

var validate = validator.New()

// ValidateStruct runs the validate tags on a request DTO and converts any
// failure into the invalid-argument error shape the services use.
func ValidateStruct(request interface{}) error {
	if err := validate.Struct(request); err != nil {
		return exceptions.ErrInputValidation(err)
	}
	return nil
}
