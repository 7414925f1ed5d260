package validator

import (
	"github.com/go-playground/validator/v10"
)

// FieldError describe un campo que falló la validación del DTO.
type FieldError struct {
	FailedField string
	Tag         string
	Param       string
}

var validate = validator.New()

// ValidateStruct valida las tags `validate:"..."` de un DTO y devuelve los
// campos que fallaron (vacío si todo es válido).
func ValidateStruct(data interface{}) []FieldError {
	var fails []FieldError
	err := validate.Struct(data)
	if err != nil {
		for _, fe := range err.(validator.ValidationErrors) {
			fails = append(fails, FieldError{
				FailedField: fe.StructNamespace(),
				Tag:         fe.Tag(),
				Param:       fe.Param(),
			})
		}
	}
	return fails
}
