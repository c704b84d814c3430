package domain

import (
	"github.com/go-playground/validator/v10"
)

// validate is the package-level validator instance used for struct validation.
var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateStruct runs the shared validator over v. Other packages use it so
// configuration and dimension tags are checked by the same instance.
func ValidateStruct(v any) error { return validate.Struct(v) }
