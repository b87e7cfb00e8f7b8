package impl

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	domainerrors "github.com/yokijpAcademic/Klik-Sewa-BE/internal/domain/errors"
)

// validate is shared across the package; validator instances cache struct metadata.
var validate = validator.New(validator.WithRequiredStructEnabled())

// validateInput runs struct validation and converts the first failure into a
// caller-facing message wrapped around ErrValidationFailed.
func validateInput(input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrs) == 0 {
		return domainerrors.ErrValidationFailed
	}

	return domainerrors.ErrValidationFailed.WrapMessage(describeFieldError(validationErrs[0]))
}

func describeFieldError(fieldErr validator.FieldError) string {
	field := strings.ToLower(fieldErr.Field())

	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fieldErr.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fieldErr.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
