// internal/handler/validate.go
package handler

import (
	"errors"
	"fmt"
	"strings"

	val "creator-yield/internal/validator"

	"github.com/go-playground/validator/v10"
)

func validateStruct(v any) error {
	err := val.Validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid input: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, fieldErrorToString(e))
	}
	return fmt.Errorf("invalid input: %s", strings.Join(msgs, "; "))
}

func fieldErrorToString(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "notblank":
		return fmt.Sprintf("%s must not be blank", e.Field())
	case "creatorid":
		return fmt.Sprintf("%s must be 1-%d printable characters", e.Field(), val.MaxCreatorIDLen)
	case "money":
		return fmt.Sprintf("%s must be a positive amount with at most 2 decimals, up to %s", e.Field(), val.MaxAmount)
	case "min":
		return fmt.Sprintf("%s must be at least %s", e.Field(), e.Param())
	default:
		return fmt.Sprintf("%s is invalid", e.Field())
	}
}
