// internal/validator/validator.go
package validator

import (
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const (
	MaxCreatorIDLen = 64
)

var MaxAmount = decimal.NewFromInt(1_000_000)

var Validate *validator.Validate

func init() {
	Validate = validator.New()

	// decimal.Decimal проверяем по строковому представлению
	Validate.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	// строка не пустая и не только пробелы
	_ = Validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return NotBlank(fl.Field().String())
	})

	_ = Validate.RegisterValidation("creatorid", func(fl validator.FieldLevel) bool {
		return ValidCreatorID(fl.Field().String())
	})

	// положительная сумма, не больше двух знаков после запятой
	_ = Validate.RegisterValidation("money", func(fl validator.FieldLevel) bool {
		return ValidAmount(fl.Field().String())
	})
}

func NotBlank(s string) bool {
	return strings.TrimSpace(s) != ""
}

// ValidCreatorID accepts any non-blank printable string up to MaxCreatorIDLen
// characters, emoji included.
func ValidCreatorID(s string) bool {
	if !NotBlank(s) || !utf8.ValidString(s) || utf8.RuneCountInString(s) > MaxCreatorIDLen {
		return false
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}

func ValidAmount(s string) bool {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return false
	}
	return d.IsPositive() && d.Equal(d.Round(2)) && d.LessThanOrEqual(MaxAmount)
}
