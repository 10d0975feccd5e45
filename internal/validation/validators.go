// Package validation registers the custom binding tags used by request DTOs.
package validation

import (
	"regexp"
	"strings"

	"github.com/fxdesk/remittance_backend/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var panPattern = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)

// IsValidPAN reports whether s is a well-formed Indian Permanent Account Number.
func IsValidPAN(s string) bool {
	return panPattern.MatchString(strings.ToUpper(strings.TrimSpace(s)))
}

// RegisterCustomValidators adds the pan and supported_currency tags to v.
func RegisterCustomValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("pan", func(fl validator.FieldLevel) bool {
		return IsValidPAN(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("supported_currency", func(fl validator.FieldLevel) bool {
		_, ok := domain.SupportedCurrencies[strings.ToUpper(fl.Field().String())]
		return ok
	})
}

// RegisterWithGin installs the custom tags on gin's default validator engine.
func RegisterWithGin() error {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		return RegisterCustomValidators(v)
	}
	return nil
}
