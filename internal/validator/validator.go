// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	registerOnce sync.Once

	hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	hslColorRegex = regexp.MustCompile(`^hsl\(\s*\d{1,3}\s*,\s*\d{1,3}%\s*,\s*\d{1,3}%\s*\)$`)
)

// Register registers all custom validators with the Gin binding engine. Only
// the first call has an effect.
func Register() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			RegisterOn(v)
		}
	})
}

// RegisterOn registers the custom tags on v.
func RegisterOn(v *validator.Validate) {
	_ = v.RegisterValidation("color", validateColor)
	_ = v.RegisterValidation("transaction_type", validateKind)
	_ = v.RegisterValidation("category_type", validateKind)
}

// validateColor accepts the two notations categories are stored with.
func validateColor(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return hexColorRegex.MatchString(s) || hslColorRegex.MatchString(s)
}

func validateKind(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "income", "expense":
		return true
	}
	return false
}
