// Package validator registers custom binding rules with gin's validation
// engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"weddingstudio/internal/domain"
)

// Register installs the custom rules. Call once at startup before mounting
// routes.
func Register() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("tier", func(fl validator.FieldLevel) bool {
		return domain.ProductTier(fl.Field().String()).Valid()
	})
}
