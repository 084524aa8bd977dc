package validation

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/ldmoraes/contas_app/internal/utils/fiscal"
)

// RegisterCustomValidators attaches the application's custom binding rules
// to gin's validator engine. Must be called before the router starts
// serving requests.
func RegisterCustomValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	return v.RegisterValidation("cnpj", func(fl validator.FieldLevel) bool {
		return fiscal.ValidateCNPJ(fl.Field().String()) == nil
	})
}
