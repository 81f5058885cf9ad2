package dto

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"yamdb/internal/domain"
)

var registerOnce sync.Once

// RegisterValidators adds the custom binding tags used by the request DTOs.
// It must run before the first request is bound.
func RegisterValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
				return domain.ValidateUsername(fl.Field().String()) == nil
			})
		}
	})
}
