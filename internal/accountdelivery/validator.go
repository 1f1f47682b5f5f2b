package accountdelivery

import (
	"github.com/go-playground/validator/v10"

	"github.com/go-petr/edupay/internal/domain"
)

// ValidPasscode validates that the field holds exactly 4 digits.
var ValidPasscode validator.Func = func(fl validator.FieldLevel) bool {
	if p, ok := fl.Field().Interface().(string); ok {
		return domain.ValidPasscode(p)
	}

	return false
}
