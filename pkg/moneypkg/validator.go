package moneypkg

import (
	"github.com/go-playground/validator/v10"
)

// ValidAmount is a validator.Func for the "money" binding tag.
var ValidAmount validator.Func = func(fieldLevel validator.FieldLevel) bool {
	if amount, ok := fieldLevel.Field().Interface().(string); ok {
		_, err := Parse(amount)
		return err == nil
	}

	return false
}
