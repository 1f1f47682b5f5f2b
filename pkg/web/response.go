// Package web defines common components for a web application.
package web

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
)

// Response holds the common response type for all APIs.
type Response struct {
	AccessToken          string     `json:"access_token,omitempty"`
	AccessTokenExpiresAt *time.Time `json:"access_token_expires_at,omitempty"`
	Data                 any        `json:"data,omitempty"`
	Error                string     `json:"error,omitempty"`
}

// Error wraps a given err into the response envelope.
func Error(err error) Response {
	return Response{Error: err.Error()}
}

// BindError renders a request binding failure. Validation failures get a
// readable message, anything else (malformed JSON) is passed through.
func BindError(err error) Response {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return Response{Error: GetErrorMsg(ve)}
	}

	return Error(err)
}

// GetErrorMsg renders the first validation error into a human readable message.
func GetErrorMsg(ve validator.ValidationErrors) string {
	if len(ve) == 0 {
		return ""
	}

	fe := ve[0]
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return field + " field is required"
	case "required_without":
		return field + " field is required without " + fe.Param()
	case "min":
		return field + " must be at least " + fe.Param() + " characters long"
	case "max":
		return field + " must be at most " + fe.Param() + " characters long"
	case "email":
		return field + " must be a valid email"
	case "alphanum":
		return field + " accepts only alphanumeric characters"
	case "oneof":
		return field + " must be one of: " + fe.Param()
	case "money":
		return field + " must be a positive amount with at most two decimal places"
	case "passcode":
		return field + " must be exactly 4 digits"
	case "uuid":
		return field + " must be a valid id"
	case "datetime":
		return field + " must be a date formatted as " + fe.Param()
	}

	return field + " is invalid"
}
