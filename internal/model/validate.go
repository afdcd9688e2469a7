package model

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report json names so error details match request bodies
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validator exposes the instance used by the gorm hooks so callers can attach
// translations to it.
func Validator() *validator.Validate {
	return validate
}

// Validate runs the struct's validate tags.
func Validate(v any) error {
	return validate.Struct(v)
}
