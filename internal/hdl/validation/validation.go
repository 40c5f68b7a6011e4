package validation

import "github.com/go-playground/validator/v10"

var v = validator.New()

// Struct validates DTO structs by their validate tags.
func Struct(s any) error {
	return v.Struct(s)
}
