package dto

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	// up to 10 integer digits and 2 decimals
	decimal2Pattern = regexp.MustCompile(`^\d{1,10}(\.\d{1,2})?$`)
	hhmmPattern     = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d(:[0-5]\d)?$`)
)

// RegisterValidators adds the custom binding tags used by the request DTOs.
func RegisterValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("decimal2", func(fl validator.FieldLevel) bool {
		return decimal2Pattern.MatchString(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return hhmmPattern.MatchString(fl.Field().String())
	})
}
