package utils

import (
	"errors"
	"slices"
	"strings"

	"captiveportal/models"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator adds the "retention" tag, which accepts models.DataRetentionOptions
func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("retention", func(fl validator.FieldLevel) bool {
		return slices.Contains(models.DataRetentionOptions, fl.Field().String())
	})
	return v
}

func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	// Format validation errors
	var msgs []string
	for _, err := range validationErrors {
		field := strings.ToLower(err.Field())
		tag := err.Tag()
		param := err.Param()

		switch tag {
		case "required":
			msgs = append(msgs, field+" is required")
		case "min":
			msgs = append(msgs, field+" must be at least "+param+" characters")
		case "max":
			msgs = append(msgs, field+" must be at most "+param+" characters")
		case "email":
			msgs = append(msgs, field+" must be a valid email")
		case "len":
			msgs = append(msgs, field+" must be exactly "+param+" characters")
		case "oneof":
			msgs = append(msgs, field+" must be one of "+param)
		case "hexcolor":
			msgs = append(msgs, field+" must be a hex color")
		case "retention":
			msgs = append(msgs, field+" must be one of "+strings.Join(models.DataRetentionOptions, " "))
		default:
			msgs = append(msgs, field+" is invalid")
		}
	}

	return errors.New(strings.Join(msgs, ", "))
}
