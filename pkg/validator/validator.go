package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New()
	// Report fields under the names the dashboard sends: JSON body keys,
	// or query parameter names for query structs
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "schema"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})
	return &CustomValidator{
		validator: v,
	}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func (cv *CustomValidator) FormatValidationErrors(err error) map[string]string {
	errors := make(map[string]string)

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := fieldPath(e.Namespace())
			switch e.Tag() {
			case "required":
				errors[field] = e.Field() + " is required"
			case "email":
				errors[field] = e.Field() + " must be a valid email address"
			case "min":
				errors[field] = e.Field() + " must be at least " + e.Param() + " characters"
			case "max":
				errors[field] = e.Field() + " must be at most " + e.Param() + " characters"
			case "gte":
				errors[field] = e.Field() + " must be greater than or equal to " + e.Param()
			case "lte":
				errors[field] = e.Field() + " must be less than or equal to " + e.Param()
			case "oneof":
				errors[field] = e.Field() + " must be one of: " + e.Param()
			case "datetime":
				errors[field] = e.Field() + " must match the format " + e.Param()
			default:
				errors[field] = e.Field() + " is invalid"
			}
		}
	}

	return errors
}

// fieldPath drops the root struct name, so "BulkSlotRequest.timeSlots[0].startTime"
// becomes "timeSlots[0].startTime".
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}
