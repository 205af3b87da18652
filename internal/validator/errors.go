package validator

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidField names the parameter key that failed and the broken rule.
type ErrInvalidField struct {
	error
	Field string
	Tag   string
}

func newErrInvalidField(fe validator.FieldError) *ErrInvalidField {
	return &ErrInvalidField{
		error: fmt.Errorf("invalid value %v for %q: %s", fe.Value(), fe.Field(), describe(fe)),
		Field: fe.Field(),
		Tag:   fe.Tag(),
	}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "lt":
		return "must be below " + fe.Param()
	case "finite":
		return "must be a finite number"
	default:
		return "fails rule " + fe.Tag()
	}
}
