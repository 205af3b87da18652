package validator

import (
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

func registerFn(tag string, fn func(fl validator.FieldLevel) bool) func(v *validator.Validate) {
	return func(v *validator.Validate) {
		_ = v.RegisterValidation(tag, fn)
	}
}

// jsonFieldNames makes errors report the exported key (aFloor) instead of
// the Go field name.
func jsonFieldNames(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
}

func finiteValidator(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Float32, reflect.Float64:
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	default:
		return true
	}
}

func NewProjectInputValidationRules() []ValidationRule {
	return []ValidationRule{
		{
			Rule: jsonFieldNames,
		},
		{
			Rule: registerFn("finite", finiteValidator),
		},
	}
}
