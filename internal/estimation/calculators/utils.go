package calculators

import (
	"fmt"
	"math"

	"github.com/siteplan/duration-planner/internal/model"
)

// finite rejects NaN and infinite values so that they never reach a breakdown.
func finite(key string, v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("param %s is not a finite number (%v)", key, v)
	}
	return v, nil
}

// finiteResult reports a computed quantity that overflowed as
// model.ErrOutOfRange.
func finiteResult(name string, v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %s is %v", model.ErrOutOfRange, name, v)
	}
	return v, nil
}

// plural formats a count with its unit, dropping the trailing "s" for exactly one.
func plural(v float64, unit string) string {
	if v == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%g %ss", v, unit)
}
