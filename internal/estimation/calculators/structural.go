package calculators

import (
	"fmt"

	"github.com/siteplan/duration-planner/internal/estimation"
	"github.com/siteplan/duration-planner/internal/model"
)

// Compile-time assertion that Structural implements the Calculator interface.
var _ estimation.Calculator = (*Structural)(nil)

// Structural estimates the frame: one structural cycle (formwork, rebar,
// concrete) per storey, floors built one after the other.
type Structural struct {
	name string
}

// StructuralOption is a functional option for configuring a Structural calculator.
type StructuralOption func(*Structural)

// WithStructuralName overrides the name shown in the breakdown.
func WithStructuralName(name string) StructuralOption {
	return func(s *Structural) {
		if name != "" {
			s.name = name
		}
	}
}

// NewStructural creates a Structural calculator with default settings.
func NewStructural(opts ...StructuralOption) *Structural {
	res := Structural{name: model.PhaseStructural.Label()}

	for _, opt := range opts {
		opt(&res)
	}

	return &res
}

// Name returns the human-readable name of this calculator.
func (c *Structural) Name() string { return c.name }

func (c *Structural) Phase() model.Phase { return model.PhaseStructural }

// Calculate multiplies the cycle time per floor by the number of floors.
func (c *Structural) Calculate(input model.ProjectInput) (estimation.Estimation, error) {
	if _, err := finite(ParamDaysPerFloorStructural, input.DaysPerFloorStructural); err != nil {
		return estimation.Estimation{}, err
	}
	if _, err := finite(ParamFloorCount, input.FloorCount); err != nil {
		return estimation.Estimation{}, err
	}

	days, err := finiteResult("structural days", input.StructuralDays())
	if err != nil {
		return estimation.Estimation{}, err
	}

	return estimation.Estimation{
		Days:   days,
		Reason: fmt.Sprintf("%s x %s per floor", plural(input.FloorCount, "floor"), plural(input.DaysPerFloorStructural, "day")),
	}, nil
}
