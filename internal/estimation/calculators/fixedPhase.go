package calculators

import (
	"fmt"

	"github.com/siteplan/duration-planner/internal/estimation"
	"github.com/siteplan/duration-planner/internal/model"
)

// Compile-time assertion that FixedPhase implements the Calculator interface.
var _ estimation.Calculator = (*FixedPhase)(nil)

// FixedPhase is a phase whose duration is entered directly as a number of days
// (pre-construction, foundation, commissioning).
type FixedPhase struct {
	name  string
	phase model.Phase
	key   string
	days  func(model.ProjectInput) float64
}

// FixedPhaseOption configuration option for the calculator
type FixedPhaseOption func(*FixedPhase)

// WithName overrides the name shown in the breakdown.
func WithName(name string) FixedPhaseOption {
	return func(f *FixedPhase) {
		if name != "" {
			f.name = name
		}
	}
}

func newFixedPhase(phase model.Phase, key string, days func(model.ProjectInput) float64, opts ...FixedPhaseOption) *FixedPhase {
	res := FixedPhase{
		name:  phase.Label(),
		phase: phase,
		key:   key,
		days:  days,
	}

	for _, opt := range opts {
		opt(&res)
	}

	return &res
}

// NewPreConstruction covers design freeze, permits and site mobilisation.
func NewPreConstruction(opts ...FixedPhaseOption) *FixedPhase {
	return newFixedPhase(model.PhasePreConstruction, ParamPreConstructionDays,
		func(in model.ProjectInput) float64 { return in.PreConstructionDays }, opts...)
}

// NewFoundation covers excavation and foundations up to ground slab.
func NewFoundation(opts ...FixedPhaseOption) *FixedPhase {
	return newFixedPhase(model.PhaseFoundation, ParamFoundationDays,
		func(in model.ProjectInput) float64 { return in.FoundationDays }, opts...)
}

// NewCommissioning covers testing, handover and snagging.
func NewCommissioning(opts ...FixedPhaseOption) *FixedPhase {
	return newFixedPhase(model.PhaseCommissioning, ParamCommissioningDays,
		func(in model.ProjectInput) float64 { return in.CommissioningDays }, opts...)
}

// Name returns the human-readable name of this calculator.
func (c *FixedPhase) Name() string { return c.name }

func (c *FixedPhase) Phase() model.Phase { return c.phase }

// Calculate returns the entered duration unchanged.
func (c *FixedPhase) Calculate(input model.ProjectInput) (estimation.Estimation, error) {
	days, err := finite(c.key, c.days(input))
	if err != nil {
		return estimation.Estimation{}, err
	}

	return estimation.Estimation{
		Days:   days,
		Reason: fmt.Sprintf("%s (fixed)", plural(days, "day")),
	}, nil
}
