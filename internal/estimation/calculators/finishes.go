package calculators

import (
	"fmt"

	"github.com/siteplan/duration-planner/internal/estimation"
	"github.com/siteplan/duration-planner/internal/model"
)

// Compile-time assertion that Finishes implements the Calculator interface.
var _ estimation.Calculator = (*Finishes)(nil)

// Finishes estimates finishing and MEP work left on the critical path after
// the share that runs concurrently with the structure on lower floors.
type Finishes struct {
	name string
}

// FinishesOption is a functional option for configuring a Finishes calculator.
type FinishesOption func(*Finishes)

// WithFinishesName overrides the name shown in the breakdown.
func WithFinishesName(name string) FinishesOption {
	return func(f *Finishes) {
		if name != "" {
			f.name = name
		}
	}
}

// NewFinishes creates a Finishes calculator with default settings.
func NewFinishes(opts ...FinishesOption) *Finishes {
	res := Finishes{name: model.PhaseFinishesRemaining.Label()}

	for _, opt := range opts {
		opt(&res)
	}

	return &res
}

// Name returns the human-readable name of this calculator.
func (c *Finishes) Name() string { return c.name }

func (c *Finishes) Phase() model.Phase { return model.PhaseFinishesRemaining }

// Calculate divides the finishing labour by the daily capacity and removes the
// overlapped fraction. It returns model.ErrUndefinedDuration when workers or
// hours per day is zero and model.ErrOutOfRange when a quantity overflows.
func (c *Finishes) Calculate(input model.ProjectInput) (estimation.Estimation, error) {
	checks := []struct {
		key string
		v   float64
	}{
		{ParamAreaPerFloor, input.AreaPerFloor},
		{ParamFloorCount, input.FloorCount},
		{ParamFinishesManHoursPerM2, input.FinishesManHoursPerM2},
		{ParamWorkerCount, input.WorkerCount},
		{ParamHoursPerDay, input.HoursPerDay},
		{ParamOverlapFraction, input.OverlapFraction},
	}
	for _, chk := range checks {
		if _, err := finite(chk.key, chk.v); err != nil {
			return estimation.Estimation{}, err
		}
	}

	for _, q := range []struct {
		name string
		v    float64
	}{
		{"gross floor area", input.GrossFloorArea()},
		{"finishing man-hours", input.FinishesManHoursTotal()},
		{"man-hours per day", input.ManHoursPerDay()},
	} {
		if _, err := finiteResult(q.name, q.v); err != nil {
			return estimation.Estimation{}, err
		}
	}

	remaining, err := input.FinishesDaysRemaining()
	if err != nil {
		return estimation.Estimation{}, err
	}
	if _, err := finiteResult("finishing days", remaining); err != nil {
		return estimation.Estimation{}, err
	}

	return estimation.Estimation{
		Days: remaining,
		Reason: fmt.Sprintf("%.0f man-hours / %.0f man-hours per day, %.0f%% overlapped with structure",
			input.FinishesManHoursTotal(), input.ManHoursPerDay(), input.OverlapFraction*100),
	}, nil
}
