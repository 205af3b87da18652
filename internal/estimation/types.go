package estimation

import (
	"github.com/siteplan/duration-planner/internal/model"
)

// Calculator encapsulates the duration of one project phase (e.g. "structure", "finishes").
type Calculator interface {
	// Name returns the human-readable name of this calculator, shown next to its bar in the breakdown.
	Name() string
	// Phase returns the phase this calculator is responsible for. It is unique within an Engine.
	Phase() model.Phase
	// Calculate runs the estimation on one input snapshot and returns an Estimation or an error.
	Calculate(input model.ProjectInput) (Estimation, error)
}

// Estimation the result of a Calculator calculation, in working days
type Estimation struct {
	Days   float64
	Reason string
}

// Result is the outcome of one calculator in an Engine run.
type Result struct {
	Name       string
	Phase      model.Phase
	Estimation Estimation
	Err        error
}
