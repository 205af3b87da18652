package estimation

import (
	"errors"
	"fmt"

	"github.com/siteplan/duration-planner/internal/model"
)

// Engine orchestrates Calculator objects and collects their results
type Engine struct {
	calculators []Calculator
}

// NewEngine creates a new Engine with no calculators registered.
func NewEngine() *Engine {
	return &Engine{
		calculators: make([]Calculator, 0),
	}
}

// Register adds a Calculator to participate in the estimation.
// Calculators are executed in the order they are registered, which is also the order of the breakdown.
// Register panics if a calculator with the same Name() or Phase() is already registered,
// as duplicates would count the same phase twice.
func (e *Engine) Register(c Calculator) {
	for _, existing := range e.calculators {
		if existing.Name() == c.Name() {
			panic(fmt.Sprintf("estimation: calculator %q already registered", c.Name()))
		}
		if existing.Phase() == c.Phase() {
			panic(fmt.Sprintf("estimation: phase %q already handled by %q", c.Phase(), existing.Name()))
		}
	}
	e.calculators = append(e.calculators, c)
}

// Run executes all registered calculators against the input snapshot.
// A failing calculator does not stop the others; its error is kept in its Result.
func (e *Engine) Run(input model.ProjectInput) Results {
	results := make(Results, 0, len(e.calculators))
	for _, calc := range e.calculators {
		est, err := calc.Calculate(input)
		if err != nil {
			results = append(results, Result{
				Name:       calc.Name(),
				Phase:      calc.Phase(),
				Estimation: Estimation{Reason: fmt.Sprintf("Error: %v", err)},
				Err:        err,
			})
			continue
		}
		results = append(results, Result{Name: calc.Name(), Phase: calc.Phase(), Estimation: est})
	}
	return results
}

// Results is the ordered output of Engine.Run.
type Results []Result

// Err joins the errors of every failed calculator, nil if all succeeded.
func (r Results) Err() error {
	var errs []error
	for _, res := range r {
		if res.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", res.Name, res.Err))
		}
	}
	return errors.Join(errs...)
}

// TotalDays sums the durations of the successful calculators.
func (r Results) TotalDays() float64 {
	total := 0.0
	for _, res := range r {
		if res.Err == nil {
			total += res.Estimation.Days
		}
	}
	return total
}
