package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/siteplan/duration-planner/internal/estimation"
	"github.com/siteplan/duration-planner/internal/estimation/calculators"
	"github.com/siteplan/duration-planner/internal/model"
	"github.com/siteplan/duration-planner/pkg/log"
	"github.com/siteplan/duration-planner/pkg/metrics"
)

// EstimationService turns one project input snapshot into a duration
// estimate by running the phase calculators through the estimation Engine.
// It keeps no state between calls: identical inputs give identical estimates.
type EstimationService struct {
	engine *estimation.Engine
	logger *log.StructuredLogger
}

// NewEstimationService creates an EstimationService with the phase calculators
// registered in critical-path order.
func NewEstimationService() *EstimationService {
	engine := estimation.NewEngine()

	engine.Register(calculators.NewPreConstruction())
	engine.Register(calculators.NewFoundation())
	engine.Register(calculators.NewStructural())
	engine.Register(calculators.NewFinishes())
	engine.Register(calculators.NewCommissioning())

	return &EstimationService{
		engine: engine,
		logger: log.NewDebugLogger("estimation_service"),
	}
}

// Estimate computes the derived quantities and the phase breakdown of input.
// The input is used as given; clamping is the caller's job.
//
// When workers x hours per day is zero the finishing and total durations do
// not exist: the returned estimate has Undefined set, its defined quantities
// filled, and the error is an *ErrUndefinedDuration. When a quantity overflows
// the estimate only carries the input and an explanation, and the error is an
// *ErrOutOfRange.
func (es *EstimationService) Estimate(ctx context.Context, input model.ProjectInput) (*model.Estimate, error) {
	tracer := es.logger.WithContext(ctx).
		Operation("estimate_duration").
		WithFloat("floors", input.FloorCount).
		WithFloat("workers", input.WorkerCount).
		Build()

	result := &model.Estimate{
		Input: input,
		Derived: model.Derived{
			GrossFloorArea:        input.GrossFloorArea(),
			ManHoursPerDay:        input.ManHoursPerDay(),
			StructuralDays:        input.StructuralDays(),
			FinishesManHoursTotal: input.FinishesManHoursTotal(),
		},
		Structural: model.NewDurationSummary(input.StructuralDays(), input.DaysPerWeek),
	}
	if err := firstNonFinite(
		quantity{"gross floor area", result.Derived.GrossFloorArea},
		quantity{"man-hours per day", result.Derived.ManHoursPerDay},
		quantity{"structural days", result.Derived.StructuralDays},
		quantity{"finishing man-hours", result.Derived.FinishesManHoursTotal},
	); err != nil {
		return es.outOfRange(tracer, input, err)
	}

	results := es.engine.Run(input)
	tracer.Step("run_calculators").WithInt("calculator_count", len(results)).Log()

	if err := results.Err(); err != nil {
		if errors.Is(err, model.ErrUndefinedDuration) {
			result.Undefined = true
			result.Message = "Duration is undefined: set a non-zero number of workers and hours per day."
			tracer.Warn("undefined duration").
				WithFloat("man_hours_per_day", result.Derived.ManHoursPerDay).
				Log()
			metrics.ObserveEstimation(metrics.OutcomeUndefined, 0)
			return result, NewErrUndefinedDuration(input)
		}
		if errors.Is(err, model.ErrOutOfRange) {
			return es.outOfRange(tracer, input, err)
		}
		tracer.Error(err).Log()
		metrics.ObserveEstimation(metrics.OutcomeFailed, 0)
		return nil, NewErrInvalidInput("failed to estimate duration: %v", err)
	}

	sequential, err := input.FinishesDaysIfSequential()
	if err != nil {
		// the finishes calculator already succeeded on the same input
		return nil, fmt.Errorf("inconsistent finishing duration: %w", err)
	}

	breakdown := model.Breakdown{Phases: make([]model.PhaseDuration, 0, len(results))}
	for _, r := range results {
		breakdown.Phases = append(breakdown.Phases, model.PhaseDuration{
			Phase:  r.Phase,
			Name:   r.Name,
			Days:   r.Estimation.Days,
			Reason: r.Estimation.Reason,
		})
	}
	breakdown.TotalDays = results.TotalDays()

	remaining := breakdown.Days(model.PhaseFinishesRemaining)
	total := breakdown.TotalDays
	if err := firstNonFinite(
		quantity{"finishing days if sequential", sequential},
		quantity{"total days", total},
	); err != nil {
		return es.outOfRange(tracer, input, err)
	}
	finishes := model.NewDurationSummary(remaining, input.DaysPerWeek)
	totalSummary := model.NewDurationSummary(total, input.DaysPerWeek)

	result.Derived.FinishesDaysIfSequential = &sequential
	result.Derived.FinishesDaysRemaining = &remaining
	result.Derived.TotalDays = &total
	result.Breakdown = breakdown
	result.Finishes = &finishes
	result.Total = &totalSummary

	tracer.Success().
		WithFloat("total_days", total).
		WithInt("phase_count", len(breakdown.Phases)).
		Log()
	metrics.ObserveEstimation(metrics.OutcomeDefined, total)

	return result, nil
}

// outOfRange builds the estimate shown when a quantity overflowed: nothing is
// reported but the input and an explanation.
func (es *EstimationService) outOfRange(tracer *log.OperationTracer, input model.ProjectInput, cause error) (*model.Estimate, error) {
	tracer.Warn("estimate out of range").WithString("cause", cause.Error()).Log()
	metrics.ObserveEstimation(metrics.OutcomeOutOfRange, 0)

	return &model.Estimate{
		Input:     input,
		Undefined: true,
		Message:   "Duration is out of range: the inputs are too large or too small to compute. Use realistic project values.",
	}, NewErrOutOfRange(cause)
}

type quantity struct {
	name  string
	value float64
}

func firstNonFinite(quantities ...quantity) error {
	for _, q := range quantities {
		if math.IsNaN(q.value) || math.IsInf(q.value, 0) {
			return fmt.Errorf("%w: %s is %v", model.ErrOutOfRange, q.name, q.value)
		}
	}
	return nil
}

// Defaults returns the starting input of the calculator.
func (es *EstimationService) Defaults() model.ProjectInput {
	return model.DefaultProjectInput()
}
