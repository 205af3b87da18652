package model

import (
	"errors"
	"math"
)

const (
	MinHoursPerDay = 1.0
	MaxHoursPerDay = 24.0
	MinDaysPerWeek = 1.0
	MaxDaysPerWeek = 7.0

	MinOverlapFraction = 0.0
	MaxOverlapFraction = 0.95
)

// ErrUndefinedDuration is reported when the daily workforce capacity
// (workers x hours per day) is zero and the finishing duration has no value.
var ErrUndefinedDuration = errors.New("duration undefined: workforce capacity (workers x hours per day) is zero")

// ErrOutOfRange is reported when finite inputs produce a quantity that
// overflows a float64 (for example a gross floor area above 1e308 m²).
var ErrOutOfRange = errors.New("estimate out of range: a computed quantity is not a finite number")

// ProjectInput is one snapshot of the calculator parameters.
// The json/yaml keys are the export format.
type ProjectInput struct {
	AreaPerFloor           float64 `json:"aFloor" validate:"finite,gte=0"`
	FloorCount             float64 `json:"nFloors" validate:"finite,gte=0"`
	WorkerCount            float64 `json:"workers" validate:"finite,gte=0"`
	HoursPerDay            float64 `json:"hDay" validate:"finite,gte=0,lte=24"`
	DaysPerWeek            float64 `json:"dWeek" validate:"finite,gte=0,lte=7"`
	DaysPerFloorStructural float64 `json:"daysPerFloorStruct" validate:"finite,gte=0"`
	FinishesManHoursPerM2  float64 `json:"finishesMHPerM2" validate:"finite,gte=0"`
	PreConstructionDays    float64 `json:"preDays" validate:"finite,gte=0"`
	FoundationDays         float64 `json:"foundDays" validate:"finite,gte=0"`
	CommissioningDays      float64 `json:"commissionDays" validate:"finite,gte=0"`
	OverlapFraction        float64 `json:"overlapFraction" validate:"finite,gte=0,lt=1"`
}

// DefaultProjectInput returns the documented starting parameters: a nine storey
// building of 555 m² per floor built by 65 workers.
func DefaultProjectInput() ProjectInput {
	return ProjectInput{
		AreaPerFloor:           555,
		FloorCount:             9,
		WorkerCount:            65,
		HoursPerDay:            8,
		DaysPerWeek:            7,
		DaysPerFloorStructural: 10,
		FinishesManHoursPerM2:  30,
		PreConstructionDays:    42,
		FoundationDays:         28,
		CommissioningDays:      14,
		OverlapFraction:        0.8,
	}
}

// Clamp returns a copy with the working-hours policy and the overlap forced
// into range, and with negative or non-finite values replaced by zero.
func (p ProjectInput) Clamp() ProjectInput {
	p.AreaPerFloor = nonNegative(p.AreaPerFloor)
	p.FloorCount = nonNegative(p.FloorCount)
	p.WorkerCount = nonNegative(p.WorkerCount)
	p.DaysPerFloorStructural = nonNegative(p.DaysPerFloorStructural)
	p.FinishesManHoursPerM2 = nonNegative(p.FinishesManHoursPerM2)
	p.PreConstructionDays = nonNegative(p.PreConstructionDays)
	p.FoundationDays = nonNegative(p.FoundationDays)
	p.CommissioningDays = nonNegative(p.CommissioningDays)

	p.HoursPerDay = clamp(p.HoursPerDay, MinHoursPerDay, MaxHoursPerDay)
	p.DaysPerWeek = clamp(p.DaysPerWeek, MinDaysPerWeek, MaxDaysPerWeek)
	p.OverlapFraction = clamp(p.OverlapFraction, MinOverlapFraction, MaxOverlapFraction)
	return p
}

// GrossFloorArea is the built area across all storeys in m².
func (p ProjectInput) GrossFloorArea() float64 {
	return p.AreaPerFloor * p.FloorCount
}

// ManHoursPerDay is the daily workforce capacity.
func (p ProjectInput) ManHoursPerDay() float64 {
	return p.WorkerCount * p.HoursPerDay
}

func (p ProjectInput) StructuralDays() float64 {
	return p.DaysPerFloorStructural * p.FloorCount
}

func (p ProjectInput) FinishesManHoursTotal() float64 {
	return p.FinishesManHoursPerM2 * p.GrossFloorArea()
}

// FinishesDaysIfSequential is the finishing duration if none of it overlapped
// the structure. It fails with ErrUndefinedDuration on zero capacity.
func (p ProjectInput) FinishesDaysIfSequential() (float64, error) {
	capacity := p.ManHoursPerDay()
	if capacity == 0 {
		return 0, ErrUndefinedDuration
	}
	return p.FinishesManHoursTotal() / capacity, nil
}

// FinishesDaysRemaining is the finishing work left on the critical path once
// the overlapped share has been done alongside the structure.
func (p ProjectInput) FinishesDaysRemaining() (float64, error) {
	sequential, err := p.FinishesDaysIfSequential()
	if err != nil {
		return 0, err
	}
	return (1 - p.OverlapFraction) * sequential, nil
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Min(math.Max(v, lo), hi)
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
