package model

import "math"

// AverageDaysPerMonth converts a day count to calendar months.
const AverageDaysPerMonth = 30.44

type Phase string

const (
	PhasePreConstruction   Phase = "pre"
	PhaseFoundation        Phase = "foundation"
	PhaseStructural        Phase = "structural"
	PhaseFinishesRemaining Phase = "finishesRemaining"
	PhaseCommissioning     Phase = "commissioning"
)

// Phases lists the project phases in critical-path order.
var Phases = []Phase{
	PhasePreConstruction,
	PhaseFoundation,
	PhaseStructural,
	PhaseFinishesRemaining,
	PhaseCommissioning,
}

func (p Phase) Label() string {
	switch p {
	case PhasePreConstruction:
		return "Pre-construction"
	case PhaseFoundation:
		return "Foundation"
	case PhaseStructural:
		return "Structure"
	case PhaseFinishesRemaining:
		return "Finishes + MEP (remaining)"
	case PhaseCommissioning:
		return "Commissioning"
	default:
		return string(p)
	}
}

// PhaseDuration is one bar of the breakdown.
type PhaseDuration struct {
	Phase  Phase   `json:"phase"`
	Name   string  `json:"name"`
	Days   float64 `json:"days"`
	Reason string  `json:"reason"`
}

// Breakdown holds the phases in order and their sum.
type Breakdown struct {
	Phases    []PhaseDuration `json:"phases"`
	TotalDays float64         `json:"totalDays"`
}

// Days returns the duration of a phase, zero if the phase is absent.
func (b Breakdown) Days(phase Phase) float64 {
	for _, p := range b.Phases {
		if p.Phase == phase {
			return p.Days
		}
	}
	return 0
}

// Derived is the set of quantities computed from a ProjectInput. The
// finishing and total durations are nil when the duration is undefined.
type Derived struct {
	GrossFloorArea           float64  `json:"grossFloorArea"`
	ManHoursPerDay           float64  `json:"manHoursPerDay"`
	StructuralDays           float64  `json:"structuralDays"`
	FinishesManHoursTotal    float64  `json:"finishesManHoursTotal"`
	FinishesDaysIfSequential *float64 `json:"finishesDaysIfSequential"`
	FinishesDaysRemaining    *float64 `json:"finishesDaysRemaining"`
	TotalDays                *float64 `json:"totalDays"`
}

// DurationSummary expresses a day count in weeks of the project's working
// week and in average calendar months.
type DurationSummary struct {
	Days   float64 `json:"days"`
	Weeks  float64 `json:"weeks"`
	Months float64 `json:"months"`
}

func NewDurationSummary(days, daysPerWeek float64) DurationSummary {
	s := DurationSummary{Days: days, Months: days / AverageDaysPerMonth}
	if daysPerWeek > 0 {
		s.Weeks = days / daysPerWeek
	}
	return s
}

// Rounded returns the summary rounded for display: whole days, one decimal
// for weeks and months.
func (s DurationSummary) Rounded() DurationSummary {
	return DurationSummary{
		Days:   math.Round(s.Days),
		Weeks:  math.Round(s.Weeks*10) / 10,
		Months: math.Round(s.Months*10) / 10,
	}
}

// Estimate is the full result of one recomputation.
type Estimate struct {
	Input      ProjectInput     `json:"input"`
	Derived    Derived          `json:"derived"`
	Breakdown  Breakdown        `json:"breakdown"`
	Structural DurationSummary  `json:"structural"`
	Finishes   *DurationSummary `json:"finishes,omitempty"`
	Total      *DurationSummary `json:"total,omitempty"`
	Undefined  bool             `json:"undefined"`
	Message    string           `json:"message,omitempty"`
}
