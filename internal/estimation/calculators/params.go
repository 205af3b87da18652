package calculators

import "github.com/siteplan/duration-planner/internal/model"

// Param keys, as used in exported project documents and error messages.
const (
	ParamAreaPerFloor           = "aFloor"
	ParamFloorCount             = "nFloors"
	ParamWorkerCount            = "workers"
	ParamHoursPerDay            = "hDay"
	ParamDaysPerWeek            = "dWeek"
	ParamDaysPerFloorStructural = "daysPerFloorStruct"
	ParamFinishesManHoursPerM2  = "finishesMHPerM2"
	ParamPreConstructionDays    = "preDays"
	ParamFoundationDays         = "foundDays"
	ParamCommissioningDays      = "commissionDays"
	ParamOverlapFraction        = "overlapFraction"
)

// ParamKeys lists every key in export order.
var ParamKeys = []string{
	ParamAreaPerFloor,
	ParamFloorCount,
	ParamWorkerCount,
	ParamHoursPerDay,
	ParamDaysPerWeek,
	ParamDaysPerFloorStructural,
	ParamFinishesManHoursPerM2,
	ParamPreConstructionDays,
	ParamFoundationDays,
	ParamCommissioningDays,
	ParamOverlapFraction,
}

// Fields maps every param key to the matching field of input, so callers that
// receive loosely typed key/value data (forms, flags) can fill a snapshot.
func Fields(input *model.ProjectInput) map[string]*float64 {
	return map[string]*float64{
		ParamAreaPerFloor:           &input.AreaPerFloor,
		ParamFloorCount:             &input.FloorCount,
		ParamWorkerCount:            &input.WorkerCount,
		ParamHoursPerDay:            &input.HoursPerDay,
		ParamDaysPerWeek:            &input.DaysPerWeek,
		ParamDaysPerFloorStructural: &input.DaysPerFloorStructural,
		ParamFinishesManHoursPerM2:  &input.FinishesManHoursPerM2,
		ParamPreConstructionDays:    &input.PreConstructionDays,
		ParamFoundationDays:         &input.FoundationDays,
		ParamCommissioningDays:      &input.CommissioningDays,
		ParamOverlapFraction:        &input.OverlapFraction,
	}
}
