package cli

import (
	"fmt"
	"os"

	"github.com/siteplan/duration-planner/internal/estimation/calculators"
	"github.com/siteplan/duration-planner/internal/model"
	"github.com/siteplan/duration-planner/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type inputFlag struct {
	name  string
	key   string
	usage string
}

var inputFlags = []inputFlag{
	{name: "area-per-floor", key: calculators.ParamAreaPerFloor, usage: "Area of one floor in m²"},
	{name: "floors", key: calculators.ParamFloorCount, usage: "Number of floors"},
	{name: "workers", key: calculators.ParamWorkerCount, usage: "Number of workers on site"},
	{name: "hours-per-day", key: calculators.ParamHoursPerDay, usage: "Working hours per day (1-24)"},
	{name: "days-per-week", key: calculators.ParamDaysPerWeek, usage: "Working days per week (1-7)"},
	{name: "days-per-floor", key: calculators.ParamDaysPerFloorStructural, usage: "Structural cycle in days per floor"},
	{name: "finishes-man-hours-per-m2", key: calculators.ParamFinishesManHoursPerM2, usage: "Finishing and MEP effort in man-hours per m²"},
	{name: "pre-construction-days", key: calculators.ParamPreConstructionDays, usage: "Pre-construction duration in days"},
	{name: "foundation-days", key: calculators.ParamFoundationDays, usage: "Foundation duration in days"},
	{name: "commissioning-days", key: calculators.ParamCommissioningDays, usage: "Commissioning duration in days"},
	{name: "overlap", key: calculators.ParamOverlapFraction, usage: "Share of finishing work done alongside the structure (0-0.95)"},
}

// InputOptions collects a project input from an exported document and the
// command line flags. Flags win over the document; the result is clamped.
type InputOptions struct {
	FromFile string

	values model.ProjectInput
	flags  *pflag.FlagSet
	input  model.ProjectInput
}

func DefaultInputOptions() InputOptions {
	return InputOptions{values: model.DefaultProjectInput()}
}

func (o *InputOptions) Bind(fs *pflag.FlagSet) {
	o.flags = fs
	fields := calculators.Fields(&o.values)
	for _, f := range inputFlags {
		fs.Float64Var(fields[f.key], f.name, *fields[f.key], f.usage)
	}
	fs.StringVar(&o.FromFile, "from-file", o.FromFile, "Read the inputs from an exported project document (yaml or json)")
}

func (o *InputOptions) Complete(cmd *cobra.Command, args []string) error {
	input := model.DefaultProjectInput()
	if o.FromFile != "" {
		data, err := os.ReadFile(o.FromFile)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", o.FromFile, err)
		}
		if input, err = service.ParseInput(data); err != nil {
			return err
		}
	}

	fields := calculators.Fields(&input)
	values := calculators.Fields(&o.values)
	for _, f := range inputFlags {
		if o.flags != nil && o.flags.Changed(f.name) {
			*fields[f.key] = *values[f.key]
		}
	}

	o.input = input.Clamp()
	return nil
}

func (o *InputOptions) Validate(args []string) error {
	return nil
}

// Input returns the completed project input.
func (o *InputOptions) Input() model.ProjectInput {
	return o.input
}
