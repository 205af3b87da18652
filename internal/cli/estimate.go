package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/siteplan/duration-planner/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/thoas/go-funk"
	"sigs.k8s.io/yaml"
)

var (
	legalOutputTypes = []string{textFormat, jsonFormat, yamlFormat}
)

type EstimateOptions struct {
	GlobalOptions
	InputOptions

	Output string
	out    io.Writer
}

func DefaultEstimateOptions() *EstimateOptions {
	return &EstimateOptions{
		GlobalOptions: DefaultGlobalOptions(),
		InputOptions:  DefaultInputOptions(),
		Output:        textFormat,
	}
}

func NewCmdEstimate() *cobra.Command {
	o := DefaultEstimateOptions()
	cmd := &cobra.Command{
		Use:     "estimate [FLAGS]",
		Short:   "Estimate the duration of a construction project",
		Example: "estimate --floors 12 --workers 80 -o yaml",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
			if err := o.Validate(args); err != nil {
				return err
			}
			return o.Run(cmd.Context(), args)
		},
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *EstimateOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)
	o.InputOptions.Bind(fs)

	fs.StringVarP(&o.Output, "output", "o", o.Output, fmt.Sprintf("Output format. One of: (%s).", strings.Join(legalOutputTypes, ", ")))
}

func (o *EstimateOptions) Complete(cmd *cobra.Command, args []string) error {
	if err := o.GlobalOptions.Complete(cmd, args); err != nil {
		return err
	}
	o.out = cmd.OutOrStdout()
	return o.InputOptions.Complete(cmd, args)
}

func (o *EstimateOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	if !funk.Contains(legalOutputTypes, o.Output) {
		return fmt.Errorf("output format must be one of %s", strings.Join(legalOutputTypes, ", "))
	}
	return o.InputOptions.Validate(args)
}

// Run prints the estimate. An undefined duration is printed with its
// explanation and then reported as the command error.
func (o *EstimateOptions) Run(ctx context.Context, args []string) error {
	estimate, estimateErr := service.NewEstimationService().Estimate(ctx, o.Input())

	var undefinedErr *service.ErrUndefinedDuration
	if estimateErr != nil && !errors.As(estimateErr, &undefinedErr) {
		return fmt.Errorf("failed to estimate duration: %w", estimateErr)
	}

	switch o.Output {
	case jsonFormat:
		marshalled, err := json.MarshalIndent(estimate, "", "  ")
		if err != nil {
			return fmt.Errorf("marshalling estimate: %w", err)
		}
		fmt.Fprintln(o.out, string(marshalled))
	case yamlFormat:
		marshalled, err := yaml.Marshal(estimate)
		if err != nil {
			return fmt.Errorf("marshalling estimate: %w", err)
		}
		fmt.Fprint(o.out, string(marshalled))
	default:
		content, err := service.NewReportService().GenerateReport(estimate, service.ReportOptions{Format: service.ReportFormatText})
		if err != nil {
			return err
		}
		fmt.Fprint(o.out, content)
	}

	return estimateErr
}
