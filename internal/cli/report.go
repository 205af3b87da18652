package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/siteplan/duration-planner/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/thoas/go-funk"
)

type ReportOptions struct {
	GlobalOptions
	InputOptions

	Format         string
	OutputFilePath string
	out            io.Writer
}

func DefaultReportOptions() *ReportOptions {
	return &ReportOptions{
		GlobalOptions: DefaultGlobalOptions(),
		InputOptions:  DefaultInputOptions(),
		Format:        string(service.ReportFormatCSV),
	}
}

func NewCmdReport() *cobra.Command {
	o := DefaultReportOptions()
	cmd := &cobra.Command{
		Use:     "report [FLAGS]",
		Short:   "Generate a duration report",
		Example: "report -f xlsx --output-file estimate.xlsx --workers 80",
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

func (o *ReportOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)
	o.InputOptions.Bind(fs)

	fs.StringVarP(&o.Format, "format", "f", o.Format, fmt.Sprintf("Report format. One of: (%s).", strings.Join(service.ReportFormats, ", ")))
	fs.StringVar(&o.OutputFilePath, "output-file", o.OutputFilePath, "Report file path")
}

func (o *ReportOptions) Complete(cmd *cobra.Command, args []string) error {
	if err := o.GlobalOptions.Complete(cmd, args); err != nil {
		return err
	}
	o.out = cmd.OutOrStdout()
	return o.InputOptions.Complete(cmd, args)
}

func (o *ReportOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	if !funk.ContainsString(service.ReportFormats, o.Format) {
		return fmt.Errorf("report format must be one of %s", strings.Join(service.ReportFormats, ", "))
	}
	if o.Format == string(service.ReportFormatXLSX) && o.OutputFilePath == "" {
		return fmt.Errorf("an xlsx report needs --output-file")
	}
	return o.InputOptions.Validate(args)
}

func (o *ReportOptions) Run(ctx context.Context, args []string) error {
	estimate, err := service.NewEstimationService().Estimate(ctx, o.Input())
	var undefinedErr *service.ErrUndefinedDuration
	if err != nil && !errors.As(err, &undefinedErr) {
		return fmt.Errorf("failed to estimate duration: %w", err)
	}

	reports := service.NewReportService()
	format, err := reports.ParseReportFormat(o.Format)
	if err != nil {
		return err
	}

	content, err := reports.GenerateReport(estimate, service.ReportOptions{Format: format, Print: true})
	if err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}

	if o.OutputFilePath == "" {
		_, err = io.WriteString(o.out, content)
		return err
	}

	if err := os.WriteFile(o.OutputFilePath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", o.OutputFilePath, err)
	}
	fmt.Fprintf(o.out, "Report wrote to %s\n", o.OutputFilePath)
	return nil
}
