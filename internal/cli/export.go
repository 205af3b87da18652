package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/siteplan/duration-planner/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/thoas/go-funk"
)

type ExportOptions struct {
	GlobalOptions
	InputOptions

	Output         string
	OutputFilePath string
	out            io.Writer
}

func DefaultExportOptions() *ExportOptions {
	return &ExportOptions{
		GlobalOptions: DefaultGlobalOptions(),
		InputOptions:  DefaultInputOptions(),
		Output:        yamlFormat,
	}
}

func NewCmdExport() *cobra.Command {
	o := DefaultExportOptions()
	cmd := &cobra.Command{
		Use:     "export [FLAGS]",
		Short:   "Print the project inputs as a document that can be read back with --from-file",
		Example: "export --floors 12 -o json --output-file project.json",
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

func (o *ExportOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)
	o.InputOptions.Bind(fs)

	fs.StringVarP(&o.Output, "output", "o", o.Output, fmt.Sprintf("Document format. One of: (%s).", strings.Join(service.ExportFormats, ", ")))
	fs.StringVar(&o.OutputFilePath, "output-file", o.OutputFilePath, "Write the document to this file instead of stdout")
}

func (o *ExportOptions) Complete(cmd *cobra.Command, args []string) error {
	if err := o.GlobalOptions.Complete(cmd, args); err != nil {
		return err
	}
	o.out = cmd.OutOrStdout()
	return o.InputOptions.Complete(cmd, args)
}

func (o *ExportOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	if !funk.ContainsString(service.ExportFormats, o.Output) {
		return fmt.Errorf("output format must be one of %s", strings.Join(service.ExportFormats, ", "))
	}
	return o.InputOptions.Validate(args)
}

func (o *ExportOptions) Run(ctx context.Context, args []string) error {
	format, err := service.ParseExportFormat(o.Output)
	if err != nil {
		return err
	}

	data, err := service.ExportInput(o.Input(), format)
	if err != nil {
		return fmt.Errorf("failed to export inputs: %w", err)
	}

	if o.OutputFilePath == "" {
		_, err = o.out.Write(data)
		return err
	}

	if err := os.WriteFile(o.OutputFilePath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", o.OutputFilePath, err)
	}
	fmt.Fprintf(o.out, "Inputs written to %s\n", o.OutputFilePath)
	return nil
}
