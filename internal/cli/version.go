package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/siteplan/duration-planner/pkg/version"
	"github.com/spf13/cobra"
	"github.com/thoas/go-funk"
	"sigs.k8s.io/yaml"
)

type VersionOptions struct {
	Output string
	out    io.Writer
}

func DefaultVersionOptions() *VersionOptions {
	return &VersionOptions{
		Output: "",
	}
}

func NewCmdVersion() *cobra.Command {
	o := DefaultVersionOptions()
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print Planner version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			o.out = cmd.OutOrStdout()
			if len(o.Output) > 0 && !funk.ContainsString([]string{jsonFormat, yamlFormat}, o.Output) {
				return fmt.Errorf("output format must be one of %s", strings.Join([]string{jsonFormat, yamlFormat}, ", "))
			}
			return o.Run(cmd.Context(), args)
		},
		SilenceUsage: true,
	}
	cmd.Flags().StringVarP(&o.Output, "output", "o", o.Output, "Output format. One of: (json, yaml).")
	return cmd
}

func (o *VersionOptions) Run(ctx context.Context, args []string) error {
	versionInfo := version.Get()

	switch o.Output {
	case jsonFormat:
		marshalled, err := json.Marshal(versionInfo)
		if err != nil {
			return err
		}
		fmt.Fprintln(o.out, string(marshalled))
	case yamlFormat:
		marshalled, err := yaml.Marshal(versionInfo)
		if err != nil {
			return err
		}
		fmt.Fprint(o.out, string(marshalled))
	default:
		fmt.Fprintf(o.out, "Planner Version: %s\n", versionInfo.String())
	}
	return nil
}
