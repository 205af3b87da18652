package main

import (
	"os"

	"github.com/siteplan/duration-planner/internal/cli"
	"github.com/spf13/cobra"
)

func main() {
	command := NewPlannerCtlCommand()
	if err := command.Execute(); err != nil {
		os.Exit(1)
	}
}

func NewPlannerCtlCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "planner [flags] [options]",
		Short: "planner estimates the duration of construction projects.",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
			os.Exit(1)
		},
	}
	cmd.AddCommand(cli.NewCmdEstimate())
	cmd.AddCommand(cli.NewCmdExport())
	cmd.AddCommand(cli.NewCmdReport())
	cmd.AddCommand(cli.NewCmdHelpNote())
	cmd.AddCommand(cli.NewCmdVersion())

	return cmd
}
