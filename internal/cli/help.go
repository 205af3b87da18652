package cli

import (
	"fmt"

	"github.com/siteplan/duration-planner/internal/service/report/types"
	"github.com/spf13/cobra"
)

func NewCmdHelpNote() *cobra.Command {
	return &cobra.Command{
		Use:   "help-note",
		Short: "Print the usage note of the calculator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), types.HelpNote)
			return err
		},
	}
}
