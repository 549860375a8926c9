package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

const modulePath = "github.com/Makepad-fr/tada"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the tada version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "tada %s\nmodule: %s\n", Version, modulePath)
			return nil
		},
	}
}
