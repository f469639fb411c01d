package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the qatrack release.
const Version = "0.1.0"

const modulePath = "github.com/mesh-intelligence/qatrack"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the qatrack version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "qatrack v%s\nmodule: %s\n", Version, modulePath)
			return nil
		},
	}
}
