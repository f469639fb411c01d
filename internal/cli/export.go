package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/qatrack/internal/sqlite"
	"github.com/mesh-intelligence/qatrack/pkg/types"
)

func newExportCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "export <dir>",
		Short: "Write every table to JSONL files",
		Long:  "Export writes <dir>/<table>.jsonl for each entity table, one JSON record per line.\nEach file is replaced atomically. User accounts are not exported.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTracker(flags, func(b *sqlite.Backend) error {
				counts, err := b.Export(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if flags.jsonMode {
					return printJSON(cmd.OutOrStdout(), counts)
				}
				for _, name := range types.StandardTableNames {
					fmt.Fprintf(cmd.OutOrStdout(), "%-16s %d\n", name, counts[name])
				}
				return nil
			})
		},
	}
}
