package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/qatrack/internal/sqlite"
)

func newMetricsCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "Report test outcomes and defect rates per project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTracker(flags, func(b *sqlite.Backend) error {
				report, err := b.Metrics(cmd.Context())
				if err != nil {
					return err
				}
				if flags.jsonMode {
					return printJSON(cmd.OutOrStdout(), report)
				}

				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "PROJECT\tTOTAL\tPASSED\tFAILED\tDEFECT RATE\tAVG RESOLUTION (DAYS)")
				for _, m := range report {
					fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%.2f%%\t%.2f\n",
						m.ProjectName, m.TotalTests, m.PassedTests, m.FailedTests, m.DefectRate, m.AverageResolutionTime)
				}
				return tw.Flush()
			})
		},
	}
}
