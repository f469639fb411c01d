// Package cli implements the qatrack command-line interface.
package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/qatrack/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values shared by all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	envFile   string
	jsonMode  bool
}

// NewRootCmd creates the top-level "qatrack" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:   "qatrack",
		Short: "Track test plans, executions and defects",
		Long: "qatrack records projects, test plans, test cases, test executions and defects,\n" +
			"reports quality metrics per project, and serves everything over an HTTP API.",
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: $QATRACK_CONFIG_DIR or the platform config dir)")
	pf.StringVar(&flags.dataDir, "data-dir", "", "data directory for the SQLite database")
	pf.StringVar(&flags.envFile, "env-file", "", "load environment variables from this file before reading config")
	pf.BoolVar(&flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(flags),
		newServeCmd(flags),
		newListCmd(flags),
		newGetCmd(flags),
		newCreateCmd(flags),
		newUpdateCmd(flags),
		newDeleteCmd(flags),
		newMetricsCmd(flags),
		newUserCmd(flags),
		newExportCmd(flags),
	)
	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(exitCode(err))
	}
	os.Exit(exitSuccess)
}

// exitCode separates mistakes in the caller's input from failures of the
// system itself.
func exitCode(err error) int {
	for _, userErr := range []error{
		types.ErrValidation,
		types.ErrNotFound,
		types.ErrTableNotFound,
		types.ErrInvalidData,
		types.ErrInvalidID,
		types.ErrConflict,
		types.ErrInvalidCredentials,
	} {
		if errors.Is(err, userErr) {
			return exitUserError
		}
	}
	return exitSysError
}
