package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/qatrack/internal/auth"
	"github.com/mesh-intelligence/qatrack/internal/sqlite"
	"github.com/mesh-intelligence/qatrack/pkg/types"
)

func newUserCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage API users",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <username> <password>",
			Short: "Register a user",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withTracker(flags, func(b *sqlite.Backend) error {
					u, err := auth.NewGate(b).Register(cmd.Context(), args[0], args[1])
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Registered %s (%s)\n", u.Username, u.ID)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "check <username> <password>",
			Short: "Verify a user's password",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withTracker(flags, func(b *sqlite.Backend) error {
					ok, err := auth.NewGate(b).Login(cmd.Context(), args[0], args[1])
					if err != nil {
						return err
					}
					if !ok {
						return fmt.Errorf("%w: wrong password for %q", types.ErrInvalidCredentials, args[0])
					}
					fmt.Fprintln(cmd.OutOrStdout(), "Credentials valid")
					return nil
				})
			},
		},
	)
	return cmd
}
