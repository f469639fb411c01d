package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/qatrack/internal/sqlite"
	"github.com/mesh-intelligence/qatrack/pkg/types"
)

var validTableNamesStr = strings.Join(types.StandardTableNames, ", ")

// tableArgs validates the leading table name before anything is opened.
func tableArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return err
		}
		if _, err := types.NewEntity(args[0]); err != nil {
			return fmt.Errorf("unknown table %q (valid: %s): %w", args[0], validTableNamesStr, types.ErrTableNotFound)
		}
		return nil
	}
}

// parseEntityJSON decodes data into the entity type stored in tableName.
// Unknown fields are rejected so typos do not pass silently.
func parseEntityJSON(tableName, data string) (any, error) {
	e, err := types.NewEntity(tableName)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(strings.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(e); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", types.ErrInvalidData, tableName, err)
	}
	return e, nil
}

func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Fprintln(w, string(out))
	return nil
}

func newListCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list <table>",
		Short: "List every entity in a table",
		Long:  "List prints every row of the table as a JSON array.\n\nValid table names: " + validTableNamesStr,
		Args:  tableArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTracker(flags, func(b *sqlite.Backend) error {
				table, err := b.GetTable(args[0])
				if err != nil {
					return err
				}
				all, err := table.List(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), all)
			})
		},
	}
}

func newGetCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "get <table> <id>",
		Short: "Get an entity by ID",
		Args:  tableArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTracker(flags, func(b *sqlite.Backend) error {
				table, err := b.GetTable(args[0])
				if err != nil {
					return err
				}
				e, err := table.Get(cmd.Context(), args[1])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), e)
			})
		},
	}
}

func newCreateCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "create <table> <json>",
		Short: "Create an entity from JSON",
		Example: `  qatrack create projects '{"name":"Apollo","start_date":"2024-01-01"}'
  qatrack create test_cases '{"test_plan_id":"...","name":"login","status":"pending"}'`,
		Args: tableArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := parseEntityJSON(args[0], args[1])
			if err != nil {
				return err
			}
			return withTracker(flags, func(b *sqlite.Backend) error {
				table, err := b.GetTable(args[0])
				if err != nil {
					return err
				}
				created, err := table.Create(cmd.Context(), e)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), created)
			})
		},
	}
}

func newUpdateCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "update <table> <id> <json>",
		Short: "Replace an entity with JSON",
		Long:  "Update replaces every mutable field of the entity. Fields left out of the JSON are cleared.",
		Args:  tableArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := parseEntityJSON(args[0], args[2])
			if err != nil {
				return err
			}
			return withTracker(flags, func(b *sqlite.Backend) error {
				table, err := b.GetTable(args[0])
				if err != nil {
					return err
				}
				updated, err := table.Update(cmd.Context(), args[1], e)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), updated)
			})
		},
	}
}

func newDeleteCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <table> <id>",
		Short: "Delete an entity by ID",
		Args:  tableArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTracker(flags, func(b *sqlite.Backend) error {
				table, err := b.GetTable(args[0])
				if err != nil {
					return err
				}
				if err := table.Delete(cmd.Context(), args[1]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %s\n", args[0], args[1])
				return nil
			})
		},
	}
}
