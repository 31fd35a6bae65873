package cli

import (
	"github.com/spf13/cobra"

	"github.com/ArowuTest/paymethods-config-backend/internal/scoped"
)

func newGroupCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Compact flat scoped records into groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			var records []scoped.Record
			if err := readInput(file, cmd.InOrStdin(), &records); err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), scoped.Group(records))
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "records file (JSON or YAML)")
	return cmd
}

func newUngroupCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "ungroup",
		Short: "Expand groups into flat scoped records",
		RunE: func(cmd *cobra.Command, args []string) error {
			var groups []scoped.RecordGroup
			if err := readInput(file, cmd.InOrStdin(), &groups); err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), scoped.Ungroup(groups))
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "groups file (JSON or YAML)")
	return cmd
}
