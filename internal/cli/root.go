// Package cli implements configctl, a tool for checking field payloads, converting
// credential and bank account records between flat and grouped form, and seeding
// reference data.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the configctl command tree
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "configctl",
		Short: "Offline tooling for payment method configuration",
		Long: `configctl validates field payloads before they are sent to the admin API
and converts scoped records between their flat and grouped forms. The seed
commands load currencies, country authorities and admin accounts from CSV.

Input files may be JSON or YAML; "-" reads standard input.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newGroupCmd())
	rootCmd.AddCommand(newUngroupCmd())
	rootCmd.AddCommand(newSeedCmd(openMongoImporter))
	return rootCmd
}

// Execute runs the root command
func Execute(version string) error {
	rootCmd := NewRootCmd()
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}
