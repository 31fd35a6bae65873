package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ArowuTest/paymethods-config-backend/internal/apperrors"
	"github.com/ArowuTest/paymethods-config-backend/internal/config"
	"github.com/ArowuTest/paymethods-config-backend/internal/models"
	"github.com/ArowuTest/paymethods-config-backend/internal/upsert"
)

func newValidateCmd() *cobra.Command {
	var (
		file       string
		currencies []string
		maxFields  int
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a field upsert payload",
		Long: `Runs the same checks as the admin API against a payload file and prints
the number of field rows it expands into.

Known currencies default to $CONFIGCTL_CURRENCIES (comma separated) and the
row ceiling to $CONFIGCTL_MAX_FIELDS. The ceiling can only be lowered.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var p upsert.Payload
			if err := readInput(file, cmd.InOrStdin(), &p); err != nil {
				return err
			}

			if err := upsert.CheckShape(&p); err != nil {
				return describe(cmd, err)
			}
			if err := upsert.Validate(&p, upsert.Known{Currencies: currencies, MaxFields: maxFields}); err != nil {
				return describe(cmd, err)
			}

			rows := upsert.Flatten(&p, primitive.NilObjectID, primitive.NilObjectID)
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d field rows\n", len(rows))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "payload file (JSON or YAML)")
	cmd.Flags().StringSliceVar(&currencies, "currencies", config.GetEnvAsSlice("CONFIGCTL_CURRENCIES", ",", nil), "known currency codes")
	cmd.Flags().IntVar(&maxFields, "max-fields", config.GetEnvAsInt("CONFIGCTL_MAX_FIELDS", models.MaxAllowedFields), "maximum number of field rows")
	return cmd
}

// describe prints the kind and meta of an application error before returning it
func describe(cmd *cobra.Command, err error) error {
	if appErr, ok := apperrors.As(err); ok {
		out := cmd.ErrOrStderr()
		fmt.Fprintf(out, "%s: %s\n", appErr.Kind, appErr.Message)
		keys := make([]string, 0, len(appErr.Meta))
		for k := range appErr.Meta {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(out, "  %s: %s\n", k, appErr.Meta[k])
		}
	}
	return err
}
