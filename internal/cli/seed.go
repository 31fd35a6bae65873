package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ArowuTest/paymethods-config-backend/internal/config"
	"github.com/ArowuTest/paymethods-config-backend/internal/logger"
	mongorepo "github.com/ArowuTest/paymethods-config-backend/internal/repositories/mongodb"
	"github.com/ArowuTest/paymethods-config-backend/internal/seed"
	"github.com/ArowuTest/paymethods-config-backend/pkg/mongodb"
)

// seedTarget overrides parts of the API configuration for a seed run
type seedTarget struct {
	Database      string
	EnsureIndexes bool
}

// importerFactory opens whatever the importer writes to and returns a release func
type importerFactory func(ctx context.Context, target seedTarget) (*seed.Importer, func(), error)

type importFunc func(imp *seed.Importer, ctx context.Context, r io.Reader) (*seed.Result, error)

func newSeedCmd(open importerFactory) *cobra.Command {
	var target seedTarget

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load reference data and admin accounts from CSV",
		Long: `Imports CSV sheets into the MongoDB database configured for the API
(config.yaml, .env or MONGODB_URI / MONGODB_DATABASE). --database defaults to
$CONFIGCTL_DATABASE and --ensure-indexes to $CONFIGCTL_ENSURE_INDEXES.

Rows that already exist are skipped; row errors are reported and do not stop the import.`,
	}

	cmd.PersistentFlags().StringVar(&target.Database, "database", config.GetEnv("CONFIGCTL_DATABASE", ""), "database to seed instead of the configured one")
	cmd.PersistentFlags().BoolVar(&target.EnsureIndexes, "ensure-indexes", config.GetEnvAsBool("CONFIGCTL_ENSURE_INDEXES", true), "create collection indexes before importing")

	cmd.AddCommand(newSeedSubCmd(open, &target, "currencies", "Import currencies (ISO3,Name)", (*seed.Importer).ImportCurrencies))
	cmd.AddCommand(newSeedSubCmd(open, &target, "country-authorities", "Import country/authority pairs (Country,Authority)", (*seed.Importer).ImportCountryAuthorities))
	cmd.AddCommand(newSeedSubCmd(open, &target, "admins", "Import admin accounts (Email,Password,Role)", (*seed.Importer).ImportAdminUsers))
	return cmd
}

func newSeedSubCmd(open importerFactory, target *seedTarget, use, short string, run importFunc) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if file != "-" {
				f, err := os.Open(file)
				if err != nil {
					return fmt.Errorf("open %s: %w", file, err)
				}
				defer f.Close()
				in = f
			}

			imp, release, err := open(cmd.Context(), *target)
			if err != nil {
				return err
			}
			defer release()

			res, err := run(imp, cmd.Context(), in)
			if res != nil {
				if werr := writeJSON(cmd.OutOrStdout(), res); werr != nil && err == nil {
					err = werr
				}
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "CSV file")
	return cmd
}

// openMongoImporter connects with the API's configuration
func openMongoImporter(ctx context.Context, target seedTarget) (*seed.Importer, func(), error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	timeout := time.Duration(cfg.MongoDB.Timeout) * time.Second
	client, err := mongodb.NewClient(ctx, cfg.MongoDB.URI, timeout)
	if err != nil {
		return nil, nil, err
	}
	release := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(ctx)
	}

	database := cfg.MongoDB.Database
	if target.Database != "" {
		database = target.Database
	}
	db := client.Database(database)
	if target.EnsureIndexes {
		if err := mongorepo.EnsureIndexes(ctx, db); err != nil {
			release()
			return nil, nil, err
		}
	}

	imp := seed.NewImporter(
		mongorepo.NewReferenceRepository(db),
		mongorepo.NewAdminUserRepository(db),
		logger.L(),
	)
	return imp, release, nil
}
