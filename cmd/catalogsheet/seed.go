package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/storefront/backend/internal/infrastructure/catalogdata"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/infrastructure/migration"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

func newSeedCmd(global *globalOptions) *cobra.Command {
	var (
		file    string
		migrate bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load a catalog YAML file into the database",
		Long: `Upserts every item of the catalog file into the catalog_items table,
recording the file order as catalog order. Without --catalog the embedded
catalog is used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := global.setup()
			if err != nil {
				return err
			}
			defer func() {
				_ = logger.Sync(log)
			}()

			items, err := catalogdata.Default()
			if file != "" {
				items, err = catalogdata.LoadFile(file)
			}
			if err != nil {
				return err
			}

			db, err := persistence.NewDatabase(&cfg.Database,
				persistence.WithLogger(log, logger.MapGormLogLevel(cfg.Log.Level)),
			)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer func() {
				_ = db.Close()
			}()

			if migrate {
				sqlDB, err := db.DB.DB()
				if err != nil {
					return fmt.Errorf("failed to get database handle: %w", err)
				}
				m, err := migration.New(sqlDB, log)
				if err != nil {
					return err
				}
				if err := m.Up(); err != nil {
					return err
				}
			}

			if err := persistence.NewGormItemRepository(db.DB).SaveAll(cmd.Context(), items); err != nil {
				return fmt.Errorf("failed to seed catalog: %w", err)
			}
			log.Info("Catalog seeded", zap.Int("items", len(items)))
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d items\n", len(items))
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "catalog", "", "Catalog YAML file (default: embedded catalog)")
	cmd.Flags().BoolVar(&migrate, "migrate", false, "Apply pending migrations before seeding")
	return cmd
}
