package cmd

import (
	"log"

	"planeage/core/config"
	"planeage/core/logger"
	"planeage/core/storage"
	"planeage/feature/refresh"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// refreshCmd runs one dataset refresh and exits.
var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Download and swap in a fresh registry dataset",
	Long: `Downloads the registry archive, extracts the dataset files, and atomically
swaps them into place. The previous dataset stays intact on any failure.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		logg, err := logger.New(&logger.Config{Level: cfg.Log.Level, Format: "console"})
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()

		var store storage.Client
		if cfg.Refresh.Mirror {
			store, err = storage.NewClient(cfg.Storage)
			if err != nil {
				logg.Fatal("Failed to create storage client", zap.Error(err))
			}
		}

		feature := refresh.NewFeature(cfg.Refresh,
			cfg.Registry.MasterPath(), cfg.Registry.RefPath(),
			store, cfg.Storage.Bucket, logg)

		return feature.Pipeline().Run(cmd.Context())
	},
}

func init() {
	RootCmd.AddCommand(refreshCmd)
}
