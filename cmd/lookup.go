package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"planeage/core/config"
	"planeage/core/logger"
	"planeage/feature/registry"
	"planeage/feature/registry/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// lookupCmd resolves one tail registration against the local registry files.
var lookupCmd = &cobra.Command{
	Use:   "lookup <tail>",
	Short: "Look up a tail registration in the local registry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		logg := zap.NewNop()
		if cfg.Log.Level == "debug" {
			logg, err = logger.New(&logger.Config{Level: "debug", Format: "console"})
			if err != nil {
				log.Fatalf("Failed to initialize logger: %v", err)
			}
			defer logg.Sync()
		}

		svc := registry.NewService(cfg.Registry, logg)
		ac, err := svc.Lookup(cmd.Context(), args[0])
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				fmt.Fprintf(os.Stderr, "%s: not found in registry\n", args[0])
				os.Exit(1)
			}
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(ac)
	},
}

func init() {
	RootCmd.AddCommand(lookupCmd)
}
