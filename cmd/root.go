package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/seichi-tools/panotabi/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "panotabi",
	Short: "Resolve anime pilgrimage points to Street View panoramas",
	Long:  "Fetches per-work points of interest from the anitabi catalog, resolves each against the Google Street View metadata API, dedupes by panorama, and exports a CSV plus a viewer URL list.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
