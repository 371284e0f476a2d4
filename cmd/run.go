package main

import (
	"encoding/json"
	"os"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/seichi-tools/panotabi/internal/config"
	"github.com/seichi-tools/panotabi/internal/model"
	"github.com/seichi-tools/panotabi/internal/pipeline"
	"github.com/seichi-tools/panotabi/pkg/anitabi"
	"github.com/seichi-tools/panotabi/pkg/streetview"
)

var (
	runCSVPath     string
	runURLListPath string
	runRadius      int
	runConcurrency int
	runDedupe      bool
	runWorksFile   string
)

var runCmd = &cobra.Command{
	Use:   "run [work-id...]",
	Short: "Fetch points for the given works and resolve them to panoramas",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// Flag overrides
		if cmd.Flags().Changed("csv") {
			cfg.Output.CSVPath = runCSVPath
		}
		if cmd.Flags().Changed("urls") {
			cfg.Output.URLListPath = runURLListPath
		}
		if cmd.Flags().Changed("radius") {
			cfg.StreetView.Radius = runRadius
		}
		if cmd.Flags().Changed("concurrency") {
			cfg.Resolve.Concurrency = runConcurrency
		}
		if cmd.Flags().Changed("dedupe") {
			cfg.Dedupe = runDedupe
		}

		if err := cfg.Validate(); err != nil {
			return err
		}

		works, err := resolveWorks(args)
		if err != nil {
			return err
		}

		if cfg.StreetView.APIKey == config.PlaceholderAPIKey {
			zap.L().Warn("streetview api key is the placeholder, every lookup will come back REQUEST_DENIED")
		}

		// Init clients
		catalogClient := anitabi.NewClient(
			anitabi.WithBaseURL(cfg.Catalog.BaseURL),
			anitabi.WithTimeout(time.Duration(cfg.Catalog.TimeoutSecs) * time.Second),
		)

		svOpts := []streetview.Option{
			streetview.WithBaseURL(cfg.StreetView.BaseURL),
			streetview.WithTimeout(time.Duration(cfg.StreetView.TimeoutSecs) * time.Second),
		}
		if cfg.Resolve.QPS > 0 {
			svOpts = append(svOpts, streetview.WithRateLimit(cfg.Resolve.QPS))
		}
		svClient := streetview.NewClient(cfg.StreetView.APIKey, svOpts...)

		// Build pipeline
		p := pipeline.New(cfg, catalogClient, svClient)

		summary, err := p.Run(ctx, works)
		if err != nil {
			return eris.Wrap(err, "pipeline run")
		}

		if summary.Records == 0 {
			return eris.New("run produced no records")
		}

		// Print summary JSON to stdout
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	},
}

// resolveWorks picks the work list: positional IDs win, then --works-file,
// then the works key in config.
func resolveWorks(args []string) ([]model.Work, error) {
	if len(args) > 0 {
		return parseWorkIDs(args)
	}
	if runWorksFile != "" {
		return config.LoadWorkList(runWorksFile)
	}
	if len(cfg.Works) > 0 {
		works := make([]model.Work, len(cfg.Works))
		for i, id := range cfg.Works {
			works[i] = model.Work{ID: id}
		}
		return works, nil
	}
	return nil, eris.New("no works given: pass work ids, --works-file, or set works in config")
}

// parseWorkIDs converts positional args to works.
func parseWorkIDs(args []string) ([]model.Work, error) {
	works := make([]model.Work, len(args))
	for i, a := range args {
		id, err := strconv.Atoi(a)
		if err != nil || id <= 0 {
			return nil, eris.Errorf("invalid work id %q", a)
		}
		works[i] = model.Work{ID: id}
	}
	return works, nil
}

func init() {
	runCmd.Flags().StringVar(&runCSVPath, "csv", "", "CSV output path (overrides config)")
	runCmd.Flags().StringVar(&runURLListPath, "urls", "", "viewer URL list output path (overrides config)")
	runCmd.Flags().IntVar(&runRadius, "radius", 0, "panorama search radius in meters (overrides config)")
	runCmd.Flags().IntVar(&runConcurrency, "concurrency", 0, "parallel metadata lookups (overrides config)")
	runCmd.Flags().BoolVar(&runDedupe, "dedupe", true, "drop records that repeat a panorama id (overrides config)")
	runCmd.Flags().StringVar(&runWorksFile, "works-file", "", "YAML file listing works to process")
	rootCmd.AddCommand(runCmd)
}
