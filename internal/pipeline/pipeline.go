// Package pipeline orchestrates the catalog-to-panorama workflow: collect
// points for each work, resolve them against Street View, dedupe, export.
package pipeline

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/seichi-tools/panotabi/internal/config"
	"github.com/seichi-tools/panotabi/internal/model"
	"github.com/seichi-tools/panotabi/pkg/anitabi"
	"github.com/seichi-tools/panotabi/pkg/streetview"
)

// Summary counts the outcome of a run.
type Summary struct {
	Works           int `json:"works"`
	WorksFailed     int `json:"works_failed"`
	Points          int `json:"points"`
	Resolved        int `json:"resolved"`
	NoPano          int `json:"no_pano"`
	TransportErrors int `json:"transport_errors"`
	Duplicates      int `json:"duplicates"`
	Records         int `json:"records"`
}

// Pipeline orchestrates the collect, resolve, dedupe and export phases.
type Pipeline struct {
	cfg     *config.Config
	catalog anitabi.Client
	sv      streetview.Client
}

// New creates a new Pipeline with all dependencies.
func New(cfg *config.Config, catalog anitabi.Client, sv streetview.Client) *Pipeline {
	return &Pipeline{
		cfg:     cfg,
		catalog: catalog,
		sv:      sv,
	}
}

// Run executes the full pipeline for the given works. A work whose fetch
// fails contributes zero points; a run only fails on export errors.
func (p *Pipeline) Run(ctx context.Context, works []model.Work) (*Summary, error) {
	log := zap.L().With(zap.String("run_id", uuid.New().String()))
	log.Info("pipeline: starting run", zap.Int("works", len(works)))

	summary := &Summary{Works: len(works)}

	// ===== Phase 1: Collect =====
	var points []model.CatalogPoint
	for _, w := range works {
		wlog := log.With(zap.Int("work_id", w.ID))
		if w.Label != "" {
			wlog = wlog.With(zap.String("label", w.Label))
		}

		pts, err := p.catalog.Points(ctx, w.ID)
		if err != nil {
			summary.WorksFailed++
			wlog.Warn("pipeline: fetch failed", zap.Error(err))
			continue
		}
		wlog.Info("pipeline: points fetched", zap.Int("count", len(pts)))
		points = append(points, pts...)
	}
	summary.Points = len(points)

	// ===== Phase 2: Resolve =====
	records := p.resolveAll(ctx, log, points, summary)

	// ===== Phase 3: Dedupe =====
	if p.cfg.Dedupe {
		before := len(records)
		records = dedupeRecords(records)
		summary.Duplicates = before - len(records)
		log.Info("pipeline: deduplicated",
			zap.Int("duplicates", summary.Duplicates),
			zap.Int("kept", len(records)),
		)
	}
	summary.Records = len(records)

	// ===== Phase 4: Export =====
	if err := WriteCSV(p.cfg.Output.CSVPath, records); err != nil {
		return summary, err
	}
	if err := WriteURLList(p.cfg.Output.URLListPath, records); err != nil {
		return summary, err
	}

	log.Info("pipeline: run complete",
		zap.Int("works", summary.Works),
		zap.Int("works_failed", summary.WorksFailed),
		zap.Int("points", summary.Points),
		zap.Int("resolved", summary.Resolved),
		zap.Int("no_pano", summary.NoPano),
		zap.Int("transport_errors", summary.TransportErrors),
		zap.Int("duplicates", summary.Duplicates),
		zap.Int("records", summary.Records),
		zap.String("csv", p.cfg.Output.CSVPath),
		zap.String("url_list", p.cfg.Output.URLListPath),
	)

	return summary, nil
}
