package pipeline

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/seichi-tools/panotabi/internal/geo"
	"github.com/seichi-tools/panotabi/internal/model"
	"github.com/seichi-tools/panotabi/pkg/streetview"
)

// resolveAll looks up a panorama for every point and keeps the found ones,
// in input order. Each task writes to its own slot so no pairing is lost
// however the pool schedules them. Individual lookup failures are logged
// and skipped, never aborting the batch.
func (p *Pipeline) resolveAll(ctx context.Context, log *zap.Logger, points []model.CatalogPoint, summary *Summary) []model.Record {
	if len(points) == 0 {
		return nil
	}

	limit := p.cfg.Resolve.Concurrency
	if limit < 1 {
		limit = 1
	}

	results := make([]*streetview.Result, len(points))
	errs := make([]error, len(points))

	eg, gCtx := errgroup.WithContext(ctx)
	eg.SetLimit(limit)

	for i, pt := range points {
		i, pt := i, pt
		eg.Go(func() error {
			results[i], errs[i] = p.sv.Metadata(gCtx, pt.Geo, p.cfg.StreetView.Radius)
			return nil
		})
	}
	_ = eg.Wait()

	records := make([]model.Record, 0, len(points))
	for i, pt := range points {
		switch {
		case errs[i] != nil:
			summary.TransportErrors++
			log.Warn("pipeline: lookup failed",
				zap.String("name", pt.Name),
				zap.Float64("lat", pt.Geo.Lat),
				zap.Float64("lng", pt.Geo.Lng),
				zap.Error(errs[i]),
			)
		case !results[i].Found:
			summary.NoPano++
			log.Warn("pipeline: no panorama",
				zap.String("name", pt.Name),
				zap.Float64("lat", pt.Geo.Lat),
				zap.Float64("lng", pt.Geo.Lng),
				zap.String("status", results[i].Status),
			)
		default:
			summary.Resolved++
			pano := model.PanoramaPoint{
				Geo:    results[i].Location,
				PanoID: results[i].PanoID,
			}
			log.Debug("pipeline: panorama found",
				zap.String("name", pt.Name),
				zap.String("pano_id", pano.PanoID),
				zap.Float64("drift_m", geo.DistanceMeters(pt.Geo, pano.Geo)),
			)
			records = append(records, model.Record{Catalog: pt, Panorama: pano})
		}
	}

	return records
}
