package pipeline

import (
	"encoding/csv"
	"os"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/seichi-tools/panotabi/internal/model"
)

// csvColumns defines the ordered CSV output columns.
var csvColumns = []string{
	"name",
	"anitabi_lat",
	"anitabi_lng",
	"pano_id",
	"pano_lat",
	"pano_lng",
	"google_maps_url",
}

// WriteCSV writes one row per record to path, overwriting any existing
// file. Zero records produce a header-only file.
func WriteCSV(path string, records []model.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "export: create csv")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(csvColumns); err != nil {
		return eris.Wrap(err, "export: write header")
	}

	for _, r := range records {
		row := []string{
			r.Catalog.Name,
			model.FormatCoord(r.Catalog.Geo.Lat),
			model.FormatCoord(r.Catalog.Geo.Lng),
			r.Panorama.PanoID,
			model.FormatCoord(r.Panorama.Geo.Lat),
			model.FormatCoord(r.Panorama.Geo.Lng),
			r.Panorama.ViewerURL(),
		}
		if err := w.Write(row); err != nil {
			return eris.Wrap(err, "export: write row")
		}
	}

	return nil
}

// WriteURLList writes every record's viewer URL to path, one per line with
// no newline after the last, overwriting any existing file. Zero records
// produce an empty file.
func WriteURLList(path string, records []model.Record) error {
	urls := make([]string, len(records))
	for i, r := range records {
		urls[i] = r.Panorama.ViewerURL()
	}

	if err := os.WriteFile(path, []byte(strings.Join(urls, "\n")), 0644); err != nil {
		return eris.Wrap(err, "export: write url list")
	}

	return nil
}
