package pipeline

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/seichi-tools/panotabi/internal/config"
	"github.com/seichi-tools/panotabi/internal/model"
	"github.com/seichi-tools/panotabi/pkg/streetview"
)

// testConfig returns a Config pointing its outputs into a temp dir.
func testConfig(t *testing.T) *config.Config {
	t.Helper()

	dir := t.TempDir()
	cfg := &config.Config{Dedupe: true}
	cfg.Output.CSVPath = filepath.Join(dir, "output.csv")
	cfg.Output.URLListPath = filepath.Join(dir, "tuxun_output.txt")
	cfg.StreetView.Radius = 50
	cfg.Resolve.Concurrency = 1
	return cfg
}

// found builds a successful lookup result.
func found(panoID string, loc model.GeoPoint) *streetview.Result {
	return &streetview.Result{Found: true, Status: "OK", PanoID: panoID, Location: loc}
}

// noPano builds a no-match lookup result.
func noPano(status string) *streetview.Result {
	return &streetview.Result{Found: false, Status: status}
}

// readCSV parses the CSV file at path into rows.
func readCSV(t *testing.T, path string) [][]string {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}
