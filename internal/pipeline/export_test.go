package pipeline

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/seichi-tools/panotabi/internal/model"
)

func sampleRecord() model.Record {
	return model.Record{
		Catalog: model.CatalogPoint{
			Name: "喫茶ステラ",
			Geo:  model.GeoPoint{Lat: 35.0001, Lng: 139.0001},
		},
		Panorama: model.PanoramaPoint{
			Geo:    model.GeoPoint{Lat: 35.00012, Lng: 139.00013},
			PanoID: "CAoSLEFGMVFpcE1q",
		},
	}
}

func TestWriteCSV_ColumnOrder(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "output.csv")
	if err := WriteCSV(outPath, []model.Record{sampleRecord()}); err != nil {
		t.Fatalf("WriteCSV() error: %v", err)
	}

	f, err := os.Open(outPath)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows (header + 1 data), got %d", len(rows))
	}

	header := rows[0]
	if len(header) != len(csvColumns) {
		t.Fatalf("header length %d != csvColumns length %d", len(header), len(csvColumns))
	}
	for i, col := range csvColumns {
		if header[i] != col {
			t.Errorf("header[%d] = %q, want %q", i, header[i], col)
		}
	}

	row := rows[1]
	want := []string{
		"喫茶ステラ",
		"35.0001",
		"139.0001",
		"CAoSLEFGMVFpcE1q",
		"35.00012",
		"139.00013",
		"https://www.google.com/maps/@35.00012,139.00013,3a/data=!3m8!1e1!3m6!1sCAoSLEFGMVFpcE1q!2e10!3e12!6s",
	}
	for i, w := range want {
		if row[i] != w {
			t.Errorf("row[%d] = %q, want %q", i, row[i], w)
		}
	}
}

func TestWriteCSV_Empty(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "empty.csv")
	if err := WriteCSV(outPath, nil); err != nil {
		t.Fatalf("WriteCSV() error: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if got, want := string(data), "name,anitabi_lat,anitabi_lng,pano_id,pano_lat,pano_lng,google_maps_url\n"; got != want {
		t.Errorf("empty csv = %q, want %q", got, want)
	}
}

func TestWriteCSV_QuotesSpecialNames(t *testing.T) {
	r := sampleRecord()
	r.Catalog.Name = `Cafe "Stella", Annex`

	outPath := filepath.Join(t.TempDir(), "quoted.csv")
	if err := WriteCSV(outPath, []model.Record{r}); err != nil {
		t.Fatalf("WriteCSV() error: %v", err)
	}

	f, err := os.Open(outPath)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}

	// The name survives a quote round-trip and the row keeps 7 fields.
	if rows[1][0] != r.Catalog.Name {
		t.Errorf("name = %q, want %q", rows[1][0], r.Catalog.Name)
	}
	if len(rows[1]) != 7 {
		t.Errorf("row has %d fields, want 7", len(rows[1]))
	}
}

func TestWriteCSV_Overwrites(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "output.csv")

	if err := WriteCSV(outPath, []model.Record{sampleRecord(), sampleRecord()}); err != nil {
		t.Fatalf("first WriteCSV() error: %v", err)
	}
	if err := WriteCSV(outPath, []model.Record{sampleRecord()}); err != nil {
		t.Fatalf("second WriteCSV() error: %v", err)
	}

	f, err := os.Open(outPath)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("expected 2 rows after overwrite, got %d", len(rows))
	}
}

func TestWriteCSV_CreateError(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "missing", "output.csv")

	err := WriteCSV(outPath, nil)
	if err == nil {
		t.Fatal("expected error for unwritable path")
	}
	if !strings.Contains(err.Error(), "create csv") {
		t.Errorf("error = %q, want it to mention create csv", err.Error())
	}
}

func TestWriteURLList(t *testing.T) {
	r1 := sampleRecord()
	r2 := sampleRecord()
	r2.Panorama.PanoID = "OTHER"
	r2.Panorama.Geo = model.GeoPoint{Lat: 34.5, Lng: 135.5}

	outPath := filepath.Join(t.TempDir(), "tuxun_output.txt")
	if err := WriteURLList(outPath, []model.Record{r1, r2}); err != nil {
		t.Fatalf("WriteURLList() error: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	want := r1.Panorama.ViewerURL() + "\n" + r2.Panorama.ViewerURL()
	if string(data) != want {
		t.Errorf("url list = %q, want %q", string(data), want)
	}
	if strings.HasSuffix(string(data), "\n") {
		t.Error("url list must not end with a newline")
	}
}

func TestWriteURLList_Empty(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "empty.txt")
	if err := WriteURLList(outPath, nil); err != nil {
		t.Fatalf("WriteURLList() error: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("expected empty file, got %d bytes", len(data))
	}
}
