package csvexport

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/user/parcel-service/internal/entity"
)

func sampleRecord() *entity.ScrapedZoningRecord {
	return &entity.ScrapedZoningRecord{
		HouseNumber: "1617",
		StreetName:  "Cosmo",
		Attributes: map[string]string{
			"Flood_Zone": "None",
			"Occupancy":  "Not listed in ZIMAS",
		},
		Debug: entity.ScrapeDebug{StreetNameClean: "Cosmo"},
	}
}

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	return rows
}

func TestWriteScrape(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "csv_output")
	w := NewWriter(dir)

	path, err := w.WriteScrape(sampleRecord())
	if err != nil {
		t.Fatalf("WriteScrape() error = %v", err)
	}

	base := filepath.Base(path)
	if !strings.HasPrefix(base, "zimas_1617_Cosmo_") || !strings.HasSuffix(base, ".csv") {
		t.Errorf("artifact name = %q, want zimas_<house>_<street>_<ts>.csv", base)
	}

	rows := readRows(t, path)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want header + data", len(rows))
	}
	header, data := rows[0], rows[1]
	wantCols := 2 + len(entity.OverlayAttributeNames)
	if len(header) != wantCols || len(data) != wantCols {
		t.Fatalf("got %d/%d columns, want %d", len(header), len(data), wantCols)
	}
	if header[0] != "House_Number" || header[1] != "Street_Name" {
		t.Errorf("header = %v, want address columns first", header[:2])
	}
	for i, attr := range entity.OverlayAttributeNames {
		if header[2+i] != attr {
			t.Errorf("header[%d] = %q, want %q", 2+i, header[2+i], attr)
		}
	}
	if data[0] != "1617" || data[1] != "Cosmo" {
		t.Errorf("data = %v", data[:2])
	}
}

func TestWriteCombinedInsertsAINColumn(t *testing.T) {
	w := NewWriter(t.TempDir())

	path, err := w.WriteCombined("5846022043", sampleRecord())
	if err != nil {
		t.Fatalf("WriteCombined() error = %v", err)
	}

	rows := readRows(t, path)
	header, data := rows[0], rows[1]
	if len(header) != 3+len(entity.OverlayAttributeNames) {
		t.Fatalf("got %d columns, want address + AIN + attributes", len(header))
	}
	if header[2] != "AIN" || data[2] != "5846022043" {
		t.Errorf("AIN column = %q/%q", header[2], data[2])
	}
}
