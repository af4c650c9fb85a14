// Package csvexport writes scrape results to delimited artifact files, the
// only durable state in the system.
package csvexport

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/user/parcel-service/internal/entity"
	"github.com/user/parcel-service/internal/repository"
)

type Writer struct {
	dir string
}

// NewWriter creates an artifact writer rooted at dir. The directory is
// created lazily on first write.
func NewWriter(dir string) repository.ArtifactRepository {
	return &Writer{dir: dir}
}

// WriteScrape writes one record to a freshly created file named by address
// and second-granular timestamp. Columns are the input address fields
// followed by the overlay attributes in declaration order.
func (w *Writer) WriteScrape(record *entity.ScrapedZoningRecord) (string, error) {
	return w.write(record, "")
}

// WriteCombined is WriteScrape with the resolved AIN inserted after the
// address columns.
func (w *Writer) WriteCombined(ain string, record *entity.ScrapedZoningRecord) (string, error) {
	return w.write(record, ain)
}

func (w *Writer) write(record *entity.ScrapedZoningRecord, ain string) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create artifact dir: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	name := fmt.Sprintf("zimas_%s_%s_%s.csv", record.HouseNumber, record.Debug.StreetNameClean, timestamp)
	path := filepath.Join(w.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create artifact: %w", err)
	}
	defer f.Close()

	header := []string{"House_Number", "Street_Name"}
	row := []string{record.HouseNumber, record.StreetName}
	if ain != "" {
		header = append(header, "AIN")
		row = append(row, ain)
	}
	for _, attr := range entity.OverlayAttributeNames {
		header = append(header, attr)
		row = append(row, record.Attributes[attr])
	}

	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		return "", err
	}
	if err := cw.Write(row); err != nil {
		return "", err
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", err
	}
	return path, nil
}
