package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"rfm-segments/pkg/models"
)

type export struct {
	RunID        string           `json:"run_id"`
	ReferenceNow string           `json:"reference_now"`
	Customers    int              `json:"customers"`
	Quantiles    models.Quantiles `json:"quantiles"`
	Segments     models.Segments  `json:"segments"`
}

// ExportJSON writes the quantiles and segments of res to a timestamped file
// under baseDir and returns its path.
func ExportJSON(baseDir string, res *models.Result) (string, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return "", fmt.Errorf("create folder: %w", err)
	}
	filename := TimestampedFilename(baseDir, "rfm", time.Now())

	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	err = enc.Encode(export{
		RunID:        res.RunID,
		ReferenceNow: res.ReferenceNow.Format("2006-01-02"),
		Customers:    len(res.Scored),
		Quantiles:    res.Quantiles,
		Segments:     res.Segments,
	})
	if err != nil {
		return "", fmt.Errorf("write json: %w", err)
	}
	return filename, nil
}

func TimestampedFilename(baseDir, name string, t time.Time) string {
	return filepath.Join(baseDir, fmt.Sprintf("%s_%s.json", name, t.Format("20060102_150405")))
}
