package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"rfm-segments/pkg/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *models.Result {
	best := models.ScoredRow{
		RFMRow:    models.RFMRow{CustomerID: "12346", Recency: 1, Frequency: 12, MonetaryValue: decimal.RequireFromString("1200.5")},
		RQuartile: 1, FQuartile: 1, MQuartile: 1, RFMScore: "111",
	}
	cheap := models.ScoredRow{
		RFMRow:    models.RFMRow{CustomerID: "17850", Recency: 300, Frequency: 1, MonetaryValue: decimal.RequireFromString("3.4")},
		RQuartile: 4, FQuartile: 4, MQuartile: 4, RFMScore: "444",
	}
	return &models.Result{
		RunID:        "run-1",
		ReferenceNow: time.Date(2011, 12, 10, 0, 0, 0, 0, time.UTC),
		RawRows:      5,
		CleanedRows:  2,
		Scored:       []models.ScoredRow{best, cheap},
		Segments: models.Segments{
			models.SegmentBest:       {best},
			models.SegmentLoyal:      {best},
			models.SegmentBigSpender: {best},
			models.SegmentAlmostLost: {},
			models.SegmentLost:       {},
			models.SegmentLostCheap:  {cheap},
		},
	}
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleResult(), 5))
	out := buf.String()

	assert.Contains(t, out, "RFM MARKETING STRATEGY")
	assert.Contains(t, out, "reference date: 2011-12-10")
	assert.Contains(t, out, "[best] 1 customers")
	assert.Contains(t, out, "[lost] 0 customers")
	assert.Contains(t, out, "1200.50")

	// Segments appear in reporting order.
	assert.Less(t, strings.Index(out, "[best]"), strings.Index(out, "[loyal]"))
	assert.Less(t, strings.Index(out, "[lost]"), strings.Index(out, "[lost_cheap]"))
}

func TestRender_NoCustomerLines(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleResult(), 0))
	assert.NotContains(t, buf.String(), "12346")
}

func TestExportJSON(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")

	path, err := ExportJSON(dir, sampleResult())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filepath.Base(path), "rfm_"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got struct {
		RunID        string                      `json:"run_id"`
		ReferenceNow string                      `json:"reference_now"`
		Segments     map[string][]map[string]any `json:"segments"`
	}
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "run-1", got.RunID)
	assert.Equal(t, "2011-12-10", got.ReferenceNow)
	require.Len(t, got.Segments["best"], 1)
	assert.Equal(t, "12346", got.Segments["best"][0]["customer_id"])
	assert.Equal(t, "111", got.Segments["best"][0]["rfm_score"])
	assert.Empty(t, got.Segments["lost"])
}

func TestTimestampedFilename(t *testing.T) {
	ts := time.Date(2011, 12, 10, 8, 5, 9, 0, time.UTC)
	assert.Equal(t, filepath.Join("out", "rfm_20111210_080509.json"), TimestampedFilename("out", "rfm", ts))
}
