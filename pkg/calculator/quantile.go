package calculator

import (
	"fmt"
	"math"
	"sort"

	"rfm-segments/pkg/models"
)

// Percentile returns the q-th quantile (0 ≤ q ≤ 1) of values, interpolating
// linearly between the two closest order statistics.
func Percentile(values []float64, q float64) (float64, error) {
	if len(values) == 0 {
		return 0, &EmptyInputError{Stage: "percentile"}
	}
	if q < 0 || q > 1 || math.IsNaN(q) {
		return 0, fmt.Errorf("percentile: q=%v out of [0,1]", q)
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return percentileSorted(sorted, q), nil
}

func percentileSorted(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	if lo+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[lo+1]-sorted[lo])*frac
}

func thresholdsOf(values []float64) models.Thresholds {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return models.Thresholds{
		P25: percentileSorted(sorted, 0.25),
		P50: percentileSorted(sorted, 0.50),
		P75: percentileSorted(sorted, 0.75),
	}
}

// ComputeQuantiles returns the quartile boundaries of recency, frequency and
// monetary value across rows.
func ComputeQuantiles(rows []models.RFMRow) (models.Quantiles, error) {
	if len(rows) == 0 {
		return models.Quantiles{}, &EmptyInputError{Stage: "quantiles"}
	}
	recency := make([]float64, len(rows))
	frequency := make([]float64, len(rows))
	monetary := make([]float64, len(rows))
	for i, r := range rows {
		recency[i] = float64(r.Recency)
		frequency[i] = float64(r.Frequency)
		monetary[i] = r.MonetaryValue.InexactFloat64()
	}
	return models.Quantiles{
		Recency:   thresholdsOf(recency),
		Frequency: thresholdsOf(frequency),
		Monetary:  thresholdsOf(monetary),
	}, nil
}

// AscendingScore buckets a metric where low is good (recency): 1 up to P25,
// then 2, 3, and 4 above P75.
func AscendingScore(v float64, t models.Thresholds) int {
	switch {
	case v <= t.P25:
		return 1
	case v <= t.P50:
		return 2
	case v <= t.P75:
		return 3
	default:
		return 4
	}
}

// DescendingScore buckets a metric where high is good (frequency, monetary):
// 4 up to P25, then 3, 2, and 1 above P75.
func DescendingScore(v float64, t models.Thresholds) int {
	return 5 - AscendingScore(v, t)
}
