package calculator

import (
	"sort"
	"strconv"

	"rfm-segments/pkg/models"
)

// anyQuartile matches every quartile.
const anyQuartile = 0

type segmentRule struct {
	name    models.SegmentName
	r, f, m int
}

var segmentRules = []segmentRule{
	{models.SegmentBest, 1, 1, 1},
	{models.SegmentAlmostLost, 3, 1, 1},
	{models.SegmentLost, 4, 1, 1},
	{models.SegmentLostCheap, 4, 4, 4},
	{models.SegmentLoyal, anyQuartile, 1, anyQuartile},
	{models.SegmentBigSpender, anyQuartile, anyQuartile, 1},
}

func (s segmentRule) matches(row models.ScoredRow) bool {
	return (s.r == anyQuartile || row.RQuartile == s.r) &&
		(s.f == anyQuartile || row.FQuartile == s.f) &&
		(s.m == anyQuartile || row.MQuartile == s.m)
}

// Segment scores every customer against the quartiles of rows and extracts
// the named segments.
func Segment(rows []models.RFMRow) ([]models.ScoredRow, models.Segments, error) {
	q, err := ComputeQuantiles(rows)
	if err != nil {
		return nil, nil, err
	}
	scored := Score(rows, q)
	return scored, ExtractSegments(scored), nil
}

// Score assigns quartiles and the composite RFMScore to each row, keeping order.
func Score(rows []models.RFMRow, q models.Quantiles) []models.ScoredRow {
	out := make([]models.ScoredRow, len(rows))
	for i, row := range rows {
		r := AscendingScore(float64(row.Recency), q.Recency)
		f := DescendingScore(float64(row.Frequency), q.Frequency)
		m := DescendingScore(row.MonetaryValue.InexactFloat64(), q.Monetary)
		out[i] = models.ScoredRow{
			RFMRow:    row,
			RQuartile: r,
			FQuartile: f,
			MQuartile: m,
			RFMScore:  strconv.Itoa(r) + strconv.Itoa(f) + strconv.Itoa(m),
		}
	}
	return out
}

// ExtractSegments returns every segment, empty ones included.
func ExtractSegments(scored []models.ScoredRow) models.Segments {
	segments := make(models.Segments, len(segmentRules))
	for _, rule := range segmentRules {
		members := []models.ScoredRow{}
		for _, row := range scored {
			if rule.matches(row) {
				members = append(members, row)
			}
		}
		sortByMonetaryDesc(members)
		segments[rule.name] = members
	}
	return segments
}

func sortByMonetaryDesc(rows []models.ScoredRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if c := rows[i].MonetaryValue.Cmp(rows[j].MonetaryValue); c != 0 {
			return c > 0
		}
		return rows[i].CustomerID < rows[j].CustomerID
	})
}
