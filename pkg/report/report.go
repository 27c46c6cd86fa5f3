package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"rfm-segments/pkg/models"
)

const strategy = `
**************************************
RFM MARKETING STRATEGY
**************************************

The following strategies are recommended for RFM:

BEST CUSTOMERS: no price incentives, new products, and loyalty programs
LOYAL CUSTOMERS: Use frequency and monetary metrics to segment further
BIG SPENDERS: Market the most expensive products
ALMOST LOST & LOST: Aggresive price incentives
LOST CHEAP CUSTOMERS: Don't spend too many resources trying to acquire
`

// Render writes the strategy text followed by, for each segment, its size and
// its topN customers by monetary value.
func Render(w io.Writer, res *models.Result, topN int) error {
	if _, err := fmt.Fprint(w, strategy); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nreference date: %s ; customers=%d ; lines kept=%d/%d\n",
		res.ReferenceNow.Format("2006-01-02"), len(res.Scored), res.CleanedRows, res.RawRows)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, name := range models.SegmentOrder {
		rows := res.Segments[name]
		fmt.Fprintf(tw, "\n[%s] %d customers\n", name, len(rows))
		if len(rows) == 0 || topN == 0 {
			continue
		}
		fmt.Fprintln(tw, "customer\trecency\tfrequency\tmonetary\tscore\t")
		for i, r := range rows {
			if i == topN {
				break
			}
			fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\t\n",
				r.CustomerID, r.Recency, r.Frequency, r.MonetaryValue.StringFixed(2), r.RFMScore)
		}
	}
	return tw.Flush()
}
