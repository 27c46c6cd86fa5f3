package calculator

import (
	"sort"
	"strings"
	"time"

	"rfm-segments/pkg/models"

	"github.com/shopspring/decimal"
)

// Layouts tried in order by ParseInvoiceDate. Slash dates are month-first.
var invoiceDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/06 15:04",
	"1-2-06 15:04",
	"1/2/2006",
}

const day = 24 * time.Hour

// ParseInvoiceDate parses a textual invoice date. Values without zone are UTC.
func ParseInvoiceDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var firstErr error
	for _, layout := range invoiceDateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

// truncateDay keeps the calendar day of t, expressed at midnight UTC so that
// day differences are exact multiples of 24h.
func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

type customerAcc struct {
	last      time.Time
	frequency int
	monetary  decimal.Decimal
}

// Aggregate reduces cleaned transactions to one RFMRow per customer.
// Recency is counted in whole days from the reference date, which is the day
// after the latest invoice. Time of day is discarded before comparing.
// Rows are returned sorted by customer id; the reference date is returned too.
func Aggregate(txs []models.Transaction) ([]models.RFMRow, time.Time, error) {
	if len(txs) == 0 {
		return nil, time.Time{}, &EmptyInputError{Stage: "aggregate"}
	}

	byCustomer := make(map[string]*customerAcc)
	var latest time.Time
	for i, tx := range txs {
		t, err := ParseInvoiceDate(tx.InvoiceDate)
		if err != nil {
			return nil, time.Time{}, &DateParseError{Row: i, Value: tx.InvoiceDate}
		}
		d := truncateDay(t)
		if i == 0 || d.After(latest) {
			latest = d
		}

		acc, ok := byCustomer[tx.CustomerID.String]
		if !ok {
			acc = &customerAcc{last: d, monetary: decimal.Zero}
			byCustomer[tx.CustomerID.String] = acc
		}
		if d.After(acc.last) {
			acc.last = d
		}
		acc.frequency++
		acc.monetary = acc.monetary.Add(tx.Total)
	}

	now := latest.Add(day)
	rows := make([]models.RFMRow, 0, len(byCustomer))
	for id, acc := range byCustomer {
		rows = append(rows, models.RFMRow{
			CustomerID:    id,
			Recency:       int(now.Sub(acc.last) / day),
			Frequency:     acc.frequency,
			MonetaryValue: acc.monetary,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].CustomerID < rows[j].CustomerID })
	return rows, now, nil
}
