package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

/*
LOAD → raw tabular data as read from a source, and the typed sales line it is cleaned into.
*/

// RawTable is a source table as produced by a loader: one header row and textual cells.
type RawTable struct {
	Header []string
	Rows   [][]string
}

// FieldMap names the source columns used by the pipeline.
type FieldMap struct {
	CustomerID  string
	InvoiceID   string
	InvoiceDate string
	Quantity    string
	UnitPrice   string
	Total       string // derived column, written by the cleaner
}

// DefaultFieldMap returns the column names of the UCI "Online Retail" dataset.
func DefaultFieldMap() FieldMap {
	return FieldMap{
		CustomerID:  "CustomerID",
		InvoiceID:   "InvoiceNo",
		InvoiceDate: "InvoiceDate",
		Quantity:    "Quantity",
		UnitPrice:   "UnitPrice",
		Total:       "TotalPrice",
	}
}

// Transaction represents one sales line item.
type Transaction struct {
	CustomerID  sql.NullString
	InvoiceID   string
	InvoiceDate string // as read from the source, parsed during aggregation
	Quantity    int64
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal // Quantity × UnitPrice
}

/*
COMPUTE → one row per customer, then the same row with its quartile scores.
*/

// RFMRow holds the recency/frequency/monetary metrics of a single customer.
type RFMRow struct {
	CustomerID    string          `json:"customer_id"`
	Recency       int             `json:"recency"`   // days since last purchase
	Frequency     int             `json:"frequency"` // line items, not distinct invoices
	MonetaryValue decimal.Decimal `json:"monetary_value"`
}

// ScoredRow is an RFMRow with its quartile scores (1 is best for all three).
type ScoredRow struct {
	RFMRow
	RQuartile int    `json:"r_quartile"`
	FQuartile int    `json:"f_quartile"`
	MQuartile int    `json:"m_quartile"`
	RFMScore  string `json:"rfm_score"`
}

// Thresholds are the 25th, 50th and 75th percentiles of one metric column.
type Thresholds struct {
	P25 float64 `json:"p25"`
	P50 float64 `json:"p50"`
	P75 float64 `json:"p75"`
}

// Quantiles holds the thresholds of the three RFM columns.
type Quantiles struct {
	Recency   Thresholds `json:"recency"`
	Frequency Thresholds `json:"frequency"`
	Monetary  Thresholds `json:"monetary_value"`
}

type SegmentName string

const (
	SegmentBest       SegmentName = "best"
	SegmentAlmostLost SegmentName = "almost_lost"
	SegmentLost       SegmentName = "lost"
	SegmentLostCheap  SegmentName = "lost_cheap"
	SegmentLoyal      SegmentName = "loyal"
	SegmentBigSpender SegmentName = "big_spender"
)

// SegmentOrder is the order in which segments are reported.
var SegmentOrder = []SegmentName{
	SegmentBest,
	SegmentLoyal,
	SegmentBigSpender,
	SegmentAlmostLost,
	SegmentLost,
	SegmentLostCheap,
}

// Segments maps a segment to its members, sorted by monetary value descending.
// A customer may belong to several segments.
type Segments map[SegmentName][]ScoredRow

// Result is everything produced by one pipeline run.
type Result struct {
	RunID        string
	ReferenceNow time.Time
	RawRows      int
	CleanedRows  int
	Scored       []ScoredRow
	Quantiles    Quantiles
	Segments     Segments
}

/*
CONFIG → parameters of the computation
*/
// Config contains the parameters passed to calculator.Run.
type Config struct {
	Fields  FieldMap
	Verbose bool // progress bar and per-stage logs
}
