package calculator

import (
	"database/sql"
	"strconv"
	"strings"

	"rfm-segments/pkg/models"

	"github.com/shopspring/decimal"
)

// Spellings of a missing customer id in spreadsheet and dataframe exports.
var nullIdentifiers = map[string]bool{
	"":     true,
	"nan":  true,
	"NaN":  true,
	"NULL": true,
	"null": true,
	"None": true,
}

// Clean types the rows of a source table and keeps only sellable lines:
// known customer, quantity > 0, unit price > 0. Total is set on every survivor.
// The table is not modified.
func Clean(table models.RawTable, fields models.FieldMap) ([]models.Transaction, error) {
	cols, err := resolveColumns(table.Header,
		fields.CustomerID, fields.InvoiceID, fields.InvoiceDate, fields.Quantity, fields.UnitPrice)
	if err != nil {
		return nil, err
	}
	custCol, invCol, dateCol, qtyCol, priceCol := cols[0], cols[1], cols[2], cols[3], cols[4]

	txs := make([]models.Transaction, 0, len(table.Rows))
	for i, row := range table.Rows {
		qtyRaw := cell(row, qtyCol)
		qty, err := parseQuantity(qtyRaw)
		if err != nil {
			return nil, &FieldParseError{Field: fields.Quantity, Row: i, Value: qtyRaw}
		}
		priceRaw := cell(row, priceCol)
		price, err := parsePrice(priceRaw)
		if err != nil {
			return nil, &FieldParseError{Field: fields.UnitPrice, Row: i, Value: priceRaw}
		}

		cust := cell(row, custCol)
		txs = append(txs, models.Transaction{
			CustomerID:  sql.NullString{String: cust, Valid: !nullIdentifiers[cust]},
			InvoiceID:   cell(row, invCol),
			InvoiceDate: cell(row, dateCol),
			Quantity:    qty,
			UnitPrice:   price,
		})
	}
	return CleanTransactions(txs), nil
}

// CleanTransactions applies the row filters of Clean to already typed records
// and returns new records with Total derived.
func CleanTransactions(txs []models.Transaction) []models.Transaction {
	out := make([]models.Transaction, 0, len(txs))
	for _, tx := range txs {
		if !tx.CustomerID.Valid {
			continue
		}
		if tx.Quantity <= 0 {
			continue
		}
		if !tx.UnitPrice.IsPositive() {
			continue
		}
		tx.Total = tx.UnitPrice.Mul(decimal.NewFromInt(tx.Quantity))
		out = append(out, tx)
	}
	return out
}

func resolveColumns(header []string, names ...string) ([]int, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if _, dup := pos[h]; !dup {
			pos[h] = i
		}
	}
	out := make([]int, len(names))
	for i, name := range names {
		idx, ok := pos[name]
		if !ok {
			return nil, &SchemaError{Field: name}
		}
		out[i] = idx
	}
	return out, nil
}

// cell tolerates short rows: spreadsheet readers drop trailing empty cells.
func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseQuantity accepts integers and integral decimals ("6.0"). An empty cell
// reads as 0 so that the row is filtered out rather than rejected.
func parseQuantity(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	if !d.IsInteger() {
		return 0, strconv.ErrSyntax
	}
	return d.IntPart(), nil
}

func parsePrice(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
