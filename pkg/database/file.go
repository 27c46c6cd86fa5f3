package database

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"rfm-segments/pkg/models"

	"github.com/xuri/excelize/v2"
)

// LoadFile reads a transaction table from an .xlsx/.xlsm, .csv or .tsv file.
// sheet only applies to spreadsheets; the first sheet is used when empty.
func LoadFile(path, sheet string) (models.RawTable, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm":
		return LoadXLSX(path, sheet)
	case ".csv", ".tsv":
		f, err := os.Open(path)
		if err != nil {
			return models.RawTable{}, fmt.Errorf("open csv: %w", err)
		}
		defer f.Close()
		comma := ','
		if ext == ".tsv" {
			comma = '\t'
		}
		return LoadCSV(f, comma)
	default:
		return models.RawTable{}, fmt.Errorf("unsupported input format %q", ext)
	}
}

// LoadXLSX reads every row of one sheet. Cells are taken as displayed.
func LoadXLSX(path, sheet string) (models.RawTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return models.RawTable{}, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return models.RawTable{}, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return toTable(rows), nil
}

// LoadCSV reads a delimited table with a header row.
func LoadCSV(r io.Reader, comma rune) (models.RawTable, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	// Leading-space trimming would swallow empty tab-separated fields.
	cr.TrimLeadingSpace = comma != '\t'

	var rows [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return models.RawTable{}, fmt.Errorf("read csv: %w", err)
		}
		rows = append(rows, rec)
	}
	return toTable(rows), nil
}

func toTable(rows [][]string) models.RawTable {
	if len(rows) == 0 {
		return models.RawTable{}
	}
	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}
	return models.RawTable{Header: header, Rows: rows[1:]}
}
