package database

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeXLSX(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	path := filepath.Join(t.TempDir(), "Online Retail.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestLoadXLSX(t *testing.T) {
	path := writeXLSX(t, [][]interface{}{
		{"InvoiceNo", "Quantity", "InvoiceDate", "UnitPrice", "CustomerID"},
		{"536365", "6", "12/1/10 8:26", "2.55", "17850"},
		{"536366", "2", "12/1/10 8:28", "1.85"},
	})

	table, err := LoadFile(path, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"InvoiceNo", "Quantity", "InvoiceDate", "UnitPrice", "CustomerID"}, table.Header)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"536365", "6", "12/1/10 8:26", "2.55", "17850"}, table.Rows[0])
	assert.Len(t, table.Rows[1], 4)
}

func TestLoadXLSX_UnknownSheet(t *testing.T) {
	path := writeXLSX(t, [][]interface{}{{"InvoiceNo"}})

	_, err := LoadXLSX(path, "Online Retail")
	assert.Error(t, err)
}

func TestLoadCSV(t *testing.T) {
	in := "\ufeffInvoiceNo,Quantity,InvoiceDate,UnitPrice,CustomerID\n" +
		"536365,6,2010-12-01 08:26:00,2.55,17850\n" +
		"536366,2,2010-12-01 08:28:00,1.85,\n"

	table, err := LoadCSV(strings.NewReader(in), ',')
	require.NoError(t, err)
	assert.Equal(t, "InvoiceNo", table.Header[0])
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "", table.Rows[1][4])
}

func TestLoadCSV_Empty(t *testing.T) {
	table, err := LoadCSV(strings.NewReader(""), ',')
	require.NoError(t, err)
	assert.Empty(t, table.Header)
	assert.Empty(t, table.Rows)
}

func TestLoadFile_TSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "retail.tsv")
	content := "CustomerID\tQuantity\n17850\t6\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	table, err := LoadFile(path, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"CustomerID", "Quantity"}, table.Header)
	assert.Equal(t, [][]string{{"17850", "6"}}, table.Rows)
}

func TestLoadFile_Unsupported(t *testing.T) {
	_, err := LoadFile("retail.parquet", "")
	assert.Error(t, err)
}
