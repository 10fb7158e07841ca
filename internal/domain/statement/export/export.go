// Package export regenerates standardized statement artifacts from a
// canonical transaction list: a delimited-text document and a binary
// workbook.
package export

import (
	"encoding/base64"
	"fmt"
	"strconv"

	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"

	"github.com/brenkeeper/brenkeeper/internal/domain/statement"
)

const sheetName = "Transactions"

// csvRow is the fixed export schema. Fields render as strings so optional
// values serialize as empty cells, and quoting stays RFC4180: a field is
// quoted only when it contains a comma or quote, with inner quotes doubled.
type csvRow struct {
	Date        string `csv:"date"`
	Description string `csv:"description"`
	Amount      string `csv:"amount"`
	Balance     string `csv:"balance"`
	Category    string `csv:"category"`
}

// CSV serializes transactions as delimited text with the header
// "date,description,amount,balance,category", one row per transaction in
// input order.
func CSV(txns []statement.Transaction) (string, error) {
	rows := make([]csvRow, 0, len(txns))
	for _, tx := range txns {
		rows = append(rows, csvRow{
			Date:        tx.Date,
			Description: tx.Description,
			Amount:      formatAmount(tx.Amount),
			Balance:     formatOptional(tx.Balance),
			Category:    tx.Category,
		})
	}

	out, err := gocsv.MarshalString(&rows)
	if err != nil {
		return "", fmt.Errorf("failed to serialize csv export: %w", err)
	}
	return out, nil
}

// Workbook builds a single-sheet workbook with the fixed column order
// Date, Description, Amount, Balance, Category.
func Workbook(txns []statement.Transaction) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("failed to name worksheet: %w", err)
	}

	if err := f.SetSheetRow(sheetName, "A1", &[]any{"Date", "Description", "Amount", "Balance", "Category"}); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, tx := range txns {
		cell := fmt.Sprintf("A%d", i+2)
		row := []any{tx.Date, tx.Description, tx.Amount, nil, tx.Category}
		if tx.Balance != nil {
			row[3] = *tx.Balance
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	// Column widths follow the historical export layout.
	widths := []struct {
		col   string
		width float64
	}{
		{"A", 15}, {"B", 50}, {"C", 15}, {"D", 15}, {"E", 20},
	}
	for _, w := range widths {
		if err := f.SetColWidth(sheetName, w.col, w.col, w.width); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// WorkbookBase64 returns the workbook bytes base64-encoded for transport in a
// JSON response.
func WorkbookBase64(txns []statement.Transaction) (string, error) {
	data, err := Workbook(txns)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return formatAmount(*v)
}
