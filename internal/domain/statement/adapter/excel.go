package adapter

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/brenkeeper/brenkeeper/internal/domain/statement"
)

// Builtin number formats that render a serial number as a date or time.
var dateNumFmts = map[int]struct{}{
	14: {}, 15: {}, 16: {}, 17: {}, 18: {}, 19: {}, 20: {}, 21: {}, 22: {},
	45: {}, 46: {}, 47: {},
}

// ParseXLSX parses the first worksheet of a binary workbook. Row 1 supplies
// the record keys (lower-cased); rows shorter than the header simply omit the
// trailing keys. Cells that read as plain numbers are kept as float64, and
// date-styled cells are restored to time.Time from their raw serial so a real
// date column survives with its type instead of excelize's display string.
func ParseXLSX(data []byte) ([]statement.RawRecord, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", statement.ErrParseFailure, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", statement.ErrParseFailure, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	rawRows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", statement.ErrParseFailure, err)
	}

	headers := make([]string, len(rows[0]))
	for i, cell := range rows[0] {
		h := normalizeHeader(cell)
		if h == "" {
			h = fmt.Sprintf("col_%d", i+1)
		}
		headers[i] = h
	}

	records := make([]statement.RawRecord, 0, len(rows)-1)
	for r, row := range rows[1:] {
		rec := make(statement.RawRecord, len(headers))
		for c, cell := range row {
			if c >= len(headers) {
				break
			}
			rec[headers[c]] = typedCell(f, sheet, rawRows, r+1, c, cell)
		}
		records = append(records, rec)
	}

	return records, nil
}

// typedCell restores the scalar type of a worksheet cell: date-styled serials
// become time.Time, values that parse cleanly as a number become float64,
// everything else stays a string.
func typedCell(f *excelize.File, sheet string, rawRows [][]string, row, col int, cell string) any {
	if serial, ok := rawSerial(rawRows, row, col); ok && isDateStyled(f, sheet, row, col) {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return t
		}
	}

	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return ""
	}
	if v, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return v
	}
	return trimmed
}

// rawSerial returns the unformatted cell value as a float when it has one.
func rawSerial(rawRows [][]string, row, col int) (float64, bool) {
	if row >= len(rawRows) || col >= len(rawRows[row]) {
		return 0, false
	}
	serial, err := strconv.ParseFloat(strings.TrimSpace(rawRows[row][col]), 64)
	if err != nil {
		return 0, false
	}
	return serial, true
}

// isDateStyled reports whether the cell carries a date/time number format,
// either one of the builtin date formats or a custom format with date tokens.
func isDateStyled(f *excelize.File, sheet string, row, col int) bool {
	name, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return false
	}
	styleID, err := f.GetCellStyle(sheet, name)
	if err != nil {
		return false
	}
	style, err := f.GetStyle(styleID)
	if err != nil || style == nil {
		return false
	}
	if _, ok := dateNumFmts[style.NumFmt]; ok {
		return true
	}
	if style.CustomNumFmt != nil {
		return strings.ContainsAny(strings.ToLower(*style.CustomNumFmt), "ymd")
	}
	return false
}
