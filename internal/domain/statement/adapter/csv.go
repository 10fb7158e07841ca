// Package adapter turns raw statement bytes into ordered RawRecords. Each
// adapter handles one physical format; none of them interpret field meaning,
// that is the normalizer's job.
package adapter

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/brenkeeper/brenkeeper/internal/domain/statement"
)

// ParseCSV parses header-delimited UTF-8 text. The first row's cells become
// the record keys (lower-cased, trimmed); blank lines are skipped; cell
// values are trimmed of surrounding whitespace.
func ParseCSV(data []byte) ([]statement.RawRecord, error) {
	data = bytes.TrimPrefix(data, []byte("\uFEFF"))

	rows, err := gocsv.CSVToMaps(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", statement.ErrParseFailure, err)
	}

	records := make([]statement.RawRecord, 0, len(rows))
	for _, row := range rows {
		rec := make(statement.RawRecord, len(row))
		for key, value := range row {
			rec[normalizeHeader(key)] = strings.TrimSpace(value)
		}
		records = append(records, rec)
	}

	return records, nil
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}
