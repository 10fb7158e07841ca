// Package statement defines the canonical transaction model shared by the
// ingestion pipeline: adapters produce raw records, the normalizer turns them
// into transactions, and aggregation/export consume the result.
package statement

import "errors"

// Sentinel errors for request-fatal pipeline failures. Row-level problems are
// never surfaced as errors; the affected row is simply dropped.
var (
	// ErrUnsupportedFormat indicates the mimetype/extension matched no known
	// statement format. Nothing is parsed.
	ErrUnsupportedFormat = errors.New("unsupported file type, please upload a CSV or XLSX bank statement")

	// ErrParserUnavailable indicates no document parser provider could be
	// reached or all of them returned a failure.
	ErrParserUnavailable = errors.New("document parser service unavailable")

	// ErrParseFailure indicates the payload could not be decoded as the
	// detected format at all (e.g. a corrupt workbook).
	ErrParseFailure = errors.New("failed to parse statement file")
)

// RawRecord is one un-normalized input row: a mapping from a lower-cased
// header name to the raw cell value. Delimited-text adapters produce string
// values only; the spreadsheet adapter preserves numeric cells as float64 and
// date-styled cells as time.Time. RawRecords exist only during the
// adapter-to-normalizer handoff.
type RawRecord map[string]any

// ExtractedRecord is a transaction-like record returned by the external
// document parser. Field names are fixed by the collaborator contract, so
// these bypass header-alias resolution but still go through numeric coercion
// and the drop-on-missing-field rule.
type ExtractedRecord struct {
	Date        string   `json:"date"`
	Description string   `json:"description"`
	Amount      any      `json:"amount"` // number or numeric string
	Balance     *float64 `json:"balance,omitempty"`
	Category    string   `json:"category,omitempty"`
}

// Transaction is the canonical, sign-corrected transaction all downstream
// logic consumes. Amounts follow positive = inflow, negative = outflow,
// regardless of the source column's own convention. Instances are immutable
// once constructed.
type Transaction struct {
	Date        string   `json:"date"` // YYYY-MM-DD
	Description string   `json:"description"`
	Amount      float64  `json:"amount"`
	Balance     *float64 `json:"balance,omitempty"`
	Category    string   `json:"category"`
}

// CashflowSummary aggregates a transaction list. It is derived state: always
// recomputable from the same list with an identical result.
type CashflowSummary struct {
	TotalInflows  float64            `json:"totalInflows"`
	TotalOutflows float64            `json:"totalOutflows"`
	NetCashflow   float64            `json:"netCashflow"`
	ByCategory    map[string]float64 `json:"byCategory"`
}
