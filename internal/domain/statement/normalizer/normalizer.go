// Package normalizer maps raw, inconsistently named statement fields into the
// canonical transaction shape. Field lookup uses explicit ordered alias lists
// per concept; rows that cannot resolve a date, description, and amount are
// dropped at row level without failing the batch.
package normalizer

import (
	"strings"
	"time"

	"github.com/brenkeeper/brenkeeper/internal/domain/statement"
	"github.com/brenkeeper/brenkeeper/pkg/money"
)

// Ordered candidate keys per concept. First present candidate wins; the list
// order is part of the contract, not an implementation detail.
var (
	dateKeys   = []string{"date", "posted_date", "transaction_date"}
	descKeys   = []string{"description", "details", "memo"}
	amountKeys = []string{"amount", "balance impact", "value", "transaction amount"}
	debitKeys  = []string{"debit", "withdrawal"}
	creditKeys = []string{"credit", "deposit"}
)

// dateFormats are tried in order when rendering a raw date string to
// YYYY-MM-DD. DD/MM variants come before MM/DD so unambiguous European dates
// (day > 12) resolve correctly; ambiguous ones fall through consistently.
var dateFormats = []string{
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
	"02-01-2006",
	"01-02-2006",
	"2006/01/02",
	"02.01.2006",
	"2006-01-02 15:04:05",
	"02/01/2006 15:04",
	"01/02/2006 15:04",
}

// Categorizer assigns a label from a resolved description and signed amount.
type Categorizer interface {
	Categorize(description string, amount float64) string
}

// Normalizer converts raw records into canonical transactions.
type Normalizer struct {
	categorizer Categorizer
}

// New creates a normalizer that labels transactions with the given categorizer.
func New(categorizer Categorizer) *Normalizer {
	return &Normalizer{categorizer: categorizer}
}

// Normalize resolves one raw record into a canonical transaction. The second
// return value is false when the row must be dropped (missing or unresolvable
// date, description, or amount).
func (n *Normalizer) Normalize(rec statement.RawRecord) (*statement.Transaction, bool) {
	date, ok := resolveDate(rec)
	if !ok {
		return nil, false
	}

	desc, ok := resolveDescription(rec)
	if !ok {
		return nil, false
	}

	amount, ok := resolveAmount(rec)
	if !ok {
		return nil, false
	}

	return &statement.Transaction{
		Date:        date,
		Description: desc,
		Amount:      amount,
		Balance:     resolveBalance(rec),
		Category:    n.categorizer.Categorize(desc, amount),
	}, true
}

// NormalizeAll filters a record batch down to its constructible transactions,
// preserving input order.
func (n *Normalizer) NormalizeAll(records []statement.RawRecord) []statement.Transaction {
	txns := make([]statement.Transaction, 0, len(records))
	for _, rec := range records {
		if tx, ok := n.Normalize(rec); ok {
			txns = append(txns, *tx)
		}
	}
	return txns
}

// FromExtracted converts a record returned by the external document parser.
// These arrive with fixed field names, so alias resolution is skipped, but
// numeric coercion and the drop-on-missing-field rule still apply. Amounts
// are trusted to already follow the positive-inflow convention.
func (n *Normalizer) FromExtracted(rec statement.ExtractedRecord) (*statement.Transaction, bool) {
	date, ok := renderDate(rec.Date)
	if !ok {
		return nil, false
	}

	desc := strings.TrimSpace(rec.Description)
	if desc == "" {
		return nil, false
	}

	amount, ok := coerceNumeric(rec.Amount)
	if !ok {
		return nil, false
	}

	category := strings.TrimSpace(rec.Category)
	if category == "" {
		category = "Uncategorized"
	}

	return &statement.Transaction{
		Date:        date,
		Description: desc,
		Amount:      amount,
		Balance:     rec.Balance,
		Category:    category,
	}, true
}

// FromExtractedAll converts a batch of collaborator records, dropping the
// unresolvable ones.
func (n *Normalizer) FromExtractedAll(records []statement.ExtractedRecord) []statement.Transaction {
	txns := make([]statement.Transaction, 0, len(records))
	for _, rec := range records {
		if tx, ok := n.FromExtracted(rec); ok {
			txns = append(txns, *tx)
		}
	}
	return txns
}

func resolveDate(rec statement.RawRecord) (string, bool) {
	for _, key := range dateKeys {
		v, present := rec[key]
		if !present {
			continue
		}
		switch val := v.(type) {
		case time.Time:
			if val.IsZero() {
				continue
			}
			return val.Format("2006-01-02"), true
		case string:
			if strings.TrimSpace(val) == "" {
				continue
			}
			// First present candidate decides; an unparseable value drops
			// the row rather than falling through to the next alias.
			return renderDate(val)
		}
	}
	return "", false
}

// renderDate normalizes a raw date string to YYYY-MM-DD. Timestamp suffixes
// are cut at the first 'T' before format matching.
func renderDate(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if idx := strings.IndexByte(s, 'T'); idx >= 0 {
		s = s[:idx]
	}
	if s == "" {
		return "", false
	}

	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}

func resolveDescription(rec statement.RawRecord) (string, bool) {
	for _, key := range descKeys {
		v, present := rec[key]
		if !present {
			continue
		}
		if s, ok := v.(string); ok {
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				return trimmed, true
			}
		}
	}
	return "", false
}

// resolveAmount applies the amount rules in order: a direct amount column
// (numeric, or string with non-numeric characters stripped), then debit and
// credit columns with the sign convention enforced regardless of the raw
// value's own sign.
func resolveAmount(rec statement.RawRecord) (float64, bool) {
	for _, key := range amountKeys {
		v, present := rec[key]
		if !present {
			continue
		}
		if amount, ok := coerceNumeric(v); ok {
			return amount, true
		}
	}

	debit := firstPresent(rec, debitKeys)
	credit := firstPresent(rec, creditKeys)

	// Numeric forms take priority over string forms, debit before credit. A
	// zero debit is treated as absent so the credit side can still resolve.
	if f, ok := asNumber(debit); ok && f != 0 {
		return -abs(f), true
	}
	if f, ok := asNumber(credit); ok && f != 0 {
		return abs(f), true
	}
	if f, ok := parseNumericString(debit); ok {
		return -abs(f), true
	}
	if f, ok := parseNumericString(credit); ok {
		return abs(f), true
	}

	return 0, false
}

// resolveBalance accepts a running balance only when the raw value is already
// numeric; no string coercion is attempted for this optional field.
func resolveBalance(rec statement.RawRecord) *float64 {
	if f, ok := asNumber(rec["balance"]); ok {
		return &f
	}
	return nil
}

func firstPresent(rec statement.RawRecord, keys []string) any {
	for _, key := range keys {
		if v, present := rec[key]; present && v != nil {
			return v
		}
	}
	return nil
}

// coerceNumeric accepts native numbers directly and strings after stripping
// everything except digits, '.' and '-'.
func coerceNumeric(v any) (float64, bool) {
	if f, ok := asNumber(v); ok {
		return f, true
	}
	return parseNumericString(v)
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func parseNumericString(v any) (float64, bool) {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return 0, false
	}
	f, err := money.ParseFlexibleFloat(s)
	if err != nil {
		return 0, false
	}
	return f, true
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
