package normalizer

import (
	"fmt"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brenkeeper/brenkeeper/internal/domain/statement"
	"github.com/brenkeeper/brenkeeper/internal/domain/statement/categorizer"
)

func newTestNormalizer() *Normalizer {
	return New(categorizer.New())
}

func TestNormalize(t *testing.T) {
	n := newTestNormalizer()

	t.Run("resolves a plain row", func(t *testing.T) {
		tx, ok := n.Normalize(statement.RawRecord{
			"date":        "2024-01-05",
			"description": "Payroll Inc",
			"amount":      "1500",
		})

		require.True(t, ok)
		assert.Equal(t, "2024-01-05", tx.Date)
		assert.Equal(t, "Payroll Inc", tx.Description)
		assert.Equal(t, 1500.0, tx.Amount)
		assert.Equal(t, "Payroll", tx.Category)
		assert.Nil(t, tx.Balance)
	})

	t.Run("tries date aliases in order", func(t *testing.T) {
		tx, ok := n.Normalize(statement.RawRecord{
			"posted_date": "2024-02-10",
			"memo":        "Utility bill",
			"value":       "-42.10",
		})

		require.True(t, ok)
		assert.Equal(t, "2024-02-10", tx.Date)
		assert.Equal(t, "Utility bill", tx.Description)
		assert.Equal(t, -42.10, tx.Amount)
	})

	t.Run("truncates timestamps at T", func(t *testing.T) {
		tx, ok := n.Normalize(statement.RawRecord{
			"date":        "2024-03-01T09:30:00Z",
			"description": "Transfer out",
			"amount":      "-10",
		})

		require.True(t, ok)
		assert.Equal(t, "2024-03-01", tx.Date)
	})

	t.Run("accepts native date values", func(t *testing.T) {
		tx, ok := n.Normalize(statement.RawRecord{
			"date":        time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
			"description": "Payroll Inc",
			"amount":      1500.0,
		})

		require.True(t, ok)
		assert.Equal(t, "2024-01-05", tx.Date)
	})

	t.Run("renders slash dates to ISO", func(t *testing.T) {
		tx, ok := n.Normalize(statement.RawRecord{
			"date":        "15/01/2024",
			"description": "Groceries",
			"amount":      "-12.50",
		})

		require.True(t, ok)
		assert.Equal(t, "2024-01-15", tx.Date)
	})

	t.Run("strips currency noise from amount strings", func(t *testing.T) {
		tx, ok := n.Normalize(statement.RawRecord{
			"date":        "2024-01-05",
			"description": "Vendor payment",
			"amount":      "$-1,234.56",
		})

		require.True(t, ok)
		assert.Equal(t, -1234.56, tx.Amount)
	})

	t.Run("accepts numeric amount values directly", func(t *testing.T) {
		tx, ok := n.Normalize(statement.RawRecord{
			"date":        "2024-01-05",
			"description": "Vendor payment",
			"transaction amount": -88.25,
		})

		require.True(t, ok)
		assert.Equal(t, -88.25, tx.Amount)
	})

	t.Run("drops rows missing a description", func(t *testing.T) {
		_, ok := n.Normalize(statement.RawRecord{
			"date":   "2024-02-01",
			"amount": "20",
		})
		assert.False(t, ok)
	})

	t.Run("drops rows with a whitespace-only description", func(t *testing.T) {
		_, ok := n.Normalize(statement.RawRecord{
			"date":        "2024-02-01",
			"description": "   ",
			"amount":      "20",
		})
		assert.False(t, ok)
	})

	t.Run("drops rows with no date candidate", func(t *testing.T) {
		_, ok := n.Normalize(statement.RawRecord{
			"description": "Mystery",
			"amount":      "20",
		})
		assert.False(t, ok)
	})

	t.Run("drops rows with an unparseable date", func(t *testing.T) {
		_, ok := n.Normalize(statement.RawRecord{
			"date":        "sometime last week",
			"description": "Mystery",
			"amount":      "20",
		})
		assert.False(t, ok)
	})

	t.Run("drops rows with no resolvable amount", func(t *testing.T) {
		_, ok := n.Normalize(statement.RawRecord{
			"date":        "2024-02-01",
			"description": "Mystery",
			"amount":      "n/a",
		})
		assert.False(t, ok)
	})
}

func TestNormalizeSignConvention(t *testing.T) {
	n := newTestNormalizer()

	base := statement.RawRecord{
		"date":        "2024-01-05",
		"description": "Vendor",
	}

	row := func(extra statement.RawRecord) statement.RawRecord {
		rec := statement.RawRecord{}
		for k, v := range base {
			rec[k] = v
		}
		for k, v := range extra {
			rec[k] = v
		}
		return rec
	}

	t.Run("debit is always coerced negative", func(t *testing.T) {
		for _, raw := range []any{50.0, "50", "$50.00", -50.0, "-50"} {
			tx, ok := n.Normalize(row(statement.RawRecord{"debit": raw}))
			require.True(t, ok, "debit %v", raw)
			assert.Equal(t, -50.0, tx.Amount, "debit %v", raw)
		}
	})

	t.Run("credit is always coerced positive", func(t *testing.T) {
		for _, raw := range []any{50.0, "50", "$50.00", -50.0, "-50"} {
			tx, ok := n.Normalize(row(statement.RawRecord{"credit": raw}))
			require.True(t, ok, "credit %v", raw)
			assert.Equal(t, 50.0, tx.Amount, "credit %v", raw)
		}
	})

	t.Run("withdrawal and deposit are aliases", func(t *testing.T) {
		tx, ok := n.Normalize(row(statement.RawRecord{"withdrawal": "25"}))
		require.True(t, ok)
		assert.Equal(t, -25.0, tx.Amount)

		tx, ok = n.Normalize(row(statement.RawRecord{"deposit": "25"}))
		require.True(t, ok)
		assert.Equal(t, 25.0, tx.Amount)
	})

	t.Run("non-zero debit wins over credit", func(t *testing.T) {
		tx, ok := n.Normalize(row(statement.RawRecord{"debit": 30.0, "credit": 10.0}))
		require.True(t, ok)
		assert.Equal(t, -30.0, tx.Amount)
	})

	t.Run("zero debit falls through to credit", func(t *testing.T) {
		tx, ok := n.Normalize(row(statement.RawRecord{"debit": 0.0, "credit": 10.0}))
		require.True(t, ok)
		assert.Equal(t, 10.0, tx.Amount)
	})

	t.Run("direct amount column wins over debit/credit", func(t *testing.T) {
		tx, ok := n.Normalize(row(statement.RawRecord{"amount": "-5", "debit": "30"}))
		require.True(t, ok)
		assert.Equal(t, -5.0, tx.Amount)
	})
}

func TestNormalizeBalance(t *testing.T) {
	n := newTestNormalizer()

	t.Run("accepts numeric balances", func(t *testing.T) {
		tx, ok := n.Normalize(statement.RawRecord{
			"date":        "2024-01-05",
			"description": "Vendor",
			"amount":      "-5",
			"balance":     1200.75,
		})

		require.True(t, ok)
		require.NotNil(t, tx.Balance)
		assert.Equal(t, 1200.75, *tx.Balance)
	})

	t.Run("ignores string balances", func(t *testing.T) {
		tx, ok := n.Normalize(statement.RawRecord{
			"date":        "2024-01-05",
			"description": "Vendor",
			"amount":      "-5",
			"balance":     "1200.75",
		})

		require.True(t, ok)
		assert.Nil(t, tx.Balance)
	})
}

func TestNormalizeAllCountProperty(t *testing.T) {
	n := newTestNormalizer()
	gofakeit.Seed(11)

	valid := 40
	invalid := 13

	from := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)

	records := make([]statement.RawRecord, 0, valid+invalid)
	for i := 0; i < valid; i++ {
		records = append(records, statement.RawRecord{
			"date":        gofakeit.DateRange(from, to).Format("2006-01-02"),
			"description": gofakeit.Company(),
			"amount":      fmt.Sprintf("%.2f", gofakeit.Float64Range(-5000, 5000)),
		})
	}
	for i := 0; i < invalid; i++ {
		// Each row is missing one of the three required fields.
		rec := statement.RawRecord{
			"date":        gofakeit.DateRange(from, to).Format("2006-01-02"),
			"description": gofakeit.Company(),
			"amount":      fmt.Sprintf("%.2f", gofakeit.Float64Range(-100, 100)),
		}
		switch i % 3 {
		case 0:
			delete(rec, "date")
		case 1:
			delete(rec, "description")
		default:
			delete(rec, "amount")
		}
		records = append(records, rec)
	}

	txns := n.NormalizeAll(records)
	assert.Len(t, txns, valid)
}

func TestFromExtracted(t *testing.T) {
	n := newTestNormalizer()

	t.Run("keeps collaborator amounts sign-correct", func(t *testing.T) {
		tx, ok := n.FromExtracted(statement.ExtractedRecord{
			Date:        "2024-01-05",
			Description: "Card payment",
			Amount:      -42.5,
			Category:    "Groceries",
		})

		require.True(t, ok)
		assert.Equal(t, -42.5, tx.Amount)
		assert.Equal(t, "Groceries", tx.Category)
	})

	t.Run("coerces numeric string amounts", func(t *testing.T) {
		tx, ok := n.FromExtracted(statement.ExtractedRecord{
			Date:        "2024-01-05",
			Description: "Card payment",
			Amount:      "-42.50",
		})

		require.True(t, ok)
		assert.Equal(t, -42.5, tx.Amount)
	})

	t.Run("defaults missing category to Uncategorized", func(t *testing.T) {
		tx, ok := n.FromExtracted(statement.ExtractedRecord{
			Date:        "2024-01-05",
			Description: "Card payment",
			Amount:      10.0,
		})

		require.True(t, ok)
		assert.Equal(t, "Uncategorized", tx.Category)
	})

	t.Run("drops records missing required fields", func(t *testing.T) {
		_, ok := n.FromExtracted(statement.ExtractedRecord{Description: "no date", Amount: 1.0})
		assert.False(t, ok)

		_, ok = n.FromExtracted(statement.ExtractedRecord{Date: "2024-01-05", Amount: 1.0})
		assert.False(t, ok)

		_, ok = n.FromExtracted(statement.ExtractedRecord{Date: "2024-01-05", Description: "no amount"})
		assert.False(t, ok)
	})
}
