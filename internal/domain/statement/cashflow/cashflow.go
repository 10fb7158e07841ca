// Package cashflow reduces a transaction list into aggregate inflow/outflow
// metrics. Summarize is a pure function: no side effects, order-independent
// totals, identical output for identical input.
package cashflow

import (
	"github.com/shopspring/decimal"

	"github.com/brenkeeper/brenkeeper/internal/domain/statement"
	"github.com/brenkeeper/brenkeeper/pkg/money"
)

// Summarize computes total inflows (amounts >= 0), total outflows (absolute
// sum of negative amounts), their net, and the signed net per category. All
// results are rounded to two decimals via decimal arithmetic.
func Summarize(txns []statement.Transaction) statement.CashflowSummary {
	inflows := decimal.Zero
	outflows := decimal.Zero
	byCategory := make(map[string]decimal.Decimal)

	for _, tx := range txns {
		amount := decimal.NewFromFloat(tx.Amount)
		if amount.IsNegative() {
			outflows = outflows.Add(amount.Abs())
		} else {
			inflows = inflows.Add(amount)
		}

		category := tx.Category
		if category == "" {
			category = "Uncategorized"
		}
		byCategory[category] = byCategory[category].Add(amount)
	}

	summary := statement.CashflowSummary{
		TotalInflows:  money.Round2(inflows),
		TotalOutflows: money.Round2(outflows),
		NetCashflow:   money.Round2(inflows.Sub(outflows)),
		ByCategory:    make(map[string]float64, len(byCategory)),
	}
	for category, total := range byCategory {
		summary.ByCategory[category] = money.Round2(total)
	}

	return summary
}
