package categorizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorize(t *testing.T) {
	c := New()

	tests := []struct {
		name        string
		description string
		amount      float64
		want        string
	}{
		{"payroll keyword", "ACME PAYROLL DEPOSIT", 1500, "Payroll"},
		{"salary keyword", "Monthly salary", 3200, "Payroll"},
		{"rent keyword", "Office rent January", -800, "Occupancy"},
		{"lease keyword", "Vehicle LEASE payment", -450, "Occupancy"},
		{"subscription keyword", "Netflix subscription", -15.99, "Software"},
		{"software keyword", "Adobe software licence", -52, "Software"},
		{"utility keyword", "City utility bill", -120, "Utilities"},
		{"electric keyword", "ELECTRIC COMPANY", -89.5, "Utilities"},
		{"transfer keyword", "Transfer to savings", -200, "Transfers"},
		{"positive fallback", "Refund from vendor", 35, "Income"},
		{"negative fallback", "Coffee shop", -4.5, "Expense"},
		{"zero fallback", "Adjustment", 0, "Income"},
		{"keyword inside a word", "payrolling services", -10, "Payroll"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Categorize(tt.description, tt.amount))
		})
	}
}

func TestCategorizeGroupPrecedence(t *testing.T) {
	c := New()

	// Payroll is declared before Transfers, so it wins even though both match.
	assert.Equal(t, "Payroll", c.Categorize("payroll transfer", 100))
	assert.Equal(t, "Occupancy", c.Categorize("rent transfer", -100))
}

func TestCategorizeIsDeterministic(t *testing.T) {
	c := New()

	first := c.Categorize("electric utility transfer", -50)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, c.Categorize("electric utility transfer", -50))
	}
}

func TestCustomGroups(t *testing.T) {
	c := NewWithGroups([]Group{
		{Label: "Travel", Keywords: []string{"airline", "hotel"}},
	})

	assert.Equal(t, "Travel", c.Categorize("HOTEL BOOKING", -320))
	assert.Equal(t, "Expense", c.Categorize("rent", -800))
}
