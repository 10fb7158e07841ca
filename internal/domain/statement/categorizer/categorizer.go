// Package categorizer assigns a category label to each transaction using
// ordered keyword groups with a sign-based fallback. Matching is best-effort
// bookkeeping hygiene, not an accounting classification engine.
package categorizer

import (
	"strings"

	"github.com/cloudflare/ahocorasick"
)

// Fallback labels used when no keyword group matches.
const (
	LabelIncome  = "Income"
	LabelExpense = "Expense"
)

// Group maps a set of description keywords to a category label. Earlier
// groups take precedence over later ones.
type Group struct {
	Label    string
	Keywords []string
}

// DefaultGroups is the built-in keyword table, ordered by precedence.
func DefaultGroups() []Group {
	return []Group{
		{Label: "Payroll", Keywords: []string{"payroll", "salary"}},
		{Label: "Occupancy", Keywords: []string{"rent", "lease"}},
		{Label: "Software", Keywords: []string{"subscription", "software"}},
		{Label: "Utilities", Keywords: []string{"utility", "electric"}},
		{Label: "Transfers", Keywords: []string{"transfer"}},
	}
}

// Categorizer matches descriptions against all keyword groups in a single
// pass using an Aho-Corasick automaton. It is immutable after construction
// and safe for concurrent use.
type Categorizer struct {
	matcher *ahocorasick.Matcher
	// patternGroup[i] is the group index the i-th pattern belongs to; the
	// lowest matched group index wins, preserving group precedence.
	patternGroup []int
	labels       []string
}

// New builds a categorizer over the default keyword groups.
func New() *Categorizer {
	return NewWithGroups(DefaultGroups())
}

// NewWithGroups builds a categorizer over a custom ordered group list.
func NewWithGroups(groups []Group) *Categorizer {
	var patterns []string
	var patternGroup []int
	labels := make([]string, len(groups))

	for gi, group := range groups {
		labels[gi] = group.Label
		for _, kw := range group.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" {
				continue
			}
			patterns = append(patterns, kw)
			patternGroup = append(patternGroup, gi)
		}
	}

	return &Categorizer{
		matcher:      ahocorasick.NewStringMatcher(patterns),
		patternGroup: patternGroup,
		labels:       labels,
	}
}

// Categorize returns the category label for a description and signed amount.
// It is a pure function: identical inputs always yield the identical label.
func (c *Categorizer) Categorize(description string, amount float64) string {
	matches := c.matcher.Match([]byte(strings.ToLower(description)))

	best := -1
	for _, idx := range matches {
		if idx < 0 || idx >= len(c.patternGroup) {
			continue
		}
		if g := c.patternGroup[idx]; best == -1 || g < best {
			best = g
		}
	}
	if best >= 0 {
		return c.labels[best]
	}

	if amount >= 0 {
		return LabelIncome
	}
	return LabelExpense
}
