// Package model defines the core value types: budget line items, the
// ordered budget they form, policy violations, and decision records.
package model

import "math"

// LineItem represents a single category/name/amount budget entry.
type LineItem struct {
	Category string
	Name     string
	// Amount is the currently approved magnitude. Never negative.
	Amount float64
	// OriginalAmount is set the first time the adjustment engine touches an
	// item and preserves the pre-adjustment value. nil means never touched.
	OriginalAmount *float64
	// Percentage is derived: amount / total * 100, rounded to two decimals.
	Percentage float64
}

// Touched reports whether the item has been modified or removed.
func (i LineItem) Touched() bool {
	return i.OriginalAmount != nil
}

// Budget is an ordered collection of line items. Items are addressed by
// position; "removal" zeroes the amount so category shape survives for
// reporting.
type Budget struct {
	Items []LineItem
}

// NewBudget creates a budget from items and derives their percentages.
func NewBudget(items []LineItem) *Budget {
	b := &Budget{Items: items}
	b.RecomputePercentages()
	return b
}

// Total returns the sum of all item amounts.
func (b *Budget) Total() float64 {
	var total float64
	for _, item := range b.Items {
		total += item.Amount
	}
	return total
}

// RecomputePercentages rederives every item's percentage from the current
// total. A zero total sets all percentages to zero rather than dividing by
// zero.
func (b *Budget) RecomputePercentages() {
	total := b.Total()
	for i := range b.Items {
		if total == 0 {
			b.Items[i].Percentage = 0
			continue
		}
		b.Items[i].Percentage = round2(b.Items[i].Amount / total * 100)
	}
}

// Clone returns a deep copy of the budget, including original-amount
// snapshots, so a rejected adjustment can revert to the pristine set.
func (b *Budget) Clone() *Budget {
	items := make([]LineItem, len(b.Items))
	copy(items, b.Items)
	for i := range items {
		if items[i].OriginalAmount != nil {
			v := *items[i].OriginalAmount
			items[i].OriginalAmount = &v
		}
	}
	return &Budget{Items: items}
}

// Equal reports whether two budgets hold the same items by value.
func (b *Budget) Equal(other *Budget) bool {
	if len(b.Items) != len(other.Items) {
		return false
	}
	for i := range b.Items {
		a, o := b.Items[i], other.Items[i]
		if a.Category != o.Category || a.Name != o.Name ||
			a.Amount != o.Amount || a.Percentage != o.Percentage {
			return false
		}
		if (a.OriginalAmount == nil) != (o.OriginalAmount == nil) {
			return false
		}
		if a.OriginalAmount != nil && *a.OriginalAmount != *o.OriginalAmount {
			return false
		}
	}
	return true
}

// Categories returns the distinct category names in first-appearance order.
func (b *Budget) Categories() []string {
	seen := make(map[string]bool)
	var names []string
	for _, item := range b.Items {
		if !seen[item.Category] {
			seen[item.Category] = true
			names = append(names, item.Category)
		}
	}
	return names
}

// CategorySummary aggregates the items sharing one category.
type CategorySummary struct {
	Category   string
	Amount     float64
	Percentage float64
	ItemCount  int
}

// CategorySummaries groups items by category, in first-appearance order.
func (b *Budget) CategorySummaries() []CategorySummary {
	index := make(map[string]int)
	var summaries []CategorySummary
	for _, item := range b.Items {
		i, ok := index[item.Category]
		if !ok {
			i = len(summaries)
			index[item.Category] = i
			summaries = append(summaries, CategorySummary{Category: item.Category})
		}
		summaries[i].Amount += item.Amount
		summaries[i].Percentage += item.Percentage
		summaries[i].ItemCount++
	}
	return summaries
}

// Modifications lists every item whose snapshot differs from its current
// amount, in item order.
func (b *Budget) Modifications() []Modification {
	var mods []Modification
	for _, item := range b.Items {
		if item.OriginalAmount != nil && *item.OriginalAmount != item.Amount {
			mods = append(mods, Modification{
				Item:           item.Name,
				OriginalAmount: *item.OriginalAmount,
				ApprovedAmount: item.Amount,
			})
		}
	}
	return mods
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
