package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItems() []LineItem {
	return []LineItem{
		{Category: "Housing", Name: "Rent", Amount: 600},
		{Category: "Savings", Name: "Deposit", Amount: 300},
		{Category: "Emergency Fund", Name: "Buffer", Amount: 100},
	}
}

func TestNewBudgetDerivesPercentages(t *testing.T) {
	b := NewBudget(testItems())

	assert.Equal(t, 1000.0, b.Total())
	assert.Equal(t, 60.0, b.Items[0].Percentage)
	assert.Equal(t, 30.0, b.Items[1].Percentage)
	assert.Equal(t, 10.0, b.Items[2].Percentage)
}

func TestRecomputePercentages(t *testing.T) {
	tests := []struct {
		name    string
		amounts []float64
		want    []float64
	}{
		{
			name:    "even split",
			amounts: []float64{500, 500},
			want:    []float64{50, 50},
		},
		{
			name:    "rounds to two decimals",
			amounts: []float64{1, 2},
			want:    []float64{33.33, 66.67},
		},
		{
			name:    "zero total yields zero percentages",
			amounts: []float64{0, 0},
			want:    []float64{0, 0},
		},
		{
			name:    "single item is the whole budget",
			amounts: []float64{42},
			want:    []float64{100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := make([]LineItem, len(tt.amounts))
			for i, amount := range tt.amounts {
				items[i] = LineItem{Category: "C", Name: "N", Amount: amount}
			}

			b := NewBudget(items)

			for i, want := range tt.want {
				assert.InDelta(t, want, b.Items[i].Percentage, 0.001)
			}
		})
	}
}

func TestPercentagesSumToOneHundred(t *testing.T) {
	b := NewBudget([]LineItem{
		{Category: "A", Name: "a", Amount: 333},
		{Category: "B", Name: "b", Amount: 333},
		{Category: "C", Name: "c", Amount: 334},
	})

	var sum float64
	for _, item := range b.Items {
		sum += item.Percentage
	}
	assert.InDelta(t, 100.0, sum, 0.02)
}

func TestCloneIsDeep(t *testing.T) {
	original := NewBudget(testItems())
	snapshot := 600.0
	original.Items[0].OriginalAmount = &snapshot

	clone := original.Clone()
	require.True(t, clone.Equal(original))

	clone.Items[0].Amount = 0
	*clone.Items[0].OriginalAmount = 999

	assert.Equal(t, 600.0, original.Items[0].Amount)
	assert.Equal(t, 600.0, *original.Items[0].OriginalAmount)
}

func TestEqual(t *testing.T) {
	snapshot := 600.0

	tests := []struct {
		name   string
		mutate func(*Budget)
		want   bool
	}{
		{
			name:   "identical budgets",
			mutate: func(*Budget) {},
			want:   true,
		},
		{
			name:   "amount differs",
			mutate: func(b *Budget) { b.Items[0].Amount = 601 },
			want:   false,
		},
		{
			name:   "name differs",
			mutate: func(b *Budget) { b.Items[1].Name = "Other" },
			want:   false,
		},
		{
			name:   "snapshot presence differs",
			mutate: func(b *Budget) { b.Items[0].OriginalAmount = &snapshot },
			want:   false,
		},
		{
			name:   "item count differs",
			mutate: func(b *Budget) { b.Items = b.Items[:2] },
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewBudget(testItems())
			b := NewBudget(testItems())
			tt.mutate(b)
			assert.Equal(t, tt.want, a.Equal(b))
		})
	}
}

func TestCategoriesFirstAppearanceOrder(t *testing.T) {
	b := NewBudget([]LineItem{
		{Category: "Food", Name: "Groceries", Amount: 100},
		{Category: "Housing", Name: "Rent", Amount: 500},
		{Category: "Food", Name: "Dining", Amount: 50},
		{Category: "Savings", Name: "Deposit", Amount: 200},
	})

	assert.Equal(t, []string{"Food", "Housing", "Savings"}, b.Categories())
}

func TestCategorySummaries(t *testing.T) {
	b := NewBudget([]LineItem{
		{Category: "Food", Name: "Groceries", Amount: 300},
		{Category: "Housing", Name: "Rent", Amount: 500},
		{Category: "Food", Name: "Dining", Amount: 200},
	})

	summaries := b.CategorySummaries()
	require.Len(t, summaries, 2)

	assert.Equal(t, "Food", summaries[0].Category)
	assert.Equal(t, 500.0, summaries[0].Amount)
	assert.Equal(t, 2, summaries[0].ItemCount)
	assert.InDelta(t, 50.0, summaries[0].Percentage, 0.02)

	assert.Equal(t, "Housing", summaries[1].Category)
	assert.Equal(t, 500.0, summaries[1].Amount)
	assert.Equal(t, 1, summaries[1].ItemCount)
}

func TestModifications(t *testing.T) {
	b := NewBudget(testItems())

	// Untouched budget has no modifications.
	assert.Empty(t, b.Modifications())

	// Snapshot equal to the amount is not a modification.
	same := 300.0
	b.Items[1].OriginalAmount = &same
	assert.Empty(t, b.Modifications())

	// A changed amount shows up with the snapshot as the original.
	was := 600.0
	b.Items[0].OriginalAmount = &was
	b.Items[0].Amount = 0

	mods := b.Modifications()
	require.Len(t, mods, 1)
	assert.Equal(t, Modification{Item: "Rent", OriginalAmount: 600, ApprovedAmount: 0}, mods[0])
}

func TestTouched(t *testing.T) {
	item := LineItem{Category: "A", Name: "a", Amount: 10}
	assert.False(t, item.Touched())

	v := 10.0
	item.OriginalAmount = &v
	assert.True(t, item.Touched())
}
