package policy

import (
	"testing"

	"github.com/kartika/bujet/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compliantBudget() *model.Budget {
	return model.NewBudget([]model.LineItem{
		{Category: "Housing", Name: "Rent", Amount: 250_000},
		{Category: "Food", Name: "Groceries", Amount: 200_000},
		{Category: "Transportation", Name: "Fuel", Amount: 150_000},
		{Category: "Savings", Name: "Deposit", Amount: 200_000},
		{Category: "Emergency Fund", Name: "Buffer", Amount: 200_000},
	})
}

func TestEvaluateCompliantBudget(t *testing.T) {
	approved, violations := Evaluate(compliantBudget(), DefaultThresholds())

	assert.True(t, approved)
	assert.Empty(t, violations)
}

func TestEvaluateSingleRules(t *testing.T) {
	tests := []struct {
		name    string
		budget  *model.Budget
		rule    model.Rule
		subject string
	}{
		{
			name: "total exceeds maximum",
			budget: model.NewBudget([]model.LineItem{
				{Category: "Housing", Name: "Rent", Amount: 300_000},
				{Category: "Food", Name: "Groceries", Amount: 250_000},
				{Category: "Transportation", Name: "Fuel", Amount: 250_000},
				{Category: "Savings", Name: "Deposit", Amount: 300_000},
				{Category: "Emergency Fund", Name: "Buffer", Amount: 150_000},
			}),
			rule:    model.RuleMaxTotal,
			subject: "total",
		},
		{
			name: "category share exceeds maximum",
			budget: model.NewBudget([]model.LineItem{
				{Category: "Housing", Name: "Rent", Amount: 300_000},
				{Category: "Housing", Name: "Utilities", Amount: 260_000},
				{Category: "Savings", Name: "Deposit", Amount: 240_000},
				{Category: "Emergency Fund", Name: "Buffer", Amount: 200_000},
			}),
			rule:    model.RuleCategoryShare,
			subject: "Housing",
		},
		{
			name: "item share exceeds maximum",
			budget: model.NewBudget([]model.LineItem{
				{Category: "Housing", Name: "Rent", Amount: 400_000},
				{Category: "Food", Name: "Groceries", Amount: 200_000},
				{Category: "Savings", Name: "Deposit", Amount: 250_000},
				{Category: "Emergency Fund", Name: "Buffer", Amount: 150_000},
			}),
			rule:    model.RuleItemShare,
			subject: "Rent",
		},
		{
			name: "required category missing",
			budget: model.NewBudget([]model.LineItem{
				{Category: "Housing", Name: "Rent", Amount: 300_000},
				{Category: "Food", Name: "Groceries", Amount: 300_000},
				{Category: "Transportation", Name: "Fuel", Amount: 200_000},
				{Category: "Emergency Fund", Name: "Buffer", Amount: 200_000},
			}),
			rule:    model.RuleRequiredCategory,
			subject: "Savings",
		},
		{
			name: "emergency share below minimum",
			budget: model.NewBudget([]model.LineItem{
				{Category: "Housing", Name: "Rent", Amount: 290_000},
				{Category: "Food", Name: "Groceries", Amount: 280_000},
				{Category: "Savings", Name: "Deposit", Amount: 280_000},
				{Category: "Savings", Name: "Retirement", Amount: 100_000},
				{Category: "Emergency Fund", Name: "Buffer", Amount: 50_000},
			}),
			rule:    model.RuleEmergencyMinimum,
			subject: "emergency",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			approved, violations := Evaluate(tt.budget, DefaultThresholds())

			assert.False(t, approved)
			require.Len(t, violations, 1)
			assert.Equal(t, tt.rule, violations[0].Rule)
			assert.Equal(t, tt.subject, violations[0].Subject)
		})
	}
}

func TestEvaluateViolationOrderIsFixed(t *testing.T) {
	// One budget that trips every rule: over the total, one category and one
	// item dominating, no Savings, and no emergency category at all.
	b := model.NewBudget([]model.LineItem{
		{Category: "Housing", Name: "Rent", Amount: 900_000},
		{Category: "Food", Name: "Groceries", Amount: 300_000},
	})

	approved, violations := Evaluate(b, DefaultThresholds())

	assert.False(t, approved)
	require.Len(t, violations, 6)
	assert.Equal(t, model.RuleMaxTotal, violations[0].Rule)
	assert.Equal(t, model.RuleCategoryShare, violations[1].Rule)
	assert.Equal(t, "Housing", violations[1].Subject)
	assert.Equal(t, model.RuleItemShare, violations[2].Rule)
	assert.Equal(t, "Rent", violations[2].Subject)
	assert.Equal(t, model.RuleRequiredCategory, violations[3].Rule)
	assert.Equal(t, "Emergency Fund", violations[3].Subject)
	assert.Equal(t, model.RuleRequiredCategory, violations[4].Rule)
	assert.Equal(t, "Savings", violations[4].Subject)
	assert.Equal(t, model.RuleEmergencyMinimum, violations[5].Rule)
	assert.Equal(t, 0.0, violations[5].Observed)
}

func TestEvaluateEmergencyMatchIsCaseInsensitiveSubstring(t *testing.T) {
	b := model.NewBudget([]model.LineItem{
		{Category: "Housing", Name: "Rent", Amount: 400_000},
		{Category: "Food", Name: "Groceries", Amount: 250_000},
		{Category: "Savings", Name: "Deposit", Amount: 200_000},
		{Category: "EMERGENCY Reserve", Name: "Buffer", Amount: 150_000},
	})

	thresholds := DefaultThresholds()
	thresholds.RequiredCategories = []string{"Savings"}
	thresholds.MaxItemPercentage = 50

	approved, violations := Evaluate(b, thresholds)

	assert.True(t, approved, "15%% in 'EMERGENCY Reserve' should satisfy the 10%% minimum: %v", violations)
}

func TestEvaluateIsPureAndStable(t *testing.T) {
	b := model.NewBudget([]model.LineItem{
		{Category: "Housing", Name: "Rent", Amount: 900_000},
		{Category: "Food", Name: "Groceries", Amount: 300_000},
	})
	before := b.Clone()

	_, first := Evaluate(b, DefaultThresholds())
	_, second := Evaluate(b, DefaultThresholds())

	assert.True(t, b.Equal(before), "evaluation must not mutate the budget")
	assert.Equal(t, first, second, "repeated evaluation must yield identical violations")
}

func TestEvaluateEmptyBudget(t *testing.T) {
	b := model.NewBudget(nil)

	approved, violations := Evaluate(b, DefaultThresholds())

	// No items still fails the required-category and emergency rules.
	assert.False(t, approved)
	require.Len(t, violations, 3)
	assert.Equal(t, model.RuleRequiredCategory, violations[0].Rule)
	assert.Equal(t, model.RuleRequiredCategory, violations[1].Rule)
	assert.Equal(t, model.RuleEmergencyMinimum, violations[2].Rule)
}

func TestEvaluateCustomThresholds(t *testing.T) {
	b := compliantBudget()

	thresholds := Thresholds{
		MaxTotalAmount:         500_000,
		MaxCategoryPercentage:  50,
		MaxItemPercentage:      30,
		RequiredCategories:     nil,
		MinEmergencyPercentage: 0,
	}

	approved, violations := Evaluate(b, thresholds)

	assert.False(t, approved)
	require.Len(t, violations, 1)
	assert.Equal(t, model.RuleMaxTotal, violations[0].Rule)
}
