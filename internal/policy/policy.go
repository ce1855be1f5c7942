// Package policy implements the approval rule engine: a pure evaluation of
// a budget snapshot against fixed thresholds.
package policy

import (
	"strings"

	"github.com/kartika/bujet/internal/model"
)

// Thresholds is the immutable approval policy for one evaluation. It is
// passed in at call time rather than held as process state so runs and
// tests can vary it independently.
type Thresholds struct {
	MaxTotalAmount         float64
	MaxCategoryPercentage  float64
	MaxItemPercentage      float64
	RequiredCategories     []string
	MinEmergencyPercentage float64
}

// DefaultThresholds returns the stock approval policy.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MaxTotalAmount:         1_000_000,
		MaxCategoryPercentage:  50,
		MaxItemPercentage:      30,
		RequiredCategories:     []string{"Emergency Fund", "Savings"},
		MinEmergencyPercentage: 10,
	}
}

// Evaluate checks the budget against the policy and returns the verdict
// plus violations in a fixed order: total, category shares, item shares,
// required categories, emergency minimum. It never mutates the budget and
// assumes the caller kept percentages current.
func Evaluate(b *model.Budget, t Thresholds) (bool, []model.Violation) {
	var violations []model.Violation

	if total := b.Total(); total > t.MaxTotalAmount {
		violations = append(violations, model.Violation{
			Rule:     model.RuleMaxTotal,
			Subject:  "total",
			Observed: total,
			Limit:    t.MaxTotalAmount,
		})
	}

	for _, summary := range b.CategorySummaries() {
		if summary.Percentage > t.MaxCategoryPercentage {
			violations = append(violations, model.Violation{
				Rule:     model.RuleCategoryShare,
				Subject:  summary.Category,
				Observed: summary.Percentage,
				Limit:    t.MaxCategoryPercentage,
			})
		}
	}

	for _, item := range b.Items {
		if item.Percentage > t.MaxItemPercentage {
			violations = append(violations, model.Violation{
				Rule:     model.RuleItemShare,
				Subject:  item.Name,
				Observed: item.Percentage,
				Limit:    t.MaxItemPercentage,
			})
		}
	}

	present := make(map[string]bool)
	for _, item := range b.Items {
		present[item.Category] = true
	}
	for _, required := range t.RequiredCategories {
		if !present[required] {
			violations = append(violations, model.Violation{
				Rule:    model.RuleRequiredCategory,
				Subject: required,
				Limit:   1,
			})
		}
	}

	// The emergency check fires even when no category matches: the summed
	// share then defaults to zero.
	var emergency float64
	for _, item := range b.Items {
		if strings.Contains(strings.ToLower(item.Category), "emergency") {
			emergency += item.Percentage
		}
	}
	if emergency < t.MinEmergencyPercentage {
		violations = append(violations, model.Violation{
			Rule:     model.RuleEmergencyMinimum,
			Subject:  "emergency",
			Observed: emergency,
			Limit:    t.MinEmergencyPercentage,
		})
	}

	return len(violations) == 0, violations
}
