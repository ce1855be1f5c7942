package model

import (
	"fmt"
	"time"

	"github.com/kartika/bujet/internal/currency"
)

// Rule identifies which policy check a violation came from.
type Rule string

// Policy rules, in evaluation order.
const (
	RuleMaxTotal         Rule = "max_total_amount"
	RuleCategoryShare    Rule = "max_category_percentage"
	RuleItemShare        Rule = "max_item_percentage"
	RuleRequiredCategory Rule = "required_category"
	RuleEmergencyMinimum Rule = "min_emergency_percentage"
)

// Violation records one failed policy check: the rule, what it applied to,
// and the observed value against the configured limit.
type Violation struct {
	Rule     Rule
	Subject  string
	Observed float64
	Limit    float64
}

// Message renders the violation for display and reporting.
func (v Violation) Message() string {
	switch v.Rule {
	case RuleMaxTotal:
		return fmt.Sprintf("Total budget (%s) exceeds maximum allowed (%s)",
			currency.FormatNumber(v.Observed), currency.FormatNumber(v.Limit))
	case RuleCategoryShare:
		return fmt.Sprintf("Category '%s' (%.1f%%) exceeds maximum allowed (%g%%)",
			v.Subject, v.Observed, v.Limit)
	case RuleItemShare:
		return fmt.Sprintf("Item '%s' (%.1f%%) exceeds maximum allowed (%g%%)",
			v.Subject, v.Observed, v.Limit)
	case RuleRequiredCategory:
		return fmt.Sprintf("Required category '%s' is missing", v.Subject)
	case RuleEmergencyMinimum:
		return fmt.Sprintf("Emergency fund (%.1f%%) is below minimum required (%g%%)",
			v.Observed, v.Limit)
	default:
		return fmt.Sprintf("Rule '%s' violated for '%s'", v.Rule, v.Subject)
	}
}

// ViolationMessages renders a violation list in order.
func ViolationMessages(violations []Violation) []string {
	messages := make([]string, len(violations))
	for i, v := range violations {
		messages[i] = v.Message()
	}
	return messages
}

// Modification records one item whose approved amount differs from its
// original.
type Modification struct {
	Item           string  `json:"item"`
	OriginalAmount float64 `json:"original_amount"`
	ApprovedAmount float64 `json:"approved_amount"`
}

// DecisionRecord is the immutable output of one reconciliation run. It is
// created once at a terminal state and appended to the audit log.
type DecisionRecord struct {
	Timestamp     time.Time
	SourceFile    string
	Outcome       string
	Approved      bool
	Items         []LineItem
	TotalAmount   float64
	Categories    []string
	Notes         string
	Violations    []Violation
	Modifications []Modification
}

// NewDecisionRecord assembles a record from the final budget state. The
// total and categories are derived from the items so the record is always
// internally consistent.
func NewDecisionRecord(outcome string, approved bool, final *Budget, notes string, violations []Violation) *DecisionRecord {
	items := make([]LineItem, len(final.Items))
	copy(items, final.Items)

	return &DecisionRecord{
		Timestamp:     time.Now(),
		Outcome:       outcome,
		Approved:      approved,
		Items:         items,
		TotalAmount:   final.Total(),
		Categories:    final.Categories(),
		Notes:         notes,
		Violations:    violations,
		Modifications: final.Modifications(),
	}
}
