package reconcile

import (
	"context"

	"github.com/kartika/bujet/internal/adjust"
	"github.com/kartika/bujet/internal/model"
)

// ReviewChoice is the operator's branch selection when a budget needs
// manual review.
type ReviewChoice int

// Review menu branches.
const (
	// ReviewOverride approves the original set unconditionally.
	ReviewOverride ReviewChoice = iota + 1
	// ReviewAdjust enters item-by-item adjustment.
	ReviewAdjust
	// ReviewReject rejects the entire budget.
	ReviewReject
	// ReviewAnalyze shows the detailed analysis and returns to the menu.
	ReviewAnalyze
)

// ItemSelection describes which items the operator chose for adjustment.
type ItemSelection struct {
	// Indices are zero-based item positions. Ignored when All or Done is set.
	Indices []int
	// All selects every item for one-by-one review.
	All bool
	// Done finishes the adjustment phase without selecting anything.
	Done bool
}

// DecisionProvider supplies the primitive decisions the state machine
// consumes. How the decisions are rendered and gathered (console, script,
// test double) is irrelevant to the machine. Implementations must only
// return well-formed values: malformed operator input is re-prompted at
// the boundary and never surfaces here.
type DecisionProvider interface {
	// ReviewBudget presents the violations and returns the chosen branch.
	ReviewBudget(ctx context.Context, b *model.Budget, violations []model.Violation) (ReviewChoice, error)

	// SelectItems asks which items to review for adjustment.
	SelectItems(ctx context.Context, b *model.Budget) (ItemSelection, error)

	// DecideItem asks for a keep/change/remove decision on one item.
	DecideItem(ctx context.Context, index int, item model.LineItem) (adjust.Decision, error)

	// Confirm asks a yes/no question.
	Confirm(ctx context.Context, prompt string) (bool, error)

	// Justification collects a free-text rationale.
	Justification(ctx context.Context, prompt string) (string, error)

	// ShowAnalysis renders the detailed budget analysis.
	ShowAnalysis(b *model.Budget)

	// ShowAdjustmentSummary renders the original/adjusted comparison before
	// the final approve/reject confirmation.
	ShowAdjustmentSummary(original, adjusted *model.Budget, notes []string)
}

// AuditLog accepts one decision record append per reconciliation run.
// Records are never rewritten or deleted.
type AuditLog interface {
	AppendDecision(ctx context.Context, record *model.DecisionRecord) error
}
