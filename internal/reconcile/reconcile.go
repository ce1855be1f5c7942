// Package reconcile implements the reconciliation state machine that turns
// a policy verdict into a final, audited approval decision.
package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kartika/bujet/internal/adjust"
	"github.com/kartika/bujet/internal/model"
	"github.com/kartika/bujet/internal/policy"
)

// State names the machine's positions. Every terminal state produces
// exactly one decision record.
type State string

// Machine states.
const (
	StateEvaluating           State = "evaluating"
	StateAutoApproved         State = "auto_approved"
	StateNeedsReview          State = "needs_review"
	StateOverrideApproved     State = "override_approved"
	StateAdjustmentInProgress State = "adjustment_in_progress"
	StateRejected             State = "rejected"
	StateAdjustedApproved     State = "adjusted_approved"
	StateAdjustedRejected     State = "adjusted_rejected"
	StateUnchangedApproved    State = "unchanged_approved"
	StateUnchangedRejected    State = "unchanged_rejected"
)

// AutoApprovalNote is recorded when every rule passes without review.
const AutoApprovalNote = "Automatic approval - all rules satisfied"

// Reconciler drives one budget through evaluation, review, and adjustment
// to a terminal decision. It is strictly sequential: every suspension
// point is a blocking request to the decision provider.
type Reconciler struct {
	provider   DecisionProvider
	thresholds policy.Thresholds
	format     func(float64) string
}

// New creates a reconciler. The formatter renders amounts in adjustment
// notes and may be nil.
func New(provider DecisionProvider, thresholds policy.Thresholds, format func(float64) string) *Reconciler {
	return &Reconciler{
		provider:   provider,
		thresholds: thresholds,
		format:     format,
	}
}

// Run reconciles the budget and returns the decision record of the
// terminal state. The input budget is never mutated: adjustments happen on
// a working copy, and a rejected adjustment discards that copy entirely.
func (r *Reconciler) Run(ctx context.Context, b *model.Budget) (*model.DecisionRecord, error) {
	// Rule evaluation trusts the caller to have current percentages, so
	// rederive them here before the snapshot is judged.
	b.RecomputePercentages()

	approved, violations := policy.Evaluate(b, r.thresholds)
	slog.Info("Evaluated budget against policy",
		"items", len(b.Items),
		"total", b.Total(),
		"approved", approved,
		"violations", len(violations))

	if approved {
		return model.NewDecisionRecord(string(StateAutoApproved), true, b, AutoApprovalNote, nil), nil
	}

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		choice, err := r.provider.ReviewBudget(ctx, b, violations)
		if err != nil {
			return nil, fmt.Errorf("review choice failed: %w", err)
		}

		switch choice {
		case ReviewAnalyze:
			r.provider.ShowAnalysis(b)
			continue

		case ReviewOverride:
			reason, err := r.provider.Justification(ctx, "Enter reason for full approval override")
			if err != nil {
				return nil, fmt.Errorf("override justification failed: %w", err)
			}
			notes := fmt.Sprintf("Full approval override: %s", reason)
			return model.NewDecisionRecord(string(StateOverrideApproved), true, b, notes, violations), nil

		case ReviewReject:
			reason, err := r.provider.Justification(ctx, "Enter reason for budget rejection")
			if err != nil {
				return nil, fmt.Errorf("rejection justification failed: %w", err)
			}
			notes := fmt.Sprintf("Budget rejected: %s", reason)
			return model.NewDecisionRecord(string(StateRejected), false, b, notes, violations), nil

		case ReviewAdjust:
			return r.runAdjustment(ctx, b, violations)

		default:
			return nil, fmt.Errorf("unexpected review choice: %d", choice)
		}
	}
}

// runAdjustment handles the AdjustmentInProgress phase: the operator
// selects items, decides each one, and then accepts or rejects the result.
func (r *Reconciler) runAdjustment(ctx context.Context, original *model.Budget, violations []model.Violation) (*model.DecisionRecord, error) {
	working := original.Clone()
	session := adjust.NewSession(working, r.format)

	selection, err := r.provider.SelectItems(ctx, working)
	if err != nil {
		return nil, fmt.Errorf("item selection failed: %w", err)
	}

	if !selection.Done {
		indices := selection.Indices
		if selection.All {
			indices = make([]int, len(working.Items))
			for i := range indices {
				indices[i] = i
			}
		}

		for _, idx := range indices {
			if err := r.decideItem(ctx, session, working, idx); err != nil {
				return nil, err
			}
		}
	}

	notes := session.Finalize()

	if working.Equal(original) {
		return r.finishUnchanged(ctx, original, violations)
	}
	return r.finishAdjusted(ctx, original, working, violations, notes)
}

// decideItem requests a decision for one item and applies it, re-asking if
// the engine rejects the input. Well-behaved providers validate amounts at
// the boundary, so the loop normally runs once.
func (r *Reconciler) decideItem(ctx context.Context, session *adjust.Session, working *model.Budget, idx int) error {
	if idx < 0 || idx >= len(working.Items) {
		return fmt.Errorf("%w: %d", adjust.ErrIndexOutOfRange, idx+1)
	}

	for {
		decision, err := r.provider.DecideItem(ctx, idx, working.Items[idx])
		if err != nil {
			return fmt.Errorf("item decision failed: %w", err)
		}

		switch err := session.Apply(idx, decision); {
		case err == nil:
			return nil
		case ctx.Err() != nil:
			return ctx.Err()
		default:
			slog.Warn("Rejected adjustment decision, re-prompting",
				"item", working.Items[idx].Name, "error", err)
		}
	}
}

func (r *Reconciler) finishUnchanged(ctx context.Context, original *model.Budget, violations []model.Violation) (*model.DecisionRecord, error) {
	ok, err := r.provider.Confirm(ctx, "No changes were made to the budget. Approve original budget anyway?")
	if err != nil {
		return nil, fmt.Errorf("unchanged confirmation failed: %w", err)
	}

	if !ok {
		return model.NewDecisionRecord(string(StateUnchangedRejected), false, original, "Rejected - no changes made", violations), nil
	}

	reason, err := r.provider.Justification(ctx, "Enter approval reason")
	if err != nil {
		return nil, fmt.Errorf("approval justification failed: %w", err)
	}
	notes := fmt.Sprintf("Approved without changes: %s", reason)
	return model.NewDecisionRecord(string(StateUnchangedApproved), true, original, notes, violations), nil
}

func (r *Reconciler) finishAdjusted(ctx context.Context, original, working *model.Budget, violations []model.Violation, notes []string) (*model.DecisionRecord, error) {
	r.provider.ShowAdjustmentSummary(original, working, notes)

	changes := "No adjustments made"
	if len(notes) > 0 {
		changes = strings.Join(notes, "; ")
	}

	ok, err := r.provider.Confirm(ctx, "Approve the adjusted budget?")
	if err != nil {
		return nil, fmt.Errorf("adjusted confirmation failed: %w", err)
	}

	if !ok {
		// A rejected adjustment never persists partial edits: the record
		// carries the pristine original set.
		note := fmt.Sprintf("Rejected after item adjustments. Changes attempted: %s", changes)
		return model.NewDecisionRecord(string(StateAdjustedRejected), false, original, note, violations), nil
	}

	reason, err := r.provider.Justification(ctx, "Enter approval reason for adjusted budget")
	if err != nil {
		return nil, fmt.Errorf("adjusted justification failed: %w", err)
	}
	note := fmt.Sprintf("Approved with individual item adjustments: %s. Changes: %s", reason, changes)
	return model.NewDecisionRecord(string(StateAdjustedApproved), true, working, note, violations), nil
}
