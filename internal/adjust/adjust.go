// Package adjust implements the item-adjustment engine: applying
// keep/change/remove decisions to individual line items while keeping
// audit snapshots and derived percentages consistent.
package adjust

import (
	"errors"
	"fmt"

	"github.com/kartika/bujet/internal/model"
)

// Adjustment engine errors. Both are caller-facing validation failures:
// the boundary re-prompts and nothing is stored.
var (
	ErrNegativeAmount  = errors.New("amount cannot be negative")
	ErrIndexOutOfRange = errors.New("item index out of range")
)

// Action is the decision applied to a single item.
type Action int

// Supported per-item actions.
const (
	ActionKeep Action = iota
	ActionChange
	ActionRemove
)

// Decision pairs an action with its new amount (used by ActionChange only).
type Decision struct {
	Action    Action
	NewAmount float64
}

// Session applies a batch of decisions to one budget. Notes are collected
// in application order; percentages are rederived once at Finalize.
type Session struct {
	budget *model.Budget
	format func(float64) string
	notes  []string
}

// NewSession starts an adjustment session over the budget. The formatter
// renders amounts in adjustment notes; it is a collaborator concern, so a
// nil formatter falls back to plain numbers.
func NewSession(budget *model.Budget, format func(float64) string) *Session {
	if format == nil {
		format = func(v float64) string { return fmt.Sprintf("%.0f", v) }
	}
	return &Session{budget: budget, format: format}
}

// Apply executes one decision against the item at index. Keep never
// mutates. Change and Remove snapshot the original amount exactly once, so
// repeated edits within a session still compare against the true original.
func (s *Session) Apply(index int, d Decision) error {
	if index < 0 || index >= len(s.budget.Items) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index+1)
	}

	item := &s.budget.Items[index]

	switch d.Action {
	case ActionKeep:
		return nil

	case ActionRemove:
		before := s.snapshot(item)
		item.Amount = 0
		s.notes = append(s.notes, fmt.Sprintf("%s: %s → REMOVED", item.Name, s.format(before)))
		return nil

	case ActionChange:
		if d.NewAmount < 0 {
			return ErrNegativeAmount
		}
		before := s.snapshot(item)
		item.Amount = d.NewAmount
		if d.NewAmount == 0 {
			s.notes = append(s.notes, fmt.Sprintf("%s: %s → REMOVED", item.Name, s.format(before)))
		} else {
			s.notes = append(s.notes, fmt.Sprintf("%s: %s → %s", item.Name, s.format(before), s.format(d.NewAmount)))
		}
		return nil

	default:
		return fmt.Errorf("unknown adjustment action: %d", d.Action)
	}
}

// Finalize recomputes every item's percentage against the new total and
// returns the collected adjustment notes. A zero total yields all-zero
// percentages.
func (s *Session) Finalize() []string {
	s.budget.RecomputePercentages()
	return s.notes
}

// Notes returns the adjustment notes collected so far.
func (s *Session) Notes() []string {
	return s.notes
}

// snapshot records the item's pre-adjustment amount on first touch and
// returns the amount the note should show as "before".
func (s *Session) snapshot(item *model.LineItem) float64 {
	if item.OriginalAmount == nil {
		v := item.Amount
		item.OriginalAmount = &v
	}
	return *item.OriginalAmount
}
