package reconcile

import (
	"context"
	"sync"

	"github.com/kartika/bujet/internal/adjust"
	"github.com/kartika/bujet/internal/model"
)

// MockProvider is a scripted DecisionProvider for tests. Responses are
// consumed in order; an exhausted script falls back to safe defaults
// (reject, done, keep, no, empty reason) so a test never blocks.
type MockProvider struct {
	ReviewChoices  []ReviewChoice
	Selections     []ItemSelection
	ItemDecisions  []adjust.Decision
	Confirmations  []bool
	Justifications []string

	// Recorded calls for assertions.
	AnalysisShown   int
	SummaryShown    int
	DecidedItems    []int
	ConfirmPrompts  []string
	JustifyPrompts  []string
	SummaryNotes    []string
	SummaryOriginal *model.Budget
	SummaryAdjusted *model.Budget

	mu sync.Mutex
}

// ReviewBudget pops the next scripted review choice.
func (m *MockProvider) ReviewBudget(_ context.Context, _ *model.Budget, _ []model.Violation) (ReviewChoice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.ReviewChoices) == 0 {
		return ReviewReject, nil
	}
	choice := m.ReviewChoices[0]
	m.ReviewChoices = m.ReviewChoices[1:]
	return choice, nil
}

// SelectItems pops the next scripted selection.
func (m *MockProvider) SelectItems(_ context.Context, _ *model.Budget) (ItemSelection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Selections) == 0 {
		return ItemSelection{Done: true}, nil
	}
	sel := m.Selections[0]
	m.Selections = m.Selections[1:]
	return sel, nil
}

// DecideItem pops the next scripted per-item decision.
func (m *MockProvider) DecideItem(_ context.Context, index int, _ model.LineItem) (adjust.Decision, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DecidedItems = append(m.DecidedItems, index)
	if len(m.ItemDecisions) == 0 {
		return adjust.Decision{Action: adjust.ActionKeep}, nil
	}
	d := m.ItemDecisions[0]
	m.ItemDecisions = m.ItemDecisions[1:]
	return d, nil
}

// Confirm pops the next scripted yes/no answer.
func (m *MockProvider) Confirm(_ context.Context, prompt string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ConfirmPrompts = append(m.ConfirmPrompts, prompt)
	if len(m.Confirmations) == 0 {
		return false, nil
	}
	ok := m.Confirmations[0]
	m.Confirmations = m.Confirmations[1:]
	return ok, nil
}

// Justification pops the next scripted rationale.
func (m *MockProvider) Justification(_ context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.JustifyPrompts = append(m.JustifyPrompts, prompt)
	if len(m.Justifications) == 0 {
		return "", nil
	}
	reason := m.Justifications[0]
	m.Justifications = m.Justifications[1:]
	return reason, nil
}

// ShowAnalysis records that the analysis view was requested.
func (m *MockProvider) ShowAnalysis(_ *model.Budget) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AnalysisShown++
}

// ShowAdjustmentSummary records the comparison handed to the operator.
func (m *MockProvider) ShowAdjustmentSummary(original, adjusted *model.Budget, notes []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SummaryShown++
	m.SummaryOriginal = original
	m.SummaryAdjusted = adjusted
	m.SummaryNotes = notes
}

// Ensure MockProvider implements the DecisionProvider interface.
var _ DecisionProvider = (*MockProvider)(nil)
