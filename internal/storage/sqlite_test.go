package storage

import (
	"context"
	"testing"
	"time"

	"github.com/kartika/bujet/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	s, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.Close()
	})
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func testRecord() *model.DecisionRecord {
	was := 600.0
	b := model.NewBudget([]model.LineItem{
		{Category: "Housing", Name: "Rent", Amount: 0, OriginalAmount: &was},
		{Category: "Savings", Name: "Deposit", Amount: 400},
	})
	violations := []model.Violation{
		{Rule: model.RuleRequiredCategory, Subject: "Emergency Fund", Limit: 1},
	}
	record := model.NewDecisionRecord("adjusted_approved", true, b, "Approved with individual item adjustments", violations)
	record.SourceFile = "budget.csv"
	return record
}

func TestNewSQLiteStorageRequiresPath(t *testing.T) {
	_, err := NewSQLiteStorage("")
	require.Error(t, err)
}

func TestMigrateIsIdempotent(t *testing.T) {
	s := newTestStorage(t)
	require.NoError(t, s.Migrate(context.Background()))
}

func TestAppendAndListDecisions(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.AppendDecision(ctx, testRecord()))

	rejected := model.NewDecisionRecord("rejected", false,
		model.NewBudget([]model.LineItem{{Category: "Housing", Name: "Rent", Amount: 900}}),
		"Budget rejected: too thin", nil)
	rejected.SourceFile = "other.csv"
	require.NoError(t, s.AppendDecision(ctx, rejected))

	decisions, err := s.ListDecisions(ctx)
	require.NoError(t, err)
	require.Len(t, decisions, 2)

	first := decisions[0]
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, "budget.csv", first.SourceFile)
	assert.Equal(t, "adjusted_approved", first.Outcome)
	assert.True(t, first.Approved)
	assert.Equal(t, 400.0, first.TotalAmount)
	assert.Equal(t, 2, first.TotalItems)
	assert.Equal(t, "Housing, Savings", first.Categories)
	assert.Equal(t, []string{"Required category 'Emergency Fund' is missing"}, first.Violations)
	require.Len(t, first.Modifications, 1)
	assert.Equal(t, model.Modification{Item: "Rent", OriginalAmount: 600, ApprovedAmount: 0}, first.Modifications[0])
	assert.WithinDuration(t, time.Now(), first.CreatedAt, time.Minute)

	second := decisions[1]
	assert.Equal(t, int64(2), second.ID)
	assert.Equal(t, "rejected", second.Outcome)
	assert.False(t, second.Approved)
	assert.Empty(t, second.Violations)
	assert.Empty(t, second.Modifications)
}

func TestAppendDecisionRejectsNil(t *testing.T) {
	s := newTestStorage(t)
	require.Error(t, s.AppendDecision(context.Background(), nil))
}

func TestListDecisionsEmpty(t *testing.T) {
	s := newTestStorage(t)
	decisions, err := s.ListDecisions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, decisions)
}
