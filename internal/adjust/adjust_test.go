package adjust

import (
	"testing"

	"github.com/kartika/bujet/internal/currency"
	"github.com/kartika/bujet/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionBudget() *model.Budget {
	return model.NewBudget([]model.LineItem{
		{Category: "Housing", Name: "Rent", Amount: 600},
		{Category: "Savings", Name: "Deposit", Amount: 400},
	})
}

func TestApplyKeepNeverMutates(t *testing.T) {
	b := sessionBudget()
	s := NewSession(b, nil)

	require.NoError(t, s.Apply(0, Decision{Action: ActionKeep}))

	assert.Equal(t, 600.0, b.Items[0].Amount)
	assert.Nil(t, b.Items[0].OriginalAmount)
	assert.Empty(t, s.Notes())
}

func TestApplyChange(t *testing.T) {
	b := sessionBudget()
	s := NewSession(b, nil)

	require.NoError(t, s.Apply(0, Decision{Action: ActionChange, NewAmount: 450}))

	assert.Equal(t, 450.0, b.Items[0].Amount)
	require.NotNil(t, b.Items[0].OriginalAmount)
	assert.Equal(t, 600.0, *b.Items[0].OriginalAmount)
	assert.Equal(t, []string{"Rent: 600 → 450"}, s.Notes())
}

func TestApplyChangeSnapshotsOnce(t *testing.T) {
	b := sessionBudget()
	s := NewSession(b, nil)

	require.NoError(t, s.Apply(0, Decision{Action: ActionChange, NewAmount: 450}))
	require.NoError(t, s.Apply(0, Decision{Action: ActionChange, NewAmount: 500}))

	// The snapshot and the note "before" both refer to the true original,
	// not the intermediate value.
	assert.Equal(t, 500.0, b.Items[0].Amount)
	assert.Equal(t, 600.0, *b.Items[0].OriginalAmount)
	assert.Equal(t, []string{"Rent: 600 → 450", "Rent: 600 → 500"}, s.Notes())
}

func TestApplyChangeBackToOriginal(t *testing.T) {
	b := sessionBudget()
	s := NewSession(b, nil)

	require.NoError(t, s.Apply(0, Decision{Action: ActionChange, NewAmount: 450}))
	require.NoError(t, s.Apply(0, Decision{Action: ActionChange, NewAmount: 600}))
	s.Finalize()

	// Restoring the original amount leaves no modification behind.
	assert.Equal(t, 600.0, b.Items[0].Amount)
	assert.Empty(t, b.Modifications())
}

func TestApplyChangeRejectsNegative(t *testing.T) {
	b := sessionBudget()
	s := NewSession(b, nil)

	err := s.Apply(0, Decision{Action: ActionChange, NewAmount: -1})

	require.ErrorIs(t, err, ErrNegativeAmount)
	assert.Equal(t, 600.0, b.Items[0].Amount)
	assert.Nil(t, b.Items[0].OriginalAmount)
	assert.Empty(t, s.Notes())
}

func TestApplyChangeToZeroNotesRemoval(t *testing.T) {
	b := sessionBudget()
	s := NewSession(b, nil)

	require.NoError(t, s.Apply(0, Decision{Action: ActionChange, NewAmount: 0}))

	assert.Equal(t, 0.0, b.Items[0].Amount)
	assert.Equal(t, []string{"Rent: 600 → REMOVED"}, s.Notes())
}

func TestApplyRemove(t *testing.T) {
	b := sessionBudget()
	format := currency.NewFormatter("IDR")
	s := NewSession(b, format.Format)

	require.NoError(t, s.Apply(0, Decision{Action: ActionRemove}))

	// Removal is logical: the item stays in place with a zero amount.
	require.Len(t, b.Items, 2)
	assert.Equal(t, 0.0, b.Items[0].Amount)
	assert.Equal(t, 600.0, *b.Items[0].OriginalAmount)
	assert.Equal(t, []string{"Rent: Rp600 → REMOVED"}, s.Notes())
}

func TestApplyIndexOutOfRange(t *testing.T) {
	b := sessionBudget()
	s := NewSession(b, nil)

	assert.ErrorIs(t, s.Apply(-1, Decision{Action: ActionKeep}), ErrIndexOutOfRange)
	assert.ErrorIs(t, s.Apply(2, Decision{Action: ActionKeep}), ErrIndexOutOfRange)
}

func TestFinalizeRecomputesPercentages(t *testing.T) {
	b := sessionBudget()
	s := NewSession(b, nil)

	require.NoError(t, s.Apply(0, Decision{Action: ActionRemove}))
	notes := s.Finalize()

	require.Len(t, notes, 1)
	assert.Equal(t, 0.0, b.Items[0].Percentage)
	assert.Equal(t, 100.0, b.Items[1].Percentage)
}

func TestFinalizeZeroTotal(t *testing.T) {
	b := sessionBudget()
	s := NewSession(b, nil)

	require.NoError(t, s.Apply(0, Decision{Action: ActionRemove}))
	require.NoError(t, s.Apply(1, Decision{Action: ActionRemove}))
	s.Finalize()

	assert.Equal(t, 0.0, b.Total())
	for _, item := range b.Items {
		assert.Equal(t, 0.0, item.Percentage)
	}
}
