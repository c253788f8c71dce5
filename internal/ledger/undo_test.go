package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUndo_RoundTrip(t *testing.T) {
	l := newTestLedger(t)
	u := NewUndoStack(0)
	tx, err := l.Add(Draft{Name: "Asha", Bank: "HDFC", Amount: 500, Type: Credited})
	require.NoError(t, err)
	before := l.Snapshot()

	u.Push(l.Snapshot())
	require.NoError(t, l.Remove(tx.ID))
	assert.Equal(t, 0, l.Len())

	snapshot, err := u.Pop()
	require.NoError(t, err)
	l.Restore(snapshot)

	assert.Equal(t, before, l.Records())
	got, ok := l.Get(tx.ID)
	assert.True(t, ok)
	assert.Equal(t, tx, got)
}

func TestUndo_PushCopies(t *testing.T) {
	u := NewUndoStack(0)
	snapshot := []Transaction{{ID: 1, Name: "A"}}
	u.Push(snapshot)
	snapshot[0].Name = "changed"

	got, err := u.Pop()
	require.NoError(t, err)
	assert.Equal(t, "A", got[0].Name)
}

func TestUndo_Empty(t *testing.T) {
	u := NewUndoStack(0)
	_, err := u.Pop()
	assert.ErrorIs(t, err, ErrEmptyUndo)
}

func TestUndo_LIFO(t *testing.T) {
	u := NewUndoStack(0)
	u.Push([]Transaction{{ID: 1}})
	u.Push([]Transaction{{ID: 1}, {ID: 2}})

	got, _ := u.Pop()
	assert.Len(t, got, 2)
	got, _ = u.Pop()
	assert.Len(t, got, 1)
	assert.Equal(t, 0, u.Len())
}

func TestUndo_BoundedDepth(t *testing.T) {
	u := NewUndoStack(2)
	u.Push([]Transaction{{ID: 1}})
	u.Push([]Transaction{{ID: 2}})
	u.Push([]Transaction{{ID: 3}})
	assert.Equal(t, 2, u.Len())

	got, _ := u.Pop()
	assert.Equal(t, int64(3), got[0].ID)
	got, _ = u.Pop()
	assert.Equal(t, int64(2), got[0].ID)

	_, err := u.Pop()
	assert.ErrorIs(t, err, ErrEmptyUndo)
}
