package ledger

import "slices"

// UndoStack keeps full ledger snapshots, most recent last.
type UndoStack struct {
	snapshots [][]Transaction
	depth     int
}

// NewUndoStack returns a stack holding at most depth snapshots. A depth of
// zero or less means unbounded.
func NewUndoStack(depth int) *UndoStack {
	return &UndoStack{depth: depth}
}

// Push stores a copy of snapshot, evicting the oldest one when full.
func (u *UndoStack) Push(snapshot []Transaction) {
	u.snapshots = append(u.snapshots, slices.Clone(snapshot))
	if u.depth > 0 && len(u.snapshots) > u.depth {
		u.snapshots = slices.Delete(u.snapshots, 0, len(u.snapshots)-u.depth)
	}
}

// Pop removes and returns the most recent snapshot.
func (u *UndoStack) Pop() ([]Transaction, error) {
	if len(u.snapshots) == 0 {
		return nil, ErrEmptyUndo
	}
	last := u.snapshots[len(u.snapshots)-1]
	u.snapshots[len(u.snapshots)-1] = nil
	u.snapshots = u.snapshots[:len(u.snapshots)-1]
	return last, nil
}

func (u *UndoStack) Len() int {
	return len(u.snapshots)
}
