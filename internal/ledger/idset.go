package ledger

import (
	"encoding/json"
	"maps"
	"slices"
)

// IDSet is a set of transaction ids. It is stored as a sorted JSON array.
type IDSet map[int64]struct{}

func NewIDSet(ids ...int64) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s IDSet) Has(id int64) bool {
	_, ok := s[id]
	return ok
}

func (s IDSet) Add(id int64)    { s[id] = struct{}{} }
func (s IDSet) Remove(id int64) { delete(s, id) }

// Toggle flips membership and reports whether id is now a member.
func (s IDSet) Toggle(id int64) bool {
	if s.Has(id) {
		delete(s, id)
		return false
	}
	s[id] = struct{}{}
	return true
}

// Sorted returns the members in ascending order.
func (s IDSet) Sorted() []int64 {
	return slices.Sorted(maps.Keys(s))
}

func (s IDSet) Clone() IDSet {
	c := make(IDSet, len(s))
	maps.Copy(c, s)
	return c
}

func (s IDSet) MarshalJSON() ([]byte, error) {
	ids := s.Sorted()
	if ids == nil {
		ids = []int64{}
	}
	return json.Marshal(ids)
}

func (s *IDSet) UnmarshalJSON(data []byte) error {
	var ids []int64
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = NewIDSet(ids...)
	return nil
}
