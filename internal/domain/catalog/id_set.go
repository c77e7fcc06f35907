package catalog

import (
	"sort"

	"github.com/google/uuid"
)

// IDSet is an unordered set of foreign identifiers.
type IDSet struct {
	ids map[uuid.UUID]struct{}
}

// NewIDSet creates a set holding the given ids
func NewIDSet(ids ...uuid.UUID) IDSet {
	s := IDSet{ids: make(map[uuid.UUID]struct{}, len(ids))}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

// Add inserts an id; adding an existing id is a no-op.
func (s *IDSet) Add(id uuid.UUID) {
	if s.ids == nil {
		s.ids = make(map[uuid.UUID]struct{})
	}
	s.ids[id] = struct{}{}
}

// Remove deletes an id
func (s *IDSet) Remove(id uuid.UUID) {
	delete(s.ids, id)
}

// Clear removes every id
func (s *IDSet) Clear() {
	s.ids = make(map[uuid.UUID]struct{})
}

// Contains reports whether id is in the set
func (s IDSet) Contains(id uuid.UUID) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of ids
func (s IDSet) Len() int {
	return len(s.ids)
}

// Equal reports whether both sets hold the same ids
func (s IDSet) Equal(other IDSet) bool {
	if s.Len() != other.Len() {
		return false
	}
	for id := range s.ids {
		if !other.Contains(id) {
			return false
		}
	}
	return true
}

// Slice returns the ids sorted by their string form.
func (s IDSet) Slice() []uuid.UUID {
	out := make([]uuid.UUID, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].String() < out[j].String()
	})
	return out
}
