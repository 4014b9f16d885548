// Package selection tracks which documents of an inventory take part in the
// next question.
package selection

import (
	"sort"
	"strconv"
	"strings"
)

// Set is a subset of a known universe of document ids. Ids outside the
// universe can never be selected. A Set is not safe for concurrent use; the
// owning session serialises access.
type Set struct {
	universe map[string]struct{}
	selected map[string]struct{}
}

// New builds a set over ids with every id selected.
func New(ids []string) *Set {
	s := &Set{
		universe: make(map[string]struct{}, len(ids)),
		selected: make(map[string]struct{}, len(ids)),
	}
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		s.universe[id] = struct{}{}
		s.selected[id] = struct{}{}
	}
	return s
}

// Toggle flips id and reports whether it is selected afterwards. Unknown ids
// are ignored.
func (s *Set) Toggle(id string) bool {
	if _, ok := s.universe[id]; !ok {
		return false
	}
	if _, ok := s.selected[id]; ok {
		delete(s.selected, id)
		return false
	}
	s.selected[id] = struct{}{}
	return true
}

func (s *Set) Select(id string) {
	if _, ok := s.universe[id]; ok {
		s.selected[id] = struct{}{}
	}
}

func (s *Set) Deselect(id string) {
	delete(s.selected, id)
}

// Remove drops id from both the universe and the selection.
func (s *Set) Remove(id string) {
	delete(s.universe, id)
	delete(s.selected, id)
}

func (s *Set) Contains(id string) bool {
	_, ok := s.selected[id]
	return ok
}

func (s *Set) Known(id string) bool {
	_, ok := s.universe[id]
	return ok
}

func (s *Set) Len() int {
	return len(s.selected)
}

// IDs returns the selected ids in a stable order: numeric ids ascending,
// then the rest lexically.
func (s *Set) IDs() []string {
	ids := make([]string, 0, len(s.selected))
	for id := range s.selected {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, errA := strconv.ParseInt(ids[i], 10, 64)
		b, errB := strconv.ParseInt(ids[j], 10, 64)
		switch {
		case errA == nil && errB == nil:
			return a < b
		case errA == nil:
			return true
		case errB == nil:
			return false
		}
		return ids[i] < ids[j]
	})
	return ids
}
