// Package decor holds the per-base decorations of a strand: insertions, skips and modifiers.
// Decorations are keyed by base index and never take part in strand connectivity.
package decor

import (
	"fmt"
	"sort"
)

// Insertion adds Length extra bases after the base at Index.
// A negative Length is a skip: the base is dropped from the logical strand.
type Insertion struct {
	Index  int
	Length int
}

// IsSkip reports whether the insertion removes its base
func (ins Insertion) IsSkip() bool {
	return ins.Length < 0
}

// Modifier swaps the base at Index for another sequence without changing the strand length
type Modifier struct {
	Index    int
	Name     string
	Sequence string
}

// Reader is the read side of a Set
type Reader interface {
	Len() int
	Insertion(index int) (Insertion, bool)
	Insertions() []Insertion
	Modifier(index int) (Modifier, bool)
	Modifiers() []Modifier
}

type readOnly struct{ Reader }

// ReadOnly returns a Reader of s that cannot be asserted back to a *Set
func (s *Set) ReadOnly() Reader {
	return readOnly{s}
}

// Set holds the decorations of one strand of one helix
// Note: a Set is not safe for concurrent use
type Set struct {
	insertions map[int]Insertion
	modifiers  map[int]Modifier
}

// NewSet returns an empty Set
func NewSet() *Set {
	return &Set{
		insertions: make(map[int]Insertion),
		modifiers:  make(map[int]Modifier),
	}
}

// Len is the total number of decorations held
func (s *Set) Len() int {
	return len(s.insertions) + len(s.modifiers)
}

// AddInsertion installs an insertion (or skip) at index, replacing any existing one
func (s *Set) AddInsertion(index, length int) error {
	if index < 0 {
		return fmt.Errorf("insertion index must be non-negative: %d", index)
	}
	if length == 0 {
		return fmt.Errorf("insertion at %d has zero length", index)
	}
	s.insertions[index] = Insertion{Index: index, Length: length}
	return nil
}

// RemoveInsertion drops the insertion at index, reporting whether there was one
func (s *Set) RemoveInsertion(index int) bool {
	if _, ok := s.insertions[index]; !ok {
		return false
	}
	delete(s.insertions, index)
	return true
}

// Insertion returns the insertion at index
func (s *Set) Insertion(index int) (Insertion, bool) {
	ins, ok := s.insertions[index]
	return ins, ok
}

// Insertions returns every insertion ordered by index
func (s *Set) Insertions() []Insertion {
	out := make([]Insertion, 0, len(s.insertions))
	for _, ins := range s.insertions {
		out = append(out, ins)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// SetModifier installs a modifier at index, replacing any existing one
func (s *Set) SetModifier(index int, name, sequence string) error {
	if index < 0 {
		return fmt.Errorf("modifier index must be non-negative: %d", index)
	}
	if name == "" {
		return fmt.Errorf("modifier at %d has no name", index)
	}
	s.modifiers[index] = Modifier{Index: index, Name: name, Sequence: sequence}
	return nil
}

// RemoveModifier drops the modifier at index, reporting whether there was one
func (s *Set) RemoveModifier(index int) bool {
	if _, ok := s.modifiers[index]; !ok {
		return false
	}
	delete(s.modifiers, index)
	return true
}

// Modifier returns the modifier at index
func (s *Set) Modifier(index int) (Modifier, bool) {
	m, ok := s.modifiers[index]
	return m, ok
}

// Modifiers returns every modifier ordered by index
func (s *Set) Modifiers() []Modifier {
	out := make([]Modifier, 0, len(s.modifiers))
	for _, m := range s.modifiers {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// Shift moves every decoration by delta. Lengths are left alone.
// Decorations pushed below index 0 are dropped and counted.
func (s *Set) Shift(delta int) int {
	if delta == 0 {
		return 0
	}
	dropped := 0
	insertions := make(map[int]Insertion, len(s.insertions))
	for idx, ins := range s.insertions {
		if idx+delta < 0 {
			dropped++
			continue
		}
		ins.Index = idx + delta
		insertions[ins.Index] = ins
	}
	modifiers := make(map[int]Modifier, len(s.modifiers))
	for idx, m := range s.modifiers {
		if idx+delta < 0 {
			dropped++
			continue
		}
		m.Index = idx + delta
		modifiers[m.Index] = m
	}
	s.insertions, s.modifiers = insertions, modifiers
	return dropped
}

// Truncate drops every decoration at or beyond size and returns how many went
func (s *Set) Truncate(size int) int {
	dropped := 0
	for idx := range s.insertions {
		if idx >= size {
			delete(s.insertions, idx)
			dropped++
		}
	}
	for idx := range s.modifiers {
		if idx >= size {
			delete(s.modifiers, idx)
			dropped++
		}
	}
	return dropped
}

// Clone returns an independent copy of the set
func (s *Set) Clone() *Set {
	c := NewSet()
	for idx, ins := range s.insertions {
		c.insertions[idx] = ins
	}
	for idx, m := range s.modifiers {
		c.modifiers[idx] = m
	}
	return c
}
