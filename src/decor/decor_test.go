package decor

import "testing"

func TestInsertions(t *testing.T) {
	s := NewSet()
	if err := s.AddInsertion(5, 2); err != nil {
		t.Fatalf("could not add insertion: %v", err)
	}
	if err := s.AddInsertion(1, -1); err != nil {
		t.Fatalf("could not add skip: %v", err)
	}
	if err := s.AddInsertion(3, 0); err == nil {
		t.Fatal("zero length insertion should be rejected")
	}
	got := s.Insertions()
	if len(got) != 2 || got[0].Index != 1 || got[1].Index != 5 {
		t.Fatalf("insertions not ordered by index: %+v", got)
	}
	if !got[0].IsSkip() || got[1].IsSkip() {
		t.Fatalf("skip flag wrong: %+v", got)
	}
	if !s.RemoveInsertion(5) || s.RemoveInsertion(5) {
		t.Fatal("RemoveInsertion should succeed once")
	}
}

func TestShiftKeepsLength(t *testing.T) {
	s := NewSet()
	_ = s.AddInsertion(2, 3)
	_ = s.AddInsertion(10, -1)
	_ = s.SetModifier(4, "biotin", "T")
	if dropped := s.Shift(-3); dropped != 1 {
		t.Fatalf("expected the insertion at 2 to fall off the front, dropped %d", dropped)
	}
	ins, ok := s.Insertion(7)
	if !ok || ins.Length != -1 || ins.Index != 7 {
		t.Fatalf("skip was not shifted correctly: %+v %v", ins, ok)
	}
	if m, ok := s.Modifier(1); !ok || m.Name != "biotin" {
		t.Fatalf("modifier was not shifted: %+v", m)
	}
	if s.Len() != 2 {
		t.Fatalf("wrong number of decorations after shift: %d", s.Len())
	}
}

func TestTruncateAndClone(t *testing.T) {
	s := NewSet()
	_ = s.AddInsertion(3, 1)
	_ = s.AddInsertion(30, 1)
	_ = s.SetModifier(25, "cy3", "")
	c := s.Clone()
	if dropped := s.Truncate(21); dropped != 2 {
		t.Fatalf("expected 2 decorations dropped, got %d", dropped)
	}
	if c.Len() != 3 {
		t.Fatalf("clone was affected by truncate: %d", c.Len())
	}
}
