package vhelix

import (
	"errors"
	"testing"

	"github.com/will-rowe/origami/src/lattice"
	"github.com/will-rowe/origami/src/modelerr"
)

// checkLengths asserts both strand arrays match numBases
func checkLengths(t *testing.T, vh *VirtualHelix) {
	t.Helper()
	for _, st := range StrandTypes {
		if len(vh.strands[st]) != vh.NumBases() {
			t.Fatalf("%v array has %d bases, helix reports %d", st, len(vh.strands[st]), vh.NumBases())
		}
	}
}

func TestNew(t *testing.T) {
	if _, err := New(0, 0); !errors.Is(err, modelerr.ErrInvalidSize) {
		t.Fatalf("expected ErrInvalidSize for empty helix, got %v", err)
	}
	if _, err := New(21, -2); !errors.Is(err, modelerr.ErrInvalidSize) {
		t.Fatalf("expected ErrInvalidSize for negative id, got %v", err)
	}
	vh, err := New(42, 0)
	if err != nil {
		t.Fatal(err)
	}
	checkLengths(t, vh)
	for _, st := range StrandTypes {
		if !vh.HasEndAt(st, 0) || !vh.HasEndAt(st, 41) {
			t.Fatalf("fresh %v strand should end at both helix ends", st)
		}
		if !vh.HasStrandAt(st, 20) || vh.HasEndAt(st, 20) {
			t.Fatalf("fresh %v strand should pass through the middle", st)
		}
		b, _ := vh.Base(st, 20)
		if b.Prev != (Ref{0, 19}) || b.Next != (Ref{0, 21}) || b.Color != NoColor {
			t.Fatalf("unexpected middle base: %+v", b)
		}
	}
	if !vh.Is5PrimeEnd(Scaffold, 0) || !vh.Is3PrimeEnd(Scaffold, 41) {
		t.Fatal("scaffold should run 5' at index 0 to 3' at the last index")
	}
	if vh.HasCrossoverAt(Scaffold, 41) || vh.IsEmpty() {
		t.Fatal("fresh helix has no crossovers and is not empty")
	}
}

func TestParity(t *testing.T) {
	even, _ := New(21, 4)
	odd, _ := New(21, 7)
	if !even.Drawn5To3(Scaffold) || even.Drawn5To3(Staple) {
		t.Fatal("even helix scaffold runs with the index, staple against it")
	}
	if odd.Drawn5To3(Scaffold) || !odd.Drawn5To3(Staple) {
		t.Fatal("odd helix scaffold runs against the index, staple with it")
	}
	if even.Downstream(Scaffold, 3) != 4 || odd.Downstream(Scaffold, 3) != 2 {
		t.Fatal("downstream index does not follow parity")
	}
}

func TestSetLink(t *testing.T) {
	vh, _ := New(21, 0)
	if err := vh.SetLink(Staple, 21, Next, Ref{1, 0}); !errors.Is(err, modelerr.ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
	if err := vh.SetLink(Staple, 20, Next, Ref{1, 0}); err != nil {
		t.Fatal(err)
	}
	if !vh.HasCrossoverAt(Staple, 20) || vh.HasEndAt(Staple, 20) {
		t.Fatal("linked base should be a crossover and no longer a terminus")
	}
	if err := vh.ClearLink(Staple, 20, Next); err != nil {
		t.Fatal(err)
	}
	if vh.HasCrossoverAt(Staple, 20) {
		t.Fatal("crossover was not cleared")
	}
}

func TestResizeTail(t *testing.T) {
	vh, _ := New(42, 0)
	_ = vh.Decorations(Scaffold).AddInsertion(30, 2)
	_ = vh.Decorations(Scaffold).AddInsertion(5, -1)

	// the strand runs across index 20/21, so cutting there orphans links
	if err := vh.Resize(21); !errors.Is(err, modelerr.ErrWouldOrphanLinks) {
		t.Fatalf("expected ErrWouldOrphanLinks, got %v", err)
	}
	if vh.NumBases() != 42 {
		t.Fatal("failed resize changed the helix size")
	}
	for _, st := range StrandTypes {
		_ = vh.ClearLink(st, 20, Next)
		_ = vh.ClearLink(st, 21, Prev)
	}
	if err := vh.Resize(21); err != nil {
		t.Fatal(err)
	}
	checkLengths(t, vh)
	if _, ok := vh.Decorations(Scaffold).Insertion(30); ok {
		t.Fatal("decoration past the new end should be dropped")
	}
	if err := vh.Resize(63); err != nil {
		t.Fatal(err)
	}
	checkLengths(t, vh)
	if vh.HasStrandAt(Scaffold, 40) {
		t.Fatal("grown bases should be empty")
	}
}

func TestResizeFront(t *testing.T) {
	vh, _ := New(21, 0)
	_ = vh.SetLink(Scaffold, 20, Next, Ref{1, 20})
	_ = vh.Decorations(Staple).SetModifier(3, "biotin", "")
	if err := vh.ResizeFront(21); err != nil {
		t.Fatal(err)
	}
	checkLengths(t, vh)
	if vh.HasStrandAt(Scaffold, 0) {
		t.Fatal("grown front bases should be empty")
	}
	b, _ := vh.Base(Scaffold, 25)
	if b.Prev != (Ref{0, 24}) || b.Next != (Ref{0, 26}) {
		t.Fatalf("own links were not shifted: %+v", b)
	}
	b, _ = vh.Base(Scaffold, 41)
	if b.Next != (Ref{1, 20}) {
		t.Fatalf("links to other helices must not be shifted: %+v", b)
	}
	if _, ok := vh.Decorations(Staple).Modifier(24); !ok {
		t.Fatal("modifier was not shifted with its base")
	}
	if err := vh.ResizeFront(-21); err != nil {
		t.Fatalf("removing the empty front block should succeed: %v", err)
	}
	if err := vh.ResizeFront(-1); !errors.Is(err, modelerr.ErrWouldOrphanLinks) {
		t.Fatalf("expected ErrWouldOrphanLinks, got %v", err)
	}
}

func TestAssignAndRemap(t *testing.T) {
	vh, _ := New(21, 0)
	if err := vh.Assign(3, lattice.Coord{Row: 0, Col: 1}); !errors.Is(err, modelerr.ErrParityMismatch) {
		t.Fatalf("expected ErrParityMismatch, got %v", err)
	}
	if err := vh.Assign(2, lattice.Coord{Row: 1, Col: 1}); err != nil {
		t.Fatal(err)
	}
	b, _ := vh.Base(Staple, 5)
	if vh.ID() != 2 || b.Next.Helix != 2 {
		t.Fatal("own links did not follow the assigned id")
	}
	if err := vh.Assign(4, lattice.Coord{}); !errors.Is(err, modelerr.ErrHelixOwned) {
		t.Fatalf("expected ErrHelixOwned, got %v", err)
	}
	_ = vh.SetLink(Scaffold, 20, Next, Ref{5, 20})
	if err := vh.Remap(map[int]int{2: 0}); !errors.Is(err, modelerr.ErrRenumberConflict) {
		t.Fatalf("expected ErrRenumberConflict for unmapped helix, got %v", err)
	}
	if vh.ID() != 2 {
		t.Fatal("failed remap changed the id")
	}
	if err := vh.Remap(map[int]int{2: 0, 5: 1}); err != nil {
		t.Fatal(err)
	}
	b, _ = vh.Base(Scaffold, 20)
	if vh.ID() != 0 || b.Next != (Ref{1, 20}) || b.Prev != (Ref{0, 19}) {
		t.Fatalf("remap was not applied: id %d base %+v", vh.ID(), b)
	}
}

func TestClone(t *testing.T) {
	vh, _ := New(21, 1)
	_ = vh.SetColor(Staple, 4, 0xff0000)
	c := vh.Clone()
	_ = vh.ClearLink(Staple, 4, Next)
	_ = vh.SetColor(Staple, 4, NoColor)
	if !c.HasStrandAt(Staple, 4) || c.Color(Staple, 4) != 0xff0000 {
		t.Fatal("clone shares state with the original")
	}
}
