package pathtrace

import (
	"errors"
	"testing"

	"github.com/will-rowe/origami/src/lattice"
	"github.com/will-rowe/origami/src/modelerr"
	"github.com/will-rowe/origami/src/part"
	"github.com/will-rowe/origami/src/vhelix"
)

func crossedPart(t *testing.T) *part.Part {
	t.Helper()
	p := part.New("trace", lattice.Honeycomb)
	for id, c := range []lattice.Coord{{Row: 0, Col: 0}, {Row: 0, Col: 1}} {
		vh, _ := vhelix.New(42, id)
		if _, err := p.AddVirtualHelixAt(c, vh, id); err != nil {
			t.Fatal(err)
		}
	}
	if err := p.InstallXover(vhelix.Scaffold, 0, 41, 1, 0); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestFindBreakpoints(t *testing.T) {
	p := crossedPart(t)
	scaf := FindBreakpoints(p, vhelix.Scaffold)
	if len(scaf) != 1 || scaf[0] != (vhelix.Address{Helix: 0, Strand: vhelix.Scaffold, Index: 0}) {
		t.Fatalf("unexpected scaffold breakpoints: %v", scaf)
	}
	stap := FindBreakpoints(p, vhelix.Staple)
	if len(stap) != 2 || stap[0].Helix != 0 || stap[1].Helix != 1 {
		t.Fatalf("unexpected staple breakpoints: %v", stap)
	}
}

func TestTrace(t *testing.T) {
	p := crossedPart(t)
	start := FindBreakpoints(p, vhelix.Scaffold)[0]
	steps, err := Trace(p, start)
	if err != nil {
		t.Fatal(err)
	}
	if len(steps) != 85 {
		t.Fatalf("expected 84 bases plus one midpoint, got %d steps", len(steps))
	}
	synthetic := 0
	for i, s := range steps {
		if !s.Synthetic {
			continue
		}
		synthetic++
		if i != 42 {
			t.Fatalf("midpoint at step %d, expected 42", i)
		}
		from, to := steps[i-1], steps[i+1]
		if from.Helix != 0 || to.Helix != 1 {
			t.Fatalf("midpoint does not sit between the helices: %+v %+v", from, to)
		}
		if s.Pos != from.Pos.Midpoint(to.Pos) {
			t.Fatalf("midpoint position is wrong: %+v", s.Pos)
		}
	}
	if synthetic != 1 {
		t.Fatalf("expected one synthetic step, got %d", synthetic)
	}
	bases := Bases(steps)
	if len(bases) != 84 || bases[83] != (vhelix.Address{Helix: 1, Strand: vhelix.Scaffold, Index: 41}) {
		t.Fatalf("trace did not end at the 3' end of helix 1: %v", bases[len(bases)-1])
	}
}

func TestWalkerIsRestartable(t *testing.T) {
	p := crossedPart(t)
	start := vhelix.Address{Helix: 0, Strand: vhelix.Staple, Index: 0}
	count := func() int {
		n := 0
		w := Walk(p, start)
		for w.Next() {
			n++
		}
		if w.Err() != nil {
			t.Fatal(w.Err())
		}
		return n
	}
	if a, b := count(), count(); a != 42 || a != b {
		t.Fatalf("walks disagree: %d and %d", a, b)
	}
}

func TestCircularStrand(t *testing.T) {
	p := crossedPart(t)
	if err := p.InstallXover(vhelix.Scaffold, 1, 41, 0, 0); err != nil {
		t.Fatal(err)
	}
	if bp := FindBreakpoints(p, vhelix.Scaffold); len(bp) != 0 {
		t.Fatalf("circular scaffold has no breakpoints, got %v", bp)
	}
	_, err := Trace(p, vhelix.Address{Helix: 0, Strand: vhelix.Scaffold, Index: 0})
	if !errors.Is(err, modelerr.ErrCycleDetected) {
		t.Fatalf("expected ErrCycleDetected, got %v", err)
	}
}

func TestCorruptLoopIsBounded(t *testing.T) {
	p := part.New("corrupt", lattice.Honeycomb)
	vh, _ := vhelix.New(42, 0)
	if _, err := p.AddVirtualHelixAt(lattice.Coord{}, vh, 0); err != nil {
		t.Fatal(err)
	}
	// a one-way link back upstream that never returns to the start
	_ = vh.SetLink(vhelix.Staple, 5, vhelix.Next, vhelix.Ref{Helix: 0, Index: 3})
	_, err := Trace(p, vhelix.Address{Helix: 0, Strand: vhelix.Staple, Index: 0})
	if !errors.Is(err, modelerr.ErrCycleDetected) {
		t.Fatalf("expected ErrCycleDetected, got %v", err)
	}
}
