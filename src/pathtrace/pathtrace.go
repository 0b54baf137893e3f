// Package pathtrace walks strands from their 5' breakpoints to their 3' ends.
//
// Between two bases on different helices the walk yields a synthetic step placed halfway
// between them, for layout only.
package pathtrace

import (
	"fmt"

	"github.com/will-rowe/origami/src/lattice"
	"github.com/will-rowe/origami/src/modelerr"
	"github.com/will-rowe/origami/src/part"
	"github.com/will-rowe/origami/src/vhelix"
)

// Step is one entry of a traced path
type Step struct {
	vhelix.Address
	// Synthetic marks a crossover midpoint; Address is then the base the walk is crossing to
	Synthetic bool
	Pos       lattice.Vec3
}

// FindBreakpoints returns every 5' end on strand st, in helix visiting order then index
func FindBreakpoints(p *part.Part, st vhelix.StrandType) []vhelix.Address {
	var out []vhelix.Address
	for _, id := range p.IDs() {
		vh, _ := p.VirtualHelix(id)
		for i := 0; i < vh.NumBases(); i++ {
			if vh.Is5PrimeEnd(st, i) {
				out = append(out, vhelix.Address{Helix: id, Strand: st, Index: i})
			}
		}
	}
	return out
}

// Walker lazily follows Next links from a start base.
// Each Walker holds its own position; start a new one to walk again.
type Walker struct {
	p       *part.Part
	start   vhelix.Address
	cur     vhelix.Address
	curPos  lattice.Vec3
	pending *Step
	step    Step
	taken   int
	limit   int
	done    bool
	err     error
}

// Walk returns a Walker positioned before start
func Walk(p *part.Part, start vhelix.Address) *Walker {
	return &Walker{
		p:     p,
		start: start,
		limit: p.MaxNumBases() * p.Len(),
	}
}

// position of the base at a
func (w *Walker) position(a vhelix.Address) (lattice.Vec3, error) {
	vh, err := w.p.VirtualHelix(a.Helix)
	if err != nil {
		return lattice.Vec3{}, err
	}
	if !vh.InRange(a.Index) {
		return lattice.Vec3{}, modelerr.At("tracePath", modelerr.ErrDanglingLink, a.Helix, a.Strand.String(), a.Index, "walk left the helix")
	}
	return w.p.Lattice().BasePosition(vh.Coord(), a.Index, vh.IsEvenParity()), nil
}

func (w *Walker) fail(err error) bool {
	w.err = err
	w.done = true
	return false
}

// Next advances the walk, returning false once the 3' end is passed or on error
func (w *Walker) Next() bool {
	if w.done {
		return false
	}
	if w.pending != nil {
		w.step = *w.pending
		w.pending = nil
		return true
	}
	if w.taken == 0 {
		pos, err := w.position(w.start)
		if err != nil {
			return w.fail(err)
		}
		w.cur, w.curPos, w.taken = w.start, pos, 1
		w.step = Step{Address: w.start, Pos: pos}
		return true
	}
	b, err := w.p.Base(w.cur)
	if err != nil {
		return w.fail(err)
	}
	if b.Next.IsNone() {
		w.done = true
		return false
	}
	next := vhelix.At(w.cur.Strand, b.Next)
	if next == w.start {
		return w.fail(modelerr.At("tracePath", modelerr.ErrCycleDetected, w.start.Helix, w.start.Strand.String(), w.start.Index, "strand is circular"))
	}
	w.taken++
	if w.taken > w.limit {
		return w.fail(modelerr.At("tracePath", modelerr.ErrCycleDetected, w.start.Helix, w.start.Strand.String(), w.start.Index, fmt.Sprintf("no 3' end after %d steps", w.limit)))
	}
	pos, err := w.position(next)
	if err != nil {
		return w.fail(err)
	}
	landed := Step{Address: next, Pos: pos}
	crossing := next.Helix != w.cur.Helix
	prevPos := w.curPos
	w.cur, w.curPos = next, pos
	if crossing {
		w.pending = &landed
		w.step = Step{Address: next, Synthetic: true, Pos: prevPos.Midpoint(pos)}
		return true
	}
	w.step = landed
	return true
}

// Step is the entry reached by the last successful Next
func (w *Walker) Step() Step { return w.step }

// Err is the error that stopped the walk, if any
func (w *Walker) Err() error { return w.err }

// Trace walks from start to the 3' end and returns every step
func Trace(p *part.Part, start vhelix.Address) ([]Step, error) {
	w := Walk(p, start)
	var steps []Step
	for w.Next() {
		steps = append(steps, w.Step())
	}
	if err := w.Err(); err != nil {
		return nil, err
	}
	return steps, nil
}

// Bases returns the real (non-synthetic) addresses of a trace
func Bases(steps []Step) []vhelix.Address {
	out := make([]vhelix.Address, 0, len(steps))
	for _, s := range steps {
		if !s.Synthetic {
			out = append(out, s.Address)
		}
	}
	return out
}
