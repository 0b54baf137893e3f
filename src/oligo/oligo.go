// Package oligo collects whole strands (oligos) from a Part and exports them as sequences.
package oligo

import (
	"fmt"

	"github.com/will-rowe/origami/src/modelerr"
	"github.com/will-rowe/origami/src/part"
	"github.com/will-rowe/origami/src/pathtrace"
	"github.com/will-rowe/origami/src/vhelix"
)

// Oligo is one continuous strand, bases in 5' to 3' order
type Oligo struct {
	Strand   vhelix.StrandType
	Bases    []vhelix.Address
	Circular bool
	// Color is the colour of the first base, or vhelix.NoColor
	Color int
}

// Start is the 5' base
func (o *Oligo) Start() vhelix.Address { return o.Bases[0] }

// End is the 3' base
func (o *Oligo) End() vhelix.Address { return o.Bases[len(o.Bases)-1] }

// Name labels the oligo by its 5' base, e.g. 3[17]
func (o *Oligo) Name() string {
	return fmt.Sprintf("%d[%d]", o.Start().Helix, o.Start().Index)
}

// Segment is a run of an oligo on a single helix
type Segment struct {
	Helix int
	// From is the 5' index of the run and To the 3' index
	From int
	To   int
}

// Len is the number of bases in the run
func (s Segment) Len() int {
	if s.To < s.From {
		return s.From - s.To + 1
	}
	return s.To - s.From + 1
}

// Segments splits the oligo wherever it changes helix or jumps within a helix
func (o *Oligo) Segments() []Segment {
	var segs []Segment
	for i, a := range o.Bases {
		if i > 0 {
			last := &segs[len(segs)-1]
			if a.Helix == last.Helix && (a.Index == last.To+1 || a.Index == last.To-1) {
				last.To = a.Index
				continue
			}
		}
		segs = append(segs, Segment{Helix: a.Helix, From: a.Index, To: a.Index})
	}
	return segs
}

// Count is the number of nucleotides at a helix position once insertions and skips of both strands are applied
func Count(p *part.Part, helix, index int) int {
	vh, err := p.VirtualHelix(helix)
	if err != nil {
		return 0
	}
	n := 1
	for _, st := range vhelix.StrandTypes {
		if ins, ok := vh.Decorated(st).Insertion(index); ok {
			n += ins.Length
		}
	}
	if n < 0 {
		return 0
	}
	return n
}

// Length is the nucleotide length of the oligo
func (o *Oligo) Length(p *part.Part) int {
	n := 0
	for _, a := range o.Bases {
		n += Count(p, a.Helix, a.Index)
	}
	return n
}

// Collect returns every oligo on strand st: linear ones in breakpoint order, then circular ones
func Collect(p *part.Part, st vhelix.StrandType) ([]*Oligo, error) {
	visited := make(map[vhelix.Address]bool)
	var oligos []*Oligo
	for _, bp := range pathtrace.FindBreakpoints(p, st) {
		steps, err := pathtrace.Trace(p, bp)
		if err != nil {
			return nil, err
		}
		o := newOligo(p, st, pathtrace.Bases(steps), false)
		for _, a := range o.Bases {
			visited[a] = true
		}
		oligos = append(oligos, o)
	}
	limit := p.MaxNumBases() * p.Len()
	for _, id := range p.IDs() {
		vh, _ := p.VirtualHelix(id)
		for i := 0; i < vh.NumBases(); i++ {
			start := vhelix.Address{Helix: id, Strand: st, Index: i}
			if visited[start] || !vh.HasStrandAt(st, i) {
				continue
			}
			bases, err := loop(p, start, limit)
			if err != nil {
				return nil, err
			}
			for _, a := range bases {
				visited[a] = true
			}
			oligos = append(oligos, newOligo(p, st, bases, true))
		}
	}
	return oligos, nil
}

func newOligo(p *part.Part, st vhelix.StrandType, bases []vhelix.Address, circular bool) *Oligo {
	o := &Oligo{Strand: st, Bases: bases, Circular: circular, Color: vhelix.NoColor}
	if b, err := p.Base(bases[0]); err == nil {
		o.Color = b.Color
	}
	return o
}

// loop follows a strand with no 5' end until it comes back to start
func loop(p *part.Part, start vhelix.Address, limit int) ([]vhelix.Address, error) {
	bases := []vhelix.Address{start}
	cur := start
	for {
		b, err := p.Base(cur)
		if err != nil {
			return nil, err
		}
		if b.Next.IsNone() {
			return nil, modelerr.At("collectOligos", modelerr.ErrDanglingLink, cur.Helix, cur.Strand.String(), cur.Index, "strand has a 3' end but no 5' end")
		}
		next := vhelix.At(cur.Strand, b.Next)
		if next == start {
			return bases, nil
		}
		if len(bases) >= limit {
			return nil, modelerr.At("collectOligos", modelerr.ErrCycleDetected, start.Helix, start.Strand.String(), start.Index, "")
		}
		bases = append(bases, next)
		cur = next
	}
}
