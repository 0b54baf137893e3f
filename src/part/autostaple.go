package part

import (
	"sort"

	"github.com/will-rowe/origami/src/lattice"
	"github.com/will-rowe/origami/src/vhelix"
)

// Crossover is a base where a helix lines up with a neighbour closely enough to cross to it
type Crossover struct {
	Neighbor int
	Index    int
	Strand   vhelix.StrandType
	// Low marks the left base of a crossover pair
	Low bool
}

// sites lists every lattice crossover site between vh and its neighbours, in p0, p1, p2 order.
// Sites stop at the end of the shorter helix.
func (p *Part) sites(vh *vhelix.VirtualHelix) []Crossover {
	var out []Crossover
	step := p.lattice.Step()
	for _, d := range lattice.Directions {
		nid, ok := p.coords[lattice.Neighbor(vh.Coord(), d)]
		if !ok {
			continue
		}
		numBases := vh.NumBases()
		if n := p.helices[nid].NumBases(); n < numBases {
			numBases = n
		}
		for _, st := range vhelix.StrandTypes {
			for _, low := range [2]bool{true, false} {
				offsets := p.lattice.CrossoverOffsets(st == vhelix.Scaffold, d, low)
				for base := 0; base < numBases; base += step {
					for _, off := range offsets {
						if i := base + off; i < numBases {
							out = append(out, Crossover{Neighbor: nid, Index: i, Strand: st, Low: low})
						}
					}
				}
			}
		}
	}
	return out
}

// PotentialCrossovers lists the sites where helix id lines up with a neighbour
// and neither base already has a crossover
func (p *Part) PotentialCrossovers(id int) ([]Crossover, error) {
	vh, err := p.helix("potentialCrossovers", id)
	if err != nil {
		return nil, err
	}
	var out []Crossover
	for _, c := range p.sites(vh) {
		if vh.HasCrossoverAt(c.Strand, c.Index) || p.helices[c.Neighbor].HasCrossoverAt(c.Strand, c.Index) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// scaffoldRuns returns the inclusive runs of consecutive bases the scaffold covers
func scaffoldRuns(vh *vhelix.VirtualHelix) [][2]int {
	var runs [][2]int
	for i := 0; i < vh.NumBases(); i++ {
		if !vh.HasStrandAt(vhelix.Scaffold, i) {
			continue
		}
		if n := len(runs); n > 0 && runs[n-1][1] == i-1 {
			runs[n-1][1] = i
			continue
		}
		runs = append(runs, [2]int{i, i})
	}
	return runs
}

// spans reports whether one of runs covers the bases either side of the pair (i, i+1)
func spans(runs [][2]int, i int) bool {
	for _, r := range runs {
		if r[0] <= i && i <= r[1] {
			return r[0] < i && r[1] > i+1
		}
	}
	return false
}

// stageStaple links the staple of vh over [lo, hi] in its 5' to 3' direction
func stageStaple(tx *txn, vh *vhelix.VirtualHelix, lo, hi int) error {
	id := vh.ID()
	for i := lo; i < hi; i++ {
		up, down := vhelix.Ref{Helix: id, Index: i}, vhelix.Ref{Helix: id, Index: i + 1}
		if !vh.Drawn5To3(vhelix.Staple) {
			up, down = down, up
		}
		if err := tx.link(vhelix.Staple, up, down); err != nil {
			return err
		}
	}
	return nil
}

// AutoStaple replaces every staple with a set that pairs the scaffold.
// A staple is laid over each run of scaffold bases and cut at every staple
// crossover site both helices span; the cut ends are then joined across to the
// neighbour. Staple colours are cleared, decorations are kept. The whole edit
// commits as one, so listeners see a single event.
func (p *Part) AutoStaple() error {
	const op = "autoStaple"
	tx := p.begin(op)
	cleared := vhelix.Base{Prev: vhelix.NoRef, Next: vhelix.NoRef, Color: vhelix.NoColor}
	for _, id := range p.order {
		for i, b := range p.helices[id].Strand(vhelix.Staple) {
			if b != cleared {
				tx.put(vhelix.Address{Helix: id, Strand: vhelix.Staple, Index: i}, cleared)
			}
		}
	}

	runs := make(map[int][][2]int, len(p.order))
	ends := make(map[int][]int, len(p.order))
	for _, id := range p.order {
		runs[id] = scaffoldRuns(p.helices[id])
		for _, r := range runs[id] {
			ends[id] = append(ends[id], r[0], r[1])
		}
	}

	// each neighbouring pair is one helix of each parity, so cutting from the
	// helices whose staple runs with the index visits every pair once
	for _, id := range p.order {
		vh := p.helices[id]
		if !vh.Drawn5To3(vhelix.Staple) {
			continue
		}
		for _, c := range p.sites(vh) {
			if c.Strand != vhelix.Staple || !c.Low {
				continue
			}
			if spans(runs[id], c.Index) && spans(runs[c.Neighbor], c.Index) {
				ends[id] = append(ends[id], c.Index, c.Index+1)
				ends[c.Neighbor] = append(ends[c.Neighbor], c.Index, c.Index+1)
			}
		}
	}
	for _, id := range p.order {
		e := ends[id]
		sort.Ints(e)
		for i := 0; i+1 < len(e); i += 2 {
			if err := stageStaple(tx, p.helices[id], e[i], e[i+1]); err != nil {
				return err
			}
		}
	}

	for _, id := range p.order {
		vh := p.helices[id]
		fiveToThree := vh.Drawn5To3(vhelix.Staple)
		for _, c := range p.sites(vh) {
			if c.Strand != vhelix.Staple || c.Low != fiveToThree {
				continue
			}
			from := vhelix.Address{Helix: id, Strand: vhelix.Staple, Index: c.Index}
			to := vhelix.Address{Helix: c.Neighbor, Strand: vhelix.Staple, Index: c.Index}
			fb, err := tx.base(from)
			if err != nil {
				return err
			}
			tb, err := tx.base(to)
			if err != nil {
				return err
			}
			// only a 3' end crosses, and only to a 5' end
			if !fb.HasStrand() || !tb.HasStrand() || !fb.Next.IsNone() || !tb.Prev.IsNone() {
				continue
			}
			if err := tx.link(vhelix.Staple, from.Ref(), to.Ref()); err != nil {
				return err
			}
		}
	}
	return tx.commitAndNotify(OpAutoStaple)
}
