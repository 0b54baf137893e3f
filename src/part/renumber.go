package part

import (
	"fmt"

	"github.com/will-rowe/origami/src/lattice"
	"github.com/will-rowe/origami/src/modelerr"
	"github.com/will-rowe/origami/src/vhelix"
)

// renumberTable maps every current id to its new id: evens to 0, 2, 4... and odds to 1, 3, 5...
// in visiting order
func (p *Part) renumberTable() map[int]int {
	table := make(map[int]int, len(p.order))
	nextEven, nextOdd := 0, 1
	for _, id := range p.order {
		if p.helices[id].IsEvenParity() {
			table[id] = nextEven
			nextEven += 2
		} else {
			table[id] = nextOdd
			nextOdd += 2
		}
	}
	return table
}

// RenumberHelices packs the helix ids while keeping their parity and visiting order.
// The whole table is built and checked before any helix is touched.
func (p *Part) RenumberHelices() error {
	const op = "renumberHelices"
	table := p.renumberTable()
	identity := true
	for from, to := range table {
		if from != to {
			identity = false
			break
		}
	}
	if identity {
		return nil
	}
	for _, id := range p.order {
		vh := p.helices[id]
		for _, st := range vhelix.StrandTypes {
			for i, b := range vh.Strand(st) {
				for _, ref := range [2]vhelix.Ref{b.Prev, b.Next} {
					if ref.IsNone() {
						continue
					}
					if _, ok := table[ref.Helix]; !ok {
						return modelerr.At(op, modelerr.ErrRenumberConflict, id, st.String(), i, fmt.Sprintf("link to missing helix %d", ref.Helix))
					}
				}
			}
		}
	}

	// the table is complete, so no Remap below can fail
	helices := make(map[int]*vhelix.VirtualHelix, len(p.helices))
	coords := make(map[lattice.Coord]int, len(p.coords))
	order := make([]int, len(p.order))
	for i, id := range p.order {
		vh := p.helices[id]
		if err := vh.Remap(table); err != nil {
			return err
		}
		helices[vh.ID()] = vh
		coords[vh.Coord()] = vh.ID()
		order[i] = vh.ID()
	}
	p.helices, p.coords, p.order = helices, coords, order
	p.notify(helixEvent(OpRenumber, p.IDs()...))
	return nil
}
