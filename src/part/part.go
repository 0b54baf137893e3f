// Package part is the strand graph: the helices of a design placed on a lattice, and every edit that links their bases.
//
// All edits are staged, checked for reciprocity and then committed in one pass, so a failed edit leaves
// the Part exactly as it was. Listeners are told about an edit after it is committed.
// A Part is not safe for concurrent use.
package part

import (
	"fmt"

	"github.com/will-rowe/origami/src/lattice"
	"github.com/will-rowe/origami/src/modelerr"
	"github.com/will-rowe/origami/src/vhelix"
)

// AutoID asks AddVirtualHelixAt to pick the lowest free id of the helix's parity
const AutoID = -1

// Part owns a set of virtual helices on a lattice
type Part struct {
	name         string
	lattice      lattice.Type
	helices      map[int]*vhelix.VirtualHelix
	order        []int
	coords       map[lattice.Coord]int
	listeners    []registration
	lastListener ListenerID
}

// New returns an empty Part
func New(name string, lt lattice.Type) *Part {
	return &Part{
		name:    name,
		lattice: lt,
		helices: make(map[int]*vhelix.VirtualHelix),
		coords:  make(map[lattice.Coord]int),
	}
}

// Name of the design
func (p *Part) Name() string { return p.name }

// SetName renames the design
func (p *Part) SetName(name string) { p.name = name }

// Lattice the helices sit on
func (p *Part) Lattice() lattice.Type { return p.lattice }

// Len is the number of helices
func (p *Part) Len() int { return len(p.order) }

// IDs returns the helix ids in visiting order
func (p *Part) IDs() []int {
	ids := make([]int, len(p.order))
	copy(ids, p.order)
	return ids
}

// VirtualHelix returns a read-only view of the helix with the given id.
// Edits go through the Part so they are staged and checked.
func (p *Part) VirtualHelix(id int) (vhelix.View, error) {
	vh, err := p.helix("virtualHelix", id)
	if err != nil {
		return nil, err
	}
	return vh.ReadOnly(), nil
}

func (p *Part) helix(op string, id int) (*vhelix.VirtualHelix, error) {
	vh, ok := p.helices[id]
	if !ok {
		e := modelerr.New(op, modelerr.ErrUnknownHelix, "")
		e.Helix = id
		return nil, e
	}
	return vh, nil
}

// HelixAt returns the helix at coord, if any
func (p *Part) HelixAt(coord lattice.Coord) (vhelix.View, bool) {
	id, ok := p.coords[coord]
	if !ok {
		return nil, false
	}
	return p.helices[id].ReadOnly(), true
}

// MaxNumBases is the length of the longest helix
func (p *Part) MaxNumBases() int {
	longest := 0
	for _, vh := range p.helices {
		if vh.NumBases() > longest {
			longest = vh.NumBases()
		}
	}
	return longest
}

// reserveID returns the lowest unused id with the requested parity
func (p *Part) reserveID(even bool) int {
	id := 1
	if even {
		id = 0
	}
	for {
		if _, used := p.helices[id]; !used {
			return id
		}
		id += 2
	}
}

// AddVirtualHelixAt places vh at coord under requestedID (or AutoID) and returns the id it got
func (p *Part) AddVirtualHelixAt(coord lattice.Coord, vh *vhelix.VirtualHelix, requestedID int) (int, error) {
	const op = "addVirtualHelix"
	if vh.Owned() {
		return 0, modelerr.New(op, modelerr.ErrHelixOwned, fmt.Sprintf("helix %d", vh.ID()))
	}
	if other, taken := p.coords[coord]; taken {
		return 0, modelerr.New(op, modelerr.ErrCoordinateOccupied, fmt.Sprintf("%v holds helix %d", coord, other))
	}
	id := requestedID
	switch {
	case requestedID == AutoID:
		id = p.reserveID(vh.IsEvenParity())
	case requestedID < 0:
		return 0, modelerr.New(op, modelerr.ErrInvalidSize, fmt.Sprintf("helix id must be non-negative, got %d", requestedID))
	default:
		if _, used := p.helices[requestedID]; used {
			e := modelerr.New(op, modelerr.ErrDuplicateID, "")
			e.Helix = requestedID
			return 0, e
		}
	}
	if err := vh.Assign(id, coord); err != nil {
		return 0, err
	}
	p.helices[id] = vh
	p.order = append(p.order, id)
	p.coords[coord] = id
	p.PairNeighbors()
	p.notify(helixEvent(OpAddHelix, id))
	return id, nil
}

// CreateVirtualHelix makes a fresh helix at coord; the coordinate parity picks the id parity
func (p *Part) CreateVirtualHelix(coord lattice.Coord, numBases int) (vhelix.View, error) {
	provisional := 1
	if coord.EvenParity() {
		provisional = 0
	}
	vh, err := vhelix.New(numBases, provisional)
	if err != nil {
		return nil, err
	}
	if _, err := p.AddVirtualHelixAt(coord, vh, AutoID); err != nil {
		return nil, err
	}
	return vh.ReadOnly(), nil
}

// RemoveVirtualHelix takes a helix out of the Part, first cutting every link other helices hold to it
func (p *Part) RemoveVirtualHelix(id int) error {
	vh, err := p.helix("removeVirtualHelix", id)
	if err != nil {
		return err
	}
	tx := p.begin("removeVirtualHelix")
	for _, otherID := range p.order {
		if otherID == id {
			continue
		}
		other := p.helices[otherID]
		for _, st := range vhelix.StrandTypes {
			for i, b := range other.Strand(st) {
				a := vhelix.Address{Helix: otherID, Strand: st, Index: i}
				for _, e := range [2]vhelix.End{vhelix.Prev, vhelix.Next} {
					if ref := b.Link(e); !ref.IsNone() && ref.Helix == id {
						if err := tx.setEnd(a, e, vhelix.NoRef); err != nil {
							return err
						}
					}
				}
			}
		}
	}
	addrs, err := tx.commit()
	if err != nil {
		return err
	}
	for _, st := range vhelix.StrandTypes {
		for i, b := range vh.Strand(st) {
			for _, e := range [2]vhelix.End{vhelix.Prev, vhelix.Next} {
				if ref := b.Link(e); !ref.IsNone() && ref.Helix != id {
					_ = vh.ClearLink(st, i, e)
				}
			}
		}
	}
	delete(p.helices, id)
	delete(p.coords, vh.Coord())
	for i, o := range p.order {
		if o == id {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
	vh.Release()
	p.PairNeighbors()
	ev := eventFor(OpRemoveHelix, addrs)
	ev.Helices = append([]int{id}, ev.Helices...)
	p.notify(ev)
	return nil
}

// PairNeighbors recomputes the p0, p1 and p2 neighbours of every helix from the lattice
func (p *Part) PairNeighbors() {
	for _, id := range p.order {
		vh := p.helices[id]
		var ids [3]int
		for i, c := range lattice.Neighbors(vh.Coord()) {
			ids[i] = vhelix.None
			if n, ok := p.coords[c]; ok {
				ids[i] = n
			}
		}
		vh.SetNeighbors(ids)
	}
}

// Base returns the committed slot at a
func (p *Part) Base(a vhelix.Address) (vhelix.Base, error) {
	vh, err := p.helix("base", a.Helix)
	if err != nil {
		return vhelix.Base{}, err
	}
	return vh.Base(a.Strand, a.Index)
}

// HasStrandAt reports whether the base is part of a strand
func (p *Part) HasStrandAt(st vhelix.StrandType, id, index int) bool {
	vh, ok := p.helices[id]
	return ok && vh.HasStrandAt(st, index)
}

// HasEndAt reports whether the base is a strand terminus
func (p *Part) HasEndAt(st vhelix.StrandType, id, index int) bool {
	vh, ok := p.helices[id]
	return ok && vh.HasEndAt(st, index)
}

// HasCrossoverAt reports whether the base links to another helix
func (p *Part) HasCrossoverAt(st vhelix.StrandType, id, index int) bool {
	vh, ok := p.helices[id]
	return ok && vh.HasCrossoverAt(st, index)
}

// Validate checks the whole Part: equal strand lengths, and every link pointing at an existing base that links back
func (p *Part) Validate() error {
	const op = "validate"
	for _, id := range p.order {
		vh := p.helices[id]
		if vh.ID() != id {
			return modelerr.New(op, modelerr.ErrReciprocity, fmt.Sprintf("helix %d is filed under id %d", vh.ID(), id))
		}
		for _, st := range vhelix.StrandTypes {
			bases := vh.Strand(st)
			if len(bases) != vh.NumBases() {
				return modelerr.New(op, modelerr.ErrInvalidSize, fmt.Sprintf("helix %d %v has %d of %d bases", id, st, len(bases), vh.NumBases()))
			}
			for i, b := range bases {
				for _, e := range [2]vhelix.End{vhelix.Prev, vhelix.Next} {
					ref := b.Link(e)
					if ref.IsNone() {
						continue
					}
					target, err := p.Base(vhelix.At(st, ref))
					if err != nil {
						return modelerr.At(op, modelerr.ErrDanglingLink, id, st.String(), i, fmt.Sprintf("%s link to %v", e, ref))
					}
					if target.Link(e.Opposite()) != (vhelix.Ref{Helix: id, Index: i}) {
						return modelerr.At(op, modelerr.ErrReciprocity, id, st.String(), i, fmt.Sprintf("%s link to %v is not returned", e, ref))
					}
				}
			}
		}
	}
	return nil
}

// Clone returns a deep copy of the Part without its listeners
func (p *Part) Clone() *Part {
	c := New(p.name, p.lattice)
	for _, id := range p.order {
		vh := p.helices[id].Clone()
		c.helices[id] = vh
		c.order = append(c.order, id)
		c.coords[vh.Coord()] = id
	}
	return c
}
