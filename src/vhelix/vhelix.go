// Package vhelix is the per-helix base storage: two strand arrays of linked base slots plus their decorations.
// A VirtualHelix knows other helices only by id; keeping links reciprocal is the job of the owning part.
package vhelix

import (
	"fmt"

	"github.com/will-rowe/origami/src/decor"
	"github.com/will-rowe/origami/src/lattice"
	"github.com/will-rowe/origami/src/modelerr"
)

// View is the read side of a VirtualHelix, as handed out by its owning part
type View interface {
	ID() int
	NumBases() int
	Coord() lattice.Coord
	Owned() bool
	IsEvenParity() bool
	Drawn5To3(st StrandType) bool
	Downstream(st StrandType, i int) int
	Neighbor(d lattice.Direction) int
	InRange(i int) bool
	Base(st StrandType, i int) (Base, error)
	Strand(st StrandType) []Base
	HasStrandAt(st StrandType, i int) bool
	HasEndAt(st StrandType, i int) bool
	Is5PrimeEnd(st StrandType, i int) bool
	Is3PrimeEnd(st StrandType, i int) bool
	HasCrossoverAt(st StrandType, i int) bool
	IsEmpty() bool
	Color(st StrandType, i int) int
	Decorated(st StrandType) decor.Reader
	String() string
}

// readOnly hides every setter of the helix it wraps
type readOnly struct{ View }

// ReadOnly returns a View of vh that cannot be asserted back to a *VirtualHelix
func (vh *VirtualHelix) ReadOnly() View {
	return readOnly{vh}
}

// VirtualHelix is a double helix of numBases slots per strand type
type VirtualHelix struct {
	id          int
	numBases    int
	even        bool
	coord       lattice.Coord
	owned       bool
	neighbors   [3]int
	strands     [2][]Base
	decorations [2]*decor.Set
}

// New returns a helix whose strands each run unbroken from index 0 to numBases-1
func New(numBases, id int) (*VirtualHelix, error) {
	if numBases <= 0 {
		return nil, modelerr.New("createHelix", modelerr.ErrInvalidSize, fmt.Sprintf("numBases must be positive, got %d", numBases))
	}
	if id < 0 {
		return nil, modelerr.New("createHelix", modelerr.ErrInvalidSize, fmt.Sprintf("helix id must be non-negative, got %d", id))
	}
	vh := &VirtualHelix{
		id:        id,
		numBases:  numBases,
		even:      id%2 == 0,
		neighbors: [3]int{None, None, None},
	}
	for _, st := range StrandTypes {
		bases := make([]Base, numBases)
		for i := range bases {
			bases[i] = emptyBase
			if i > 0 {
				bases[i].Prev = Ref{id, i - 1}
			}
			if i < numBases-1 {
				bases[i].Next = Ref{id, i + 1}
			}
		}
		vh.strands[st] = bases
		vh.decorations[st] = decor.NewSet()
	}
	return vh, nil
}

// ID is the helix number
func (vh *VirtualHelix) ID() int { return vh.id }

// NumBases is the length of each strand array
func (vh *VirtualHelix) NumBases() int { return vh.numBases }

// Coord is the lattice position assigned by the owning part
func (vh *VirtualHelix) Coord() lattice.Coord { return vh.coord }

// Owned reports whether the helix has been added to a part
func (vh *VirtualHelix) Owned() bool { return vh.owned }

// IsEvenParity is fixed when the helix is created and survives renumbering
func (vh *VirtualHelix) IsEvenParity() bool { return vh.even }

// Drawn5To3 is true when increasing index runs 5' to 3' on strand st.
// That holds for the scaffold of even helices and the staple of odd ones.
func (vh *VirtualHelix) Drawn5To3(st StrandType) bool {
	return (st == Scaffold) == vh.even
}

// Downstream returns the index 3' of i on strand st
func (vh *VirtualHelix) Downstream(st StrandType, i int) int {
	if vh.Drawn5To3(st) {
		return i + 1
	}
	return i - 1
}

// Neighbor returns the id of the helix in lattice direction d, or None
func (vh *VirtualHelix) Neighbor(d lattice.Direction) int {
	return vh.neighbors[d]
}

// SetNeighbors records the p0, p1 and p2 neighbour ids
func (vh *VirtualHelix) SetNeighbors(ids [3]int) {
	vh.neighbors = ids
}

// InRange reports whether i is a valid base index
func (vh *VirtualHelix) InRange(i int) bool {
	return i >= 0 && i < vh.numBases
}

func (vh *VirtualHelix) checkIndex(op string, st StrandType, i int) error {
	if !st.valid() {
		return modelerr.At(op, modelerr.ErrIndexOutOfRange, vh.id, st.String(), i, "unknown strand type")
	}
	if !vh.InRange(i) {
		return modelerr.At(op, modelerr.ErrIndexOutOfRange, vh.id, st.String(), i, fmt.Sprintf("helix has %d bases", vh.numBases))
	}
	return nil
}

func (vh *VirtualHelix) helixErr(op string, err error, detail string) error {
	e := modelerr.New(op, err, detail)
	e.Helix = vh.id
	return e
}

// Base returns the slot at index i of strand st
func (vh *VirtualHelix) Base(st StrandType, i int) (Base, error) {
	if err := vh.checkIndex("base", st, i); err != nil {
		return emptyBase, err
	}
	return vh.strands[st][i], nil
}

// Strand returns a copy of the whole strand array
func (vh *VirtualHelix) Strand(st StrandType) []Base {
	out := make([]Base, vh.numBases)
	copy(out, vh.strands[st])
	return out
}

// SetLink sets one directional link; the caller keeps it reciprocal
func (vh *VirtualHelix) SetLink(st StrandType, i int, e End, target Ref) error {
	if err := vh.checkIndex("setLink", st, i); err != nil {
		return err
	}
	vh.strands[st][i] = vh.strands[st][i].WithLink(e, target)
	return nil
}

// ClearLink sets one directional link to none
func (vh *VirtualHelix) ClearLink(st StrandType, i int, e End) error {
	return vh.SetLink(st, i, e, NoRef)
}

// HasStrandAt is true when either link of the base is set
func (vh *VirtualHelix) HasStrandAt(st StrandType, i int) bool {
	if vh.checkIndex("hasStrandAt", st, i) != nil {
		return false
	}
	return vh.strands[st][i].HasStrand()
}

// HasEndAt is true when exactly one link of the base is set
func (vh *VirtualHelix) HasEndAt(st StrandType, i int) bool {
	if vh.checkIndex("hasEndAt", st, i) != nil {
		return false
	}
	return vh.strands[st][i].IsEnd()
}

// Is5PrimeEnd is true for a strand terminus with nothing upstream
func (vh *VirtualHelix) Is5PrimeEnd(st StrandType, i int) bool {
	if vh.checkIndex("is5PrimeEnd", st, i) != nil {
		return false
	}
	b := vh.strands[st][i]
	return b.Prev.IsNone() && !b.Next.IsNone()
}

// Is3PrimeEnd is true for a strand terminus with nothing downstream
func (vh *VirtualHelix) Is3PrimeEnd(st StrandType, i int) bool {
	if vh.checkIndex("is3PrimeEnd", st, i) != nil {
		return false
	}
	b := vh.strands[st][i]
	return b.Next.IsNone() && !b.Prev.IsNone()
}

// HasCrossoverAt is true when either link of the base leaves this helix
func (vh *VirtualHelix) HasCrossoverAt(st StrandType, i int) bool {
	if vh.checkIndex("hasCrossoverAt", st, i) != nil {
		return false
	}
	b := vh.strands[st][i]
	return (!b.Prev.IsNone() && b.Prev.Helix != vh.id) || (!b.Next.IsNone() && b.Next.Helix != vh.id)
}

// IsEmpty is true when no base on either strand is linked
func (vh *VirtualHelix) IsEmpty() bool {
	for _, st := range StrandTypes {
		for _, b := range vh.strands[st] {
			if b.HasStrand() {
				return false
			}
		}
	}
	return true
}

// SetColor colours the base at i; NoColor clears it
func (vh *VirtualHelix) SetColor(st StrandType, i, color int) error {
	if err := vh.checkIndex("setColor", st, i); err != nil {
		return err
	}
	vh.strands[st][i].Color = color
	return nil
}

// Color returns the colour of the base at i, or NoColor
func (vh *VirtualHelix) Color(st StrandType, i int) int {
	if vh.checkIndex("color", st, i) != nil {
		return NoColor
	}
	return vh.strands[st][i].Color
}

// Decorations returns the live decoration set of strand st for the owning part to edit
func (vh *VirtualHelix) Decorations(st StrandType) *decor.Set {
	return vh.decorations[st]
}

// Decorated returns the decorations of strand st for reading
func (vh *VirtualHelix) Decorated(st StrandType) decor.Reader {
	return vh.decorations[st].ReadOnly()
}

// orphanCheck fails if any base in [lo, hi) links outside that block
func (vh *VirtualHelix) orphanCheck(op string, lo, hi int) error {
	for _, st := range StrandTypes {
		for i := lo; i < hi; i++ {
			b := vh.strands[st][i]
			for _, ref := range [2]Ref{b.Prev, b.Next} {
				if ref.IsNone() {
					continue
				}
				if ref.Helix == vh.id && ref.Index >= lo && ref.Index < hi {
					continue
				}
				return modelerr.At(op, modelerr.ErrWouldOrphanLinks, vh.id, st.String(), i, fmt.Sprintf("base links to %v", ref))
			}
		}
	}
	return nil
}

// Resize grows or shrinks the helix at the high-index end.
// Grown bases are empty. Shrinking fails if a removed base is linked to anything it leaves behind.
func (vh *VirtualHelix) Resize(newNumBases int) error {
	if newNumBases <= 0 {
		return vh.helixErr("resize", modelerr.ErrInvalidSize, fmt.Sprintf("numBases must be positive, got %d", newNumBases))
	}
	if newNumBases == vh.numBases {
		return nil
	}
	if newNumBases < vh.numBases {
		if err := vh.orphanCheck("resize", newNumBases, vh.numBases); err != nil {
			return err
		}
		for _, st := range StrandTypes {
			vh.strands[st] = vh.strands[st][:newNumBases:newNumBases]
			vh.decorations[st].Truncate(newNumBases)
		}
		vh.numBases = newNumBases
		return nil
	}
	for _, st := range StrandTypes {
		for i := vh.numBases; i < newNumBases; i++ {
			vh.strands[st] = append(vh.strands[st], emptyBase)
		}
	}
	vh.numBases = newNumBases
	return nil
}

// ResizeFront grows (delta > 0) or shrinks (delta < 0) the helix at index 0.
// Links within the helix and decorations move with their bases; links held by
// other helices that point here must be shifted by the caller.
func (vh *VirtualHelix) ResizeFront(delta int) error {
	if delta == 0 {
		return nil
	}
	newNumBases := vh.numBases + delta
	if newNumBases <= 0 {
		return vh.helixErr("resizeFront", modelerr.ErrInvalidSize, fmt.Sprintf("numBases must be positive, got %d", newNumBases))
	}
	if delta < 0 {
		if err := vh.orphanCheck("resizeFront", 0, -delta); err != nil {
			return err
		}
	}
	shift := func(r Ref) Ref {
		if !r.IsNone() && r.Helix == vh.id {
			r.Index += delta
		}
		return r
	}
	for _, st := range StrandTypes {
		bases := make([]Base, newNumBases)
		for i := range bases {
			old := i - delta
			if old < 0 || old >= vh.numBases {
				bases[i] = emptyBase
				continue
			}
			b := vh.strands[st][old]
			b.Prev, b.Next = shift(b.Prev), shift(b.Next)
			bases[i] = b
		}
		vh.strands[st] = bases
		vh.decorations[st].Shift(delta)
	}
	vh.numBases = newNumBases
	return nil
}

// Assign hands the helix to a part under id at coord.
// Links the helix holds to itself follow the new id; parity may not change.
func (vh *VirtualHelix) Assign(id int, coord lattice.Coord) error {
	if vh.owned {
		return vh.helixErr("assign", modelerr.ErrHelixOwned, "")
	}
	if (id%2 == 0) != vh.even {
		return vh.helixErr("assign", modelerr.ErrParityMismatch, fmt.Sprintf("cannot become helix %d", id))
	}
	if id != vh.id {
		if err := vh.Remap(map[int]int{vh.id: id}); err != nil {
			return err
		}
	}
	vh.coord = coord
	vh.owned = true
	return nil
}

// Release detaches the helix from its part
func (vh *VirtualHelix) Release() {
	vh.owned = false
	vh.neighbors = [3]int{None, None, None}
}

// Remap renames this helix and every helix id it references.
// Every referenced id must be in the table; nothing changes on error.
func (vh *VirtualHelix) Remap(table map[int]int) error {
	newID, ok := table[vh.id]
	if !ok {
		newID = vh.id
	}
	if (newID%2 == 0) != vh.even {
		return vh.helixErr("remap", modelerr.ErrParityMismatch, fmt.Sprintf("cannot become helix %d", newID))
	}
	lookup := func(r Ref) (Ref, bool) {
		if r.IsNone() {
			return r, true
		}
		if r.Helix == vh.id {
			return Ref{newID, r.Index}, true
		}
		to, ok := table[r.Helix]
		return Ref{to, r.Index}, ok
	}
	for _, st := range StrandTypes {
		for i, b := range vh.strands[st] {
			for _, r := range [2]Ref{b.Prev, b.Next} {
				if _, ok := lookup(r); !ok {
					return modelerr.At("remap", modelerr.ErrRenumberConflict, vh.id, st.String(), i, fmt.Sprintf("no new id for helix %d", r.Helix))
				}
			}
		}
	}
	for _, st := range StrandTypes {
		for i, b := range vh.strands[st] {
			b.Prev, _ = lookup(b.Prev)
			b.Next, _ = lookup(b.Next)
			vh.strands[st][i] = b
		}
	}
	for d, n := range vh.neighbors {
		if to, ok := table[n]; ok && n != None {
			vh.neighbors[d] = to
		}
	}
	vh.id = newID
	return nil
}

// Clone returns a deep copy, ownership and coordinate included
func (vh *VirtualHelix) Clone() *VirtualHelix {
	c := *vh
	for _, st := range StrandTypes {
		c.strands[st] = vh.Strand(st)
		c.decorations[st] = vh.decorations[st].Clone()
	}
	return &c
}

func (vh *VirtualHelix) String() string {
	return fmt.Sprintf("helix %d at %v (%d bases)", vh.id, vh.coord, vh.numBases)
}
