package part

import (
	"fmt"

	"github.com/will-rowe/origami/src/modelerr"
	"github.com/will-rowe/origami/src/vhelix"
)

// helixFor looks up a helix and checks an index on it
func (p *Part) helixFor(op string, st vhelix.StrandType, id, index int) (*vhelix.VirtualHelix, error) {
	vh, ok := p.helices[id]
	if !ok {
		return nil, modelerr.At(op, modelerr.ErrUnknownHelix, id, st.String(), index, "")
	}
	if !vh.InRange(index) {
		return nil, modelerr.At(op, modelerr.ErrIndexOutOfRange, id, st.String(), index, fmt.Sprintf("helix has %d bases", vh.NumBases()))
	}
	return vh, nil
}

// InstallXover links the 3' side of (fromID, fromIndex) to the 5' side of (toID, toIndex).
// The source must have no downstream link and the target no upstream link, so a strand never forks.
func (p *Part) InstallXover(st vhelix.StrandType, fromID, fromIndex, toID, toIndex int) error {
	const op = "installXover"
	if _, err := p.helixFor(op, st, fromID, fromIndex); err != nil {
		return err
	}
	if _, err := p.helixFor(op, st, toID, toIndex); err != nil {
		return err
	}
	if fromID == toID && fromIndex == toIndex {
		return modelerr.At(op, modelerr.ErrSelfCrossover, fromID, st.String(), fromIndex, "")
	}
	from := vhelix.Address{Helix: fromID, Strand: st, Index: fromIndex}
	to := vhelix.Address{Helix: toID, Strand: st, Index: toIndex}
	src, _ := p.Base(from)
	if !src.Next.IsNone() {
		return modelerr.At(op, modelerr.ErrInvalidEndpoint, fromID, st.String(), fromIndex, fmt.Sprintf("3' side already links to %v", src.Next))
	}
	dst, _ := p.Base(to)
	if !dst.Prev.IsNone() {
		return modelerr.At(op, modelerr.ErrInvalidEndpoint, toID, st.String(), toIndex, fmt.Sprintf("5' side already links to %v", dst.Prev))
	}
	tx := p.begin(op)
	if err := tx.link(st, from.Ref(), to.Ref()); err != nil {
		return err
	}
	return tx.commitAndNotify(OpInstallXover)
}

// RemoveXover cuts the crossover at a base, trying its 3' link first and then its 5' link
func (p *Part) RemoveXover(st vhelix.StrandType, id, index int) error {
	const op = "removeXover"
	if _, err := p.helixFor(op, st, id, index); err != nil {
		return err
	}
	a := vhelix.Address{Helix: id, Strand: st, Index: index}
	b, _ := p.Base(a)
	tx := p.begin(op)
	switch {
	case !b.Next.IsNone() && b.Next.Helix != id:
		if err := tx.unlink(a, vhelix.Next); err != nil {
			return err
		}
	case !b.Prev.IsNone() && b.Prev.Helix != id:
		if err := tx.unlink(a, vhelix.Prev); err != nil {
			return err
		}
	default:
		return modelerr.At(op, modelerr.ErrNotACrossover, id, st.String(), index, "")
	}
	return tx.commitAndNotify(OpRemoveXover)
}

func ordered(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}

// ClearStrand cuts every same-helix link between consecutive bases of [from, to], in either order.
// Crossovers leaving the range are kept.
func (p *Part) ClearStrand(id int, st vhelix.StrandType, from, to int) error {
	const op = "clearStrand"
	lo, hi := ordered(from, to)
	if _, err := p.helixFor(op, st, id, lo); err != nil {
		return err
	}
	if _, err := p.helixFor(op, st, id, hi); err != nil {
		return err
	}
	tx := p.begin(op)
	for i := lo; i < hi; i++ {
		a := vhelix.Address{Helix: id, Strand: st, Index: i}
		b, err := tx.base(a)
		if err != nil {
			return err
		}
		right := vhelix.Ref{Helix: id, Index: i + 1}
		if b.Next == right {
			if err := tx.unlink(a, vhelix.Next); err != nil {
				return err
			}
		}
		if b.Prev == right {
			if err := tx.unlink(a, vhelix.Prev); err != nil {
				return err
			}
		}
	}
	return tx.commitAndNotify(OpClearStrand)
}

// ConnectStrand links every gap of [lo, hi) in the helix's 5' to 3' direction for strand st.
// A gap whose bases already link elsewhere is an overlap; a gap that is already linked is left alone.
func (p *Part) ConnectStrand(id int, st vhelix.StrandType, from, to int) error {
	const op = "connectStrand"
	lo, hi := ordered(from, to)
	vh, err := p.helixFor(op, st, id, lo)
	if err != nil {
		return err
	}
	if _, err := p.helixFor(op, st, id, hi); err != nil {
		return err
	}
	tx := p.begin(op)
	for i := lo; i < hi; i++ {
		up, down := vhelix.Ref{Helix: id, Index: i}, vhelix.Ref{Helix: id, Index: i + 1}
		if !vh.Drawn5To3(st) {
			up, down = down, up
		}
		ub, err := tx.base(vhelix.At(st, up))
		if err != nil {
			return err
		}
		db, err := tx.base(vhelix.At(st, down))
		if err != nil {
			return err
		}
		if ub.Next == down && db.Prev == up {
			continue
		}
		if !ub.Next.IsNone() {
			return modelerr.At(op, modelerr.ErrOverlappingStrand, id, st.String(), up.Index, fmt.Sprintf("3' side links to %v", ub.Next))
		}
		if !db.Prev.IsNone() {
			return modelerr.At(op, modelerr.ErrOverlappingStrand, id, st.String(), down.Index, fmt.Sprintf("5' side links to %v", db.Prev))
		}
		if err := tx.link(st, up, down); err != nil {
			return err
		}
	}
	return tx.commitAndNotify(OpConnectStrand)
}

// ApplyColor sets the colour of one base, vhelix.NoColor clears it
func (p *Part) ApplyColor(st vhelix.StrandType, id, index, color int) error {
	const op = "applyColor"
	if _, err := p.helixFor(op, st, id, index); err != nil {
		return err
	}
	tx := p.begin(op)
	if err := tx.setColor(vhelix.Address{Helix: id, Strand: st, Index: index}, color); err != nil {
		return err
	}
	return tx.commitAndNotify(OpColor)
}

func (p *Part) decorated(st vhelix.StrandType, id, index int) {
	p.notify(Event{
		Op:      OpDecorate,
		Helices: []int{id},
		Ranges:  []BaseRange{{Helix: id, Strand: st, Lo: index, Hi: index}},
	})
}

// InstallInsertion puts an insertion (length > 0) or skip (length < 0) on a base
func (p *Part) InstallInsertion(st vhelix.StrandType, id, index, length int) error {
	const op = "installInsertion"
	vh, err := p.helixFor(op, st, id, index)
	if err != nil {
		return err
	}
	if length == 0 {
		return modelerr.At(op, modelerr.ErrInvalidDecoration, id, st.String(), index, "length must be non-zero")
	}
	if err := vh.Decorations(st).AddInsertion(index, length); err != nil {
		return modelerr.At(op, modelerr.ErrInvalidDecoration, id, st.String(), index, err.Error())
	}
	p.decorated(st, id, index)
	return nil
}

// RemoveInsertion drops the insertion or skip on a base
func (p *Part) RemoveInsertion(st vhelix.StrandType, id, index int) error {
	const op = "removeInsertion"
	vh, err := p.helixFor(op, st, id, index)
	if err != nil {
		return err
	}
	if !vh.Decorations(st).RemoveInsertion(index) {
		return modelerr.At(op, modelerr.ErrInvalidDecoration, id, st.String(), index, "no insertion at base")
	}
	p.decorated(st, id, index)
	return nil
}

// SetModifier attaches a named modifier to a base
func (p *Part) SetModifier(st vhelix.StrandType, id, index int, name, sequence string) error {
	const op = "setModifier"
	vh, err := p.helixFor(op, st, id, index)
	if err != nil {
		return err
	}
	if err := vh.Decorations(st).SetModifier(index, name, sequence); err != nil {
		return modelerr.At(op, modelerr.ErrInvalidDecoration, id, st.String(), index, err.Error())
	}
	p.decorated(st, id, index)
	return nil
}

// RemoveModifier drops the modifier on a base
func (p *Part) RemoveModifier(st vhelix.StrandType, id, index int) error {
	const op = "removeModifier"
	vh, err := p.helixFor(op, st, id, index)
	if err != nil {
		return err
	}
	if !vh.Decorations(st).RemoveModifier(index) {
		return modelerr.At(op, modelerr.ErrInvalidDecoration, id, st.String(), index, "no modifier at base")
	}
	p.decorated(st, id, index)
	return nil
}

// ResizeHelix changes the length of a helix at its tail, or at its front when atFront is set.
// New lengths must be a whole number of lattice steps. Links other helices hold into a
// front-resized helix are shifted with it.
func (p *Part) ResizeHelix(id, newNumBases int, atFront bool) error {
	const op = "resizeHelix"
	vh, err := p.helix(op, id)
	if err != nil {
		return err
	}
	step := p.lattice.Step()
	if newNumBases <= 0 || newNumBases%step != 0 {
		e := modelerr.New(op, modelerr.ErrInvalidSize, fmt.Sprintf("%d is not a positive multiple of %d", newNumBases, step))
		e.Helix = id
		return e
	}
	delta := newNumBases - vh.NumBases()
	if delta == 0 {
		return nil
	}
	if !atFront {
		if err := vh.Resize(newNumBases); err != nil {
			return err
		}
		p.notify(helixEvent(OpResize, id))
		return nil
	}
	if err := vh.ResizeFront(delta); err != nil {
		return err
	}
	touched := []int{id}
	for _, otherID := range p.order {
		if otherID == id {
			continue
		}
		other := p.helices[otherID]
		moved := false
		for _, st := range vhelix.StrandTypes {
			for i, b := range other.Strand(st) {
				for _, e := range [2]vhelix.End{vhelix.Prev, vhelix.Next} {
					if ref := b.Link(e); !ref.IsNone() && ref.Helix == id {
						_ = other.SetLink(st, i, e, vhelix.Ref{Helix: id, Index: ref.Index + delta})
						moved = true
					}
				}
			}
		}
		if moved {
			touched = append(touched, otherID)
		}
	}
	p.notify(helixEvent(OpResize, touched...))
	return nil
}
