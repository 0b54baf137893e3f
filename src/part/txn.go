package part

import (
	"fmt"

	"github.com/will-rowe/origami/src/modelerr"
	"github.com/will-rowe/origami/src/vhelix"
)

// txn stages slot writes against a Part.
// Nothing reaches the helices until commit has checked every touched slot.
type txn struct {
	p       *Part
	op      string
	writes  map[vhelix.Address]vhelix.Base
	touched []vhelix.Address
}

func (p *Part) begin(op string) *txn {
	return &txn{
		p:      p,
		op:     op,
		writes: make(map[vhelix.Address]vhelix.Base),
	}
}

// base returns the staged slot at a, falling back to the committed one
func (tx *txn) base(a vhelix.Address) (vhelix.Base, error) {
	if b, ok := tx.writes[a]; ok {
		return b, nil
	}
	vh, ok := tx.p.helices[a.Helix]
	if !ok {
		return vhelix.Base{}, modelerr.At(tx.op, modelerr.ErrUnknownHelix, a.Helix, a.Strand.String(), a.Index, "")
	}
	b, err := vh.Base(a.Strand, a.Index)
	if err != nil {
		return vhelix.Base{}, modelerr.At(tx.op, modelerr.ErrIndexOutOfRange, a.Helix, a.Strand.String(), a.Index, fmt.Sprintf("helix has %d bases", vh.NumBases()))
	}
	return b, nil
}

func (tx *txn) put(a vhelix.Address, b vhelix.Base) {
	if _, ok := tx.writes[a]; !ok {
		tx.touched = append(tx.touched, a)
	}
	tx.writes[a] = b
}

// setEnd stages one directional link
func (tx *txn) setEnd(a vhelix.Address, e vhelix.End, ref vhelix.Ref) error {
	b, err := tx.base(a)
	if err != nil {
		return err
	}
	tx.put(a, b.WithLink(e, ref))
	return nil
}

// link stages from -> to on strand st, both directions
func (tx *txn) link(st vhelix.StrandType, from, to vhelix.Ref) error {
	if err := tx.setEnd(vhelix.At(st, from), vhelix.Next, to); err != nil {
		return err
	}
	return tx.setEnd(vhelix.At(st, to), vhelix.Prev, from)
}

// unlink stages the removal of the link held on end e of a, and of its reciprocal
func (tx *txn) unlink(a vhelix.Address, e vhelix.End) error {
	b, err := tx.base(a)
	if err != nil {
		return err
	}
	target := b.Link(e)
	if target.IsNone() {
		return nil
	}
	if err := tx.setEnd(a, e, vhelix.NoRef); err != nil {
		return err
	}
	other := vhelix.At(a.Strand, target)
	ob, err := tx.base(other)
	if err != nil {
		// the far side is already gone
		return nil
	}
	if ob.Link(e.Opposite()) == a.Ref() {
		return tx.setEnd(other, e.Opposite(), vhelix.NoRef)
	}
	return nil
}

// setColor stages a colour change
func (tx *txn) setColor(a vhelix.Address, color int) error {
	b, err := tx.base(a)
	if err != nil {
		return err
	}
	b.Color = color
	tx.put(a, b)
	return nil
}

// validate checks that every touched slot links to an existing base that links back
func (tx *txn) validate() error {
	for _, a := range tx.touched {
		b := tx.writes[a]
		for _, e := range [2]vhelix.End{vhelix.Prev, vhelix.Next} {
			ref := b.Link(e)
			if ref.IsNone() {
				continue
			}
			if ref == a.Ref() {
				return modelerr.At(tx.op, modelerr.ErrSelfCrossover, a.Helix, a.Strand.String(), a.Index, "")
			}
			target, err := tx.base(vhelix.At(a.Strand, ref))
			if err != nil {
				return modelerr.At(tx.op, modelerr.ErrDanglingLink, a.Helix, a.Strand.String(), a.Index, fmt.Sprintf("%s link to %v", e, ref))
			}
			if target.Link(e.Opposite()) != a.Ref() {
				return modelerr.At(tx.op, modelerr.ErrReciprocity, a.Helix, a.Strand.String(), a.Index, fmt.Sprintf("%s link to %v is not returned", e, ref))
			}
		}
	}
	return nil
}

// commit validates and then applies the staged writes, returning the written addresses.
// On error the Part is untouched.
func (tx *txn) commit() ([]vhelix.Address, error) {
	if err := tx.validate(); err != nil {
		return nil, err
	}
	for _, a := range tx.touched {
		b := tx.writes[a]
		vh := tx.p.helices[a.Helix]
		// indices were checked while staging
		_ = vh.SetLink(a.Strand, a.Index, vhelix.Prev, b.Prev)
		_ = vh.SetLink(a.Strand, a.Index, vhelix.Next, b.Next)
		_ = vh.SetColor(a.Strand, a.Index, b.Color)
	}
	return tx.touched, nil
}

// commitAndNotify commits and, if anything was written, tells the listeners
func (tx *txn) commitAndNotify(op Op) error {
	addrs, err := tx.commit()
	if err != nil {
		return err
	}
	if len(addrs) > 0 {
		tx.p.notify(eventFor(op, addrs))
	}
	return nil
}
