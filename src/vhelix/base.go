package vhelix

import (
	"fmt"
	"strings"
)

// StrandType is either the scaffold or the staple strand of a helix
type StrandType int

const (
	Scaffold StrandType = iota
	Staple
)

// StrandTypes lists both strand types in storage order
var StrandTypes = [2]StrandType{Scaffold, Staple}

func (st StrandType) String() string {
	switch st {
	case Scaffold:
		return "scaffold"
	case Staple:
		return "staple"
	}
	return fmt.Sprintf("strand(%d)", int(st))
}

// ParseStrandType converts a strand name (or its first letters) back to a StrandType
func ParseStrandType(s string) (StrandType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "scaffold", "scaf":
		return Scaffold, nil
	case "staple", "stap":
		return Staple, nil
	}
	return 0, fmt.Errorf("unknown strand type: %q", s)
}

func (st StrandType) valid() bool {
	return st == Scaffold || st == Staple
}

// None marks an unset helix id or base index in a link
const None = -1

// NoColor marks a base without a colour
const NoColor = -1

// Ref is one end of a link: the helix and index of the base it points to.
// The strand type is implied, links never cross strand types.
type Ref struct {
	Helix int
	Index int
}

// NoRef is the empty link
var NoRef = Ref{None, None}

// IsNone reports whether the link is unset
func (r Ref) IsNone() bool {
	return r.Helix == None
}

func (r Ref) String() string {
	if r.IsNone() {
		return "none"
	}
	return fmt.Sprintf("%d[%d]", r.Helix, r.Index)
}

// Address names a single base
type Address struct {
	Helix  int
	Strand StrandType
	Index  int
}

// Ref drops the strand type from the address
func (a Address) Ref() Ref {
	return Ref{a.Helix, a.Index}
}

// At returns the address of ref on strand st
func At(st StrandType, ref Ref) Address {
	return Address{Helix: ref.Helix, Strand: st, Index: ref.Index}
}

func (a Address) String() string {
	return fmt.Sprintf("%d:%s[%d]", a.Helix, a.Strand, a.Index)
}

// End selects the 5' (Prev) or 3' (Next) link of a base
type End int

const (
	Prev End = iota
	Next
)

// Opposite returns the end a reciprocal link is stored on
func (e End) Opposite() End {
	if e == Prev {
		return Next
	}
	return Prev
}

func (e End) String() string {
	if e == Prev {
		return "prev"
	}
	return "next"
}

// Base is the state of one slot in a strand array
type Base struct {
	Prev  Ref
	Next  Ref
	Color int
}

// emptyBase has no links and no colour
var emptyBase = Base{Prev: NoRef, Next: NoRef, Color: NoColor}

// Link returns the link held on end e
func (b Base) Link(e End) Ref {
	if e == Prev {
		return b.Prev
	}
	return b.Next
}

// WithLink returns a copy of b with end e set to ref
func (b Base) WithLink(e End, ref Ref) Base {
	if e == Prev {
		b.Prev = ref
	} else {
		b.Next = ref
	}
	return b
}

// HasStrand is true when either link is set
func (b Base) HasStrand() bool {
	return !b.Prev.IsNone() || !b.Next.IsNone()
}

// IsEnd is true when exactly one link is set
func (b Base) IsEnd() bool {
	return b.Prev.IsNone() != b.Next.IsNone()
}
