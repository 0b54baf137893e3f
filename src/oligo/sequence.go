package oligo

import (
	"fmt"
	"strings"

	"github.com/biogo/biogo/alphabet"

	"github.com/will-rowe/origami/src/part"
	"github.com/will-rowe/origami/src/vhelix"
)

// unknown fills positions with no scaffold letters
const unknown = alphabet.Letter('N')

// Assignment holds the scaffold letters laid onto each helix position
type Assignment struct {
	p       *part.Part
	letters map[vhelix.Ref]alphabet.Letters
	// Missing counts positions left as N because the sequence ran out
	Missing int
	// Spare counts sequence letters left over after the scaffold was filled
	Spare int
}

// Assign lays seq along the scaffold oligo, 5' to 3'.
// Each position takes as many letters as its insertions and skips allow.
func Assign(p *part.Part, scaffold *Oligo, seq alphabet.Letters) (*Assignment, error) {
	if scaffold.Strand != vhelix.Scaffold {
		return nil, fmt.Errorf("can only assign a sequence to a scaffold oligo, got %s", scaffold.Strand)
	}
	a := &Assignment{p: p, letters: make(map[vhelix.Ref]alphabet.Letters)}
	pos := 0
	for _, addr := range scaffold.Bases {
		n := Count(p, addr.Helix, addr.Index)
		chunk := make(alphabet.Letters, n)
		for i := range chunk {
			if pos < len(seq) {
				chunk[i] = seq[pos]
				pos++
				continue
			}
			chunk[i] = unknown
			a.Missing++
		}
		a.letters[addr.Ref()] = chunk
	}
	a.Spare = len(seq) - pos
	return a, nil
}

// AssignBytes is Assign for a plain byte sequence
func AssignBytes(p *part.Part, scaffold *Oligo, seq []byte) (*Assignment, error) {
	return Assign(p, scaffold, alphabet.BytesToLetters(seq))
}

// revComp returns the reverse complement of l, with N for anything that has no pair
func revComp(l alphabet.Letters) alphabet.Letters {
	out := make(alphabet.Letters, len(l))
	for i, c := range l {
		comp, ok := alphabet.DNA.Complement(c)
		if !ok {
			comp = unknown
		}
		out[len(l)-1-i] = comp
	}
	return out
}

// chunk returns the letters of the oligo strand at one position
func (a *Assignment) chunk(st vhelix.StrandType, addr vhelix.Address) alphabet.Letters {
	scaf, ok := a.letters[addr.Ref()]
	if !ok {
		n := Count(a.p, addr.Helix, addr.Index)
		fill := make(alphabet.Letters, n)
		for i := range fill {
			fill[i] = unknown
		}
		return fill
	}
	if st == vhelix.Scaffold {
		return scaf
	}
	return revComp(scaf)
}

// Sequence returns the nucleotides of an oligo, 5' to 3'
func (a *Assignment) Sequence(o *Oligo) alphabet.Letters {
	var out alphabet.Letters
	for _, addr := range o.Bases {
		out = append(out, a.chunk(o.Strand, addr)...)
	}
	return out
}

// Annotated is the oligo sequence with each modifier written as [name] before its base
func (a *Assignment) Annotated(o *Oligo) string {
	var b strings.Builder
	for _, addr := range o.Bases {
		vh, err := a.p.VirtualHelix(addr.Helix)
		if err == nil {
			if m, ok := vh.Decorated(o.Strand).Modifier(addr.Index); ok {
				fmt.Fprintf(&b, "[%s]", m.Name)
			}
		}
		b.Write(alphabet.LettersToBytes(a.chunk(o.Strand, addr)))
	}
	return b.String()
}
