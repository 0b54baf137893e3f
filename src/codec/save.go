package codec

import (
	"encoding/json"
	"io"

	"github.com/will-rowe/origami/src/part"
	"github.com/will-rowe/origami/src/vhelix"
)

func linkOf(b vhelix.Base) Link {
	return Link{b.Prev.Helix, b.Prev.Index, b.Next.Helix, b.Next.Index}
}

// vstrand builds the record of one helix. Sparse lists are never nil so they encode as [].
func vstrand(vh vhelix.View) VStrand {
	n := vh.NumBases()
	vs := VStrand{
		Num:        vh.ID(),
		Row:        vh.Coord().Row,
		Col:        vh.Coord().Col,
		Scaf:       make([]Link, n),
		Stap:       make([]Link, n),
		Loop:       make([]int, n),
		Skip:       make([]int, n),
		ScafLoop:   []Pair{},
		StapLoop:   []Pair{},
		StapColors: []Pair{},
	}
	for i, b := range vh.Strand(vhelix.Scaffold) {
		vs.Scaf[i] = linkOf(b)
		if b.Color != vhelix.NoColor {
			vs.ScafColors = append(vs.ScafColors, Pair{i, b.Color})
		}
	}
	for i, b := range vh.Strand(vhelix.Staple) {
		vs.Stap[i] = linkOf(b)
		if b.Color != vhelix.NoColor {
			vs.StapColors = append(vs.StapColors, Pair{i, b.Color})
		}
	}
	for _, ins := range vh.Decorated(vhelix.Scaffold).Insertions() {
		if ins.IsSkip() {
			vs.Skip[ins.Index] = ins.Length
		} else {
			vs.Loop[ins.Index] = ins.Length
		}
	}
	for _, ins := range vh.Decorated(vhelix.Staple).Insertions() {
		vs.StapLoop = append(vs.StapLoop, Pair{ins.Index, ins.Length})
	}
	for _, st := range vhelix.StrandTypes {
		for _, m := range vh.Decorated(st).Modifiers() {
			vs.Mods = append(vs.Mods, Modref{Strand: st.String(), Index: m.Index, Name: m.Name, Sequence: m.Sequence})
		}
	}
	return vs
}

// Save captures the Part as a current-schema document, helices in visiting order
func Save(p *part.Part) *Document {
	doc := &Document{
		Format:   FormatTag,
		Name:     p.Name(),
		Lattice:  p.Lattice().String(),
		VStrands: make([]VStrand, 0, p.Len()),
	}
	for _, id := range p.IDs() {
		vh, _ := p.VirtualHelix(id)
		doc.VStrands = append(doc.VStrands, vstrand(vh))
	}
	return doc
}

// Marshal returns the JSON of Save(p)
func Marshal(p *part.Part) ([]byte, error) {
	return json.Marshal(Save(p))
}

// Encode writes the JSON of Save(p) to w
func Encode(w io.Writer, p *part.Part) error {
	return json.NewEncoder(w).Encode(Save(p))
}

// SaveLegacy captures the Part in the untagged legacy layout.
// Staple colours are only kept on 5' ends and modifiers are dropped.
func SaveLegacy(p *part.Part) *LegacyDocument {
	doc := &LegacyDocument{
		Name:     p.Name(),
		VStrands: make([]VStrand, 0, p.Len()),
	}
	for _, id := range p.IDs() {
		vh, _ := p.VirtualHelix(id)
		vs := vstrand(vh)
		vs.ScafColors, vs.Mods = nil, nil
		vs.StapLoop = []Pair{}
		vs.StapColors = []Pair{}
		for i, b := range vh.Strand(vhelix.Staple) {
			if b.Color != vhelix.NoColor && vh.Is5PrimeEnd(vhelix.Staple, i) {
				vs.StapColors = append(vs.StapColors, Pair{i, b.Color})
			}
		}
		doc.VStrands = append(doc.VStrands, vs)
	}
	return doc
}

// MarshalLegacy returns the JSON of SaveLegacy(p)
func MarshalLegacy(p *part.Part) ([]byte, error) {
	return json.Marshal(SaveLegacy(p))
}
