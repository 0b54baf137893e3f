package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/will-rowe/origami/src/lattice"
	"github.com/will-rowe/origami/src/modelerr"
	"github.com/will-rowe/origami/src/part"
	"github.com/will-rowe/origami/src/vhelix"
)

// Kind says which schema a parsed document follows
type Kind int

const (
	Legacy Kind = iota
	Current
)

func (k Kind) String() string {
	if k == Current {
		return "current"
	}
	return "legacy"
}

// Parsed is a decoded document together with the schema it was read as
type Parsed struct {
	Kind Kind
	// Tag is the ".format" value found, empty when absent
	Tag string
	Doc *Document
}

// Parse decodes data and decides its schema.
// An absent or unknown tag falls back to the legacy schema and says so on the logger.
func Parse(data []byte, opts ...Option) (Parsed, error) {
	o := newOptions(opts)
	doc := &Document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return Parsed{}, modelerr.New("parse", modelerr.ErrMalformedDocument, err.Error())
	}
	if doc.VStrands == nil {
		return Parsed{}, modelerr.New("parse", modelerr.ErrUnsupportedFormat, "document has no vstrands")
	}
	parsed := Parsed{Kind: Legacy, Tag: doc.Format, Doc: doc}
	switch doc.Format {
	case FormatTag:
		parsed.Kind = Current
	case "":
		o.logger.Printf("codec: no format tag on %q, reading as legacy", doc.Name)
	default:
		o.logger.Printf("codec: unrecognised format tag %q on %q, reading as legacy", doc.Format, doc.Name)
	}
	return parsed, nil
}

// Load parses data and builds a Part from it
func Load(data []byte, opts ...Option) (*part.Part, error) {
	parsed, err := Parse(data, opts...)
	if err != nil {
		return nil, err
	}
	return Build(parsed, opts...)
}

// Decode reads a whole document from r and builds a Part from it
func Decode(r io.Reader, opts ...Option) (*part.Part, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Load(data, opts...)
}

// Build turns a parsed document into a Part.
// Current documents must agree with themselves on every 5' link; in legacy ones the 5' links are only checked and logged.
// A link half naming a helix without an index, or the reverse, fails a current document and is skipped in a legacy one.
func Build(parsed Parsed, opts ...Option) (*part.Part, error) {
	o := newOptions(opts)
	doc := parsed.Doc
	if doc == nil {
		return nil, modelerr.New("load", modelerr.ErrMalformedDocument, "nothing parsed")
	}
	lt, err := documentLattice(parsed, o)
	if err != nil {
		return nil, err
	}
	p := part.New(doc.Name, lt)

	for i, vs := range doc.VStrands {
		if err := checkLengths(vs); err != nil {
			return nil, fmt.Errorf("vstrand %d: %w", i, err)
		}
		vh, err := vhelix.New(len(vs.Scaf), vs.Num)
		if err != nil {
			return nil, err
		}
		if _, err := p.AddVirtualHelixAt(lattice.Coord{Row: vs.Row, Col: vs.Col}, vh, vs.Num); err != nil {
			return nil, err
		}
		for _, st := range vhelix.StrandTypes {
			if err := p.ClearStrand(vs.Num, st, 0, len(vs.Scaf)-1); err != nil {
				return nil, err
			}
		}
	}

	// every link is installed from its 5' side
	for _, vs := range doc.VStrands {
		for _, st := range vhelix.StrandTypes {
			for i, l := range strandLinks(vs, st) {
				if halfSet(l[0], l[1]) || halfSet(l[2], l[3]) {
					if parsed.Kind == Current {
						return nil, modelerr.At("load", modelerr.ErrMalformedDocument, vs.Num, st.String(), i, fmt.Sprintf("link %v names a helix or an index alone", l))
					}
					o.logger.Printf("codec: helix %d %s base %d: ignoring half set link %v", vs.Num, st, i, l)
				}
				if l[2] == vhelix.None || l[3] == vhelix.None {
					continue
				}
				if err := p.InstallXover(st, vs.Num, i, l[2], l[3]); err != nil {
					return nil, err
				}
			}
		}
	}

	for _, vs := range doc.VStrands {
		for _, st := range vhelix.StrandTypes {
			if err := checkUpstream(p, vs, st, parsed.Kind, o); err != nil {
				return nil, err
			}
		}
		if err := decorate(p, vs); err != nil {
			return nil, err
		}
	}
	o.logger.Printf("codec: loaded %q (%s schema, %s lattice, %d helices)", p.Name(), parsed.Kind, lt, p.Len())
	return p, nil
}

// documentLattice reads the lattice of a current document, or infers it from helix length for a legacy one
func documentLattice(parsed Parsed, o *options) (lattice.Type, error) {
	doc := parsed.Doc
	if parsed.Kind == Current {
		lt, err := lattice.ParseType(doc.Lattice)
		if err != nil {
			return 0, modelerr.New("load", modelerr.ErrMalformedDocument, err.Error())
		}
		return lt, nil
	}
	if len(doc.VStrands) == 0 {
		return 0, modelerr.New("load", modelerr.ErrUnsupportedFormat, "legacy document has no helices")
	}
	numBases := len(doc.VStrands[0].Scaf)
	matches := lattice.FromNumBases(numBases)
	switch len(matches) {
	case 0:
		return 0, modelerr.New("load", modelerr.ErrUnsupportedFormat, fmt.Sprintf("%d bases fits no lattice", numBases))
	case 1:
		return matches[0], nil
	}
	o.logger.Printf("codec: %d bases fits every lattice, using %s", numBases, o.lattice)
	return o.lattice, nil
}

func checkLengths(vs VStrand) error {
	n := len(vs.Scaf)
	if n == 0 {
		return modelerr.New("load", modelerr.ErrMalformedDocument, fmt.Sprintf("helix %d has no bases", vs.Num))
	}
	if len(vs.Stap) != n || len(vs.Loop) != n || len(vs.Skip) != n {
		return modelerr.New("load", modelerr.ErrMalformedDocument, fmt.Sprintf("helix %d arrays differ in length (scaf %d, stap %d, loop %d, skip %d)", vs.Num, n, len(vs.Stap), len(vs.Loop), len(vs.Skip)))
	}
	return nil
}

// halfSet is true when exactly one of a helix, index pair is unset
func halfSet(helix, index int) bool {
	return (helix == vhelix.None) != (index == vhelix.None)
}

func strandLinks(vs VStrand, st vhelix.StrandType) []Link {
	if st == vhelix.Scaffold {
		return vs.Scaf
	}
	return vs.Stap
}

// checkUpstream compares the 5' half of every link tuple with what the 3' halves produced
func checkUpstream(p *part.Part, vs VStrand, st vhelix.StrandType, kind Kind, o *options) error {
	vh, err := p.VirtualHelix(vs.Num)
	if err != nil {
		return err
	}
	for i, l := range strandLinks(vs, st) {
		want := vhelix.Ref{Helix: l[0], Index: l[1]}
		if l[0] == vhelix.None || l[1] == vhelix.None {
			want = vhelix.NoRef
		}
		b, _ := vh.Base(st, i)
		if b.Prev == want {
			continue
		}
		if kind == Current {
			return modelerr.At("load", modelerr.ErrReciprocity, vs.Num, st.String(), i, fmt.Sprintf("5' link %v but upstream base gives %v", want, b.Prev))
		}
		o.logger.Printf("codec: helix %d %s base %d: ignoring 5' link %v, upstream base gives %v", vs.Num, st, i, want, b.Prev)
	}
	return nil
}

// decorate applies colours, insertions and modifiers of one vstrand
func decorate(p *part.Part, vs VStrand) error {
	for _, c := range vs.StapColors {
		if err := p.ApplyColor(vhelix.Staple, vs.Num, c[0], c[1]); err != nil {
			return err
		}
	}
	for _, c := range vs.ScafColors {
		if err := p.ApplyColor(vhelix.Scaffold, vs.Num, c[0], c[1]); err != nil {
			return err
		}
	}
	// loop and skip share one scaffold decoration per base
	for i := range vs.Loop {
		if n := vs.Loop[i] + vs.Skip[i]; n != 0 {
			if err := p.InstallInsertion(vhelix.Scaffold, vs.Num, i, n); err != nil {
				return err
			}
		}
	}
	for _, l := range vs.ScafLoop {
		if l[1] == 0 {
			continue
		}
		if err := p.InstallInsertion(vhelix.Scaffold, vs.Num, l[0], l[1]); err != nil {
			return err
		}
	}
	for _, l := range vs.StapLoop {
		if l[1] == 0 {
			continue
		}
		if err := p.InstallInsertion(vhelix.Staple, vs.Num, l[0], l[1]); err != nil {
			return err
		}
	}
	for _, m := range vs.Mods {
		st, err := vhelix.ParseStrandType(m.Strand)
		if err != nil {
			return modelerr.At("load", modelerr.ErrMalformedDocument, vs.Num, m.Strand, m.Index, err.Error())
		}
		if err := p.SetModifier(st, vs.Num, m.Index, m.Name, m.Sequence); err != nil {
			return err
		}
	}
	return nil
}
