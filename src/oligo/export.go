package oligo

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
	"github.com/will-rowe/gfa"

	"github.com/will-rowe/origami/src/part"
	"github.com/will-rowe/origami/src/version"
	"github.com/will-rowe/origami/src/vhelix"
)

// StapleHeader is the first row of a staple list
var StapleHeader = []string{"Start", "End", "Sequence", "Length", "Color"}

// Blank is an Assignment with no scaffold sequence, every position reads N
func Blank(p *part.Part) *Assignment {
	return &Assignment{p: p, letters: make(map[vhelix.Ref]alphabet.Letters)}
}

func colorString(c int) string {
	if c == vhelix.NoColor {
		return ""
	}
	return fmt.Sprintf("#%06x", c)
}

// WriteStapleCSV writes one row per staple oligo: 5' base, 3' base, sequence, length and colour
func WriteStapleCSV(w io.Writer, a *Assignment, staples []*Oligo) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(StapleHeader); err != nil {
		return err
	}
	for _, o := range staples {
		end := o.End()
		row := []string{
			o.Name(),
			fmt.Sprintf("%d[%d]", end.Helix, end.Index),
			a.Annotated(o),
			strconv.Itoa(o.Length(a.p)),
			colorString(o.Color),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFASTA writes every oligo as a FASTA record named after its 5' base
func WriteFASTA(w io.Writer, a *Assignment, oligos []*Oligo, width int) error {
	fw := fasta.NewWriter(w, width)
	for _, o := range oligos {
		s := linear.NewSeq(o.Name(), a.Sequence(o), alphabet.DNA)
		s.Desc = fmt.Sprintf("%s length=%d", o.Strand, o.Length(a.p))
		if o.Circular {
			s.Desc += " circular"
		}
		if _, err := fw.Write(s); err != nil {
			return err
		}
	}
	return nil
}

// BuildGFA turns oligos into a GFA graph: one segment per helix run, a link at every crossover and a path per oligo
func BuildGFA(a *Assignment, oligos []*Oligo) (*gfa.GFA, error) {
	g := gfa.NewGFA()
	_ = g.AddVersion(1)
	g.AddComment([]byte(fmt.Sprintf("strand graph of %q written by origami (version %v)", a.p.Name(), version.GetVersion())))
	segID := 0
	for _, o := range oligos {
		var names, overlaps [][]byte
		pos := 0
		for _, seg := range o.Segments() {
			segID++
			name := strconv.Itoa(segID)
			var letters alphabet.Letters
			for _, addr := range o.Bases[pos : pos+seg.Len()] {
				letters = append(letters, a.chunk(o.Strand, addr)...)
			}
			pos += seg.Len()
			seq := alphabet.LettersToBytes(letters)
			if len(seq) == 0 {
				seq = []byte("*")
			}
			s, err := gfa.NewSegment([]byte(name), seq)
			if err != nil {
				return nil, err
			}
			ofs, err := gfa.NewOptionalFields([]byte(fmt.Sprintf("HX:i:%d", seg.Helix)))
			if err != nil {
				return nil, err
			}
			s.AddOptionalFields(ofs)
			s.Add(g)
			if len(names) > 0 {
				if err := addLink(g, segID-1, segID); err != nil {
					return nil, err
				}
			}
			names = append(names, []byte(name+"+"))
			overlaps = append(overlaps, []byte("0M"))
		}
		if o.Circular && len(names) > 1 {
			if err := addLink(g, segID, segID-len(names)+1); err != nil {
				return nil, err
			}
		}
		path, err := gfa.NewPath([]byte(fmt.Sprintf("%s_%s", o.Strand, o.Name())), names, overlaps)
		if err != nil {
			return nil, err
		}
		path.Add(g)
	}
	return g, nil
}

func addLink(g *gfa.GFA, from, to int) error {
	link, err := gfa.NewLink([]byte(strconv.Itoa(from)), []byte("+"), []byte(strconv.Itoa(to)), []byte("+"), []byte("0M"))
	if err != nil {
		return err
	}
	link.Add(g)
	return nil
}

// WriteGFA writes a GFA instance to w
func WriteGFA(w io.Writer, g *gfa.GFA) error {
	writer, err := gfa.NewWriter(w, g)
	if err != nil {
		return err
	}
	return g.WriteGFAContent(writer)
}

// ReadGFA reads a GFA instance back from r
func ReadGFA(r io.Reader) (*gfa.GFA, error) {
	reader, err := gfa.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("can't read gfa: %v", err)
	}
	g := reader.CollectGFA()
	for {
		line, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading line in gfa: %v", err)
		}
		if err := line.Add(g); err != nil {
			return nil, fmt.Errorf("error adding line to GFA instance: %v", err)
		}
	}
	return g, nil
}
