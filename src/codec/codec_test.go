package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/will-rowe/origami/src/lattice"
	"github.com/will-rowe/origami/src/modelerr"
	"github.com/will-rowe/origami/src/part"
	"github.com/will-rowe/origami/src/pathtrace"
	"github.com/will-rowe/origami/src/vhelix"
)

// recorder collects log lines
type recorder struct {
	lines []string
}

func (r *recorder) Printf(format string, v ...interface{}) {
	r.lines = append(r.lines, fmt.Sprintf(format, v...))
}

func (r *recorder) contains(s string) bool {
	for _, l := range r.lines {
		if strings.Contains(l, s) {
			return true
		}
	}
	return false
}

// emptyVStrand is a helix record of n unlinked bases
func emptyVStrand(num, row, col, n int) VStrand {
	vs := VStrand{
		Num: num, Row: row, Col: col,
		Scaf: make([]Link, n), Stap: make([]Link, n),
		Loop: make([]int, n), Skip: make([]int, n),
		ScafLoop: []Pair{}, StapLoop: []Pair{}, StapColors: []Pair{},
	}
	for i := 0; i < n; i++ {
		vs.Scaf[i] = Link{-1, -1, -1, -1}
		vs.Stap[i] = Link{-1, -1, -1, -1}
	}
	return vs
}

// legacyCrossover is two 21-base helices whose scaffold runs up helix 0 and back down helix 1
func legacyCrossover(t *testing.T) []byte {
	t.Helper()
	h0, h1 := emptyVStrand(0, 0, 0, 21), emptyVStrand(1, 0, 1, 21)
	for i := 0; i < 21; i++ {
		h0.Scaf[i] = Link{0, i - 1, 0, i + 1}
		h1.Scaf[i] = Link{1, i + 1, 1, i - 1}
	}
	h0.Scaf[0] = Link{-1, -1, 0, 1}
	h0.Scaf[20] = Link{0, 19, 1, 20}
	h1.Scaf[20] = Link{0, 20, 1, 19}
	h1.Scaf[0] = Link{1, 1, -1, -1}
	h0.Stap[2] = Link{-1, -1, 0, 1}
	h0.Stap[1] = Link{0, 2, -1, -1}
	h0.StapColors = []Pair{{2, 0xcc0000}}
	h1.Loop[3], h1.Skip[3] = 2, -1
	data, err := json.Marshal(LegacyDocument{Name: "legacy.json", VStrands: []VStrand{h0, h1}})
	if err != nil {
		t.Fatal(err)
	}
	return data
}

// designedPart builds a small decorated design through the editing operations
func designedPart(t *testing.T) *part.Part {
	t.Helper()
	p := part.New("design", lattice.Honeycomb)
	for id, c := range []lattice.Coord{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 1, Col: 1}} {
		vh, _ := vhelix.New(42, id)
		if _, err := p.AddVirtualHelixAt(c, vh, id); err != nil {
			t.Fatal(err)
		}
	}
	steps := []func() error{
		func() error { return p.InstallXover(vhelix.Scaffold, 0, 41, 1, 0) },
		func() error { return p.ClearStrand(2, vhelix.Staple, 10, 11) },
		func() error { return p.ClearStrand(0, vhelix.Staple, 19, 20) },
		func() error { return p.InstallXover(vhelix.Staple, 2, 10, 0, 20) },
		func() error { return p.ApplyColor(vhelix.Staple, 2, 0, 0x249a2a) },
		func() error { return p.ApplyColor(vhelix.Scaffold, 1, 7, 0x0066cc) },
		func() error { return p.InstallInsertion(vhelix.Scaffold, 0, 12, 3) },
		func() error { return p.InstallInsertion(vhelix.Scaffold, 1, 30, -1) },
		func() error { return p.InstallInsertion(vhelix.Staple, 2, 5, 1) },
		func() error { return p.SetModifier(vhelix.Staple, 0, 0, "biotin", "T") },
	}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("edit %d: %v", i, err)
		}
	}
	return p
}

func TestRoundTrip(t *testing.T) {
	p := designedPart(t)
	first, err := Marshal(p)
	if err != nil {
		t.Fatal(err)
	}
	parsed, err := Parse(first)
	if err != nil || parsed.Kind != Current {
		t.Fatalf("saved document should parse as current: %v %v", parsed.Kind, err)
	}
	loaded, err := Load(first, WithLogger(&recorder{}))
	if err != nil {
		t.Fatal(err)
	}
	if err := loaded.Validate(); err != nil {
		t.Fatal(err)
	}
	second, err := Marshal(loaded)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("round trip changed the document:\n%s\n%s", first, second)
	}
}

func TestDocumentLayout(t *testing.T) {
	p := designedPart(t)
	doc := Save(p)
	if doc.Format != FormatTag || doc.Lattice != "honeycomb" || len(doc.VStrands) != 3 {
		t.Fatalf("unexpected header: %+v", doc)
	}
	h0 := doc.VStrands[0]
	if h0.Scaf[41] != (Link{0, 40, 1, 0}) || h0.Scaf[0] != (Link{-1, -1, 0, 1}) {
		t.Fatalf("unexpected link tuples: %v %v", h0.Scaf[0], h0.Scaf[41])
	}
	if h0.Loop[12] != 3 || doc.VStrands[1].Skip[30] != -1 {
		t.Fatal("loop and skip arrays not filled from scaffold insertions")
	}
	if !reflect.DeepEqual(doc.VStrands[2].StapLoop, []Pair{{5, 1}}) {
		t.Fatalf("unexpected stapLoop: %v", doc.VStrands[2].StapLoop)
	}
	if !reflect.DeepEqual(doc.VStrands[2].StapColors, []Pair{{0, 0x249a2a}}) {
		t.Fatalf("unexpected stap_colors: %v", doc.VStrands[2].StapColors)
	}
	raw, _ := Marshal(p)
	for _, key := range []string{`".format":"caDNAno2-vstrands"`, `"scafLoop":[]`, `"stap_colors":`} {
		if !bytes.Contains(raw, []byte(key)) {
			t.Fatalf("document is missing %s", key)
		}
	}
	empty, _ := Marshal(part.New("empty", lattice.Square))
	if !bytes.Contains(empty, []byte(`"vstrands":[]`)) || bytes.Contains(empty, []byte("mods")) {
		t.Fatalf("unexpected empty document: %s", empty)
	}
}

func TestLoadLegacy(t *testing.T) {
	rec := &recorder{}
	p, err := Load(legacyCrossover(t), WithLogger(rec))
	if err != nil {
		t.Fatal(err)
	}
	if !rec.contains("reading as legacy") {
		t.Fatalf("legacy fallback was not logged: %v", rec.lines)
	}
	if p.Lattice() != lattice.Honeycomb || p.Len() != 2 {
		t.Fatalf("unexpected part: %v with %d helices", p.Lattice(), p.Len())
	}
	if err := p.Validate(); err != nil {
		t.Fatal(err)
	}

	breaks := pathtrace.FindBreakpoints(p, vhelix.Scaffold)
	if len(breaks) != 1 {
		t.Fatalf("expected a single scaffold breakpoint, got %v", breaks)
	}
	steps, err := pathtrace.Trace(p, breaks[0])
	if err != nil {
		t.Fatal(err)
	}
	synthetic, seen := 0, []int{}
	for _, s := range steps {
		if s.Synthetic {
			synthetic++
			continue
		}
		if len(seen) == 0 || seen[len(seen)-1] != s.Helix {
			seen = append(seen, s.Helix)
		}
	}
	if synthetic != 1 || !reflect.DeepEqual(seen, []int{0, 1}) {
		t.Fatalf("trace should visit helix 0 then 1 with one midpoint: %v, %d midpoints", seen, synthetic)
	}
	last := steps[len(steps)-1]
	if last.Helix != 1 || last.Index != 0 {
		t.Fatalf("trace should end at helix 1 base 0, got %v", last.Address)
	}

	vh0, _ := p.VirtualHelix(0)
	if vh0.Color(vhelix.Staple, 2) != 0xcc0000 || !vh0.Is5PrimeEnd(vhelix.Staple, 2) {
		t.Fatal("staple colour or strand was not restored")
	}
	vh1, _ := p.VirtualHelix(1)
	if ins, ok := vh1.Decorated(vhelix.Scaffold).Insertion(3); !ok || ins.Length != 1 {
		t.Fatalf("loop and skip should combine into one insertion of 1, got %+v", ins)
	}
}

func TestLegacyExport(t *testing.T) {
	p := designedPart(t)
	data, err := MarshalLegacy(p)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(data, []byte(".format")) {
		t.Fatal("legacy export must not carry a format tag")
	}
	back, err := Load(data, WithLogger(&recorder{}))
	if err != nil {
		t.Fatal(err)
	}
	want, got := Save(p), Save(back)
	for i := range want.VStrands {
		if !reflect.DeepEqual(want.VStrands[i].Scaf, got.VStrands[i].Scaf) || !reflect.DeepEqual(want.VStrands[i].Stap, got.VStrands[i].Stap) {
			t.Fatalf("helix %d connectivity changed through the legacy layout", want.VStrands[i].Num)
		}
	}
}

func TestUpstreamLinks(t *testing.T) {
	doc := Save(designedPart(t))
	doc.VStrands[1].Scaf[0] = Link{-1, -1, 1, 1}
	data, _ := json.Marshal(doc)
	if _, err := Load(data, WithLogger(&recorder{})); !errors.Is(err, modelerr.ErrReciprocity) {
		t.Fatalf("expected ErrReciprocity for a current document, got %v", err)
	}

	legacy := LegacyDocument{Name: doc.Name, VStrands: doc.VStrands}
	data, _ = json.Marshal(legacy)
	rec := &recorder{}
	if _, err := Load(data, WithLogger(rec)); err != nil {
		t.Fatalf("legacy 5' links are advisory: %v", err)
	}
	if !rec.contains("ignoring 5' link") {
		t.Fatal("legacy 5' mismatch was not logged")
	}
}

func TestUnsupportedDocuments(t *testing.T) {
	quiet := WithLogger(&recorder{})
	tests := []struct {
		name string
		data string
		want error
	}{
		{"not json", `{"vstrands":`, modelerr.ErrMalformedDocument},
		{"no vstrands", `{"name":"nothing"}`, modelerr.ErrUnsupportedFormat},
		{"empty legacy", `{"name":"nothing","vstrands":[]}`, modelerr.ErrUnsupportedFormat},
		{"unknown lattice", `{".format":"caDNAno2-vstrands","lattice":"hex","vstrands":[]}`, modelerr.ErrMalformedDocument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load([]byte(tt.data), quiet); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}

	odd, _ := json.Marshal(LegacyDocument{Name: "odd", VStrands: []VStrand{emptyVStrand(0, 0, 0, 50)}})
	if _, err := Load(odd, quiet); !errors.Is(err, modelerr.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat for 50 bases, got %v", err)
	}
	if modelerr.KindOf(modelerr.ErrUnsupportedFormat) != modelerr.KindFormat {
		t.Fatal("format errors should be classed as such")
	}
}

func TestAmbiguousLegacyLattice(t *testing.T) {
	data, _ := json.Marshal(LegacyDocument{Name: "both", VStrands: []VStrand{emptyVStrand(0, 0, 0, 672)}})
	p, err := Load(data, WithLogger(&recorder{}))
	if err != nil {
		t.Fatal(err)
	}
	if p.Lattice() != lattice.Honeycomb {
		t.Fatalf("default lattice should be honeycomb, got %v", p.Lattice())
	}
	p, err = Load(data, WithLogger(&recorder{}), WithLattice(lattice.Square))
	if err != nil {
		t.Fatal(err)
	}
	if p.Lattice() != lattice.Square {
		t.Fatalf("lattice option was ignored, got %v", p.Lattice())
	}
	vh, _ := p.VirtualHelix(0)
	if !vh.IsEmpty() {
		t.Fatal("unlinked legacy helix should load empty")
	}
}

func TestBinaryRoundTrip(t *testing.T) {
	p := designedPart(t)
	var buf bytes.Buffer
	if err := EncodeBinary(&buf, p); err != nil {
		t.Fatal(err)
	}
	back, err := DecodeBinary(&buf, WithLogger(&recorder{}))
	if err != nil {
		t.Fatal(err)
	}
	want, _ := Marshal(p)
	got, _ := Marshal(back)
	if !bytes.Equal(want, got) {
		t.Fatal("binary snapshot did not restore the design")
	}
	if _, err := UnmarshalBinary([]byte{0xc1}); !errors.Is(err, modelerr.ErrMalformedDocument) {
		t.Fatalf("expected ErrMalformedDocument, got %v", err)
	}
}

func TestShortTuples(t *testing.T) {
	quiet := WithLogger(&recorder{})
	data := legacyCrossover(t)
	if !bytes.Contains(data, []byte("[-1,-1,-1,-1]")) {
		t.Fatal("fixture has no unlinked base")
	}
	for _, tc := range []struct {
		name string
		from string
		to   string
	}{
		{"two value link", "[-1,-1,-1,-1]", "[-1,-1]"},
		{"five value link", "[-1,-1,-1,-1]", "[-1,-1,-1,-1,-1]"},
		{"empty link", "[-1,-1,-1,-1]", "[]"},
		{"one value colour", "[2,13369344]", "[2]"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			bad := bytes.Replace(data, []byte(tc.from), []byte(tc.to), 1)
			if bytes.Equal(bad, data) {
				t.Fatalf("fixture does not contain %s", tc.from)
			}
			if _, err := Load(bad, quiet); !errors.Is(err, modelerr.ErrMalformedDocument) {
				t.Fatalf("expected ErrMalformedDocument, got %v", err)
			}
		})
	}
}

func TestHalfSetLinks(t *testing.T) {
	var legacy LegacyDocument
	if err := json.Unmarshal(legacyCrossover(t), &legacy); err != nil {
		t.Fatal(err)
	}
	legacy.VStrands[0].Scaf[20] = Link{0, 19, 1, -1}
	data, _ := json.Marshal(legacy)
	rec := &recorder{}
	p, err := Load(data, WithLogger(rec))
	if err != nil {
		t.Fatalf("legacy half set links should be skipped: %v", err)
	}
	if p.HasCrossoverAt(vhelix.Scaffold, 0, 20) || p.HasCrossoverAt(vhelix.Scaffold, 1, 20) {
		t.Fatal("half set link was installed as a crossover")
	}
	if !rec.contains("half set link") {
		t.Fatalf("skipped link was not logged: %v", rec.lines)
	}

	doc := Save(designedPart(t))
	doc.VStrands[0].Scaf[19] = Link{0, 18, 1, -1}
	data, _ = json.Marshal(doc)
	if _, err := Load(data, WithLogger(&recorder{})); !errors.Is(err, modelerr.ErrMalformedDocument) {
		t.Fatalf("expected ErrMalformedDocument for a current document, got %v", err)
	}
	doc = Save(designedPart(t))
	doc.VStrands[0].Scaf[19] = Link{-1, 18, 0, 20}
	data, _ = json.Marshal(doc)
	if _, err := Load(data, WithLogger(&recorder{})); !errors.Is(err, modelerr.ErrMalformedDocument) {
		t.Fatalf("expected ErrMalformedDocument for a half set 5' link, got %v", err)
	}
}
