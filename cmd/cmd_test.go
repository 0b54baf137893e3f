package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/will-rowe/origami/src/codec"
	"github.com/will-rowe/origami/src/lattice"
	"github.com/will-rowe/origami/src/vhelix"
)

var testConf = Config{Lattice: "honeycomb", FastaWidth: 60}

func TestBlock(t *testing.T) {
	p, err := block("tile", lattice.Square, 2, 3, 0)
	if err != nil {
		t.Fatal(err)
	}
	if p.Len() != 6 || p.MaxNumBases() != 64 {
		t.Fatalf("expected 6 helices of 64 bases, got %d of %d", p.Len(), p.MaxNumBases())
	}
	if _, err := block("tile", lattice.Honeycomb, 0, 3, 0); err == nil {
		t.Fatal("empty block should fail")
	}
	if _, err := block("tile", lattice.Honeycomb, 1, 1, 20); err == nil {
		t.Fatal("helix size off the lattice step should fail")
	}
}

func TestApplyEdit(t *testing.T) {
	p, err := block("tile", lattice.Honeycomb, 1, 2, 42)
	if err != nil {
		t.Fatal(err)
	}
	for _, op := range []string{
		"xover scaffold 0 41 1 0",
		"clear staple 0 19 20",
		"color stap 0 21 #00ff00",
		"insert scaffold 1 3 -1",
		"mod staple 0 0 biotin T",
		"add 1 1 42",
	} {
		if err := applyEdit(p, op); err != nil {
			t.Fatalf("%q: %v", op, err)
		}
	}
	if !p.HasCrossoverAt(vhelix.Scaffold, 0, 41) || p.HasStrandAt(vhelix.Staple, 0, 20) || p.Len() != 3 {
		t.Fatal("edits were not applied")
	}
	vh, _ := p.VirtualHelix(0)
	if vh.Color(vhelix.Staple, 21) != 0x00ff00 {
		t.Fatalf("colour not applied: %x", vh.Color(vhelix.Staple, 21))
	}
	for _, tc := range []struct {
		op   string
		want string
	}{
		{"", "empty edit"},
		{"twist 1", "unknown edit"},
		{"xover scaffold 0 41", "needs 5 arguments"},
		{"xover dna 0 41 1 0", "unknown strand type"},
		{"color staple 0 0 purple", "bad colour"},
		{"remove x", "bad number"},
		{"unxover scaffold 0 5", "no crossover"},
	} {
		err := applyEdit(p, tc.op)
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Errorf("%q: expected error containing %q, got %v", tc.op, tc.want, err)
		}
	}
}

func TestDesignFiles(t *testing.T) {
	p, err := block("tile", lattice.Honeycomb, 1, 2, 42)
	if err != nil {
		t.Fatal(err)
	}
	if err := applyEdit(p, "xover scaffold 0 41 1 0"); err != nil {
		t.Fatal(err)
	}
	want, _ := codec.Marshal(p)
	dir := t.TempDir()
	for _, name := range []string{"tile.json", "tile.msgpack"} {
		file := filepath.Join(dir, name)
		if err := writeDesign(file, p, false); err != nil {
			t.Fatal(err)
		}
		back, err := loadDesign(testConf, file)
		if err != nil {
			t.Fatal(err)
		}
		got, _ := codec.Marshal(back)
		if !bytes.Equal(want, got) {
			t.Fatalf("%s did not round trip", name)
		}
	}
	if err := writeDesign(filepath.Join(dir, "tile.msgpack"), p, true); err == nil {
		t.Fatal("legacy snapshots should be refused")
	}
	if _, err := loadDesign(testConf, filepath.Join(dir, "tile.csv")); err == nil {
		t.Fatal("unknown extension should be refused")
	}
}

func TestValidate(t *testing.T) {
	p, _ := block("tile", lattice.Honeycomb, 1, 2, 42)
	data, _ := codec.Marshal(p)
	if err := validate(data); err != nil {
		t.Fatal(err)
	}
	if err := validate([]byte(`{"name": "x"}`)); err == nil {
		t.Fatal("document without vstrands should not validate")
	}
}

func TestDescribeAndTrace(t *testing.T) {
	p, _ := block("tile", lattice.Honeycomb, 1, 2, 21)
	if err := applyEdit(p, "xover scaffold 0 20 1 0"); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := describe(&buf, p); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "scaffold oligos:\t1 (0 circular, 42 nt)") {
		t.Fatalf("unexpected summary:\n%s", buf.String())
	}
	buf.Reset()
	if err := writeTrace(&buf, p, vhelix.Address{Helix: 0, Strand: vhelix.Scaffold, Index: 0}); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	// header, 42 bases and one crossover midpoint
	if len(lines) != 44 || !strings.HasPrefix(lines[22], "-\t-\t") {
		t.Fatalf("unexpected trace of %d lines", len(lines))
	}
}

func TestAutoStapleEdit(t *testing.T) {
	p, err := block("tile", lattice.Honeycomb, 1, 2, 42)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := describe(&buf, p); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "open crossover sites: 8 scaffold, 4 staple") {
		t.Fatalf("unexpected crossover sites:\n%s", buf.String())
	}
	if err := applyEdit(p, "autostaple"); err != nil {
		t.Fatal(err)
	}
	buf.Reset()
	if err := describe(&buf, p); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"open crossover sites: 8 scaffold, 0 staple",
		"staple oligos:\t3 (1 circular, 84 nt)",
	} {
		if !strings.Contains(buf.String(), want) {
			t.Fatalf("summary is missing %q:\n%s", want, buf.String())
		}
	}
}

func TestLicenseHeader(t *testing.T) {
	files, err := filepath.Glob("*.go")
	if err != nil {
		t.Fatal(err)
	}
	for _, file := range files {
		if strings.HasSuffix(file, "_test.go") {
			continue
		}
		data, err := os.ReadFile(file)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Contains(data, []byte("// THE SOFTWARE.\n\npackage cmd\n")) {
			t.Errorf("%s: licence header should be followed by one blank line", file)
		}
	}
}
