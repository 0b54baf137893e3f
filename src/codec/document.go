// Package codec converts a Part to and from the vstrands JSON exchange format.
//
// Two schemas are read: the current one, tagged by ".format", and the untagged legacy one.
// Only the current schema is written by Save; SaveLegacy writes the old layout for older tools.
package codec

import (
	"encoding/json"
	"fmt"
	"log"

	"gopkg.in/vmihailenco/msgpack.v2"

	"github.com/will-rowe/origami/src/lattice"
	"github.com/will-rowe/origami/src/modelerr"
)

// FormatTag marks a document in the current schema
const FormatTag = "caDNAno2-vstrands"

// Link is one base slot: 5' helix, 5' index, 3' helix, 3' index, -1 for none
type Link [4]int

// UnmarshalJSON refuses tuples that are not exactly four long
func (l *Link) UnmarshalJSON(b []byte) error {
	var xs []int
	if err := json.Unmarshal(b, &xs); err != nil {
		return err
	}
	return fill(l[:], xs, "link")
}

// DecodeMsgpack refuses tuples that are not exactly four long
func (l *Link) DecodeMsgpack(dec *msgpack.Decoder) error {
	var xs []int
	if err := dec.Decode(&xs); err != nil {
		return err
	}
	return fill(l[:], xs, "link")
}

// Pair is a sparse [index, value] entry
type Pair [2]int

// UnmarshalJSON refuses entries that are not exactly two long
func (p *Pair) UnmarshalJSON(b []byte) error {
	var xs []int
	if err := json.Unmarshal(b, &xs); err != nil {
		return err
	}
	return fill(p[:], xs, "pair")
}

// DecodeMsgpack refuses entries that are not exactly two long
func (p *Pair) DecodeMsgpack(dec *msgpack.Decoder) error {
	var xs []int
	if err := dec.Decode(&xs); err != nil {
		return err
	}
	return fill(p[:], xs, "pair")
}

// fill copies a decoded tuple into dst, which it must match in length
func fill(dst, xs []int, what string) error {
	if len(xs) != len(dst) {
		return modelerr.New("parse", modelerr.ErrMalformedDocument, fmt.Sprintf("%s %v has %d values, want %d", what, xs, len(xs), len(dst)))
	}
	copy(dst, xs)
	return nil
}

// Document is the current schema
type Document struct {
	Format   string    `json:".format" msgpack:".format"`
	Name     string    `json:"name" msgpack:"name"`
	Lattice  string    `json:"lattice" msgpack:"lattice"`
	VStrands []VStrand `json:"vstrands" msgpack:"vstrands"`
}

// LegacyDocument is the untagged schema written by older tools
type LegacyDocument struct {
	Name     string    `json:"name"`
	VStrands []VStrand `json:"vstrands"`
}

// VStrand is the record of one helix.
// Loop and Skip hold scaffold insertion and skip lengths per base, StapLoop the staple ones.
type VStrand struct {
	Num        int      `json:"num" msgpack:"num"`
	Row        int      `json:"row" msgpack:"row"`
	Col        int      `json:"col" msgpack:"col"`
	Scaf       []Link   `json:"scaf" msgpack:"scaf"`
	Stap       []Link   `json:"stap" msgpack:"stap"`
	Loop       []int    `json:"loop" msgpack:"loop"`
	Skip       []int    `json:"skip" msgpack:"skip"`
	ScafLoop   []Pair   `json:"scafLoop" msgpack:"scafLoop"`
	StapLoop   []Pair   `json:"stapLoop" msgpack:"stapLoop"`
	StapColors []Pair   `json:"stap_colors" msgpack:"stap_colors"`
	ScafColors []Pair   `json:"scaf_colors,omitempty" msgpack:"scaf_colors,omitempty"`
	Mods       []Modref `json:"mods,omitempty" msgpack:"mods,omitempty"`
}

// Modref places a named modifier on a base
type Modref struct {
	Strand   string `json:"strand" msgpack:"strand"`
	Index    int    `json:"idx" msgpack:"idx"`
	Name     string `json:"name" msgpack:"name"`
	Sequence string `json:"seq,omitempty" msgpack:"seq,omitempty"`
}

// Logger receives the codec's progress and compatibility notes
type Logger interface {
	Printf(format string, v ...interface{})
}

type options struct {
	logger  Logger
	lattice lattice.Type
}

// Option configures Parse and Load
type Option func(*options)

// WithLogger sends codec notes to l instead of the standard logger
func WithLogger(l Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithLattice picks the lattice for legacy documents whose helix length fits both lattices
func WithLattice(lt lattice.Type) Option {
	return func(o *options) {
		o.lattice = lt
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		logger:  log.Default(),
		lattice: lattice.Honeycomb,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
