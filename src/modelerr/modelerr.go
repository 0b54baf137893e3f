// Package modelerr holds the error taxonomy shared by the strand model packages.
package modelerr

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an error by who has to act on it
type Kind int

const (
	// KindUnknown is returned by KindOf for errors from outside the model
	KindUnknown Kind = iota
	// KindValidation is a bad index, coordinate or id supplied by the caller
	KindValidation
	// KindConsistency is a reciprocity or parity violation found while staging a commit
	KindConsistency
	// KindFormat is an unrecognised or malformed persisted document
	KindFormat
	// KindStructural is a cycle or orphaned link found while walking or resizing
	KindStructural
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConsistency:
		return "consistency"
	case KindFormat:
		return "format"
	case KindStructural:
		return "structural"
	}
	return "unknown"
}

// validation errors
var (
	ErrInvalidSize        = errors.New("invalid helix size")
	ErrIndexOutOfRange    = errors.New("base index out of range")
	ErrCoordinateOccupied = errors.New("lattice coordinate already holds a helix")
	ErrDuplicateID        = errors.New("helix id already in use")
	ErrUnknownHelix       = errors.New("no helix with that id")
	ErrHelixOwned         = errors.New("helix already belongs to a part")
	ErrParityMismatch     = errors.New("helix id parity does not match")
	ErrInvalidEndpoint    = errors.New("base is not a free strand terminus")
	ErrSelfCrossover      = errors.New("link would make a base point to itself")
	ErrNotACrossover      = errors.New("base has no crossover")
	ErrOverlappingStrand  = errors.New("range overlaps an existing strand")
	ErrInvalidDecoration  = errors.New("invalid decoration")
)

// consistency errors
var (
	ErrRenumberConflict = errors.New("renumber conflict")
	ErrReciprocity      = errors.New("link is not reciprocal")
	ErrDanglingLink     = errors.New("link references a missing base")
)

// format errors
var (
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrMalformedDocument = errors.New("malformed document")
)

// structural errors
var (
	ErrCycleDetected    = errors.New("cycle detected while tracing strand")
	ErrWouldOrphanLinks = errors.New("resize would orphan links")
)

var kinds = map[error]Kind{
	ErrInvalidSize:        KindValidation,
	ErrIndexOutOfRange:    KindValidation,
	ErrCoordinateOccupied: KindValidation,
	ErrDuplicateID:        KindValidation,
	ErrUnknownHelix:       KindValidation,
	ErrHelixOwned:         KindValidation,
	ErrParityMismatch:     KindValidation,
	ErrInvalidEndpoint:    KindValidation,
	ErrSelfCrossover:      KindValidation,
	ErrNotACrossover:      KindValidation,
	ErrOverlappingStrand:  KindValidation,
	ErrInvalidDecoration:  KindValidation,
	ErrRenumberConflict:   KindConsistency,
	ErrReciprocity:        KindConsistency,
	ErrDanglingLink:       KindConsistency,
	ErrUnsupportedFormat:  KindFormat,
	ErrMalformedDocument:  KindFormat,
	ErrCycleDetected:      KindStructural,
	ErrWouldOrphanLinks:   KindStructural,
}

// NoHelix marks an Error that is not tied to a helix or index
const NoHelix = -1

// Error carries the context of a failed model operation.
// Helix and Index are NoHelix when they do not apply, Strand is empty when
// the operation is not strand specific. Errors built by At always report
// their index, even an out of range one such as -1.
type Error struct {
	Op     string
	Helix  int
	Strand string
	Index  int
	Detail string
	Err    error
	atBase bool
}

// New returns an Error without base context
func New(op string, err error, detail string) *Error {
	return &Error{Op: op, Helix: NoHelix, Index: NoHelix, Detail: detail, Err: err}
}

// At returns an Error pointing at a single base
func At(op string, err error, helix int, strand string, index int, detail string) *Error {
	return &Error{Op: op, Helix: helix, Strand: strand, Index: index, Detail: detail, Err: err, atBase: true}
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	switch {
	case e.atBase, e.Helix != NoHelix && e.Index != NoHelix:
		fmt.Fprintf(&b, " (helix %d", e.Helix)
		if e.Strand != "" {
			fmt.Fprintf(&b, " %s", e.Strand)
		}
		fmt.Fprintf(&b, " index %d)", e.Index)
	case e.Helix != NoHelix:
		fmt.Fprintf(&b, " (helix %d)", e.Helix)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

// HasBase reports whether the error points at a single base
func (e *Error) HasBase() bool {
	return e.atBase || (e.Helix != NoHelix && e.Index != NoHelix)
}

// Unwrap exposes the sentinel so errors.Is works on wrapped model errors
func (e *Error) Unwrap() error {
	return e.Err
}

// Kind reports the class of the wrapped sentinel
func (e *Error) Kind() Kind {
	return KindOf(e.Err)
}

// KindOf returns the class of the model sentinel wrapped by err
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	for sentinel, k := range kinds {
		if errors.Is(err, sentinel) {
			return k
		}
	}
	return KindUnknown
}
