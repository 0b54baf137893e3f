// Package lattice holds the 2-D helix lattices (honeycomb and square) and the geometry derived from them
package lattice

import (
	"fmt"
	"math"
	"strings"
)

// geometry constants, in nanometres
const (
	HelixRadius = 1.0
	RisePerBase = 0.34
)

var root3 = math.Sqrt(3)

// Type is a cross-section lattice
type Type int

const (
	Honeycomb Type = iota
	Square
)

// Types lists every supported lattice
var Types = []Type{Honeycomb, Square}

func (t Type) String() string {
	switch t {
	case Honeycomb:
		return "honeycomb"
	case Square:
		return "square"
	}
	return fmt.Sprintf("lattice(%d)", int(t))
}

// ParseType converts a lattice name back to a Type
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "honeycomb", "hc":
		return Honeycomb, nil
	case "square", "sq":
		return Square, nil
	}
	return 0, fmt.Errorf("unknown lattice type: %q", s)
}

// Step is the number of bases in one repeat of the lattice's crossover pattern.
// Helices are sized and resized in multiples of it.
func (t Type) Step() int {
	if t == Square {
		return 32
	}
	return 21
}

// TwistPerBase is the helical twist between adjacent bases, in degrees
func (t Type) TwistPerBase() float64 {
	if t == Square {
		return 360.0 * 3.0 / 32.0
	}
	return 360.0 / 10.5
}

// FromNumBases returns the lattices whose step divides numBases
func FromNumBases(numBases int) []Type {
	var matches []Type
	if numBases <= 0 {
		return matches
	}
	for _, t := range Types {
		if numBases%t.Step() == 0 {
			matches = append(matches, t)
		}
	}
	return matches
}

// Coord is a (row, col) lattice position
type Coord struct {
	Row int
	Col int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// EvenParity is true when row and col have the same parity.
// Even-parity positions hold even-numbered helices.
func (c Coord) EvenParity() bool {
	return c.Row&1 == c.Col&1
}

// Direction names one of the three neighbour slots of a helix
type Direction int

const (
	P0 Direction = iota
	P1
	P2
)

// Directions lists the neighbour slots in order
var Directions = [3]Direction{P0, P1, P2}

func (d Direction) String() string {
	return fmt.Sprintf("p%d", int(d))
}

// Neighbor returns the coordinate adjacent to c in direction d.
// The slot order flips with the parity of c.
func Neighbor(c Coord, d Direction) Coord {
	if c.EvenParity() {
		switch d {
		case P0:
			return Coord{c.Row, c.Col + 1}
		case P1:
			return Coord{c.Row - 1, c.Col}
		default:
			return Coord{c.Row, c.Col - 1}
		}
	}
	switch d {
	case P0:
		return Coord{c.Row, c.Col - 1}
	case P1:
		return Coord{c.Row + 1, c.Col}
	default:
		return Coord{c.Row, c.Col + 1}
	}
}

// Neighbors returns the three adjacent coordinates in p0, p1, p2 order
func Neighbors(c Coord) [3]Coord {
	var out [3]Coord
	for i, d := range Directions {
		out[i] = Neighbor(c, d)
	}
	return out
}

// crossovers holds, per neighbour direction, the offsets within one step where a
// crossover to that neighbour lines up. Low offsets are the left base of a
// crossover pair and high offsets the right one.
type crossovers struct {
	scafLow, scafHigh, stapLow, stapHigh [3][]int
}

var (
	honeycombCrossovers = crossovers{
		scafLow:  [3][]int{{1, 12}, {8, 19}, {5, 15}},
		scafHigh: [3][]int{{2, 13}, {9, 20}, {6, 16}},
		stapLow:  [3][]int{{17}, {3}, {10}},
		stapHigh: [3][]int{{18}, {4}, {11}},
	}
	squareCrossovers = crossovers{
		scafLow:  [3][]int{{4, 26, 15}, {18, 28, 7}, {10, 20, 31}},
		scafHigh: [3][]int{{5, 27, 16}, {19, 29, 8}, {11, 21, 0}},
		stapLow:  [3][]int{{31}, {23}, {15}},
		stapHigh: [3][]int{{0}, {24}, {16}},
	}
)

// CrossoverOffsets returns the offsets within one step at which a helix can cross
// to its neighbour in direction d, on the scaffold or the staple. low picks the
// left base of each crossover pair. The slice must not be modified.
func (t Type) CrossoverOffsets(scaffold bool, d Direction, low bool) []int {
	table := &honeycombCrossovers
	if t == Square {
		table = &squareCrossovers
	}
	if d < P0 || d > P2 {
		return nil
	}
	switch {
	case scaffold && low:
		return table.scafLow[d]
	case scaffold:
		return table.scafHigh[d]
	case low:
		return table.stapLow[d]
	}
	return table.stapHigh[d]
}

// PositionXY is the helix axis position of a lattice coordinate
func (t Type) PositionXY(c Coord, radius float64) (x, y float64) {
	if t == Square {
		return float64(c.Col) * radius * 2, float64(c.Row) * radius * 2
	}
	x = float64(c.Col) * radius * root3
	y = float64(c.Row) * radius * 3
	if !c.EvenParity() {
		y += radius
	}
	return x, y
}

// Vec3 is a point in nanometres
type Vec3 struct {
	X, Y, Z float64
}

// Midpoint returns the point halfway between v and o
func (v Vec3) Midpoint(o Vec3) Vec3 {
	return Vec3{(v.X + o.X) / 2, (v.Y + o.Y) / 2, (v.Z + o.Z) / 2}
}

// BasePosition is the backbone position of the base at index on the helix at c.
// Helices of odd parity start half a turn out of phase.
func (t Type) BasePosition(c Coord, index int, evenParity bool) Vec3 {
	cx, cy := t.PositionXY(c, HelixRadius)
	angle := float64(index) * t.TwistPerBase()
	if !evenParity {
		angle += 180
	}
	rad := angle * math.Pi / 180
	return Vec3{
		X: cx + HelixRadius*math.Cos(rad),
		Y: cy + HelixRadius*math.Sin(rad),
		Z: float64(index) * RisePerBase,
	}
}
