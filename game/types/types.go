package types

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidDimensions    = errors.New("grid dimensions must be positive")
	ErrInvalidNeighborOrder = errors.New("neighbor order must be a permutation of the four cardinal directions")
	ErrUnknownDirection     = errors.New("unknown direction")
)

// Point is a cell coordinate. X is the column, Y the row (growing downward).
type Point struct {
	X, Y int
}

// Add returns the cell one step away from p in direction d.
func (p Point) Add(d Direction) Point {
	delta := d.Delta()
	return Point{X: p.X + delta.X, Y: p.Y + delta.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Adjacent reports whether a and b share an edge (4-connectivity).
func Adjacent(a, b Point) bool {
	return abs(a.X-b.X)+abs(a.Y-b.Y) == 1
}

// Grid represents the game grid dimensions
type Grid struct {
	Width  int
	Height int
}

// Validate rejects grids with a non-positive side.
func (g Grid) Validate() error {
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("%dx%d: %w", g.Width, g.Height, ErrInvalidDimensions)
	}
	return nil
}

// Area is the number of cells on the grid.
func (g Grid) Area() int {
	return g.Width * g.Height
}

// Contains reports whether p lies on the grid.
func (g Grid) Contains(p Point) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// Index is the row-major offset of p. Callers must check Contains first.
func (g Grid) Index(p Point) int {
	return p.Y*g.Width + p.X
}

// At is the inverse of Index.
func (g Grid) At(i int) Point {
	return Point{X: i % g.Width, Y: i / g.Width}
}

// Cells lists every cell in row-major order.
func (g Grid) Cells() []Point {
	cells := make([]Point, 0, g.Area())
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			cells = append(cells, Point{X: x, Y: y})
		}
	}
	return cells
}

// Direction represents a cardinal heading. The zero value is None.
type Direction int

const (
	None Direction = iota
	Right
	Down
	Left
	Up
)

// Delta converts a Direction into a movement vector
func (d Direction) Delta() Point {
	switch d {
	case Right:
		return Point{X: 1, Y: 0}
	case Down:
		return Point{X: 0, Y: 1}
	case Left:
		return Point{X: -1, Y: 0}
	case Up:
		return Point{X: 0, Y: -1}
	default:
		return Point{}
	}
}

// Opposite returns the reverse heading.
func (d Direction) Opposite() Direction {
	switch d {
	case Right:
		return Left
	case Down:
		return Up
	case Left:
		return Right
	case Up:
		return Down
	default:
		return None
	}
}

func (d Direction) String() string {
	switch d {
	case Right:
		return "RIGHT"
	case Down:
		return "DOWN"
	case Left:
		return "LEFT"
	case Up:
		return "UP"
	default:
		return "NONE"
	}
}

// ParseDirection accepts the names produced by String, case-insensitively.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "RIGHT", "R":
		return Right, nil
	case "DOWN", "D":
		return Down, nil
	case "LEFT", "L":
		return Left, nil
	case "UP", "U":
		return Up, nil
	}
	return None, fmt.Errorf("%q: %w", s, ErrUnknownDirection)
}

// DirectionBetween returns the heading that moves from onto to, or None when
// the two cells are not adjacent.
func DirectionBetween(from, to Point) Direction {
	switch {
	case to.X == from.X+1 && to.Y == from.Y:
		return Right
	case to.X == from.X-1 && to.Y == from.Y:
		return Left
	case to.Y == from.Y+1 && to.X == from.X:
		return Down
	case to.Y == from.Y-1 && to.X == from.X:
		return Up
	}
	return None
}

// NeighborOrder is the fixed priority in which neighbours are explored.
type NeighborOrder [4]Direction

// DefaultNeighborOrder explores right, down, left, then up.
var DefaultNeighborOrder = NeighborOrder{Right, Down, Left, Up}

// Validate checks that o is a permutation of the four cardinal directions.
func (o NeighborOrder) Validate() error {
	var seen [5]bool
	for _, d := range o {
		if d < Right || d > Up || seen[d] {
			return fmt.Errorf("%v: %w", o, ErrInvalidNeighborOrder)
		}
		seen[d] = true
	}
	return nil
}

func (o NeighborOrder) String() string {
	names := make([]string, len(o))
	for i, d := range o {
		names[i] = d.String()
	}
	return strings.Join(names, ",")
}

// ParseNeighborOrder reads a comma separated list such as "RIGHT,DOWN,LEFT,UP".
func ParseNeighborOrder(s string) (NeighborOrder, error) {
	var o NeighborOrder
	parts := strings.Split(s, ",")
	if len(parts) != len(o) {
		return o, fmt.Errorf("%q: %w", s, ErrInvalidNeighborOrder)
	}
	for i, part := range parts {
		d, err := ParseDirection(part)
		if err != nil {
			return o, err
		}
		o[i] = d
	}
	return o, o.Validate()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
