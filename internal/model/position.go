package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Position identifies a cell on the board
type Position struct {
	Row int // 0-indexed from top
	Col int // 0-indexed from left
}

// InvalidPosition is returned when input cannot be mapped onto the grid
var InvalidPosition = Position{Row: -1, Col: -1}

// Direction is a unit step between neighbouring cells
type Direction struct {
	DRow int
	DCol int
}

var (
	Up        = Direction{DRow: -1, DCol: 0}
	Down      = Direction{DRow: 1, DCol: 0}
	Left      = Direction{DRow: 0, DCol: -1}
	Right     = Direction{DRow: 0, DCol: 1}
	UpLeft    = Direction{DRow: -1, DCol: -1}
	UpRight   = Direction{DRow: -1, DCol: 1}
	DownLeft  = Direction{DRow: 1, DCol: -1}
	DownRight = Direction{DRow: 1, DCol: 1}
)

// CardinalDirections are the four axis-aligned directions, in the order flips are resolved
var CardinalDirections = []Direction{Down, Left, Up, Right}

// CompassDirections are all eight directions
var CompassDirections = []Direction{Down, Left, Up, Right, UpLeft, UpRight, DownLeft, DownRight}

// Add returns the position one step away in the given direction
func (p Position) Add(d Direction) Position {
	return Position{Row: p.Row + d.DRow, Col: p.Col + d.DCol}
}

// String formats the position in algebraic notation, e.g. "d3" for row 2, col 3
func (p Position) String() string {
	if p.Row < 0 || p.Col < 0 || p.Col >= MaxBoardDimension {
		return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
	}
	return fmt.Sprintf("%c%d", 'a'+rune(p.Col), p.Row+1)
}

// ParsePosition parses algebraic notation such as "d3" or "H8".
// It does not know the board size; callers check bounds with Board.InBounds.
func ParsePosition(s string) (Position, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) < 2 {
		return InvalidPosition, fmt.Errorf("%w: %q", ErrInvalidPosition, s)
	}
	col := int(s[0]) - 'a'
	if col < 0 || col >= MaxBoardDimension {
		return InvalidPosition, fmt.Errorf("%w: %q", ErrInvalidPosition, s)
	}
	row, err := strconv.Atoi(s[1:])
	if err != nil || row < 1 {
		return InvalidPosition, fmt.Errorf("%w: %q", ErrInvalidPosition, s)
	}
	return Position{Row: row - 1, Col: col}, nil
}
