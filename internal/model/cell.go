package model

import (
	"fmt"
	"strings"
)

// CellState is the content of a single board cell
type CellState uint8

const (
	Empty CellState = iota
	Black           // Player A, always moves first
	White           // Player B
)

// Opponent returns the other player. Empty has no opponent and returns Empty.
func (c CellState) Opponent() CellState {
	switch c {
	case Black:
		return White
	case White:
		return Black
	default:
		return Empty
	}
}

// IsPlayer returns true for Black and White
func (c CellState) IsPlayer() bool {
	return c == Black || c == White
}

// String returns the lowercase name of the state
func (c CellState) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	case Empty:
		return "empty"
	default:
		return fmt.Sprintf("CellState(%d)", uint8(c))
	}
}

// Symbol returns the single character used in board rows
func (c CellState) Symbol() byte {
	switch c {
	case Black:
		return 'B'
	case White:
		return 'W'
	default:
		return '.'
	}
}

// DisplayName returns a capitalised label for status messages
func (c CellState) DisplayName() string {
	switch c {
	case Black:
		return "Black"
	case White:
		return "White"
	default:
		return "Nobody"
	}
}

// MarshalText encodes the state by name
func (c CellState) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a state from its name
func (c *CellState) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "empty", "":
		*c = Empty
	case "black":
		*c = Black
	case "white":
		*c = White
	default:
		return fmt.Errorf("%w: %q", ErrInvalidPlayer, string(text))
	}
	return nil
}

// ParsePlayer parses "black" or "white", case-insensitively
func ParsePlayer(s string) (CellState, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "black":
		return Black, nil
	case "white":
		return White, nil
	default:
		return Empty, fmt.Errorf("%w: %q", ErrInvalidPlayer, s)
	}
}

func cellFromSymbol(b byte) (CellState, bool) {
	switch b {
	case '.':
		return Empty, true
	case 'B', 'b':
		return Black, true
	case 'W', 'w':
		return White, true
	default:
		return Empty, false
	}
}
