package model

import (
	"encoding/json"
	"fmt"
)

const (
	// DefaultBoardSize is the standard 8x8 Othello board
	DefaultBoardSize = 8
	// MinBoardDimension is the smallest width or height that has a centre square
	MinBoardDimension = 2
	// MaxBoardDimension keeps columns addressable by a single letter
	MaxBoardDimension = 26
	// OpeningMoves is the number of plies restricted to the centre cells
	OpeningMoves = 4
)

// Rules selects which directions a move flips along
type Rules string

const (
	// RulesCardinal flips along Down, Left, Up and Right only
	RulesCardinal Rules = "cardinal"
	// RulesCompass flips along all eight directions (standard Othello)
	RulesCompass Rules = "compass"
)

// Valid reports whether r is a known rule set
func (r Rules) Valid() bool {
	return r == RulesCardinal || r == RulesCompass
}

// Directions returns the flip directions for the rule set
func (r Rules) Directions() []Direction {
	if r == RulesCompass {
		return CompassDirections
	}
	return CardinalDirections
}

// ParseRules parses a rule set name. An empty string selects RulesCardinal.
func ParseRules(s string) (Rules, error) {
	if s == "" {
		return RulesCardinal, nil
	}
	r := Rules(s)
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRules, s)
	}
	return r, nil
}

// Outcome is the result of counting discs
type Outcome string

const (
	OutcomeNone  Outcome = "none" // game not decided yet
	OutcomeDraw  Outcome = "draw"
	OutcomeBlack Outcome = "black"
	OutcomeWhite Outcome = "white"
)

// Board is the Othello board engine.
//
// It owns the grid exclusively. The only mutators of cell contents are
// ApplyMove and Reset; every mutation leaves the cached legal-move set
// consistent with the grid, the move counter and the player it was computed for.
// A Board is not safe for concurrent use.
type Board struct {
	width     int
	height    int
	rules     Rules
	cells     []CellState // row-major: cells[row*width+col]
	moveCount int

	toMove   CellState
	legal    []Position
	legalSet map[Position]struct{}
}

// NewBoard creates an empty board of the given size and resolves legal moves for Black
func NewBoard(width, height int, rules Rules) (*Board, error) {
	if err := validateSize(width, height); err != nil {
		return nil, err
	}
	if rules == "" {
		rules = RulesCardinal
	}
	if !rules.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRules, rules)
	}
	b := &Board{
		width:  width,
		height: height,
		rules:  rules,
		cells:  make([]CellState, width*height),
	}
	b.UpdateLegalMoves(Black)
	return b, nil
}

func validateSize(width, height int) error {
	if width < MinBoardDimension || width > MaxBoardDimension ||
		height < MinBoardDimension || height > MaxBoardDimension {
		return fmt.Errorf("%w: %dx%d", ErrInvalidBoardSize, width, height)
	}
	return nil
}

// Width returns the number of columns
func (b *Board) Width() int { return b.width }

// Height returns the number of rows
func (b *Board) Height() int { return b.height }

// Rules returns the rule set the board was created with
func (b *Board) Rules() Rules { return b.rules }

// MoveCount returns the number of moves applied since the last reset
func (b *Board) MoveCount() int { return b.moveCount }

// ToMove returns the player the cached legal-move set belongs to
func (b *Board) ToMove() CellState { return b.toMove }

// InBounds returns true if the position is on the grid
func (b *Board) InBounds(pos Position) bool {
	return pos.Row >= 0 && pos.Row < b.height && pos.Col >= 0 && pos.Col < b.width
}

// Cell returns the state at the given position, or Empty when off the grid
func (b *Board) Cell(pos Position) CellState {
	if !b.InBounds(pos) {
		return Empty
	}
	return b.cells[pos.Row*b.width+pos.Col]
}

// Cells returns a copy of the grid indexed [row][col]
func (b *Board) Cells() [][]CellState {
	result := make([][]CellState, b.height)
	for row := range result {
		result[row] = make([]CellState, b.width)
		copy(result[row], b.cells[row*b.width:(row+1)*b.width])
	}
	return result
}

// Count returns the number of cells in the given state
func (b *Board) Count(state CellState) int {
	count := 0
	for _, c := range b.cells {
		if c == state {
			count++
		}
	}
	return count
}

// centerCells returns the four centre-most positions in row-major order
func (b *Board) centerCells() []Position {
	midRow := b.height/2 - 1
	midCol := b.width/2 - 1
	return []Position{
		{Row: midRow, Col: midCol},
		{Row: midRow, Col: midCol + 1},
		{Row: midRow + 1, Col: midCol},
		{Row: midRow + 1, Col: midCol + 1},
	}
}

// LegalMoves computes the legal moves for player without touching the cache.
//
// During the opening (fewer than OpeningMoves moves applied) only the empty
// centre cells are legal, whoever is asking; the gate is driven by the move
// counter alone, not by which centre cells are occupied. Afterwards a move
// is legal when it flips at least one disc. Results are in row-major order.
func (b *Board) LegalMoves(player CellState) []Position {
	var moves []Position
	if b.moveCount < OpeningMoves {
		for _, pos := range b.centerCells() {
			if b.Cell(pos) == Empty {
				moves = append(moves, pos)
			}
		}
		return moves
	}

	for row := 0; row < b.height; row++ {
		for col := 0; col < b.width; col++ {
			pos := Position{Row: row, Col: col}
			if b.Cell(pos) == Empty && b.flipsAny(pos, player) {
				moves = append(moves, pos)
			}
		}
	}
	return moves
}

// UpdateLegalMoves replaces the cached legal-move set with the moves for player
func (b *Board) UpdateLegalMoves(player CellState) {
	b.toMove = player
	b.legal = b.LegalMoves(player)
	b.legalSet = make(map[Position]struct{}, len(b.legal))
	for _, pos := range b.legal {
		b.legalSet[pos] = struct{}{}
	}
}

// CurrentLegalMoves returns a copy of the cached legal-move set
func (b *Board) CurrentLegalMoves() []Position {
	result := make([]Position, len(b.legal))
	copy(result, b.legal)
	return result
}

// HasLegalMoves returns true if the cached set is non-empty
func (b *Board) HasLegalMoves() bool {
	return len(b.legal) > 0
}

// IsLegalMove reports whether pos is in the cached legal-move set
func (b *Board) IsLegalMove(pos Position) bool {
	_, ok := b.legalSet[pos]
	return ok
}

// FlipRun returns the opponent discs that a move by player at pos would flip
// walking in one direction. The run only counts when it is closed off by one
// of player's own discs; a walk that leaves the grid or reaches an empty cell
// yields nothing.
func (b *Board) FlipRun(pos Position, player CellState, dir Direction) []Position {
	opponent := player.Opponent()
	var run []Position

	cur := pos.Add(dir)
	for b.InBounds(cur) && b.Cell(cur) == opponent {
		run = append(run, cur)
		cur = cur.Add(dir)
	}

	if !b.InBounds(cur) || b.Cell(cur) != player {
		return nil
	}
	return run
}

// Flips returns every disc a move by player at pos would flip under the board's rules
func (b *Board) Flips(pos Position, player CellState) []Position {
	var result []Position
	for _, dir := range b.rules.Directions() {
		result = append(result, b.FlipRun(pos, player, dir)...)
	}
	return result
}

func (b *Board) flipsAny(pos Position, player CellState) bool {
	for _, dir := range b.rules.Directions() {
		if len(b.FlipRun(pos, player, dir)) > 0 {
			return true
		}
	}
	return false
}

// ApplyMove places a disc for player at pos, flips the bracketed runs,
// advances the move counter and caches the opponent's legal moves.
// It returns the flipped positions.
//
// The caller must first check IsLegalMove(pos) for the player to move; the
// board does not validate the move again and applying an illegal or
// off-grid position is undefined.
func (b *Board) ApplyMove(pos Position, player CellState) []Position {
	b.cells[pos.Row*b.width+pos.Col] = player
	flipped := b.Flips(pos, player)
	for _, f := range flipped {
		b.cells[f.Row*b.width+f.Col] = player
	}
	b.moveCount++
	b.UpdateLegalMoves(player.Opponent())
	return flipped
}

// Winner counts discs. With countEmptyAsUndecided set, any empty cell means
// the game is not over and OutcomeNone is returned; otherwise the majority
// wins and equal counts are a draw.
func (b *Board) Winner(countEmptyAsUndecided bool) Outcome {
	black, white, empty := 0, 0, 0
	for _, c := range b.cells {
		switch c {
		case Black:
			black++
		case White:
			white++
		default:
			empty++
		}
	}

	switch {
	case countEmptyAsUndecided && empty > 0:
		return OutcomeNone
	case black == white:
		return OutcomeDraw
	case black > white:
		return OutcomeBlack
	default:
		return OutcomeWhite
	}
}

// Reset clears every cell, zeroes the move counter and caches Black's legal moves
func (b *Board) Reset() {
	for i := range b.cells {
		b.cells[i] = Empty
	}
	b.moveCount = 0
	b.UpdateLegalMoves(Black)
}

// Clone returns an independent copy of the board
func (b *Board) Clone() *Board {
	c := &Board{
		width:     b.width,
		height:    b.height,
		rules:     b.rules,
		cells:     make([]CellState, len(b.cells)),
		moveCount: b.moveCount,
	}
	copy(c.cells, b.cells)
	c.UpdateLegalMoves(b.toMove)
	return c
}

// Snapshot is a read-only copy of a board's state
type Snapshot struct {
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Rules     Rules     `json:"rules"`
	MoveCount int       `json:"move_count"`
	ToMove    CellState `json:"to_move"`
	Rows      []string  `json:"rows"` // one string per row using '.', 'B', 'W'
}

// Snapshot captures the board
func (b *Board) Snapshot() Snapshot {
	rows := make([]string, b.height)
	line := make([]byte, b.width)
	for row := 0; row < b.height; row++ {
		for col := 0; col < b.width; col++ {
			line[col] = b.cells[row*b.width+col].Symbol()
		}
		rows[row] = string(line)
	}
	return Snapshot{
		Width:     b.width,
		Height:    b.height,
		Rules:     b.rules,
		MoveCount: b.moveCount,
		ToMove:    b.toMove,
		Rows:      rows,
	}
}

// BoardFromSnapshot rebuilds a board and recomputes its legal moves for the snapshot's player
func BoardFromSnapshot(s Snapshot) (*Board, error) {
	if s.Width == 0 && s.Height == 0 && len(s.Rows) > 0 {
		s.Height = len(s.Rows)
		s.Width = len(s.Rows[0])
	}
	b, err := NewBoard(s.Width, s.Height, s.Rules)
	if err != nil {
		return nil, err
	}
	if len(s.Rows) != s.Height {
		return nil, fmt.Errorf("%w: expected %d rows, got %d", ErrInvalidSnapshot, s.Height, len(s.Rows))
	}
	if s.MoveCount < 0 {
		return nil, fmt.Errorf("%w: negative move count", ErrInvalidSnapshot)
	}
	for row, line := range s.Rows {
		if len(line) != s.Width {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d", ErrInvalidSnapshot, row, len(line), s.Width)
		}
		for col := 0; col < len(line); col++ {
			state, ok := cellFromSymbol(line[col])
			if !ok {
				return nil, fmt.Errorf("%w: unknown cell %q at row %d", ErrInvalidSnapshot, line[col], row)
			}
			b.cells[row*s.Width+col] = state
		}
	}
	toMove := s.ToMove
	if !toMove.IsPlayer() {
		toMove = Black
	}
	b.moveCount = s.MoveCount
	b.UpdateLegalMoves(toMove)
	return b, nil
}

// MarshalJSON encodes the board as its snapshot
func (b *Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Snapshot())
}

// UnmarshalJSON decodes a snapshot into the board
func (b *Board) UnmarshalJSON(data []byte) error {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	decoded, err := BoardFromSnapshot(s)
	if err != nil {
		return err
	}
	*b = *decoded
	return nil
}
