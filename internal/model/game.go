package model

import "time"

// GameID uniquely identifies a game
type GameID string

// SeatKind selects where a seat's moves come from
type SeatKind string

const (
	SeatHuman SeatKind = "human" // moves arrive through the API
	SeatBot   SeatKind = "bot"   // moves are chosen by a strategy
)

// Seat is one side of a game
type Seat struct {
	Kind      SeatKind `json:"kind"`
	Strategy  string   `json:"strategy,omitempty"`   // bot strategy name, empty for humans
	TokenHash string   `json:"token_hash,omitempty"` // bcrypt hash of the seat token
}

// IsBot returns true when a strategy plays this seat
func (s Seat) IsBot() bool {
	return s.Kind == SeatBot
}

// MoveRecord is an entry in a game's move history
type MoveRecord struct {
	Number   int        `json:"number"` // 1-indexed ply number
	Player   CellState  `json:"player"`
	Position Position   `json:"position"`
	Flipped  []Position `json:"flipped"`
	PlayedAt time.Time  `json:"played_at"`
}

// Game represents a single Othello session
type Game struct {
	ID    GameID    `json:"id"`
	State GameState `json:"state"`
	Board *Board    `json:"board"`

	Black Seat `json:"black"`
	White Seat `json:"white"`

	Moves []MoveRecord `json:"moves"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Seat returns the seat for a player
func (g *Game) Seat(player CellState) *Seat {
	switch player {
	case Black:
		return &g.Black
	case White:
		return &g.White
	default:
		return nil
	}
}

// CurrentPlayer returns the player to move, or Empty once the game is over
func (g *Game) CurrentPlayer() CellState {
	return g.State.Player()
}

// IsOver returns true when no further moves can be played
func (g *Game) IsOver() bool {
	return g.State.IsTerminal()
}

// Outcome returns the decided result, or OutcomeNone while play continues
func (g *Game) Outcome() Outcome {
	switch g.State {
	case GameStateBlackWins:
		return OutcomeBlack
	case GameStateWhiteWins:
		return OutcomeWhite
	case GameStateDraw:
		return OutcomeDraw
	default:
		return OutcomeNone
	}
}

// GameSummary is a lightweight record of a completed game
type GameSummary struct {
	GameID      GameID    `json:"game_id" db:"game_id"`
	Outcome     Outcome   `json:"outcome" db:"outcome"`
	BlackCount  int       `json:"black_count" db:"black_count"`
	WhiteCount  int       `json:"white_count" db:"white_count"`
	MoveCount   int       `json:"move_count" db:"move_count"`
	CompletedAt time.Time `json:"completed_at" db:"completed_at"`
}

// Clone returns a deep copy of the game
func (g *Game) Clone() *Game {
	c := *g
	if g.Board != nil {
		c.Board = g.Board.Clone()
	}
	if g.Moves != nil {
		c.Moves = make([]MoveRecord, len(g.Moves))
		for i, m := range g.Moves {
			m.Flipped = append([]Position(nil), m.Flipped...)
			c.Moves[i] = m
		}
	}
	return &c
}
