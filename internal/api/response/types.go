package response

import (
	"time"

	"github.com/mcoot/othello/internal/model"
	"github.com/mcoot/othello/internal/services/game"
)

// Position represents a board square in API responses
type Position struct {
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Square string `json:"square"`
}

// PositionFromModel converts a model.Position
func PositionFromModel(p model.Position) Position {
	return Position{Row: p.Row, Col: p.Col, Square: p.String()}
}

// PositionsFromModel converts a slice of positions, never returning nil
func PositionsFromModel(ps []model.Position) []Position {
	result := make([]Position, len(ps))
	for i, p := range ps {
		result[i] = PositionFromModel(p)
	}
	return result
}

// Seat represents one side of a game
type Seat struct {
	Kind     string `json:"kind"`
	Strategy string `json:"strategy,omitempty"`
}

// SeatFromModel converts a model.Seat, leaving out the token hash
func SeatFromModel(s model.Seat) Seat {
	return Seat{Kind: string(s.Kind), Strategy: s.Strategy}
}

// Move represents a played move
type Move struct {
	Number   int        `json:"number"`
	Player   string     `json:"player"`
	Position Position   `json:"position"`
	Flipped  []Position `json:"flipped"`
	PlayedAt time.Time  `json:"played_at"`
}

// MoveFromModel converts a model.MoveRecord
func MoveFromModel(m model.MoveRecord) Move {
	return Move{
		Number:   m.Number,
		Player:   m.Player.String(),
		Position: PositionFromModel(m.Position),
		Flipped:  PositionsFromModel(m.Flipped),
		PlayedAt: m.PlayedAt,
	}
}

// Board represents the grid
type Board struct {
	Width     int      `json:"width"`
	Height    int      `json:"height"`
	Rules     string   `json:"rules"`
	MoveCount int      `json:"move_count"`
	Rows      []string `json:"rows"`
}

// BoardFromModel converts a model.Board through its snapshot
func BoardFromModel(b *model.Board) Board {
	snap := b.Snapshot()
	return Board{
		Width:     snap.Width,
		Height:    snap.Height,
		Rules:     string(snap.Rules),
		MoveCount: snap.MoveCount,
		Rows:      snap.Rows,
	}
}

// Counts holds the number of discs per colour
type Counts struct {
	Black int `json:"black"`
	White int `json:"white"`
}

// Game represents a game in API responses
type Game struct {
	ID         string     `json:"id"`
	State      string     `json:"state"`
	Status     string     `json:"status"`
	ToMove     string     `json:"to_move,omitempty"`
	Outcome    string     `json:"outcome,omitempty"`
	Board      Board      `json:"board"`
	LegalMoves []Position `json:"legal_moves"`
	Counts     Counts     `json:"counts"`
	Black      Seat       `json:"black"`
	White      Seat       `json:"white"`
	Moves      []Move     `json:"moves"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// GameFromModel converts a model.Game
func GameFromModel(g *model.Game) Game {
	moves := make([]Move, len(g.Moves))
	for i, m := range g.Moves {
		moves[i] = MoveFromModel(m)
	}

	resp := Game{
		ID:         string(g.ID),
		State:      string(g.State),
		Status:     g.State.Describe(),
		Board:      BoardFromModel(g.Board),
		LegalMoves: PositionsFromModel(game.LegalMovesOf(g)),
		Counts: Counts{
			Black: g.Board.Count(model.Black),
			White: g.Board.Count(model.White),
		},
		Black:     SeatFromModel(g.Black),
		White:     SeatFromModel(g.White),
		Moves:     moves,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
	if player := g.CurrentPlayer(); player != model.Empty {
		resp.ToMove = player.String()
	}
	if outcome := g.Outcome(); outcome != model.OutcomeNone {
		resp.Outcome = string(outcome)
	}
	return resp
}

// CreateGameResponse is returned when a game is created.
// The seat tokens are only ever shown here.
type CreateGameResponse struct {
	Game       Game            `json:"game"`
	SeatTokens game.SeatTokens `json:"seat_tokens"`
}

// LegalMovesResponse lists the moves open to the player to move
type LegalMovesResponse struct {
	Player string     `json:"player,omitempty"`
	Moves  []Position `json:"moves"`
}

// MoveResponse is returned after a move, including any bot replies
type MoveResponse struct {
	Game     Game         `json:"game"`
	Move     Move         `json:"move"`
	Passed   string       `json:"passed,omitempty"`
	BotMoves []Move       `json:"bot_moves,omitempty"`
	Summary  *GameSummary `json:"summary,omitempty"`
}

// GameSummary represents a completed game summary
type GameSummary struct {
	GameID      string    `json:"game_id"`
	Outcome     string    `json:"outcome"`
	BlackCount  int       `json:"black_count"`
	WhiteCount  int       `json:"white_count"`
	MoveCount   int       `json:"move_count"`
	CompletedAt time.Time `json:"completed_at"`
}

// GameSummaryFromModel converts model.GameSummary
func GameSummaryFromModel(s *model.GameSummary) GameSummary {
	return GameSummary{
		GameID:      string(s.GameID),
		Outcome:     string(s.Outcome),
		BlackCount:  s.BlackCount,
		WhiteCount:  s.WhiteCount,
		MoveCount:   s.MoveCount,
		CompletedAt: s.CompletedAt,
	}
}

// SummariesResponse lists recently completed games
type SummariesResponse struct {
	Summaries []GameSummary `json:"summaries"`
}

// HealthResponse is returned by the health endpoint
type HealthResponse struct {
	Status string `json:"status"`
}
