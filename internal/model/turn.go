package model

// GameState represents the current phase of a game
type GameState string

const (
	GameStateBlackTurn GameState = "black_turn"
	GameStateWhiteTurn GameState = "white_turn"
	GameStateDraw      GameState = "draw"
	GameStateBlackWins GameState = "black_wins"
	GameStateWhiteWins GameState = "white_wins"
	GameStateAbandoned GameState = "abandoned"
)

// TurnState returns the state in which player is to move
func TurnState(player CellState) GameState {
	if player == White {
		return GameStateWhiteTurn
	}
	return GameStateBlackTurn
}

// StateForOutcome maps a decided outcome onto a terminal state
func StateForOutcome(o Outcome) GameState {
	switch o {
	case OutcomeBlack:
		return GameStateBlackWins
	case OutcomeWhite:
		return GameStateWhiteWins
	default:
		return GameStateDraw
	}
}

// IsTerminal returns true once no more moves can be played
func (s GameState) IsTerminal() bool {
	switch s {
	case GameStateDraw, GameStateBlackWins, GameStateWhiteWins, GameStateAbandoned:
		return true
	default:
		return false
	}
}

// Player returns whose turn it is, or Empty for terminal states
func (s GameState) Player() CellState {
	switch s {
	case GameStateBlackTurn:
		return Black
	case GameStateWhiteTurn:
		return White
	default:
		return Empty
	}
}

// Describe returns a status line for display
func (s GameState) Describe() string {
	switch s {
	case GameStateBlackTurn:
		return "Black's turn"
	case GameStateWhiteTurn:
		return "White's turn"
	case GameStateDraw:
		return "Draw"
	case GameStateBlackWins:
		return "Black wins"
	case GameStateWhiteWins:
		return "White wins"
	case GameStateAbandoned:
		return "Abandoned"
	default:
		return string(s)
	}
}

// NextState decides who moves after mover has played.
//
// The opponent moves if they have a legal move; otherwise mover plays again
// (the opponent passes); if neither can move the game ends by disc count.
// The board's cached legal moves are left computed for the returned player.
func NextState(b *Board, mover CellState) GameState {
	for _, candidate := range [2]CellState{mover.Opponent(), mover} {
		b.UpdateLegalMoves(candidate)
		if b.HasLegalMoves() {
			return TurnState(candidate)
		}
	}
	return StateForOutcome(b.Winner(false))
}
