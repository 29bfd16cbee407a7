package model

import "errors"

// Common errors used across the application
var (
	// Board errors
	ErrInvalidBoardSize = errors.New("invalid board size")
	ErrInvalidRules     = errors.New("invalid rules")
	ErrInvalidSnapshot  = errors.New("invalid board snapshot")
	ErrInvalidPosition  = errors.New("invalid board position")
	ErrInvalidPlayer    = errors.New("invalid player")

	// Game errors
	ErrGameNotFound     = errors.New("game not found")
	ErrNotPlayerTurn    = errors.New("not this player's turn")
	ErrIllegalMove      = errors.New("illegal move")
	ErrGameComplete     = errors.New("game is already complete")
	ErrGameAbandoned    = errors.New("game has been abandoned")
	ErrInvalidSeatToken = errors.New("invalid seat token")
	ErrSeatIsBot        = errors.New("seat is played by a bot")
	ErrSeatIsHuman      = errors.New("seat is played by a human")

	// Bot errors
	ErrNoLegalMoves    = errors.New("no legal moves")
	ErrUnknownStrategy = errors.New("unknown bot strategy")
)
