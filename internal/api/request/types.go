package request

import (
	"fmt"

	"github.com/mcoot/othello/internal/model"
)

// SeatRequest describes who plays one side of a new game
type SeatRequest struct {
	Kind     string `json:"kind,omitempty"` // "human" (default) or "bot"
	Strategy string `json:"strategy,omitempty"`
}

// CreateGameRequest is the request body for creating a game.
// Size sets both dimensions; Width and Height override it.
type CreateGameRequest struct {
	Size   int         `json:"size,omitempty"`
	Width  int         `json:"width,omitempty"`
	Height int         `json:"height,omitempty"`
	Rules  string      `json:"rules,omitempty"`
	Black  SeatRequest `json:"black"`
	White  SeatRequest `json:"white"`
}

// Dimensions resolves the requested board size; zero means the server default
func (r CreateGameRequest) Dimensions() (width, height int) {
	width, height = r.Size, r.Size
	if r.Width != 0 {
		width = r.Width
	}
	if r.Height != 0 {
		height = r.Height
	}
	return width, height
}

// MoveRequest is the request body for playing a move.
// The square is given either as row/col or in algebraic form ("d3").
type MoveRequest struct {
	Player string `json:"player"`
	Row    *int   `json:"row,omitempty"`
	Col    *int   `json:"col,omitempty"`
	Square string `json:"square,omitempty"`
}

// Position resolves the requested square
func (r MoveRequest) Position() (model.Position, error) {
	switch {
	case r.Square != "" && (r.Row != nil || r.Col != nil):
		return model.InvalidPosition, fmt.Errorf("give either square or row/col, not both")
	case r.Square != "":
		return model.ParsePosition(r.Square)
	case r.Row != nil && r.Col != nil:
		return model.Position{Row: *r.Row, Col: *r.Col}, nil
	default:
		return model.InvalidPosition, fmt.Errorf("square or row/col is required")
	}
}
