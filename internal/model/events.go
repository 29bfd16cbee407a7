package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	EventMovePlayed    EventType = "move-played"
	EventTurnPassed    EventType = "turn-passed"
	EventGameComplete  EventType = "game-complete"
	EventGameRestarted EventType = "game-restarted"
	EventGameAbandoned EventType = "game-abandoned"
)

// Event is the base structure for all game events
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	GameID    GameID    `json:"game_id"`
	Payload   any       `json:"payload,omitempty"`
}

// MovePlayedPayload contains data for move played events
type MovePlayedPayload struct {
	Move  MoveRecord `json:"move"`
	State GameState  `json:"state"`
}

// TurnPassedPayload is sent when a player has no legal move and the mover goes again
type TurnPassedPayload struct {
	Passed CellState `json:"passed"`
}

// GameCompletePayload contains data for game complete events
type GameCompletePayload struct {
	Summary GameSummary `json:"summary"`
}

// StateChangedPayload is sent when a game is restarted or abandoned
type StateChangedPayload struct {
	State GameState `json:"state"`
}
