package sse

import (
	"encoding/json"
	"log/slog"

	"github.com/mcoot/othello/internal/dependencies/clock"
	"github.com/mcoot/othello/internal/model"
	"github.com/mcoot/othello/internal/services/game"
)

// Broadcaster turns game changes into JSON events on the game's hub
type Broadcaster struct {
	hubManager *HubManager
	clock      clock.Clock
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, clk clock.Clock, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		clock:      clk,
		logger:     logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// BroadcastMove publishes a move and whatever followed from it: a pass, the end of the game
func (b *Broadcaster) BroadcastMove(result *game.MoveResult) {
	id := result.Game.ID
	b.publish(id, model.EventMovePlayed, model.MovePlayedPayload{
		Move:  result.Move,
		State: result.Game.State,
	})
	if result.Passed != model.Empty {
		b.publish(id, model.EventTurnPassed, model.TurnPassedPayload{Passed: result.Passed})
	}
	if result.Summary != nil {
		b.publish(id, model.EventGameComplete, model.GameCompletePayload{Summary: *result.Summary})
	}
}

// BroadcastGameRestarted publishes that a game was reset to an empty board
func (b *Broadcaster) BroadcastGameRestarted(g *model.Game) {
	b.publish(g.ID, model.EventGameRestarted, model.StateChangedPayload{State: g.State})
}

// BroadcastGameAbandoned publishes that a game was abandoned
func (b *Broadcaster) BroadcastGameAbandoned(g *model.Game) {
	b.publish(g.ID, model.EventGameAbandoned, model.StateChangedPayload{State: g.State})
}

// publish encodes an event and hands it to the hub, if anyone is listening
func (b *Broadcaster) publish(id model.GameID, eventType model.EventType, payload any) {
	hub := b.hubManager.GetHub(id)
	if hub == nil {
		return
	}

	data, err := json.Marshal(model.Event{
		Type:      eventType,
		Timestamp: b.clock.Now(),
		GameID:    id,
		Payload:   payload,
	})
	if err != nil {
		b.logger.Error("sse failed to encode event",
			slog.String("game_id", string(id)),
			slog.String("event", string(eventType)),
			slog.Any("error", err))
		return
	}

	hub.BroadcastEvent(string(eventType), string(data))
}
