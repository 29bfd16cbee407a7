package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mcoot/othello/internal/model"
)

func newWatchCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "watch <id>",
		Short: "Stream live events from a game",
		Long: `Connect to the game's SSE endpoint and stream events in real-time.

Events include:
  - move-played: A disc was placed
  - turn-passed: A player had no legal move
  - game-complete: Game finished
  - game-restarted: Board was reset
  - game-abandoned: Game was abandoned

Press Ctrl+C to disconnect.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return streamEvents(ctx, cmd.OutOrStdout(), args[0], jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output events as JSON lines")

	return cmd
}

// SSEEvent represents a parsed SSE event
type SSEEvent struct {
	Time  time.Time `json:"time"`
	Event string    `json:"event"`
	Data  string    `json:"data"`
}

func streamEvents(ctx context.Context, w io.Writer, gameID string, jsonOutput bool) error {
	resp, err := client.Stream(ctx, gamePath(gameID, "events"))
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if !jsonOutput {
		fmt.Fprintf(w, "Watching game %s\n", gameID)
	}

	err = readEvents(resp.Body, func(event, data string) {
		printEvent(w, event, data, jsonOutput)
	})
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("stream error: %w", err)
	}

	if !jsonOutput {
		fmt.Fprintln(w, "Disconnected")
	}
	return nil
}

// readEvents parses an SSE stream, calling fn for each complete event
func readEvents(r io.Reader, fn func(event, data string)) error {
	scanner := bufio.NewScanner(r)
	var currentEvent string
	var dataLines []string

	for scanner.Scan() {
		line := scanner.Text()

		if strings.HasPrefix(line, "event: ") {
			currentEvent = strings.TrimPrefix(line, "event: ")
		} else if strings.HasPrefix(line, "data: ") {
			dataLines = append(dataLines, strings.TrimPrefix(line, "data: "))
		} else if line == "" {
			// End of event
			if currentEvent != "" {
				fn(currentEvent, strings.Join(dataLines, "\n"))
			}
			currentEvent = ""
			dataLines = nil
		}
	}

	return scanner.Err()
}

func printEvent(w io.Writer, event, data string, jsonOutput bool) {
	now := time.Now()

	if jsonOutput {
		jsonData, _ := json.Marshal(SSEEvent{Time: now, Event: event, Data: data})
		fmt.Fprintln(w, string(jsonData))
		return
	}

	timestamp := now.Format("2006-01-02 15:04:05")
	fmt.Fprintf(w, "[%s] %s\n", timestamp, describeEvent(event, data))
}

// describeEvent renders a one-line summary of a game event
func describeEvent(event, data string) string {
	var evt struct {
		Payload json.RawMessage `json:"payload"`
	}
	if err := json.Unmarshal([]byte(data), &evt); err != nil || len(evt.Payload) == 0 {
		return event
	}

	switch model.EventType(event) {
	case model.EventMovePlayed:
		var p model.MovePlayedPayload
		if json.Unmarshal(evt.Payload, &p) == nil {
			return fmt.Sprintf("%s played %s, flipping %d (%s)",
				p.Move.Player.DisplayName(), p.Move.Position, len(p.Move.Flipped), p.State.Describe())
		}
	case model.EventTurnPassed:
		var p model.TurnPassedPayload
		if json.Unmarshal(evt.Payload, &p) == nil {
			return fmt.Sprintf("%s has no legal move and passes", p.Passed.DisplayName())
		}
	case model.EventGameComplete:
		var p model.GameCompletePayload
		if json.Unmarshal(evt.Payload, &p) == nil {
			return fmt.Sprintf("game over: %s, %d-%d", p.Summary.Outcome, p.Summary.BlackCount, p.Summary.WhiteCount)
		}
	case model.EventGameRestarted:
		return "game restarted"
	case model.EventGameAbandoned:
		return "game abandoned"
	}
	return event
}
