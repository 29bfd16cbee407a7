package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mcoot/othello/internal/api/response"
	"github.com/mcoot/othello/internal/model"
)

// Output handles formatting output based on the configured format
type Output struct {
	w      io.Writer
	format string
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(w io.Writer, format string) *Output {
	return &Output{w: w, format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.CreateGameResponse:
		o.printCreated(v)
	case response.Game:
		o.printGame(v)
	case response.MoveResponse:
		o.printMoveResult(v)
	case response.LegalMovesResponse:
		o.printLegalMoves(v)
	case response.SummariesResponse:
		o.printSummaries(v)
	case response.HealthResponse:
		fmt.Fprintf(o.w, "Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printCreated(c response.CreateGameResponse) {
	o.printGame(c.Game)
	if c.SeatTokens.Black != "" || c.SeatTokens.White != "" {
		fmt.Fprintln(o.w, "\nSeat tokens saved for:", strings.Join(heldSeats(c), ", "))
	}
}

func heldSeats(c response.CreateGameResponse) []string {
	var held []string
	if c.SeatTokens.Black != "" {
		held = append(held, "black")
	}
	if c.SeatTokens.White != "" {
		held = append(held, "white")
	}
	return held
}

func (o *Output) printGame(g response.Game) {
	fmt.Fprintf(o.w, "Game: %s\n", g.ID)
	fmt.Fprintf(o.w, "Status: %s\n", g.Status)
	fmt.Fprintf(o.w, "Rules: %s  Moves: %d\n", g.Board.Rules, g.Board.MoveCount)
	fmt.Fprintf(o.w, "Black: %s (%d)  White: %s (%d)\n",
		seatLabel(g.Black), g.Counts.Black, seatLabel(g.White), g.Counts.White)
	fmt.Fprintln(o.w)
	o.printBoard(g.Board, g.LegalMoves)
	if len(g.LegalMoves) > 0 {
		fmt.Fprintf(o.w, "\nLegal moves for %s: %s\n", g.ToMove, squareList(g.LegalMoves))
	}
}

func seatLabel(s response.Seat) string {
	if s.Kind == "bot" {
		return "bot (" + model.BotStrategyDisplayName(s.Strategy) + ")"
	}
	return s.Kind
}

func squareList(ps []response.Position) string {
	squares := make([]string, len(ps))
	for i, p := range ps {
		squares[i] = p.Square
	}
	return strings.Join(squares, " ")
}

// printBoard draws the grid with column letters and 1-based row numbers.
// Legal moves are marked with '*'.
func (o *Output) printBoard(b response.Board, legal []response.Position) {
	if len(b.Rows) == 0 {
		return
	}

	marks := make(map[[2]int]bool, len(legal))
	for _, p := range legal {
		marks[[2]int{p.Row, p.Col}] = true
	}

	// Print column headers
	fmt.Fprint(o.w, "    ")
	for col := 0; col < b.Width; col++ {
		fmt.Fprintf(o.w, " %c", 'a'+rune(col))
	}
	fmt.Fprintln(o.w)

	border := "   +" + strings.Repeat("--", b.Width) + "-+"
	fmt.Fprintln(o.w, border)

	for row, line := range b.Rows {
		fmt.Fprintf(o.w, "%2d |", row+1)
		for col := 0; col < len(line); col++ {
			cell := line[col]
			if cell == '.' && marks[[2]int{row, col}] {
				cell = '*'
			}
			fmt.Fprintf(o.w, " %c", cell)
		}
		fmt.Fprintln(o.w, " |")
	}

	fmt.Fprintln(o.w, border)
}

func (o *Output) printMoveResult(m response.MoveResponse) {
	fmt.Fprintf(o.w, "%s played %s, flipping %d\n", capitalize(m.Move.Player), m.Move.Position.Square, len(m.Move.Flipped))
	if m.Passed != "" {
		fmt.Fprintf(o.w, "%s has no legal move and passes\n", capitalize(m.Passed))
	}
	for _, bm := range m.BotMoves {
		fmt.Fprintf(o.w, "%s (bot) played %s, flipping %d\n", capitalize(bm.Player), bm.Position.Square, len(bm.Flipped))
	}
	fmt.Fprintln(o.w)
	o.printGame(m.Game)
	if m.Summary != nil {
		fmt.Fprintf(o.w, "\nFinal score: %d-%d\n", m.Summary.BlackCount, m.Summary.WhiteCount)
	}
}

func (o *Output) printLegalMoves(l response.LegalMovesResponse) {
	if l.Player == "" {
		fmt.Fprintln(o.w, "Game is over")
		return
	}
	fmt.Fprintf(o.w, "%s to move: %s\n", capitalize(l.Player), squareList(l.Moves))
}

func (o *Output) printSummaries(s response.SummariesResponse) {
	if len(s.Summaries) == 0 {
		fmt.Fprintln(o.w, "No finished games")
		return
	}
	for _, g := range s.Summaries {
		fmt.Fprintf(o.w, "%s  %-5s  %2d-%-2d  %3d moves  %s\n",
			g.CompletedAt.Format("2006-01-02 15:04"), g.Outcome, g.BlackCount, g.WhiteCount, g.MoveCount, g.GameID)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
