package cli

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/othello/internal/api/request"
	"github.com/mcoot/othello/internal/api/response"
	"github.com/mcoot/othello/internal/model"
)

func gamePath(id string, parts ...string) string {
	p := "/api/v1/games/" + url.PathEscape(id)
	for _, part := range parts {
		p += "/" + part
	}
	return p
}

func newNewCmd() *cobra.Command {
	var (
		size  int
		rules string
		vs    string
		as    string
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a new game",
		Long: `Create a new game.

With --vs the opponent is a bot playing the named strategy (random, first)
and you take the colour given by --as. Without --vs both seats are human
and this CLI keeps both tokens, for hot-seat play or to hand one on.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			human := request.SeatRequest{Kind: string(model.SeatHuman)}
			req := request.CreateGameRequest{
				Size:  size,
				Rules: rules,
				Black: human,
				White: human,
			}

			if vs != "" {
				opponent := request.SeatRequest{Kind: string(model.SeatBot), Strategy: vs}
				switch as {
				case "black":
					req.White = opponent
				case "white":
					req.Black = opponent
				default:
					return fmt.Errorf(`--as must be "black" or "white"`)
				}
			}

			var result response.CreateGameResponse
			if err := client.Post("/api/v1/games", "", req, &result); err != nil {
				return err
			}

			if err := seats.Put(result.Game.ID, SavedSeats{Server: cfg.ServerURL, Tokens: result.SeatTokens}); err != nil {
				return fmt.Errorf("save seat tokens: %w", err)
			}

			NewOutput(cmd.OutOrStdout(), cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&size, "size", 0, "Board width and height (server default when 0)")
	cmd.Flags().StringVar(&rules, "rules", "", "Flip rules: cardinal or compass (server default when empty)")
	cmd.Flags().StringVar(&vs, "vs", "", "Play against a bot using this strategy")
	cmd.Flags().StringVar(&as, "as", "black", "Your colour when playing a bot")

	return cmd
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Game
			if err := client.Get(gamePath(args[0]), &result); err != nil {
				return err
			}

			NewOutput(cmd.OutOrStdout(), cfg.Output).Print(result)
			return nil
		},
	}
}

func newMovesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "moves <id>",
		Short: "List the legal moves for the player to move",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.LegalMovesResponse
			if err := client.Get(gamePath(args[0], "moves"), &result); err != nil {
				return err
			}

			NewOutput(cmd.OutOrStdout(), cfg.Output).Print(result)
			return nil
		},
	}
}

func newMoveCmd() *cobra.Command {
	var (
		as    string
		token string
	)

	cmd := &cobra.Command{
		Use:   "move <id> <square>",
		Short: "Play a move, e.g. \"othello move <id> d3\"",
		Long: `Play a move for the player to move.

The square is in algebraic form (column letter, row number) or "row,col".
The colour defaults to whoever is to move; pass --as to be explicit.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			req, err := moveRequest(args[1])
			if err != nil {
				return err
			}

			req.Player = as
			if req.Player == "" {
				var current response.Game
				if err := client.Get(gamePath(id), &current); err != nil {
					return err
				}
				if current.ToMove == "" {
					return fmt.Errorf("game is over: %s", current.Status)
				}
				req.Player = current.ToMove
			}

			if token == "" {
				saved, _ := seats.Get(id)
				token = saved.tokenFor(req.Player)
			}
			if token == "" {
				return fmt.Errorf("no seat token saved for %s in game %s (use --token)", req.Player, id)
			}

			var result response.MoveResponse
			if err := client.Post(gamePath(id, "moves"), token, req, &result); err != nil {
				return err
			}

			NewOutput(cmd.OutOrStdout(), cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&as, "as", "", "Colour to play: black or white")
	cmd.Flags().StringVar(&token, "token", "", "Seat token (defaults to the saved one)")

	return cmd
}

// moveRequest parses "d3" or "2,3"
func moveRequest(square string) (request.MoveRequest, error) {
	if row, col, ok := parseRowCol(square); ok {
		return request.MoveRequest{Row: &row, Col: &col}, nil
	}
	if _, err := model.ParsePosition(square); err != nil {
		return request.MoveRequest{}, err
	}
	return request.MoveRequest{Square: square}, nil
}

func parseRowCol(s string) (int, int, bool) {
	rowStr, colStr, found := strings.Cut(s, ",")
	if !found {
		return 0, 0, false
	}
	row, err1 := strconv.Atoi(strings.TrimSpace(rowStr))
	col, err2 := strconv.Atoi(strings.TrimSpace(colStr))
	return row, col, err1 == nil && err2 == nil
}

func newRestartCmd() *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "restart <id>",
		Short: "Reset a game to an empty board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if token == "" {
				saved, _ := seats.Get(id)
				token = saved.anyToken()
			}

			var result response.Game
			if err := client.Post(gamePath(id, "restart"), token, nil, &result); err != nil {
				return err
			}

			NewOutput(cmd.OutOrStdout(), cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "Seat token (defaults to a saved one)")

	return cmd
}

func newAbandonCmd() *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "abandon <id>",
		Short: "Abandon a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if token == "" {
				saved, _ := seats.Get(id)
				token = saved.anyToken()
			}

			if err := client.Delete(gamePath(id), token); err != nil {
				return err
			}
			if err := seats.Remove(id); err != nil {
				return fmt.Errorf("forget seat tokens: %w", err)
			}

			NewOutput(cmd.OutOrStdout(), cfg.Output).PrintMessage("Game abandoned")
			return nil
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "Seat token (defaults to a saved one)")

	return cmd
}

func newSummariesCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "summaries",
		Short: "List recently finished games",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/summaries"
			if limit > 0 {
				path += "?limit=" + strconv.Itoa(limit)
			}

			var result response.SummariesResponse
			if err := client.Get(path, &result); err != nil {
				return err
			}

			NewOutput(cmd.OutOrStdout(), cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of games (server default when 0)")

	return cmd
}
