package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Room and game history commands",
	}

	cmd.AddCommand(newGameCreateCmd())
	cmd.AddCommand(newGameHistoryCmd())
	cmd.AddCommand(newGameMovesCmd())
	cmd.AddCommand(newGameBotCmd())

	return cmd
}

func newGameCreateCmd() *cobra.Command {
	var code string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Reserve a room and bind yourself to X",
		RunE: func(cmd *cobra.Command, args []string) error {
			var body any
			if code != "" {
				body = map[string]string{"code": code}
			}

			var result Room
			if err := client.Post("/api/v1/games", body, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "Room code (server mints one if omitted)")

	return cmd
}

func newGameHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List finished games, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []GameSummary
			path := fmt.Sprintf("/api/v1/games/history?limit=%d", limit)
			if err := client.Get(path, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of games to list")

	return cmd
}

func newGameMovesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "moves <game-id>",
		Short: "Show the move-by-move replay of a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameMoves
			if err := client.Get("/api/v1/games/"+args[0]+"/moves", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newGameBotCmd() *cobra.Command {
	var symbol string

	cmd := &cobra.Command{
		Use:   "bot <board>",
		Short: "Ask the practice bot for a move",
		Long: `Ask the practice bot for a move on the given board.

The board is nine characters in row-major order, using X, O, and . for empty:
  xoctl game bot "X.O...X.." --symbol O`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			board, err := parseBoardArg(args[0])
			if err != nil {
				return err
			}

			req := map[string]any{"board": board, "symbol": symbol}
			var result BotMove
			if err := client.Post("/api/v1/bot/move", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&symbol, "symbol", "O", "Symbol the bot plays (X or O)")

	return cmd
}

// parseBoardArg parses a nine-character row-major board string
func parseBoardArg(s string) (Board, error) {
	var board Board
	if len(s) != 9 {
		return board, fmt.Errorf("board must be exactly 9 characters, got %d", len(s))
	}
	for i, ch := range s {
		var cell string
		switch ch {
		case 'X', 'x':
			cell = "X"
		case 'O', 'o':
			cell = "O"
		case '.', '_', ' ':
			cell = ""
		default:
			return board, fmt.Errorf("invalid board character %q", ch)
		}
		board[i/3][i%3] = cell
	}
	return board, nil
}

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result HealthResult
			if err := client.Get("/api/v1/health", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}
