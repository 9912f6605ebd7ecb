package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
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
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]any{
			"error": map[string]string{"message": err.Error()},
		})
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case AuthResult:
		o.printAuthResult(v)
	case Room:
		o.printRoom(v)
	case []GameSummary:
		o.printGameSummaries(v)
	case GameMoves:
		o.printGameMoves(v)
	case BotMove:
		o.printBotMove(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// AuthResult combines player and token
type AuthResult struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// Room response type
type Room struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	GameID string `json:"game_id,omitempty"`
}

// GameSummary response type
type GameSummary struct {
	ID         string    `json:"id"`
	RoomCode   string    `json:"room_code"`
	PlayerX    string    `json:"player_x"`
	PlayerO    string    `json:"player_o,omitempty"`
	Winner     *string   `json:"winner"`
	MoveCount  int       `json:"move_count"`
	FinishedAt time.Time `json:"finished_at"`
}

// Board is a 3x3 grid of "X", "O", or ""
type Board [3][3]string

// GameMoves response type
type GameMoves struct {
	ID    string  `json:"id"`
	Moves []Board `json:"moves"`
}

// Position response type
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// BotMove response type
type BotMove struct {
	Position Position `json:"position"`
	Board    Board    `json:"board"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	guestStr := "no"
	if p.IsGuest {
		guestStr = "yes"
	}
	fmt.Printf("Player: %s (%s)\n", p.DisplayName, p.ID)
	fmt.Printf("Guest: %s\n", guestStr)
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printPlayer(a.Player)
	fmt.Printf("Token: %s\n", a.SessionToken)
}

func (o *Output) printRoom(r Room) {
	fmt.Printf("Room: %s\n", r.Code)
	fmt.Printf("You play: %s\n", r.Symbol)
	if r.GameID != "" {
		fmt.Printf("Game: %s\n", r.GameID)
	}
}

func (o *Output) printGameSummaries(summaries []GameSummary) {
	if len(summaries) == 0 {
		fmt.Println("No finished games")
		return
	}

	for _, s := range summaries {
		result := "draw"
		if s.Winner != nil {
			result = *s.Winner + " won"
		}
		fmt.Printf("%s  room=%s  %s  moves=%d  finished=%s\n",
			s.ID, s.RoomCode, result, s.MoveCount, s.FinishedAt.Format(time.RFC3339))
	}
}

func (o *Output) printGameMoves(g GameMoves) {
	fmt.Printf("Game: %s (%d moves)\n", g.ID, len(g.Moves))
	for i, board := range g.Moves {
		fmt.Printf("\nMove %d:\n", i+1)
		o.printBoard(board)
	}
}

func (o *Output) printBotMove(m BotMove) {
	fmt.Printf("Bot plays row %d, col %d:\n", m.Position.Row, m.Position.Col)
	o.printBoard(m.Board)
}

func (o *Output) printBoard(b Board) {
	fmt.Println("   0   1   2")
	for row := 0; row < 3; row++ {
		fmt.Printf("%d ", row)
		for col := 0; col < 3; col++ {
			cell := b[row][col]
			if cell == "" {
				cell = "."
			}
			fmt.Printf(" %s ", cell)
			if col < 2 {
				fmt.Print("|")
			}
		}
		fmt.Println()
		if row < 2 {
			fmt.Println("  ---+---+---")
		}
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
