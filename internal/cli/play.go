package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

// wsEvent is the server-to-client envelope on the websocket surface
type wsEvent struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// wsCommand is the client-to-server envelope
type wsCommand struct {
	Type  string `json:"type"`
	Room  string `json:"room,omitempty"`
	Board *Board `json:"board,omitempty"`
}

// playState tracks the local view of the match. The event-reader goroutine
// and the stdin loop both touch it, so all access goes through the mutex.
type playState struct {
	mu     sync.Mutex
	room   string
	symbol string
	board  Board
	moves  int
}

func (s *playState) assign(room, symbol string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.room = room
	s.symbol = symbol
}

func (s *playState) roomCode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.room
}

func (s *playState) mySymbol() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.symbol
}

// applyRemote records the opponent's move
func (s *playState) applyRemote(b Board) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.board = b
	s.moves++
}

// placeLocal commits one of our placements and returns the board to send,
// or an error if the cell is already taken
func (s *playState) placeLocal(row, col int) (Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.board[row][col] != "" {
		return Board{}, fmt.Errorf("that cell is occupied")
	}
	s.board[row][col] = s.symbol
	s.moves++
	return s.board, nil
}

// swapSymbol flips our symbol for a rematch and clears the board, returning
// the new symbol
func (s *playState) swapSymbol() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.symbol == "X" {
		s.symbol = "O"
	} else {
		s.symbol = "X"
	}
	s.board = Board{}
	s.moves = 0
	return s.symbol
}

func newPlayCmd() *cobra.Command {
	var room string
	var create bool

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a live match over the websocket surface",
		Long: `Play a live match over the websocket surface.

Create a room and wait for an opponent:
  xoctl play --create

Join an existing room:
  xoctl play --room ABC123

During the match, type moves as "row col" (e.g. "1 2"). Other commands:
restart, cancel, history, quit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !create && room == "" {
				return fmt.Errorf("either --create or --room is required")
			}
			if cfg.Token == "" {
				return fmt.Errorf("no session token; run 'xoctl player guest --name <name>' first")
			}
			return runPlay(room, create)
		},
	}

	cmd.Flags().StringVar(&room, "room", "", "Room code to join")
	cmd.Flags().BoolVar(&create, "create", false, "Create a new room")

	return cmd
}

func runPlay(room string, create bool) error {
	url := wsURL(cfg.ServerURL) + "/ws?token=" + cfg.Token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return fmt.Errorf("websocket dial failed: %w", err)
	}
	defer conn.Close()

	if create {
		err = conn.WriteJSON(wsCommand{Type: "createRoom", Room: room})
	} else {
		err = conn.WriteJSON(wsCommand{Type: "joinRoom", Room: room})
	}
	if err != nil {
		return err
	}

	state := &playState{}
	out := NewOutput(cfg.Output)

	// Server events print as they arrive; stdin drives commands
	done := make(chan error, 1)
	go func() {
		for {
			var event wsEvent
			if err := conn.ReadJSON(&event); err != nil {
				done <- nil
				return
			}
			if err := handleEvent(state, out, event); err != nil {
				done <- err
				return
			}
		}
	}()

	go readCommands(conn, state)

	return <-done
}

// wsURL converts the configured HTTP base URL to a websocket URL
func wsURL(base string) string {
	base = strings.TrimSuffix(base, "/")
	switch {
	case strings.HasPrefix(base, "https://"):
		return "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		return "ws://" + strings.TrimPrefix(base, "http://")
	default:
		return "ws://" + base
	}
}

func handleEvent(state *playState, out *Output, event wsEvent) error {
	switch event.Type {
	case "assignSymbol":
		var payload struct {
			Symbol string `json:"symbol"`
			Room   string `json:"room"`
		}
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			return err
		}
		state.assign(payload.Room, payload.Symbol)
		fmt.Printf("Joined room %s as %s\n", payload.Room, payload.Symbol)
		if payload.Symbol == "X" {
			fmt.Println("Waiting for an opponent... you move first.")
		}

	case "opponentConnected":
		fmt.Println("Opponent connected")

	case "opponentLeft":
		fmt.Println("Opponent disconnected")

	case "opponentMove":
		var board Board
		if err := json.Unmarshal(event.Payload, &board); err != nil {
			return err
		}
		state.applyRemote(board)
		fmt.Println("Opponent moved:")
		out.printBoard(board)

	case "gameFinished":
		var payload struct {
			Winner string `json:"winner"`
		}
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			return err
		}
		switch payload.Winner {
		case "":
			fmt.Println("Game over: draw")
		case state.mySymbol():
			fmt.Println("Game over: you win!")
		default:
			fmt.Printf("Game over: %s wins\n", payload.Winner)
		}
		fmt.Println(`Type "restart" for a rematch or "quit" to leave.`)

	case "restartCountdown":
		var payload struct {
			Remaining int `json:"remaining"`
		}
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			return err
		}
		fmt.Printf("Restart vote: %d...\n", payload.Remaining)

	case "restartConfirmed":
		// Slots swap on restart, so our symbol flips
		fmt.Printf("Rematch! You now play %s\n", state.swapSymbol())

	case "restartCanceled":
		fmt.Println("Restart vote canceled")

	case "history":
		var payload struct {
			Moves []Board `json:"moves"`
		}
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			return err
		}
		fmt.Printf("%d moves so far\n", len(payload.Moves))
		if len(payload.Moves) > 0 {
			out.printBoard(payload.Moves[len(payload.Moves)-1])
		}

	case "roomNotFound":
		return fmt.Errorf("room not found")
	case "roomFull":
		return fmt.Errorf("room is full")
	case "roomAlreadyExists":
		return fmt.Errorf("room code is already in use")
	}

	return nil
}

// readCommands reads stdin and translates lines into websocket commands
func readCommands(conn *websocket.Conn, state *playState) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "quit", "exit":
			conn.Close()
			return
		case "restart":
			_ = conn.WriteJSON(wsCommand{Type: "requestRestart", Room: state.roomCode()})
		case "cancel":
			_ = conn.WriteJSON(wsCommand{Type: "cancelRestart", Room: state.roomCode()})
		case "history":
			_ = conn.WriteJSON(wsCommand{Type: "getGameHistory", Room: state.roomCode()})
		default:
			row, col, err := parseMove(line)
			if err != nil {
				fmt.Println(err)
				continue
			}
			next, err := state.placeLocal(row, col)
			if err != nil {
				fmt.Println(err)
				continue
			}
			if err := conn.WriteJSON(wsCommand{Type: "playerMove", Room: state.roomCode(), Board: &next}); err != nil {
				return
			}
		}
	}
}

// parseMove parses a "row col" move line
func parseMove(line string) (int, int, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf(`moves are "row col", e.g. "1 2"`)
	}
	row, err1 := strconv.Atoi(fields[0])
	col, err2 := strconv.Atoi(fields[1])
	if err1 != nil || err2 != nil || row < 0 || row > 2 || col < 0 || col > 2 {
		return 0, 0, fmt.Errorf("row and col must be between 0 and 2")
	}
	return row, col, nil
}
