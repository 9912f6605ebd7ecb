package e2e_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvidak/tictactoe-go/internal/api"
	"github.com/mvidak/tictactoe-go/internal/factory"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
	tokenFile  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(projectRoot, "bin", "xoctl-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/xoctl")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	// Create temp token file
	tokenFile := filepath.Join(t.TempDir(), "token")

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
		tokenFile:  tokenFile,
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token-file", r.tokenFile,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func (r *cliRunner) runWithToken(token string, args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token", token,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	server   *http.Server
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	app, err := factory.New(factory.Config{Logger: logger})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		AuthService:    app.AuthService,
		Registry:       app.Registry,
		HistoryService: app.HistoryService,
		BotService:     app.BotService,
		HubManager:     app.HubManager,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	// Wait for server to be ready
	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/api/v1/health")

	return &testServer{
		server: server,
		addr:   serverURL,
		shutdown: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing
type authResponse struct {
	Player struct {
		ID          string `json:"id"`
		DisplayName string `json:"display_name"`
		IsGuest     bool   `json:"is_guest"`
	} `json:"player"`
	SessionToken string `json:"session_token"`
}

type roomResponse struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	GameID string `json:"game_id"`
}

type gameSummaryResponse struct {
	ID        string  `json:"id"`
	RoomCode  string  `json:"room_code"`
	Winner    *string `json:"winner"`
	MoveCount int     `json:"move_count"`
}

type gameMovesResponse struct {
	ID    string        `json:"id"`
	Moves []boardOfGame `json:"moves"`
}

type boardOfGame [3][3]string

type botMoveResponse struct {
	Position struct {
		Row int `json:"row"`
		Col int `json:"col"`
	} `json:"position"`
	Board boardOfGame `json:"board"`
}

type healthResponse struct {
	Status string `json:"status"`
}

// wsPeer is a raw websocket connection used to drive a match
type wsPeer struct {
	conn *websocket.Conn
}

func dialPeer(t *testing.T, serverURL, token string) *wsPeer {
	t.Helper()

	url := "ws" + strings.TrimPrefix(serverURL, "http") + "/ws?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return &wsPeer{conn: conn}
}

func (p *wsPeer) send(t *testing.T, msg map[string]any) {
	t.Helper()
	require.NoError(t, p.conn.WriteJSON(msg))
}

// expect reads events until one of the wanted type arrives
func (p *wsPeer) expect(t *testing.T, wanted string) json.RawMessage {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	require.NoError(t, p.conn.SetReadDeadline(deadline))
	for {
		var event struct {
			Type    string          `json:"type"`
			Payload json.RawMessage `json:"payload"`
		}
		require.NoError(t, p.conn.ReadJSON(&event))
		if event.Type == wanted {
			return event.Payload
		}
	}
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)

	var resp healthResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestCLI_PlayerCommands(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Create guest
	output, err := cli.run("player", "guest", "--name", "Alice")
	require.NoError(t, err, "output: %s", output)

	var authResp authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &authResp))
	assert.Equal(t, "Alice", authResp.Player.DisplayName)
	assert.True(t, authResp.Player.IsGuest)
	assert.NotEmpty(t, authResp.SessionToken)

	// Get me (token should be saved in token file)
	output, err = cli.run("player", "me")
	require.NoError(t, err, "output: %s", output)

	var player struct {
		ID          string `json:"id"`
		DisplayName string `json:"display_name"`
		IsGuest     bool   `json:"is_guest"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &player))
	assert.Equal(t, "Alice", player.DisplayName)
	assert.Equal(t, authResp.Player.ID, player.ID)

	// Logout invalidates the session
	_, err = cli.run("player", "logout")
	require.NoError(t, err)

	output, err = cli.run("player", "me")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "unauthorized")
}

func TestCLI_RegisterAndLogin(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("player", "register", "--name", "Alice", "--user", "alice", "--pass", "hunter22")
	require.NoError(t, err, "output: %s", output)

	var authResp authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &authResp))
	assert.False(t, authResp.Player.IsGuest)

	output, err = cli.run("player", "login", "--user", "alice", "--pass", "hunter22")
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &authResp))
	assert.Equal(t, "Alice", authResp.Player.DisplayName)
}

func TestCLI_GameCreateAndBot(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("player", "guest", "--name", "Alice")
	require.NoError(t, err, "output: %s", output)
	var auth authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &auth))

	// Reserve a room over the HTTP surface
	output, err = cli.run("game", "create", "--code", "CLITST")
	require.NoError(t, err, "output: %s", output)

	var room roomResponse
	require.NoError(t, json.Unmarshal([]byte(output), &room))
	assert.Equal(t, "CLITST", room.Code)
	assert.Equal(t, "X", room.Symbol)
	assert.NotEmpty(t, room.GameID)

	// Duplicate code is rejected
	output, err = cli.run("game", "create", "--code", "CLITST")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "exists")

	// Ask the practice bot for a move
	output, err = cli.run("game", "bot", "X.O...X..", "--symbol", "O")
	require.NoError(t, err, "output: %s", output)

	var bot botMoveResponse
	require.NoError(t, json.Unmarshal([]byte(output), &bot))
	assert.Equal(t, "O", bot.Board[bot.Position.Row][bot.Position.Col])
}

func TestCLI_HistoryAfterMatch(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli1 := newCLIRunner(t, ts.addr)
	cli2 := &cliRunner{
		binaryPath: cli1.binaryPath,
		serverURL:  cli1.serverURL,
		tokenFile:  filepath.Join(t.TempDir(), "token2"),
	}

	// Create two players
	output, err := cli1.run("player", "guest", "--name", "Alice")
	require.NoError(t, err, "output: %s", output)
	var auth1 authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &auth1))

	output, err = cli2.run("player", "guest", "--name", "Bob")
	require.NoError(t, err, "output: %s", output)
	var auth2 authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &auth2))

	// Drive a full match on the real-time surface
	alice := dialPeer(t, ts.addr, auth1.SessionToken)
	bob := dialPeer(t, ts.addr, auth2.SessionToken)

	alice.send(t, map[string]any{"type": "createRoom", "room": "E2EGAM"})
	payload := alice.expect(t, "assignSymbol")

	var assign struct {
		Symbol string `json:"symbol"`
		Room   string `json:"room"`
		GameID string `json:"game_id"`
	}
	require.NoError(t, json.Unmarshal(payload, &assign))
	require.Equal(t, "X", assign.Symbol)
	gameID := assign.GameID

	bob.send(t, map[string]any{"type": "joinRoom", "room": "E2EGAM"})
	bob.expect(t, "assignSymbol")
	alice.expect(t, "opponentConnected")

	// Top-row win for X
	var board boardOfGame
	moves := []struct {
		peer *wsPeer
		row  int
		col  int
		sym  string
	}{
		{alice, 0, 0, "X"},
		{bob, 1, 0, "O"},
		{alice, 0, 1, "X"},
		{bob, 1, 1, "O"},
		{alice, 0, 2, "X"},
	}
	for _, m := range moves {
		board[m.row][m.col] = m.sym
		m.peer.send(t, map[string]any{"type": "playerMove", "room": "E2EGAM", "board": board})
	}

	finished := bob.expect(t, "gameFinished")
	var outcome struct {
		Winner string `json:"winner"`
	}
	require.NoError(t, json.Unmarshal(finished, &outcome))
	assert.Equal(t, "X", outcome.Winner)

	// The finished game is visible in history via the CLI
	output, err = cli1.run("game", "history")
	require.NoError(t, err, "output: %s", output)

	var summaries []gameSummaryResponse
	require.NoError(t, json.Unmarshal([]byte(output), &summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, gameID, summaries[0].ID)
	assert.Equal(t, "E2EGAM", summaries[0].RoomCode)
	require.NotNil(t, summaries[0].Winner)
	assert.Equal(t, "X", *summaries[0].Winner)
	assert.Equal(t, 5, summaries[0].MoveCount)

	// Move-by-move replay
	output, err = cli1.run("game", "moves", gameID)
	require.NoError(t, err, "output: %s", output)

	var replay gameMovesResponse
	require.NoError(t, json.Unmarshal([]byte(output), &replay))
	assert.Equal(t, gameID, replay.ID)
	require.Len(t, replay.Moves, 5)
	assert.Equal(t, "X", replay.Moves[4][0][2])
}

func TestCLI_ErrorHandling(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Get player without auth
	output, err := cli.run("player", "me")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "unauthorized")

	// Look up a non-existent game
	output, err = cli.run("player", "guest", "--name", "Alice")
	require.NoError(t, err)
	var auth authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &auth))

	output, err = cli.runWithToken(auth.SessionToken, "game", "moves", "no-such-game")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "not found")
}
