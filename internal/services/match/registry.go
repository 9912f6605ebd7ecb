package match

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mvidak/tictactoe-go/internal/dependencies/random"
	"github.com/mvidak/tictactoe-go/internal/model"
	"github.com/mvidak/tictactoe-go/internal/services/history"
)

const (
	// RoomCodeLength is the length of server-minted room codes
	RoomCodeLength = 6
	// RoomCodeAlphabet avoids easily confused characters
	RoomCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// Config holds tunables for match sessions
type Config struct {
	// RestartVoteTicks is the number of countdown ticks before a lone
	// restart vote is canceled
	RestartVoteTicks int
	// RestartTickInterval is the wall-clock duration of one countdown tick
	RestartTickInterval time.Duration
	// PersistTimeout bounds each write-behind persistence call
	PersistTimeout time.Duration
}

// DefaultConfig returns the production configuration: a 10 second vote window
// announced once per second
func DefaultConfig() Config {
	return Config{
		RestartVoteTicks:    10,
		RestartTickInterval: time.Second,
		PersistTimeout:      5 * time.Second,
	}
}

// Registry is the process-wide table of active match sessions, keyed by room
// code. It is an owned object (no package-level state); all mutation of a
// given room is linearized through that room's session lock, while distinct
// rooms proceed concurrently.
type Registry struct {
	mu    sync.Mutex
	rooms map[model.RoomCode]*Session

	history *history.Service
	emitter Emitter
	random  random.Random
	logger  *slog.Logger
	cfg     Config
}

// NewRegistry creates a new room registry
func NewRegistry(
	history *history.Service,
	emitter Emitter,
	random random.Random,
	logger *slog.Logger,
	cfg Config,
) *Registry {
	if cfg.RestartVoteTicks == 0 {
		cfg = DefaultConfig()
	}
	return &Registry{
		rooms:   make(map[model.RoomCode]*Session),
		history: history,
		emitter: emitter,
		random:  random,
		logger:  logger.With(slog.String("component", "match")),
		cfg:     cfg,
	}
}

// MintCode generates a room code not currently in use
func (r *Registry) MintCode() model.RoomCode {
	for {
		code := model.RoomCode(r.random.String(RoomCodeLength, RoomCodeAlphabet))
		r.mu.Lock()
		_, exists := r.rooms[code]
		r.mu.Unlock()
		if !exists {
			return code
		}
	}
}

// CreateResult is the caller-facing outcome of creating a room
type CreateResult struct {
	Symbol model.Symbol
	GameID model.GameID
}

// CreateRoom creates a room with the caller bound to the X slot. The game
// record is created inline but its failure never blocks room creation.
func (r *Registry) CreateRoom(ctx context.Context, code model.RoomCode, player model.PlayerID) (*CreateResult, error) {
	session := newSession(code, player, r)

	r.mu.Lock()
	if _, exists := r.rooms[code]; exists {
		r.mu.Unlock()
		return nil, model.ErrRoomAlreadyExists
	}
	r.rooms[code] = session
	r.mu.Unlock()

	// Record creation is best-effort: the in-memory room is the source of
	// truth and play proceeds without a durable mirror
	record, err := r.history.CreateGame(ctx, code, player)
	if err != nil {
		r.logger.Error("game record creation failed",
			slog.String("room_code", string(code)),
			slog.String("error", err.Error()),
		)
	} else {
		session.setGameRecordID(record.ID)
	}

	r.logger.Info("room created",
		slog.String("room_code", string(code)),
		slog.String("player_id", string(player)),
	)

	result := &CreateResult{Symbol: model.SymbolX}
	if record != nil {
		result.GameID = record.ID
	}
	return result, nil
}

// lookup returns the session for a code, or ErrRoomNotFound
func (r *Registry) lookup(code model.RoomCode) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.rooms[code]
	if !ok {
		return nil, model.ErrRoomNotFound
	}
	return session, nil
}

// JoinRoom admits a player into a room: a reconnect if the identity already
// holds a slot, otherwise a bind to the vacant slot
func (r *Registry) JoinRoom(ctx context.Context, code model.RoomCode, player model.PlayerID) (*JoinResult, error) {
	session, err := r.lookup(code)
	if err != nil {
		return nil, err
	}
	return session.join(ctx, player)
}

// Move applies a move submission to a room
func (r *Registry) Move(ctx context.Context, code model.RoomCode, player model.PlayerID, board model.BoardSnapshot) error {
	session, err := r.lookup(code)
	if err != nil {
		return err
	}
	return session.move(ctx, player, board)
}

// GameOver handles a client's end-of-game claim. The server is
// authoritative: the outcome is recomputed from the rules engine and a claim
// that disagrees is dropped.
func (r *Registry) GameOver(ctx context.Context, code model.RoomCode, player model.PlayerID) error {
	session, err := r.lookup(code)
	if err != nil {
		return err
	}
	return session.gameOver(ctx, player)
}

// RequestRestart casts the caller's restart vote
func (r *Registry) RequestRestart(code model.RoomCode, player model.PlayerID) error {
	session, err := r.lookup(code)
	if err != nil {
		return err
	}
	return session.requestRestart(player)
}

// CancelRestart explicitly abandons an in-progress restart vote
func (r *Registry) CancelRestart(code model.RoomCode, player model.PlayerID) error {
	session, err := r.lookup(code)
	if err != nil {
		return err
	}
	return session.cancelRestart(player)
}

// History returns the room's move sequence and slot assignment
func (r *Registry) History(code model.RoomCode) (*model.HistoryPayload, error) {
	session, err := r.lookup(code)
	if err != nil {
		return nil, err
	}
	return session.historySnapshot(), nil
}

// Disconnect notifies the remaining participant that their opponent's
// connection dropped. It does not touch slot bindings or the restart vote;
// those survive brief reconnects.
func (r *Registry) Disconnect(code model.RoomCode, player model.PlayerID) {
	session, err := r.lookup(code)
	if err != nil {
		return
	}
	session.notifyLeft(player)
}

// RemoveIfEmpty removes the room once its broadcast group has no members
// left. Emptiness is read from the live member count under the registry
// lock, so a join enrolled after the caller's own disconnect keeps the room
// alive. An unplayed game's persisted record is deleted so it leaves no
// trace; a played one stays behind as abandoned.
func (r *Registry) RemoveIfEmpty(ctx context.Context, code model.RoomCode) {
	r.mu.Lock()
	session, ok := r.rooms[code]
	if !ok {
		r.mu.Unlock()
		return
	}
	if r.emitter.MemberCount(code) > 0 {
		r.mu.Unlock()
		return
	}
	delete(r.rooms, code)
	r.mu.Unlock()

	gameID, played := session.abandon()

	r.logger.Info("room removed",
		slog.String("room_code", string(code)),
		slog.Bool("played", played),
	)

	if gameID == "" || played {
		return
	}
	if _, err := r.history.DeleteIfUnplayed(ctx, gameID); err != nil {
		r.logger.Error("unplayed game cleanup failed",
			slog.String("game_id", string(gameID)),
			slog.String("error", err.Error()),
		)
	}
}

// RoomCount returns the number of live rooms
func (r *Registry) RoomCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rooms)
}
