package match

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mvidak/tictactoe-go/internal/model"
	"github.com/mvidak/tictactoe-go/internal/services/rules"
)

// Session is the per-room match controller. Every handler for a room runs
// under the session mutex, so no two handlers interleave mutations of the
// same room; sessions for distinct rooms are independent.
type Session struct {
	mu      sync.Mutex
	room    model.Room
	restart restartState

	reg *Registry
}

func newSession(code model.RoomCode, creator model.PlayerID, reg *Registry) *Session {
	return &Session{
		room: model.Room{
			Code:  code,
			Phase: model.RoomPhaseAwaitingOpponent,
			SlotX: creator,
		},
		restart: newRestartState(),
		reg:     reg,
	}
}

func (s *Session) setGameRecordID(id model.GameID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.room.GameRecordID = string(id)
}

// persist runs one write-behind persistence call with a bounded context. It
// runs under the session lock so the mirror keeps the live move order; a
// degraded backend can therefore stall this room's handlers for up to
// PersistTimeout per call. Failures are logged and swallowed: storage is a
// mirror of the live room, never an authority over it.
func (s *Session) persist(op string, fn func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.reg.cfg.PersistTimeout)
	defer cancel()

	if err := fn(ctx); err != nil {
		s.reg.logger.Error("persistence failure",
			slog.String("op", op),
			slog.String("room_code", string(s.room.Code)),
			slog.String("error", err.Error()),
		)
	}
}

// JoinResult is the caller-facing outcome of joining a room
type JoinResult struct {
	Symbol      model.Symbol
	Reconnected bool
}

func (s *Session) join(ctx context.Context, player model.PlayerID) (*JoinResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// A removed session may still be reachable through a stale pointer; it
	// admits nobody
	if s.room.Phase == model.RoomPhaseAbandoned {
		return nil, model.ErrRoomNotFound
	}

	// Reconnect: the identity already holds a slot, re-admit under its
	// existing symbol
	if sym := s.room.SymbolOf(player); sym != model.SymbolNone {
		s.reg.emitter.SendToOthers(s.room.Code, player, model.NewSignal(model.EventOpponentConnected))
		return &JoinResult{Symbol: sym, Reconnected: true}, nil
	}

	if s.room.BothSlotsBound() {
		return nil, model.ErrRoomFull
	}

	// O whenever X is already taken
	sym := model.SymbolO
	if s.room.SlotX == "" {
		sym = model.SymbolX
		s.room.SlotX = player
	} else {
		s.room.SlotO = player
	}

	if s.room.BothSlotsBound() && s.room.Phase == model.RoomPhaseAwaitingOpponent {
		s.room.Phase = model.RoomPhaseActive
	}

	if sym == model.SymbolO && s.room.GameRecordID != "" {
		gameID := model.GameID(s.room.GameRecordID)
		s.persist("set player O", func(ctx context.Context) error {
			return s.reg.history.SetPlayerO(ctx, gameID, player)
		})
	}

	s.reg.emitter.SendToOthers(s.room.Code, player, model.NewSignal(model.EventOpponentConnected))

	s.reg.logger.Info("player joined room",
		slog.String("room_code", string(s.room.Code)),
		slog.String("player_id", string(player)),
		slog.String("symbol", string(sym)),
	)

	return &JoinResult{Symbol: sym}, nil
}

func (s *Session) move(ctx context.Context, player model.PlayerID, board model.BoardSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.room.Phase {
	case model.RoomPhaseActive:
	case model.RoomPhaseFinished:
		return model.ErrGameFinished
	default:
		return model.ErrGameNotActive
	}

	sym := s.room.SymbolOf(player)
	if sym == model.SymbolNone {
		return model.ErrNotInRoom
	}
	if s.room.Turn() != sym {
		return model.ErrNotPlayerTurn
	}

	prev := s.room.CurrentBoard()
	if err := rules.ValidateTransition(prev, board, sym); err != nil {
		return err
	}

	s.room.Moves = append(s.room.Moves, board)
	moveIndex := len(s.room.Moves) - 1

	// Relay before persisting: the opponent sees the move before the
	// bounded mirror write runs
	s.reg.emitter.SendToOthers(s.room.Code, player, model.NewEvent(model.EventOpponentMove, board))

	if s.room.GameRecordID != "" {
		gameID := model.GameID(s.room.GameRecordID)
		s.persist("append move", func(ctx context.Context) error {
			return s.reg.history.AppendMove(ctx, gameID, moveIndex, board, sym)
		})
	}

	if outcome := rules.Outcome(board); outcome.Kind != model.OutcomeInProgress {
		s.finishLocked(outcome)
	}

	return nil
}

// finishLocked concludes the game. Caller holds the session lock.
func (s *Session) finishLocked(outcome model.MatchOutcome) {
	s.room.Phase = model.RoomPhaseFinished
	s.room.Winner = outcome.Winner

	s.reg.emitter.Broadcast(s.room.Code, model.NewEvent(model.EventGameFinished, model.GameFinishedPayload{
		Winner: outcome.Winner,
	}))

	if s.room.GameRecordID != "" {
		gameID := model.GameID(s.room.GameRecordID)
		winner := outcome.Winner
		s.persist("finalize game", func(ctx context.Context) error {
			return s.reg.history.FinalizeGame(ctx, gameID, winner)
		})
	}

	s.reg.logger.Info("game finished",
		slog.String("room_code", string(s.room.Code)),
		slog.String("winner", string(outcome.Winner)),
	)
}

func (s *Session) gameOver(ctx context.Context, player model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.room.SymbolOf(player) == model.SymbolNone {
		return model.ErrNotInRoom
	}

	// Already concluded: re-announce the recorded outcome
	if s.room.Phase == model.RoomPhaseFinished {
		s.reg.emitter.Broadcast(s.room.Code, model.NewEvent(model.EventGameFinished, model.GameFinishedPayload{
			Winner: s.room.Winner,
		}))
		return nil
	}

	if s.room.Phase != model.RoomPhaseActive {
		return model.ErrGameNotActive
	}

	// The claim is only honored if the rules engine independently agrees
	// the board is concluded
	outcome := rules.Outcome(s.room.CurrentBoard())
	if outcome.Kind == model.OutcomeInProgress {
		return model.ErrGameNotActive
	}

	s.finishLocked(outcome)
	return nil
}

func (s *Session) historySnapshot() *model.HistoryPayload {
	s.mu.Lock()
	defer s.mu.Unlock()

	moves := make([]model.BoardSnapshot, len(s.room.Moves))
	copy(moves, s.room.Moves)

	return &model.HistoryPayload{
		Moves:   moves,
		Players: s.room.SlotAssignment(),
	}
}

// notifyLeft tells the remaining participant their opponent dropped. Slot
// bindings and any restart vote in progress are left untouched so a brief
// reconnect resumes cleanly.
func (s *Session) notifyLeft(player model.PlayerID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reg.emitter.SendToOthers(s.room.Code, player, model.NewSignal(model.EventOpponentLeft))
}

// abandon marks the session dead and invalidates any pending restart timer.
// Returns the persisted game id (if any) and whether a move was ever played.
func (s *Session) abandon() (model.GameID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.room.Phase = model.RoomPhaseAbandoned
	s.restart.invalidate()

	return model.GameID(s.room.GameRecordID), len(s.room.Moves) > 0
}

// snapshotRoom returns a copy of the room state, for tests and inspection
func (s *Session) snapshotRoom() model.Room {
	s.mu.Lock()
	defer s.mu.Unlock()

	room := s.room
	room.Moves = make([]model.BoardSnapshot, len(s.room.Moves))
	copy(room.Moves, s.room.Moves)
	return room
}
