package match

import (
	"context"
	"log/slog"
	"time"

	"github.com/mvidak/tictactoe-go/internal/model"
)

// restartState is the per-session restart vote sub-machine. The generation
// counter invalidates the countdown goroutine: every confirm, cancel, or
// abandon bumps it, and a tick whose generation no longer matches is a no-op.
type restartState struct {
	votes      map[model.PlayerID]struct{}
	generation uint64
	remaining  int
}

func newRestartState() restartState {
	return restartState{votes: make(map[model.PlayerID]struct{})}
}

// invalidate clears the vote and orphans any running countdown. Caller holds
// the session lock.
func (r *restartState) invalidate() {
	r.generation++
	r.votes = make(map[model.PlayerID]struct{})
	r.remaining = 0
}

// requestRestart casts one restart vote. The first vote opens a countdown
// window; a second vote from the other occupant confirms the restart; a
// repeat vote from the same occupant changes nothing.
func (s *Session) requestRestart(player model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.room.SymbolOf(player) == model.SymbolNone {
		return model.ErrNotInRoom
	}
	if s.room.Phase == model.RoomPhaseAbandoned || !s.room.BothSlotsBound() {
		return model.ErrGameNotActive
	}

	if _, voted := s.restart.votes[player]; voted {
		return nil
	}
	s.restart.votes[player] = struct{}{}

	if len(s.restart.votes) < 2 {
		s.restart.remaining = s.reg.cfg.RestartVoteTicks
		s.reg.emitter.Broadcast(s.room.Code, model.NewEvent(model.EventRestartCountdown, model.RestartCountdownPayload{
			Remaining: s.restart.remaining,
		}))
		go s.runCountdown(s.restart.generation)
		return nil
	}

	s.confirmRestartLocked()
	return nil
}

// cancelRestart withdraws an in-progress restart vote. With no vote pending
// it is a no-op.
func (s *Session) cancelRestart(player model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.room.SymbolOf(player) == model.SymbolNone {
		return model.ErrNotInRoom
	}
	if len(s.restart.votes) == 0 {
		return nil
	}

	s.restart.invalidate()
	s.reg.emitter.Broadcast(s.room.Code, model.NewSignal(model.EventRestartCanceled))

	s.reg.logger.Info("restart vote canceled",
		slog.String("room_code", string(s.room.Code)),
		slog.String("player_id", string(player)),
	)
	return nil
}

// runCountdown announces the shrinking vote window once per tick and cancels
// the vote when it reaches zero. It holds no state of its own: each tick
// re-checks the generation under the session lock, so a confirm or cancel
// that raced ahead of the timer silently retires it.
func (s *Session) runCountdown(generation uint64) {
	ticker := time.NewTicker(s.reg.cfg.RestartTickInterval)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.Lock()
		if s.restart.generation != generation {
			s.mu.Unlock()
			return
		}

		s.restart.remaining--
		s.reg.emitter.Broadcast(s.room.Code, model.NewEvent(model.EventRestartCountdown, model.RestartCountdownPayload{
			Remaining: s.restart.remaining,
		}))

		if s.restart.remaining <= 0 {
			s.restart.invalidate()
			s.reg.emitter.Broadcast(s.room.Code, model.NewSignal(model.EventRestartCanceled))
			s.reg.logger.Info("restart vote expired", slog.String("room_code", string(s.room.Code)))
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()
	}
}

// confirmRestartLocked resets the room for a new game: symbols swap, the move
// sequence clears, and a fresh game record replaces the concluded one. Caller
// holds the session lock.
func (s *Session) confirmRestartLocked() {
	s.restart.invalidate()

	s.room.SwapSlots()
	s.room.Moves = nil
	s.room.Winner = model.SymbolNone
	s.room.Phase = model.RoomPhaseActive
	s.room.GameRecordID = ""

	s.reg.emitter.Broadcast(s.room.Code, model.NewEvent(model.EventRestartConfirmed, model.RestartConfirmedPayload{
		Players: s.room.SlotAssignment(),
	}))

	// A concluded game's record is immutable; the rematch gets its own
	var record *model.GameRecord
	s.persist("create rematch record", func(ctx context.Context) error {
		created, err := s.reg.history.CreateGame(ctx, s.room.Code, s.room.SlotX)
		if err != nil {
			return err
		}
		record = created
		return s.reg.history.SetPlayerO(ctx, created.ID, s.room.SlotO)
	})
	if record != nil {
		s.room.GameRecordID = string(record.ID)
	}

	s.reg.logger.Info("restart confirmed",
		slog.String("room_code", string(s.room.Code)),
		slog.String("player_x", string(s.room.SlotX)),
		slog.String("player_o", string(s.room.SlotO)),
	)
}
