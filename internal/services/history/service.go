package history

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mvidak/tictactoe-go/internal/dependencies/clock"
	"github.com/mvidak/tictactoe-go/internal/model"
	"github.com/mvidak/tictactoe-go/internal/services/rules"
	"github.com/mvidak/tictactoe-go/internal/storage"
)

// Service is the persistence adapter for game records and move logs. It is
// a write-behind mirror of live rooms: callers treat failures here as
// non-fatal and gameplay never waits on it.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new history service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger.With(slog.String("component", "history")),
	}
}

// CreateGame creates a fresh game record for a room with the given X player
func (s *Service) CreateGame(ctx context.Context, roomCode model.RoomCode, playerX model.PlayerID) (*model.GameRecord, error) {
	record := &model.GameRecord{
		ID:        model.GameID(uuid.NewString()),
		RoomCode:  roomCode,
		PlayerX:   playerX,
		CreatedAt: s.clock.Now(),
	}

	if err := s.storage.SaveGameRecord(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Info("game record created",
		slog.String("game_id", string(record.ID)),
		slog.String("room_code", string(roomCode)),
	)

	return record, nil
}

// SetPlayerO records the O slot assignment on the game record
func (s *Service) SetPlayerO(ctx context.Context, gameID model.GameID, playerO model.PlayerID) error {
	record, err := s.storage.GetGameRecord(ctx, gameID)
	if err != nil {
		return err
	}

	record.PlayerO = playerO
	return s.storage.SaveGameRecord(ctx, record)
}

// AppendMove appends one move to a game's durable log. moveIndex is the
// move's position in the room's move sequence.
func (s *Service) AppendMove(ctx context.Context, gameID model.GameID, moveIndex int, board model.BoardSnapshot, placed model.Symbol) error {
	return s.storage.AppendMove(ctx, &model.MoveRecord{
		GameID:    gameID,
		MoveIndex: moveIndex,
		Board:     board,
		Placed:    placed,
		CreatedAt: s.clock.Now(),
	})
}

// FinalizeGame marks a game record finished with its outcome
func (s *Service) FinalizeGame(ctx context.Context, gameID model.GameID, winner model.Symbol) error {
	record, err := s.storage.GetGameRecord(ctx, gameID)
	if err != nil {
		return err
	}

	now := s.clock.Now()
	record.Finished = true
	record.Winner = winner
	record.FinishedAt = now

	if err := s.storage.SaveGameRecord(ctx, record); err != nil {
		return err
	}

	return s.storage.AddFinishedGame(ctx, gameID, now)
}

// DeleteIfUnplayed removes the record and move log of a game that never saw
// a move. An unplayed game leaves no trace. Returns true if deleted.
func (s *Service) DeleteIfUnplayed(ctx context.Context, gameID model.GameID) (bool, error) {
	moves, err := s.storage.GetMoves(ctx, gameID)
	if err != nil {
		return false, err
	}
	if len(moves) > 0 {
		return false, nil
	}

	if err := s.storage.DeleteGameRecord(ctx, gameID); err != nil {
		return false, err
	}
	if err := s.storage.DeleteMoves(ctx, gameID); err != nil {
		return false, err
	}

	s.logger.Info("unplayed game record deleted", slog.String("game_id", string(gameID)))
	return true, nil
}

// GameMoves returns the ordered board snapshots of a game
func (s *Service) GameMoves(ctx context.Context, gameID model.GameID) ([]model.BoardSnapshot, error) {
	if _, err := s.storage.GetGameRecord(ctx, gameID); err != nil {
		return nil, err
	}

	moves, err := s.storage.GetMoves(ctx, gameID)
	if err != nil {
		return nil, err
	}

	boards := make([]model.BoardSnapshot, len(moves))
	for i, move := range moves {
		boards[i] = move.Board
	}
	return boards, nil
}

// FinishedGames returns summaries of finished games, newest first. The
// winner is recomputed from the move log rather than read off the record, so
// history display never disagrees with the rules engine.
func (s *Service) FinishedGames(ctx context.Context, limit int) ([]model.GameSummary, error) {
	ids, err := s.storage.ListFinishedGames(ctx, limit)
	if err != nil {
		return nil, err
	}

	summaries := make([]model.GameSummary, 0, len(ids))
	for _, id := range ids {
		record, err := s.storage.GetGameRecord(ctx, id)
		if err != nil {
			// Index entry with no record; skip rather than fail the listing
			s.logger.Warn("finished game record missing", slog.String("game_id", string(id)))
			continue
		}

		moves, err := s.storage.GetMoves(ctx, id)
		if err != nil {
			return nil, err
		}

		boards := make([]model.BoardSnapshot, len(moves))
		for i, move := range moves {
			boards[i] = move.Board
		}
		outcome := rules.ReplayOutcome(boards)

		summaries = append(summaries, model.GameSummary{
			ID:         record.ID,
			RoomCode:   record.RoomCode,
			PlayerX:    record.PlayerX,
			PlayerO:    record.PlayerO,
			Winner:     outcome.Winner,
			MoveCount:  len(moves),
			FinishedAt: record.FinishedAt,
		})
	}
	return summaries, nil
}
