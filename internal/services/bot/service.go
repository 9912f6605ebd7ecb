package bot

import (
	"log/slog"

	"github.com/mvidak/tictactoe-go/internal/model"
	"github.com/mvidak/tictactoe-go/internal/services/rules"
)

// Service produces practice-opponent moves for a board position. It plays
// against a client-side board; it never joins a room.
type Service struct {
	strategy Strategy
	logger   *slog.Logger
}

// New creates a new bot service
func New(strategy Strategy, logger *slog.Logger) *Service {
	return &Service{
		strategy: strategy,
		logger:   logger.With(slog.String("component", "bot")),
	}
}

// SuggestMove returns the bot's placement for the given position and the
// resulting board. The position must still be playable.
func (s *Service) SuggestMove(board model.BoardSnapshot, symbol model.Symbol) (model.Position, model.BoardSnapshot, error) {
	if symbol != model.SymbolX && symbol != model.SymbolO {
		return model.Position{}, board, model.ErrInvalidMove
	}
	if outcome := rules.Outcome(board); outcome.Kind != model.OutcomeInProgress {
		return model.Position{}, board, model.ErrGameFinished
	}

	pos, ok := s.strategy.ChoosePosition(board, symbol)
	if !ok {
		return model.Position{}, board, model.ErrGameFinished
	}

	return pos, board.Place(pos, symbol), nil
}
