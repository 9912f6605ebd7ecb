package bot

import "github.com/mvidak/tictactoe-go/internal/model"

// Strategy defines how a bot chooses its next placement
type Strategy interface {
	// ChoosePosition selects an empty cell to place the given symbol on.
	// Returns false if the board has no empty cell.
	ChoosePosition(board model.BoardSnapshot, symbol model.Symbol) (model.Position, bool)
}
