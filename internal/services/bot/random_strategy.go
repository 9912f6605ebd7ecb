package bot

import (
	"github.com/mvidak/tictactoe-go/internal/dependencies/random"
	"github.com/mvidak/tictactoe-go/internal/model"
)

// RandomStrategy picks a uniformly random empty cell
type RandomStrategy struct {
	random random.Random
}

// NewRandomStrategy creates a new RandomStrategy
func NewRandomStrategy(rnd random.Random) *RandomStrategy {
	return &RandomStrategy{random: rnd}
}

// ChoosePosition picks a random empty cell on the board
func (s *RandomStrategy) ChoosePosition(board model.BoardSnapshot, _ model.Symbol) (model.Position, bool) {
	empty := board.EmptyPositions()
	if len(empty) == 0 {
		return model.Position{}, false
	}
	return empty[s.random.Intn(len(empty))], true
}
