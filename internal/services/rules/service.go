package rules

import (
	"github.com/mvidak/tictactoe-go/internal/model"
)

// lines enumerates the 8 winning lines of a 3x3 grid
var lines = [8][3]model.Position{
	{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}},
	{{Row: 1, Col: 0}, {Row: 1, Col: 1}, {Row: 1, Col: 2}},
	{{Row: 2, Col: 0}, {Row: 2, Col: 1}, {Row: 2, Col: 2}},
	{{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 2, Col: 0}},
	{{Row: 0, Col: 1}, {Row: 1, Col: 1}, {Row: 2, Col: 1}},
	{{Row: 0, Col: 2}, {Row: 1, Col: 2}, {Row: 2, Col: 2}},
	{{Row: 0, Col: 0}, {Row: 1, Col: 1}, {Row: 2, Col: 2}},
	{{Row: 0, Col: 2}, {Row: 1, Col: 1}, {Row: 2, Col: 0}},
}

// Winner returns the winning symbol and line if the snapshot contains one
func Winner(board model.BoardSnapshot) (model.Symbol, []model.Position, bool) {
	for _, line := range lines {
		first := board.Get(line[0])
		if first == model.SymbolNone {
			continue
		}
		if board.Get(line[1]) == first && board.Get(line[2]) == first {
			return first, line[:], true
		}
	}
	return model.SymbolNone, nil, false
}

// Outcome classifies a snapshot as a win, a draw, or still in progress
func Outcome(board model.BoardSnapshot) model.MatchOutcome {
	if sym, line, ok := Winner(board); ok {
		return model.MatchOutcome{Kind: model.OutcomeWin, Winner: sym, Line: line}
	}
	if board.IsFull() {
		return model.MatchOutcome{Kind: model.OutcomeDraw}
	}
	return model.MatchOutcome{Kind: model.OutcomeInProgress}
}

// ValidateTransition checks that next follows prev by exactly one placement
// of the expected symbol on a previously empty cell
func ValidateTransition(prev, next model.BoardSnapshot, expected model.Symbol) error {
	_, placed, ok := prev.DiffOne(next)
	if !ok {
		return model.ErrInvalidMove
	}
	if placed != expected {
		return model.ErrNotPlayerTurn
	}
	return nil
}

// ReplayOutcome derives the final outcome of a move sequence from its last
// snapshot. An empty sequence is in progress.
func ReplayOutcome(moves []model.BoardSnapshot) model.MatchOutcome {
	if len(moves) == 0 {
		return model.MatchOutcome{Kind: model.OutcomeInProgress}
	}
	return Outcome(moves[len(moves)-1])
}
