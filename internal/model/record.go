package model

import "time"

// GameID uniquely identifies a persisted game record
type GameID string

// GameRecord is the durable mirror of one game played in a room. The live
// Room is the source of truth while the game runs; the record is a
// write-behind copy for history and replay.
type GameRecord struct {
	ID       GameID
	RoomCode RoomCode
	PlayerX  PlayerID
	PlayerO  PlayerID // empty until the O slot is bound

	Finished   bool
	Winner     Symbol // SymbolNone means draw (when Finished)
	CreatedAt  time.Time
	FinishedAt time.Time
}

// MoveRecord is one entry in a game's append-only move log
type MoveRecord struct {
	GameID    GameID
	MoveIndex int // position in the move sequence, 0-based
	Board     BoardSnapshot
	Placed    Symbol // symbol placed by this move
	CreatedAt time.Time
}

// OutcomeKind classifies how a game ended
type OutcomeKind string

const (
	OutcomeWin        OutcomeKind = "win"
	OutcomeDraw       OutcomeKind = "draw"
	OutcomeInProgress OutcomeKind = "in_progress"
)

// MatchOutcome is derived from the move sequence by replay, never stored
// redundantly alongside the raw moves
type MatchOutcome struct {
	Kind   OutcomeKind
	Winner Symbol     // set for wins
	Line   []Position // the winning line, for wins
}

// GameSummary is a lightweight view of a finished game for history listings
type GameSummary struct {
	ID         GameID    `json:"id"`
	RoomCode   RoomCode  `json:"room_code"`
	PlayerX    PlayerID  `json:"player_x"`
	PlayerO    PlayerID  `json:"player_o"`
	Winner     Symbol    `json:"winner,omitempty"`
	MoveCount  int       `json:"move_count"`
	FinishedAt time.Time `json:"finished_at"`
}
