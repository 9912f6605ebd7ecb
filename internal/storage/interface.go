package storage

import (
	"context"
	"time"

	"github.com/mvidak/tictactoe-go/internal/model"
)

// Storage defines the interface for data persistence. Game records and move
// logs form the write-behind mirror of live rooms; the in-memory room is the
// source of truth while a game runs.
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	DeletePlayer(ctx context.Context, id model.PlayerID) error

	// Registered player operations
	SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error
	GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error)
	GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error)

	// Game record operations
	SaveGameRecord(ctx context.Context, record *model.GameRecord) error
	GetGameRecord(ctx context.Context, id model.GameID) (*model.GameRecord, error)
	DeleteGameRecord(ctx context.Context, id model.GameID) error

	// Move log operations (append-only per game)
	AppendMove(ctx context.Context, move *model.MoveRecord) error
	GetMoves(ctx context.Context, gameID model.GameID) ([]*model.MoveRecord, error)
	DeleteMoves(ctx context.Context, gameID model.GameID) error

	// Finished game index, newest first
	AddFinishedGame(ctx context.Context, id model.GameID, finishedAt time.Time) error
	ListFinishedGames(ctx context.Context, limit int) ([]model.GameID, error)
}
