package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mvidak/tictactoe-go/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.GuestPlayerTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// Player tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := &model.Player{
		ID:          "player-1",
		DisplayName: "Alice",
		IsGuest:     false,
		CreatedAt:   time.Now(),
	}

	err := s.storage.SavePlayer(s.ctx, player)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(player.ID, retrieved.ID)
	s.Equal(player.DisplayName, retrieved.DisplayName)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestGuestPlayerHasTTL() {
	player := &model.Player{ID: "guest-1", DisplayName: "Guest", IsGuest: true}
	err := s.storage.SavePlayer(s.ctx, player)
	s.Require().NoError(err)

	ttl := s.mini.TTL(playerKey("guest-1"))
	s.Equal(time.Hour, ttl)
}

// Registered player tests

func (s *StorageSuite) TestRegisteredPlayerUsernameLookup() {
	rp := &model.RegisteredPlayer{
		PlayerID:     "player-1",
		Username:     "alice",
		PasswordHash: "hash",
	}
	err := s.storage.SaveRegisteredPlayer(s.ctx, rp)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetRegisteredPlayerByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("player-1"), retrieved.PlayerID)

	_, err = s.storage.GetRegisteredPlayerByUsername(s.ctx, "bob")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Game record tests

func (s *StorageSuite) TestSaveAndGetGameRecord() {
	record := &model.GameRecord{
		ID:        "game-1",
		RoomCode:  "ROOM01",
		PlayerX:   "player-1",
		CreatedAt: time.Now(),
	}

	err := s.storage.SaveGameRecord(s.ctx, record)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetGameRecord(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(record.RoomCode, retrieved.RoomCode)
	s.Equal(record.PlayerX, retrieved.PlayerX)
}

func (s *StorageSuite) TestGetGameRecordNotFound() {
	_, err := s.storage.GetGameRecord(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestDeleteGameRecordRemovesFinishedIndexEntry() {
	record := &model.GameRecord{ID: "game-1", RoomCode: "ROOM01"}
	_ = s.storage.SaveGameRecord(s.ctx, record)
	_ = s.storage.AddFinishedGame(s.ctx, "game-1", time.Now())

	err := s.storage.DeleteGameRecord(s.ctx, "game-1")
	s.Require().NoError(err)

	_, err = s.storage.GetGameRecord(s.ctx, "game-1")
	s.ErrorIs(err, model.ErrGameNotFound)

	ids, err := s.storage.ListFinishedGames(s.ctx, 10)
	s.Require().NoError(err)
	s.Empty(ids)
}

// Move log tests

func (s *StorageSuite) TestAppendAndGetMovesPreservesOrder() {
	board1 := model.BoardSnapshot{}.Place(model.Position{Row: 0, Col: 0}, model.SymbolX)
	board2 := board1.Place(model.Position{Row: 1, Col: 1}, model.SymbolO)

	err := s.storage.AppendMove(s.ctx, &model.MoveRecord{GameID: "game-1", MoveIndex: 0, Board: board1, Placed: model.SymbolX})
	s.Require().NoError(err)
	err = s.storage.AppendMove(s.ctx, &model.MoveRecord{GameID: "game-1", MoveIndex: 1, Board: board2, Placed: model.SymbolO})
	s.Require().NoError(err)

	moves, err := s.storage.GetMoves(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Require().Len(moves, 2)
	s.Equal(0, moves[0].MoveIndex)
	s.Equal(1, moves[1].MoveIndex)
	s.Equal(board1, moves[0].Board)
	s.Equal(board2, moves[1].Board)
}

func (s *StorageSuite) TestGetMovesEmpty() {
	moves, err := s.storage.GetMoves(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Empty(moves)
}

func (s *StorageSuite) TestDeleteMoves() {
	_ = s.storage.AppendMove(s.ctx, &model.MoveRecord{GameID: "game-1", MoveIndex: 0})

	err := s.storage.DeleteMoves(s.ctx, "game-1")
	s.Require().NoError(err)

	moves, _ := s.storage.GetMoves(s.ctx, "game-1")
	s.Empty(moves)
}

// Finished index tests

func (s *StorageSuite) TestListFinishedGamesNewestFirst() {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	_ = s.storage.AddFinishedGame(s.ctx, "game-1", base)
	_ = s.storage.AddFinishedGame(s.ctx, "game-2", base.Add(time.Minute))
	_ = s.storage.AddFinishedGame(s.ctx, "game-3", base.Add(2*time.Minute))

	ids, err := s.storage.ListFinishedGames(s.ctx, 2)
	s.Require().NoError(err)
	s.Equal([]model.GameID{"game-3", "game-2"}, ids)
}
