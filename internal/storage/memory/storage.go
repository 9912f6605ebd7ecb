package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/mvidak/tictactoe-go/internal/model"
	"github.com/mvidak/tictactoe-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	players           map[model.PlayerID]*model.Player
	registeredPlayers map[model.PlayerID]*model.RegisteredPlayer
	usernameIndex     map[string]model.PlayerID
	records           map[model.GameID]*model.GameRecord
	moves             map[model.GameID][]*model.MoveRecord
	finished          map[model.GameID]time.Time
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:           make(map[model.PlayerID]*model.Player),
		registeredPlayers: make(map[model.PlayerID]*model.RegisteredPlayer),
		usernameIndex:     make(map[string]model.PlayerID),
		records:           make(map[model.GameID]*model.GameRecord),
		moves:             make(map[model.GameID][]*model.MoveRecord),
		finished:          make(map[model.GameID]time.Time),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[player.ID] = player
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return player, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.players, id)
	return nil
}

// Registered player operations

func (s *Storage) SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registeredPlayers[rp.PlayerID] = rp
	s.usernameIndex[rp.Username] = rp.PlayerID
	return nil
}

func (s *Storage) GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rp, ok := s.registeredPlayers[playerID]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return rp, nil
}

func (s *Storage) GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	playerID, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	rp, ok := s.registeredPlayers[playerID]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return rp, nil
}

// Game record operations

func (s *Storage) SaveGameRecord(ctx context.Context, record *model.GameRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.ID] = record
	return nil
}

func (s *Storage) GetGameRecord(ctx context.Context, id model.GameID) (*model.GameRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return record, nil
}

func (s *Storage) DeleteGameRecord(ctx context.Context, id model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
	delete(s.finished, id)
	return nil
}

// Move log operations

func (s *Storage) AppendMove(ctx context.Context, move *model.MoveRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.moves[move.GameID] = append(s.moves[move.GameID], move)
	return nil
}

func (s *Storage) GetMoves(ctx context.Context, gameID model.GameID) ([]*model.MoveRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	moves := s.moves[gameID]
	result := make([]*model.MoveRecord, len(moves))
	copy(result, moves)
	return result, nil
}

func (s *Storage) DeleteMoves(ctx context.Context, gameID model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.moves, gameID)
	return nil
}

// Finished game index

func (s *Storage) AddFinishedGame(ctx context.Context, id model.GameID, finishedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finished[id] = finishedAt
	return nil
}

func (s *Storage) ListFinishedGames(ctx context.Context, limit int) ([]model.GameID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]model.GameID, 0, len(s.finished))
	for id := range s.finished {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return s.finished[ids[i]].After(s.finished[ids[j]])
	})

	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}
