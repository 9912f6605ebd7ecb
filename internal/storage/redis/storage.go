package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mvidak/tictactoe-go/internal/model"
	"github.com/mvidak/tictactoe-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	// Apply TTL only for guest players
	var ttl time.Duration
	if player.IsGuest {
		ttl = s.cfg.GuestPlayerTTL
	}

	return s.client.Set(ctx, playerKey(player.ID), data, ttl).Err()
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	return s.client.Del(ctx, playerKey(id)).Err()
}

// Registered player operations

func (s *Storage) SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error {
	data, err := json.Marshal(rp)
	if err != nil {
		return err
	}

	// Pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, registeredPlayerKey(rp.PlayerID), data, 0)
	pipe.Set(ctx, usernameIndexKey(rp.Username), string(rp.PlayerID), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error) {
	data, err := s.client.Get(ctx, registeredPlayerKey(playerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var rp model.RegisteredPlayer
	if err := json.Unmarshal(data, &rp); err != nil {
		return nil, err
	}
	return &rp, nil
}

func (s *Storage) GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error) {
	playerIDStr, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	return s.GetRegisteredPlayer(ctx, model.PlayerID(playerIDStr))
}

// Game record operations

func (s *Storage) SaveGameRecord(ctx context.Context, record *model.GameRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, gameRecordKey(record.ID), data, s.cfg.GameTTL).Err()
}

func (s *Storage) GetGameRecord(ctx context.Context, id model.GameID) (*model.GameRecord, error) {
	data, err := s.client.Get(ctx, gameRecordKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}

	var record model.GameRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *Storage) DeleteGameRecord(ctx context.Context, id model.GameID) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, gameRecordKey(id))
	pipe.ZRem(ctx, finishedIndexKey, string(id))
	_, err := pipe.Exec(ctx)
	return err
}

// Move log operations

func (s *Storage) AppendMove(ctx context.Context, move *model.MoveRecord) error {
	data, err := json.Marshal(move)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.RPush(ctx, moveLogKey(move.GameID), data)
	if s.cfg.MoveLogTTL > 0 {
		pipe.Expire(ctx, moveLogKey(move.GameID), s.cfg.MoveLogTTL)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetMoves(ctx context.Context, gameID model.GameID) ([]*model.MoveRecord, error) {
	items, err := s.client.LRange(ctx, moveLogKey(gameID), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	moves := make([]*model.MoveRecord, 0, len(items))
	for _, item := range items {
		var move model.MoveRecord
		if err := json.Unmarshal([]byte(item), &move); err != nil {
			return nil, err
		}
		moves = append(moves, &move)
	}
	return moves, nil
}

func (s *Storage) DeleteMoves(ctx context.Context, gameID model.GameID) error {
	return s.client.Del(ctx, moveLogKey(gameID)).Err()
}

// Finished game index

func (s *Storage) AddFinishedGame(ctx context.Context, id model.GameID, finishedAt time.Time) error {
	return s.client.ZAdd(ctx, finishedIndexKey, redis.Z{
		Score:  float64(finishedAt.UnixMilli()),
		Member: string(id),
	}).Err()
}

func (s *Storage) ListFinishedGames(ctx context.Context, limit int) ([]model.GameID, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}

	// Newest first
	items, err := s.client.ZRevRange(ctx, finishedIndexKey, 0, stop).Result()
	if err != nil {
		return nil, err
	}

	ids := make([]model.GameID, len(items))
	for i, item := range items {
		ids[i] = model.GameID(item)
	}
	return ids, nil
}
