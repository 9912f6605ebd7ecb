package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/mvidak/tictactoe-go/internal/dependencies/clock"
	"github.com/mvidak/tictactoe-go/internal/dependencies/random"
	"github.com/mvidak/tictactoe-go/internal/services/auth"
	"github.com/mvidak/tictactoe-go/internal/services/bot"
	"github.com/mvidak/tictactoe-go/internal/services/history"
	"github.com/mvidak/tictactoe-go/internal/services/match"
	"github.com/mvidak/tictactoe-go/internal/storage"
	"github.com/mvidak/tictactoe-go/internal/storage/memory"
	redisstorage "github.com/mvidak/tictactoe-go/internal/storage/redis"
	"github.com/mvidak/tictactoe-go/internal/ws"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	AuthService    *auth.Service
	HistoryService *history.Service
	BotService     *bot.Service
	Registry       *match.Registry
	HubManager     *ws.Manager
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// AuthConfig holds configuration for the auth service (optional)
	AuthConfig auth.Config
	// MatchConfig holds match session tunables (optional)
	MatchConfig match.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	clk := clock.New()
	rnd := random.New()

	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	matchCfg := cfg.MatchConfig
	if matchCfg.RestartVoteTicks == 0 {
		matchCfg = match.DefaultConfig()
	}

	return newWithDependencies(store, clk, rnd, authCfg, matchCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	authCfg auth.Config,
	matchCfg match.Config,
	logger *slog.Logger,
) *App {
	authService := auth.New(store, clk, authCfg)
	historyService := history.New(store, clk, logger)
	botService := bot.New(bot.NewRandomStrategy(rnd), logger)
	hubManager := ws.NewManager()
	registry := match.NewRegistry(historyService, hubManager, rnd, logger, matchCfg)

	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		AuthService:    authService,
		HistoryService: historyService,
		BotService:     botService,
		Registry:       registry,
		HubManager:     hubManager,
	}
}
