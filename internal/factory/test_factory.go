package factory

import (
	"time"

	"github.com/mvidak/tictactoe-go/internal/dependencies/mocks"
	"github.com/mvidak/tictactoe-go/internal/services/auth"
	"github.com/mvidak/tictactoe-go/internal/services/match"
	"github.com/mvidak/tictactoe-go/internal/storage/memory"
	"github.com/mvidak/tictactoe-go/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// The restart countdown ticks in milliseconds so tests never wait.
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	matchCfg := match.Config{
		RestartVoteTicks:    3,
		RestartTickInterval: 5 * time.Millisecond,
		PersistTimeout:      time.Second,
	}

	app := newWithDependencies(store, mockClock, mockRandom, auth.DefaultConfig(), matchCfg, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
