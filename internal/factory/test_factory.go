package factory

import (
	"context"
	"time"

	"github.com/tictacmatch/tictacmatch-go/internal/dependencies/mocks"
	"github.com/tictacmatch/tictacmatch-go/internal/services/matchmaking"
	"github.com/tictacmatch/tictacmatch-go/internal/storage/memory"
	"github.com/tictacmatch/tictacmatch-go/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(
		context.Background(),
		store,
		mockClock,
		mockRandom,
		matchmaking.DefaultConfig(),
		testutil.NopLogger(),
	)

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
