package factory

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/othello/internal/dependencies/mocks"
	"github.com/mcoot/othello/internal/services/auth"
	"github.com/mcoot/othello/internal/services/game"
	"github.com/mcoot/othello/internal/storage/memory"
	"github.com/mcoot/othello/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
	Memory     *memory.Storage
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(testutil.FixedTime)
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(
		store,
		mockClock,
		mockRandom,
		auth.Config{Cost: bcrypt.MinCost},
		game.DefaultConfig(),
		testutil.NopLogger(),
	)

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
		Memory:     store,
	}
}
