package factory

import (
	"time"

	"github.com/mcoot/deckbuilder/internal/dependencies/mocks"
	"github.com/mcoot/deckbuilder/internal/services/auth"
	"github.com/mcoot/deckbuilder/internal/services/catalog"
	"github.com/mcoot/deckbuilder/internal/storage/memory"
	"github.com/mcoot/deckbuilder/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
	MockIDs   *mocks.MockIDs
}

// NewTestApp creates an App configured for testing with mocked dependencies
// and the built-in card catalog
func NewTestApp() *TestApp {
	logger := testutil.NopLogger()
	cat, err := catalog.New(logger)
	if err != nil {
		panic("built-in catalog failed to load: " + err.Error())
	}

	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockIDs := mocks.NewMockIDs()

	app := newWithDependencies(memory.New(), cat, mockClock, mockIDs, auth.DefaultConfig(), logger)

	return &TestApp{
		App:       app,
		MockClock: mockClock,
		MockIDs:   mockIDs,
	}
}
