package testing

import (
	"testing"

	"github.com/Skaland01/Kollektiv/internal/logger"
	"github.com/Skaland01/Kollektiv/types"
)

// NewTestLogger creates a logger that writes to the test log, so engine and
// store output shows up next to the failing assertion.
func NewTestLogger(t testing.TB) types.Logger {
	return logger.NewTest(t)
}
