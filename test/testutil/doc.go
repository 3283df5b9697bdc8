// Package testutil provides shared test utilities and fixtures.
//
// This package contains common test data and assertion helpers that are
// used across the strategy, engine and store tests.
//
// Examples of utilities that belong here:
//   - Common test fixtures (rooms, members, fixed clocks)
//   - Assertion helpers (room conservation, bucket sizes)
//
// Note: For NATS server setup, use the github.com/Skaland01/Kollektiv/testing package.
package testutil
