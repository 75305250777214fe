// Package testutil holds fixtures shared by the engine's package tests.
package testutil

import (
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
)

// Seed is the fixed seed used by deterministic tests
const Seed int64 = 12345

// NewTestRNG creates a deterministic random number generator for tests
func NewTestRNG() *rand.Rand {
	return rand.New(rand.NewSource(Seed))
}

// NopLogger returns a no-op logger for tests
func NopLogger() zerolog.Logger {
	return zerolog.Nop()
}

// AssertPanic asserts that f panics
func AssertPanic(t *testing.T, f func(), msgAndArgs ...interface{}) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected panic but none occurred: %v", msgAndArgs)
		}
	}()
	f()
}
