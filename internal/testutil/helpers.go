package testutil

import (
	"bytes"
	"math/rand"

	"github.com/rs/zerolog"
)

// NewTestRNG returns a seeded source so games and exploration replay exactly.
func NewTestRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// NopLogger returns a no-op logger for tests
func NopLogger() zerolog.Logger {
	return zerolog.Nop()
}

// BufferLogger returns a JSON logger at level that writes into the returned
// buffer, for tests that assert on log output.
func BufferLogger(level zerolog.Level) (*bytes.Buffer, zerolog.Logger) {
	buf := &bytes.Buffer{}
	return buf, zerolog.New(buf).Level(level)
}
