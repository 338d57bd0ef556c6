package ident

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
)

// RunIDGenerator mints the per-invocation id that ties log lines and journal
// rows from one bootstrap run together.
type RunIDGenerator struct {
	entropy *ulid.MonotonicEntropy
}

func NewRunIDGenerator() *RunIDGenerator {
	return &RunIDGenerator{entropy: ulid.Monotonic(rand.Reader, 0)}
}

func (g *RunIDGenerator) NewRunID() (string, error) {
	id, err := ulid.New(ulid.Timestamp(time.Now().UTC()), g.entropy)
	if err != nil {
		return "", fmt.Errorf("generate run id: %w", err)
	}
	return id.String(), nil
}
