package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync/atomic"
)

// Generator creates opaque string IDs suitable for external references
// such as match ids.
type Generator interface {
	NewID() (string, error)
}

type RandomGenerator struct{}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

func (g *RandomGenerator) NewID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	return hex.EncodeToString(buf), nil
}

// Sequence hands out monotonically increasing int64 ids, the in-memory
// stand-in for a database identity column.
type Sequence struct {
	last atomic.Int64
}

func NewSequence(start int64) *Sequence {
	s := &Sequence{}
	if start > 0 {
		s.last.Store(start - 1)
	}
	return s
}

func (s *Sequence) Next() int64 {
	return s.last.Add(1)
}
