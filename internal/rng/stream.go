// Package rng provides named, seeded, replayable random streams.
// Every draw advances a call counter, so (seed, calls) fully determines
// all future output and a saved stream can be restored mid-sequence.
package rng

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// Stream is a deterministic random source. It is not safe for concurrent
// use; the simulation core is single-threaded by design.
type Stream struct {
	name  string
	seed  int64
	calls uint64
	src   *rand.Rand
}

// NewStream creates a stream seeded at call zero.
func NewStream(name string, seed int64) *Stream {
	return &Stream{
		name: name,
		seed: seed,
		src:  rand.New(rand.NewSource(seed)),
	}
}

// Restore recreates a stream at a given call count by re-seeding and
// burning count draws. The next draw equals the (count+1)-th draw of a
// stream run from seed continuously.
func Restore(name string, seed int64, count uint64) *Stream {
	s := NewStream(name, seed)
	for i := uint64(0); i < count; i++ {
		s.src.Float64()
	}
	s.calls = count
	return s
}

// Name returns the stream's name.
func (s *Stream) Name() string { return s.name }

// Seed returns the seed the stream was created with.
func (s *Stream) Seed() int64 { return s.seed }

// Calls returns the number of draws made so far.
func (s *Stream) Calls() uint64 { return s.calls }

// Float returns the next float64 in [0, 1) and advances the call counter
// by exactly one.
func (s *Stream) Float() float64 {
	s.calls++
	return s.src.Float64()
}

// IntN returns the next int in [0, max) and advances the call counter by
// exactly one. max must be positive.
func (s *Stream) IntN(max int) int {
	if max <= 0 {
		panic(fmt.Sprintf("rng: IntN with non-positive max %d on stream %q", max, s.name))
	}
	s.calls++
	return int(s.src.Float64() * float64(max))
}

// IntRange returns the next int in [min, max] inclusive and advances the
// call counter by exactly one.
func (s *Stream) IntRange(min, max int) int {
	if max < min {
		panic(fmt.Sprintf("rng: IntRange with max %d < min %d on stream %q", max, min, s.name))
	}
	s.calls++
	return min + int(s.src.Float64()*float64(max-min+1))
}

// NewSeed generates a random seed using crypto/rand, for campaigns that
// do not supply one.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}
