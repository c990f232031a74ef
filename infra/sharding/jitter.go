package sharding

import (
	"math/rand"

	"github.com/google/uuid"
)

// MaxJitter is the maximum absolute value of jitter applied to the shard size
const MaxJitter = 10

// JitterSource produces random perturbations of shard sizes
type JitterSource interface {
	// Jitter returns uniformly distributed integer in range [-MaxJitter, MaxJitter]
	Jitter() int64
}

// NewRandJitter returns jitter source driven by pseudo-random generator initialized with seed,
// the same seed always produces the same sequence
func NewRandJitter(seed int64) JitterSource {
	return &randJitter{rnd: rand.New(rand.NewSource(seed))}
}

type randJitter struct {
	rnd *rand.Rand
}

func (j *randJitter) Jitter() int64 {
	return j.rnd.Int63n(2*MaxJitter+1) - MaxJitter
}

// NoJitter is the jitter source which never perturbs shard sizes
type NoJitter struct{}

// Jitter returns 0
func (NoJitter) Jitter() int64 {
	return 0
}

// NewRandomSeed returns unpredictable seed derived from random UUID
func NewRandomSeed() (int64, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return 0, err
	}
	return SeedFromBytes(id[:]), nil
}
