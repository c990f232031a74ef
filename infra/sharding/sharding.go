package sharding

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrNoShards is returned when total has to be split into zero shards
var ErrNoShards = errors.New("integer division by zero: number of shards is 0")

// Partitioner splits total count into shard sizes
type Partitioner interface {
	// Partition returns size of each shard, sizes sum to total
	Partition(total, shards uint64) ([]uint64, error)
}

// NewJitteredPartitioner returns partitioner distributing total nearly equally and perturbing every shard
// except the last one with jitter taken from source. The last shard absorbs whatever remains so sizes always
// sum to total.
func NewJitteredPartitioner(source JitterSource) Partitioner {
	return &jitteredPartitioner{source: source}
}

type jitteredPartitioner struct {
	source JitterSource
}

func (p *jitteredPartitioner) Partition(total, shards uint64) ([]uint64, error) {
	if shards == 0 {
		return nil, ErrNoShards
	}

	split := total / shards
	mod := total % shards

	sizes := make([]uint64, 0, capHint(shards))
	var consumed uint64
	for i := uint64(0); i < shards; i++ {
		remaining := total - consumed
		if i == shards-1 {
			sizes = append(sizes, remaining)
			break
		}

		size := split
		if i < mod {
			size++
		}
		size = addJitter(size, p.source.Jitter(), remaining)
		sizes = append(sizes, size)
		consumed += size
	}
	return sizes, nil
}

// maxCapHint limits preallocation, larger partitions grow by append
const maxCapHint = 1 << 16

func capHint(n uint64) uint64 {
	if n > maxCapHint {
		return maxCapHint
	}
	return n
}

// addJitter applies jitter to size and brings the result into range [0, limit]
func addJitter(size uint64, jitter int64, limit uint64) uint64 {
	switch {
	case jitter < 0:
		if d := uint64(-jitter); d < size {
			size -= d
		} else {
			size = 0
		}
	case jitter > 0:
		if d := uint64(jitter); size <= math.MaxUint64-d {
			size += d
		} else {
			size = math.MaxUint64
		}
	}
	if size > limit {
		return limit
	}
	return size
}

// SeedFromBytes computes random seed by taking xor of bytes folded into 8-byte word
func SeedFromBytes(seed []byte) int64 {
	xor := make([]byte, 8)
	for i, b := range seed {
		xor[i%len(xor)] ^= b
	}
	return int64(binary.BigEndian.Uint64(xor))
}

// Sum returns sum of shard sizes
func Sum(sizes []uint64) uint64 {
	var sum uint64
	for _, s := range sizes {
		sum += s
	}
	return sum
}

// Describe returns human-readable summary of partition, used in logs
func Describe(sizes []uint64) string {
	if len(sizes) == 0 {
		return "empty"
	}
	minSize, maxSize := sizes[0], sizes[0]
	for _, s := range sizes[1:] {
		if s < minSize {
			minSize = s
		}
		if s > maxSize {
			maxSize = s
		}
	}
	return fmt.Sprintf("%d shards, min %d, max %d", len(sizes), minSize, maxSize)
}
