package fixtures

import (
	"context"
	"errors"
	"io"

	"github.com/wojciech-malota-wojcik/fixtures/infra"
	"github.com/wojciech-malota-wojcik/fixtures/infra/sharding"
	"github.com/wojciech-malota-wojcik/fixtures/infra/store"
	"github.com/wojciech-malota-wojcik/fixtures/infra/wire"
	"github.com/wojciech-malota-wojcik/logger"
	"go.uber.org/zap"
)

// ErrNoHalos is returned when pids have to be distributed between zero halos
var ErrNoHalos = errors.New("integer division by zero: number of halos is 0")

// HaloCursor is the position in global halo sequence, it is carried from one shard to the next one
type HaloCursor struct {
	// HaloPos is the global index of the next halo
	HaloPos uint64

	// PIDPos is the index of the next free pid
	PIDPos uint64
}

// HaloSequence distributes pids between halos.
// Every halo gets totalPIDs / totalHalos pids, the first totalPIDs % totalHalos halos in global order get one more.
type HaloSequence struct {
	width uint64
	mod   uint64
}

// NewHaloSequence creates halo sequence for given totals
func NewHaloSequence(totalPIDs, totalHalos uint64) (HaloSequence, error) {
	if totalHalos == 0 {
		return HaloSequence{}, ErrNoHalos
	}
	return HaloSequence{
		width: totalPIDs / totalHalos,
		mod:   totalPIDs % totalHalos,
	}, nil
}

// Next returns halo at cursor and the cursor pointing to the next one
func (s HaloSequence) Next(cursor HaloCursor) (wire.Halo, HaloCursor) {
	h := wire.Halo{Start: cursor.PIDPos}
	cursor.PIDPos += s.width
	if cursor.HaloPos < s.mod {
		cursor.PIDPos++
	}
	h.End = cursor.PIDPos
	cursor.HaloPos++
	return h, cursor
}

// EncodeHalos writes shard of n halos starting at cursor and returns cursor pointing after the last one
func EncodeHalos(w io.Writer, seq HaloSequence, cursor HaloCursor, n uint64) (HaloCursor, error) {
	e := wire.NewEncoder(w)
	if err := e.WriteCount(n); err != nil {
		return cursor, err
	}
	for i := uint64(0); i < n; i++ {
		var h wire.Halo
		h, cursor = seq.Next(cursor)
		if err := e.WriteHalo(h); err != nil {
			return cursor, err
		}
	}
	return cursor, e.Flush()
}

// GenerateHalos writes halo files, each one storing one shard of halos
func GenerateHalos(ctx context.Context, config infra.HaloConfig, partitioner sharding.Partitioner, st store.Store) error {
	log := logger.Get(ctx)

	sizes, err := partitioner.Partition(config.NumOfHalos, config.NumOfFiles)
	if err != nil {
		return err
	}
	seq, err := NewHaloSequence(config.NumOfPIDs, config.NumOfHalos)
	if err != nil {
		return err
	}
	log.Debug("Halos partitioned", zap.String("partition", sharding.Describe(sizes)))

	var cursor HaloCursor
	for i, size := range sizes {
		if err := ctx.Err(); err != nil {
			return err
		}

		start := cursor
		if err := st.WriteShard(ctx, uint64(i), func(w io.Writer) error {
			var err error
			cursor, err = EncodeHalos(w, seq, start, size)
			return err
		}); err != nil {
			return err
		}
		log.Debug("Halo shard written", zap.Int("index", i), zap.Uint64("halos", size),
			zap.Uint64("haloPos", cursor.HaloPos), zap.Uint64("pidPos", cursor.PIDPos))
	}

	log.Info("Halo files generated", zap.String("prefix", config.Prefix), zap.Int("files", len(sizes)),
		zap.Uint64("halos", cursor.HaloPos), zap.Uint64("pids", cursor.PIDPos))
	return nil
}
