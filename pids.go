package fixtures

import (
	"context"
	"io"

	"github.com/wojciech-malota-wojcik/fixtures/infra"
	"github.com/wojciech-malota-wojcik/fixtures/infra/sharding"
	"github.com/wojciech-malota-wojcik/fixtures/infra/store"
	"github.com/wojciech-malota-wojcik/fixtures/infra/wire"
	"github.com/wojciech-malota-wojcik/logger"
	"go.uber.org/zap"
)

// PIDCursor is the position in global pid sequence, it is carried from one shard to the next one
type PIDCursor struct {
	// Pos is the next pid to emit
	Pos uint64
}

// Next returns pid at cursor and the cursor pointing to the next one
func (c PIDCursor) Next() (wire.PID, PIDCursor) {
	return wire.PID(c.Pos), PIDCursor{Pos: c.Pos + 1}
}

// EncodePIDs writes shard of n sequential pids starting at cursor and returns cursor pointing after the last one
func EncodePIDs(w io.Writer, cursor PIDCursor, n uint64) (PIDCursor, error) {
	e := wire.NewEncoder(w)
	if err := e.WriteCount(n); err != nil {
		return cursor, err
	}
	for i := uint64(0); i < n; i++ {
		var pid wire.PID
		pid, cursor = cursor.Next()
		if err := e.WritePID(pid); err != nil {
			return cursor, err
		}
	}
	return cursor, e.Flush()
}

// GeneratePIDs writes pid files, each one storing one shard of sequential pids
func GeneratePIDs(ctx context.Context, config infra.PIDConfig, partitioner sharding.Partitioner, st store.Store) error {
	log := logger.Get(ctx)

	sizes, err := partitioner.Partition(config.NumOfElems, config.NumOfFiles)
	if err != nil {
		return err
	}
	log.Debug("PIDs partitioned", zap.String("partition", sharding.Describe(sizes)))

	var cursor PIDCursor
	for i, size := range sizes {
		if err := ctx.Err(); err != nil {
			return err
		}

		start := cursor
		if err := st.WriteShard(ctx, uint64(i), func(w io.Writer) error {
			var err error
			cursor, err = EncodePIDs(w, start, size)
			return err
		}); err != nil {
			return err
		}
		log.Debug("PID shard written", zap.Int("index", i), zap.Uint64("pids", size), zap.Uint64("pos", cursor.Pos))
	}

	log.Info("PID files generated", zap.String("prefix", config.Prefix), zap.Int("files", len(sizes)),
		zap.Uint64("pids", cursor.Pos))
	return nil
}
