package fixtures

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/wojciech-malota-wojcik/fixtures/infra"
	"github.com/wojciech-malota-wojcik/fixtures/infra/store"
	"github.com/wojciech-malota-wojcik/fixtures/infra/wire"
	"github.com/wojciech-malota-wojcik/logger"
	"go.uber.org/zap"
)

// ErrCorrupted is returned if generated files don't hold expected sequence
var ErrCorrupted = errors.New("fixture files are corrupted")

// corrupted marks decoding failure as corruption, keeping the original cause in the chain
func corrupted(err error) error {
	if err == nil || errors.Is(err, ErrCorrupted) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrCorrupted, err)
}

// VerifyPIDs reads pid files back and checks that they store sequence 0, 1, ..., NumOfElems-1
func VerifyPIDs(ctx context.Context, config infra.PIDConfig, st store.Store) error {
	var next uint64
	for i := uint64(0); i < config.NumOfFiles; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := st.ReadShard(ctx, i, func(r io.Reader) error {
			_, err := wire.DecodePIDShard(r, func(pid wire.PID) error {
				if uint64(pid) != next {
					return fmt.Errorf("%w: pid %d found where %d expected", ErrCorrupted, pid, next)
				}
				if next == config.NumOfElems {
					return fmt.Errorf("%w: more than %d pids found", ErrCorrupted, config.NumOfElems)
				}
				next++
				return nil
			})
			return corrupted(err)
		}); err != nil {
			return err
		}
	}
	if next != config.NumOfElems {
		return fmt.Errorf("%w: %d pids found, %d expected", ErrCorrupted, next, config.NumOfElems)
	}

	logger.Get(ctx).Info("PID files verified", zap.Uint64("files", config.NumOfFiles), zap.Uint64("pids", next))
	return nil
}

// VerifyHalos reads halo files back and checks that halo ranges cover pids [0, NumOfPIDs) contiguously
func VerifyHalos(ctx context.Context, config infra.HaloConfig, st store.Store) error {
	var numOfHalos, pidPos uint64
	for i := uint64(0); i < config.NumOfFiles; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := st.ReadShard(ctx, i, func(r io.Reader) error {
			_, err := wire.DecodeHaloShard(r, func(h wire.Halo) error {
				if h.Start != pidPos {
					return fmt.Errorf("%w: halo %d starts at %d, %d expected", ErrCorrupted, numOfHalos, h.Start, pidPos)
				}
				if numOfHalos == config.NumOfHalos {
					return fmt.Errorf("%w: more than %d halos found", ErrCorrupted, config.NumOfHalos)
				}
				pidPos = h.End
				numOfHalos++
				return nil
			})
			return corrupted(err)
		}); err != nil {
			return err
		}
	}
	if numOfHalos != config.NumOfHalos {
		return fmt.Errorf("%w: %d halos found, %d expected", ErrCorrupted, numOfHalos, config.NumOfHalos)
	}
	if pidPos != config.NumOfPIDs {
		return fmt.Errorf("%w: halos cover %d pids, %d expected", ErrCorrupted, pidPos, config.NumOfPIDs)
	}

	logger.Get(ctx).Info("Halo files verified", zap.Uint64("files", config.NumOfFiles),
		zap.Uint64("halos", numOfHalos), zap.Uint64("pids", pidPos))
	return nil
}
