package fixtures

import (
	"context"

	"github.com/wojciech-malota-wojcik/fixtures/infra"
	"github.com/wojciech-malota-wojcik/fixtures/infra/sharding"
	"github.com/wojciech-malota-wojcik/fixtures/infra/store"
	"github.com/wojciech-malota-wojcik/ioc"
	"github.com/wojciech-malota-wojcik/logger"
	"go.uber.org/zap"
)

// HalosIoCBuilder configures IoC container of halo generator
func HalosIoCBuilder(c *ioc.Container) {
	c.Singleton(infra.NewHaloConfigFromCLI)
	registerHaloDeps(c)
}

// PIDsIoCBuilder configures IoC container of pid generator
func PIDsIoCBuilder(c *ioc.Container) {
	c.Singleton(infra.NewPIDConfigFromCLI)
	registerPIDDeps(c)
}

// registerHaloDeps registers everything halo generator needs apart from the config itself
func registerHaloDeps(c *ioc.Container) {
	c.Transient(func(config infra.HaloConfig) infra.Common {
		return config.Common
	})
	c.Transient(func(config infra.HaloConfig) store.Store {
		return store.NewFileStore(config.Prefix)
	})
	c.Transient(NewPartitioner)
}

func registerPIDDeps(c *ioc.Container) {
	c.Transient(func(config infra.PIDConfig) infra.Common {
		return config.Common
	})
	c.Transient(func(config infra.PIDConfig) store.Store {
		return store.NewFileStore(config.Prefix)
	})
	c.Transient(NewPartitioner)
}

// NewPartitioner creates partitioner with jitter seeded from config
func NewPartitioner(common infra.Common) sharding.Partitioner {
	return sharding.NewJitteredPartitioner(sharding.NewRandJitter(common.Seed))
}

// HalosApp generates halo files
func HalosApp(ctx context.Context, config infra.HaloConfig, partitioner sharding.Partitioner, st store.Store) error {
	if !config.VerboseLogging {
		logger.VerboseOff()
	}

	logger.Get(ctx).Info("Generating halo files", zap.String("prefix", config.Prefix), zap.Uint64("files", config.NumOfFiles),
		zap.Uint64("pids", config.NumOfPIDs), zap.Uint64("halos", config.NumOfHalos), zap.Int64("seed", config.Seed))

	if err := GenerateHalos(ctx, config, partitioner, st); err != nil {
		return err
	}
	if !config.Verify {
		return nil
	}
	return VerifyHalos(ctx, config, st)
}

// PIDsApp generates pid files
func PIDsApp(ctx context.Context, config infra.PIDConfig, partitioner sharding.Partitioner, st store.Store) error {
	if !config.VerboseLogging {
		logger.VerboseOff()
	}

	logger.Get(ctx).Info("Generating pid files", zap.String("prefix", config.Prefix), zap.Uint64("files", config.NumOfFiles),
		zap.Uint64("pids", config.NumOfElems), zap.Int64("seed", config.Seed))

	if err := GeneratePIDs(ctx, config, partitioner, st); err != nil {
		return err
	}
	if !config.Verify {
		return nil
	}
	return VerifyPIDs(ctx, config, st)
}
