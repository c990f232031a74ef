package build

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/wojciech-malota-wojcik/build"
	"github.com/wojciech-malota-wojcik/libexec"
)

const (
	genHalosBin = "bin/gen-halos"
	genPIDsBin  = "bin/gen-pids"
	fixturesDir = "bin/fixtures"
)

func buildGenHalos(ctx context.Context) error {
	return goBuildPkg(ctx, "cmd/gen-halos", genHalosBin, false)
}

func buildGenPIDs(ctx context.Context) error {
	return goBuildPkg(ctx, "cmd/gen-pids", genPIDsBin, false)
}

func buildAll(ctx context.Context, deps build.DepsFunc) error {
	deps(buildGenHalos, buildGenPIDs)
	return nil
}

// runFixtures generates small verified fixture set, useful for smoke testing binaries
func runFixtures(ctx context.Context, deps build.DepsFunc) error {
	deps(buildAll)

	if err := os.MkdirAll(fixturesDir, 0o755); err != nil {
		return err
	}
	return libexec.Exec(ctx,
		exec.Command("./"+genHalosBin, "--verify", filepath.Join(fixturesDir, "halos"), "10", "100000", "1000"),
		exec.Command("./"+genPIDsBin, "--verify", filepath.Join(fixturesDir, "pids"), "10", "100000"),
	)
}
