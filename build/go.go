package build

import (
	"context"
	"os"
	"os/exec"

	"github.com/wojciech-malota-wojcik/build"
	"github.com/wojciech-malota-wojcik/libexec"
)

const coverageProfile = "bin/coverage.out"

func goBuildPkg(ctx context.Context, pkg, out string, cgo bool) error {
	cmd := exec.Command("go", "build", "-trimpath", "-o", out, "./"+pkg)
	if !cgo {
		cmd.Env = append([]string{"CGO_ENABLED=0"}, os.Environ()...)
	}
	return libexec.Exec(ctx, cmd)
}

func buildMe(ctx context.Context) error {
	return goBuildPkg(ctx, "build/cmd", "bin/fixtures-builder", false)
}

func goModTidy(ctx context.Context) error {
	return libexec.Exec(ctx, exec.Command("go", "mod", "tidy"))
}

func goVet(ctx context.Context) error {
	return libexec.Exec(ctx, exec.Command("go", "vet", "./..."))
}

func goLint(ctx context.Context, deps build.DepsFunc) error {
	deps(goVet)
	if err := libexec.Exec(ctx, exec.Command("golangci-lint", "run", "--config", "build/.golangci.yaml")); err != nil {
		return err
	}
	deps(goModTidy, gitStatusClean)
	return nil
}

func goImports(ctx context.Context) error {
	return libexec.Exec(ctx, exec.Command("goimports", "-w", "."))
}

func goTest(ctx context.Context) error {
	if err := os.MkdirAll("bin", 0o755); err != nil {
		return err
	}
	return libexec.Exec(ctx, exec.Command("go", "test", "-count=1", "-race", "-coverprofile", coverageProfile, "./..."))
}
