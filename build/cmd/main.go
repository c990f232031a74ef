package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/ridge/must"
	"github.com/wojciech-malota-wojcik/build"
	me "github.com/wojciech-malota-wojcik/fixtures/build"
	"github.com/wojciech-malota-wojcik/ioc"
	"github.com/wojciech-malota-wojcik/run"
)

func main() {
	run.Tool("fixtures-builder", nil, func(ctx context.Context, c *ioc.Container) error {
		exec := build.NewIoCExecutor(me.Commands, c)
		if build.Autocomplete(exec) {
			return nil
		}

		root, err := moduleRoot(filepath.Dir(must.String(filepath.EvalSymlinks(must.String(os.Executable())))))
		if err != nil {
			return err
		}
		if err := os.Chdir(root); err != nil {
			return err
		}
		return build.Do(ctx, "Fixtures", exec)
	})
}

// moduleRoot returns the closest directory, starting from dir and going up, containing go.mod
func moduleRoot(dir string) (string, error) {
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("go.mod not found in any parent directory of the builder binary")
		}
		dir = parent
	}
}
