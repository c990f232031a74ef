package build

import (
	"bytes"
	"context"
	"errors"
	"os/exec"

	"github.com/wojciech-malota-wojcik/libexec"
	"github.com/wojciech-malota-wojcik/logger"
	"go.uber.org/zap"
)

func gitFetch(ctx context.Context) error {
	return libexec.Exec(ctx, exec.Command("git", "fetch", "-p"))
}

// gitStatusClean fails if there are uncommitted changes, e.g. produced by go mod tidy
func gitStatusClean(ctx context.Context) error {
	buf := &bytes.Buffer{}
	cmd := exec.Command("git", "status", "-s")
	cmd.Stdout = buf
	if err := libexec.Exec(ctx, cmd); err != nil {
		return err
	}
	if buf.Len() > 0 {
		logger.Get(ctx).Error("Working tree is dirty", zap.String("status", buf.String()))
		return errors.New("git status is not empty")
	}
	return nil
}
