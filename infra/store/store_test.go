package store

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wojciech-malota-wojcik/logger"
)

func newContext() context.Context {
	return logger.WithLogger(context.Background(), logger.New())
}

func TestShardFileName(t *testing.T) {
	assert.Equal(t, "halos.00000", ShardFileName("halos", 0))
	assert.Equal(t, "out/pids.00042", ShardFileName("out/pids", 42))
	assert.Equal(t, "x.123456", ShardFileName("x", 123456))
}

func TestWriteAndReadShard(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "t")
	s := NewFileStore(prefix)
	ctx := newContext()

	require.NoError(t, s.WriteShard(ctx, 3, func(w io.Writer) error {
		_, err := io.WriteString(w, "hello\n")
		return err
	}))

	content, err := os.ReadFile(prefix + ".00003")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(content))

	var read []byte
	require.NoError(t, s.ReadShard(ctx, 3, func(r io.Reader) error {
		var err error
		read, err = io.ReadAll(r)
		return err
	}))
	assert.Equal(t, content, read)
}

func TestWriteShardOverwrites(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "t")
	require.NoError(t, os.WriteFile(prefix+".00000", []byte("old content which is long\n"), 0o600))

	s := NewFileStore(prefix)
	require.NoError(t, s.WriteShard(newContext(), 0, func(w io.Writer) error {
		_, err := io.WriteString(w, "new\n")
		return err
	}))

	content, err := os.ReadFile(prefix + ".00000")
	require.NoError(t, err)
	assert.Equal(t, "new\n", string(content))
}

func TestWriteShardPropagatesError(t *testing.T) {
	errTest := errors.New("test")
	s := NewFileStore(filepath.Join(t.TempDir(), "t"))
	err := s.WriteShard(newContext(), 0, func(w io.Writer) error {
		return errTest
	})
	assert.ErrorIs(t, err, errTest)
}

func TestReadMissingShard(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "t"))
	err := s.ReadShard(newContext(), 0, func(r io.Reader) error {
		return nil
	})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteShardToMissingDir(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "missing", "t"))
	err := s.WriteShard(newContext(), 0, func(w io.Writer) error {
		return nil
	})
	assert.Error(t, err)
}
