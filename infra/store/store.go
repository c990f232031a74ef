package store

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/wojciech-malota-wojcik/logger"
	"go.uber.org/zap"
)

// EncodeFunc writes shard content
type EncodeFunc func(w io.Writer) error

// DecodeFunc reads shard content
type DecodeFunc func(r io.Reader) error

// Store is an interface of shard storage
type Store interface {
	// WriteShard creates or overwrites shard with given index, file is complete and closed when function returns
	WriteShard(ctx context.Context, index uint64, encode EncodeFunc) error

	// ReadShard opens shard with given index and passes it to decode
	ReadShard(ctx context.Context, index uint64, decode DecodeFunc) error
}

// ShardFileName returns name of the file storing shard: prefix followed by 5-digit shard index
func ShardFileName(prefix string, index uint64) string {
	return fmt.Sprintf("%s.%05d", prefix, index)
}

// NewFileStore returns store keeping shards in files named after prefix
func NewFileStore(prefix string) Store {
	return &fileStore{prefix: prefix}
}

type fileStore struct {
	prefix string
}

func (s *fileStore) WriteShard(ctx context.Context, index uint64, encode EncodeFunc) (retErr error) {
	fileName := ShardFileName(s.prefix, index)
	logger.Get(ctx).Debug("Writing shard", zap.Uint64("index", index), zap.String("file", fileName))

	f, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("creating shard file failed: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil && retErr == nil {
			retErr = fmt.Errorf("closing shard file %s failed: %w", fileName, err)
		}
	}()

	if err := encode(f); err != nil {
		return fmt.Errorf("writing shard file %s failed: %w", fileName, err)
	}
	return nil
}

func (s *fileStore) ReadShard(ctx context.Context, index uint64, decode DecodeFunc) error {
	fileName := ShardFileName(s.prefix, index)
	logger.Get(ctx).Debug("Reading shard", zap.Uint64("index", index), zap.String("file", fileName))

	f, err := os.Open(fileName)
	if err != nil {
		return fmt.Errorf("opening shard file failed: %w", err)
	}
	defer f.Close()

	if err := decode(f); err != nil {
		return fmt.Errorf("reading shard file %s failed: %w", fileName, err)
	}
	return nil
}
