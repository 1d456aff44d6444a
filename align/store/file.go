package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/blockalign/blockalign/align"
)

// DefaultDir is the directory FileStore uses when none is configured.
const DefaultDir = "data"

// FileStore keeps one file per block length in a directory.
type FileStore struct {
	dir   string
	codec *Codec
}

// NewFileStore returns a FileStore rooted at dir. The directory is created
// on the first Save.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		dir = DefaultDir
	}
	codec, err := NewCodec()
	if err != nil {
		return nil, err
	}
	return &FileStore{dir: dir, codec: codec}, nil
}

// Path returns the file that holds the table for blockLength.
func (f *FileStore) Path(blockLength int) string {
	return filepath.Join(f.dir, fmt.Sprintf("len_%d.cbor.zst", blockLength))
}

func (f *FileStore) Load(_ context.Context, blockLength int) (*align.WeightTable, bool, error) {
	data, err := os.ReadFile(f.Path(blockLength))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", f.Path(blockLength), err)
	}
	t, err := f.codec.Decode(data)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", f.Path(blockLength), err)
	}
	return t, true, nil
}

// Save writes to a temporary file in the same directory and renames it into
// place, so readers never see a partial table.
func (f *FileStore) Save(_ context.Context, blockLength int, t *align.WeightTable) error {
	data, err := f.codec.Encode(t)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir %s: %w", f.dir, err)
	}

	tmp, err := os.CreateTemp(f.dir, fmt.Sprintf("len_%d.*.tmp", blockLength))
	if err != nil {
		return fmt.Errorf("create temp file in %s: %w", f.dir, err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), f.Path(blockLength)); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("rename %s: %w", tmp.Name(), err)
	}
	return nil
}

func (f *FileStore) Contains(_ context.Context, blockLength int) (bool, error) {
	_, err := os.Stat(f.Path(blockLength))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", f.Path(blockLength), err)
	}
	return true, nil
}

func (f *FileStore) Close() error {
	return f.codec.Close()
}
