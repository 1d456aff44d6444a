package store

import (
	"context"
	"fmt"

	"github.com/blockalign/blockalign/align"
)

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config selects and locates a backend.
type Config struct {
	Backend string `yaml:"backend"` // "memory", "file" (default) or "sqlite"
	Dir     string `yaml:"dir"`     // file backend directory
	Path    string `yaml:"path"`    // sqlite database path
}

// Store is a TableStore that holds resources until closed.
type Store interface {
	align.TableStore
	Close() error
}

type memoryStore struct {
	*align.MemoryStore
}

func (memoryStore) Close() error { return nil }

// Open returns the backend named by cfg.Backend.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Backend {
	case BackendMemory:
		return memoryStore{align.NewMemoryStore()}, nil
	case BackendFile, "":
		fs, err := NewFileStore(cfg.Dir)
		if err != nil {
			return nil, err
		}
		return fs, nil
	case BackendSQLite:
		ss, err := NewSQLiteStore(ctx, cfg.Path)
		if err != nil {
			return nil, err
		}
		return ss, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q (want %s, %s or %s)",
			cfg.Backend, BackendMemory, BackendFile, BackendSQLite)
	}
}
