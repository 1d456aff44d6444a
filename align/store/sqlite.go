package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/blockalign/blockalign/align"
)

// DefaultSQLitePath is the database SQLiteStore opens when none is configured.
const DefaultSQLitePath = "data/weights.sqlite3"

const createTableSQL = `CREATE TABLE IF NOT EXISTS weight_tables (
	block_length INTEGER PRIMARY KEY,
	data         BLOB NOT NULL
)`

// SQLiteStore keeps one row per block length.
type SQLiteStore struct {
	db    *sql.DB
	codec *Codec
}

// NewSQLiteStore opens (creating if needed) the database at path. Use
// ":memory:" for a throwaway database.
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	if path == "" {
		path = DefaultSQLitePath
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// a ":memory:" database exists per connection
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, createTableSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create weight_tables in %s: %w", path, err)
	}

	codec, err := NewCodec()
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db, codec: codec}, nil
}

func (s *SQLiteStore) Load(ctx context.Context, blockLength int) (*align.WeightTable, bool, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM weight_tables WHERE block_length = ?`, blockLength).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query block length %d: %w", blockLength, err)
	}
	t, err := s.codec.Decode(data)
	if err != nil {
		return nil, false, fmt.Errorf("block length %d: %w", blockLength, err)
	}
	return t, true, nil
}

func (s *SQLiteStore) Save(ctx context.Context, blockLength int, t *align.WeightTable) error {
	data, err := s.codec.Encode(t)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO weight_tables (block_length, data) VALUES (?, ?)
		 ON CONFLICT(block_length) DO UPDATE SET data = excluded.data`,
		blockLength, data)
	if err != nil {
		return fmt.Errorf("upsert block length %d: %w", blockLength, err)
	}
	return nil
}

func (s *SQLiteStore) Contains(ctx context.Context, blockLength int) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM weight_tables WHERE block_length = ?`, blockLength).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query block length %d: %w", blockLength, err)
	}
	return true, nil
}

func (s *SQLiteStore) Close() error {
	return errors.Join(s.codec.Close(), s.db.Close())
}
