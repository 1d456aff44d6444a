package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockalign/blockalign/align"
)

func TestMain(m *testing.M) {
	if os.Getenv("DEBUG_TESTS") == "" {
		logrus.SetLevel(logrus.WarnLevel)
	}
	os.Exit(m.Run())
}

func sampleTable() *align.WeightTable {
	t := align.BuildWeightTable([]rune("ACGT"), 2, align.DefaultScoring())
	t.Ensure("A", "GT", align.DefaultScoring()) // short-block entry
	return t
}

func TestCodec_RoundTrip_IsDeterministic(t *testing.T) {
	codec, err := NewCodec()
	require.NoError(t, err)
	defer func() { _ = codec.Close() }()

	table := sampleTable()
	first, err := codec.Encode(table)
	require.NoError(t, err)
	second, err := codec.Encode(table.Clone())
	require.NoError(t, err)
	assert.Equal(t, first, second, "same table must encode to the same bytes")

	decoded, err := codec.Decode(first)
	require.NoError(t, err)
	assert.Equal(t, table.BlockLength(), decoded.BlockLength())
	assert.Equal(t, table.Alphabet(), decoded.Alphabet())
	assert.Equal(t, table.Scoring(), decoded.Scoring())
	assert.Equal(t, table.Pairs(), decoded.Pairs())
}

func TestCodec_Decode_Garbage(t *testing.T) {
	codec, err := NewCodec()
	require.NoError(t, err)
	defer func() { _ = codec.Close() }()

	_, err = codec.Decode([]byte("not a table"))
	assert.Error(t, err)
}

// roundTrip checks the TableStore contract on a fresh backend.
func roundTrip(t *testing.T, s align.TableStore) {
	t.Helper()
	ctx := context.Background()
	table := sampleTable()

	// GIVEN an empty store
	ok, err := s.Contains(ctx, 2)
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = s.Load(ctx, 2)
	require.NoError(t, err)
	assert.False(t, ok)

	// WHEN a table is saved
	require.NoError(t, s.Save(ctx, 2, table))

	// THEN it loads back equal
	ok, err = s.Contains(ctx, 2)
	require.NoError(t, err)
	assert.True(t, ok)
	loaded, ok, err := s.Load(ctx, 2)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, table.Pairs(), loaded.Pairs())
	assert.Equal(t, table.Alphabet(), loaded.Alphabet())
	assert.Equal(t, 2, loaded.BlockLength())
	assert.Equal(t, table.Scoring(), loaded.Scoring())

	// AND a second save replaces the entry
	table.Set("A", "C", 99)
	require.NoError(t, s.Save(ctx, 2, table))
	loaded, _, err = s.Load(ctx, 2)
	require.NoError(t, err)
	w, _ := loaded.Lookup("C", "A")
	assert.Equal(t, 99, w)
}

func TestFileStore_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	fs, err := NewFileStore(dir)
	require.NoError(t, err)
	defer func() { _ = fs.Close() }()

	roundTrip(t, fs)

	assert.FileExists(t, filepath.Join(dir, "len_2.cbor.zst"))
	leftovers, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestFileStore_CorruptFile_IsError(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(dir)
	require.NoError(t, err)
	defer func() { _ = fs.Close() }()
	require.NoError(t, os.WriteFile(fs.Path(3), []byte("junk"), 0o644))

	_, _, err = fs.Load(context.Background(), 3)
	assert.Error(t, err)
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	ss, err := NewSQLiteStore(context.Background(), filepath.Join(t.TempDir(), "weights.sqlite3"))
	require.NoError(t, err)
	defer func() { _ = ss.Close() }()

	roundTrip(t, ss)
}

func TestOpen_Backends(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	for _, cfg := range []Config{
		{Backend: BackendMemory},
		{Backend: BackendFile, Dir: filepath.Join(dir, "files")},
		{Backend: BackendSQLite, Path: filepath.Join(dir, "w.sqlite3")},
	} {
		t.Run(cfg.Backend, func(t *testing.T) {
			s, err := Open(ctx, cfg)
			require.NoError(t, err)
			defer func() { assert.NoError(t, s.Close()) }()
			roundTrip(t, s)
		})
	}

	_, err := Open(ctx, Config{Backend: "redis"})
	assert.ErrorContains(t, err, `unknown cache backend "redis"`)
}

func TestEngine_FileStore_ScoringChangeAcrossRuns(t *testing.T) {
	// GIVEN a cache directory filled by a run with the default scoring
	ctx := context.Background()
	dir := t.TempDir()
	fs1, err := NewFileStore(dir)
	require.NoError(t, err)
	e1, err := align.NewEngine(fs1)
	require.NoError(t, err)
	_, err = e1.Align(ctx, "AAAA", "AAAA")
	require.NoError(t, err)
	require.NoError(t, fs1.Close())

	// WHEN a later run uses MATCH=3 on the same directory
	fs2, err := NewFileStore(dir)
	require.NoError(t, err)
	defer func() { _ = fs2.Close() }()
	e2, err := align.NewEngine(fs2, align.WithScoring(align.Scoring{Match: 3, Mismatch: -1, Gap: -2}))
	require.NoError(t, err)
	res, err := e2.Align(ctx, "AAAA", "AAAA")
	require.NoError(t, err)

	// THEN the stale file is not used and not rewritten
	assert.Equal(t, 12, res.Score)
	persisted, ok, err := fs2.Load(ctx, 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, align.DefaultScoring(), persisted.Scoring())
}

func TestEngine_FileStore_SurvivesRestart(t *testing.T) {
	// GIVEN an engine that built a generation into a directory
	ctx := context.Background()
	dir := t.TempDir()
	a, b := "0110100110010", "0110110110010"

	fs1, err := NewFileStore(dir)
	require.NoError(t, err)
	e1, err := align.NewEngine(fs1)
	require.NoError(t, err)
	want, err := e1.Align(ctx, a, b)
	require.NoError(t, err)
	require.NoError(t, fs1.Close())

	// WHEN a new engine opens the same directory
	fs2, err := NewFileStore(dir)
	require.NoError(t, err)
	defer func() { _ = fs2.Close() }()
	e2, err := align.NewEngine(fs2)
	require.NoError(t, err)
	got, err := e2.Align(ctx, a, b)
	require.NoError(t, err)

	// THEN it scores identically from the persisted table
	assert.Equal(t, want.Score, got.Score)
	assert.Equal(t, want.BlockLength, got.BlockLength)
}
