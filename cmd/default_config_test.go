package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockalign/blockalign/align"
	"github.com/blockalign/blockalign/align/store"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_PartialFile_KeepsDefaults(t *testing.T) {
	// GIVEN a config that only sets the gap penalty and the backend
	path := writeFile(t, "blockalign.yaml", "scoring:\n  gap: -3\ncache:\n  backend: sqlite\n")

	// WHEN loaded
	cfg, err := loadConfig(path)

	// THEN unspecified fields keep their defaults
	require.NoError(t, err)
	assert.Equal(t, align.Scoring{Match: 1, Mismatch: -1, Gap: -3}, cfg.Scoring.Scoring())
	assert.Equal(t, store.BackendSQLite, cfg.Cache.Backend)
	assert.Equal(t, store.DefaultDir, cfg.Cache.Dir)
	assert.Equal(t, store.DefaultSQLitePath, cfg.Cache.Path)
}

func TestLoadConfig_UnknownField_IsError(t *testing.T) {
	// typos must cause errors
	path := writeFile(t, "blockalign.yaml", "scoring:\n  matchh: 2\n")
	_, err := loadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_InvalidScoring_IsError(t *testing.T) {
	path := writeFile(t, "blockalign.yaml", "scoring:\n  gap: 1\n")
	_, err := loadConfig(path)
	assert.ErrorIs(t, err, align.ErrInvalidScoring)
}

func TestLoadConfig_MissingFile_IsError(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestReadSequence(t *testing.T) {
	got, err := readSequence("ACGT", "")
	require.NoError(t, err)
	assert.Equal(t, "ACGT", got)

	path := writeFile(t, "seq.fa", ">chr1 test\nACGT ACGT\n\nTTGA\r\n")
	got, err = readSequence("ignored", path)
	require.NoError(t, err)
	assert.Equal(t, "ACGTACGTTTGA", got)

	_, err = readSequence("", filepath.Join(t.TempDir(), "missing.fa"))
	assert.Error(t, err)
}
