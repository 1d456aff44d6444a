// Package testutil provides shared test infrastructure for the align
// packages: the golden reference-score dataset and sequence generators.
package testutil

import (
	"encoding/json"
	"math/rand"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldenscores.json.
type GoldenDataset struct {
	Cases []GoldenCase `json:"cases"`
}

// GoldenCase is one sequence pair with its reference scores under
// MATCH=1, MISMATCH=-1, GAP=-2 and a fresh weight table.
type GoldenCase struct {
	A           string `json:"a"`
	B           string `json:"b"`
	BlockLength int    `json:"block_length"`
	BlockScore  int    `json:"block_score"`
	SymbolScore int    `json:"symbol_score"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: align/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldenscores.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}
	if len(dataset.Cases) == 0 {
		t.Fatal("golden dataset has no cases")
	}
	return &dataset
}

// RandomSequence returns n symbols drawn uniformly from alphabet.
func RandomSequence(rng *rand.Rand, alphabet string, n int) string {
	symbols := []rune(alphabet)
	out := make([]rune, n)
	for i := range out {
		out[i] = symbols[rng.Intn(len(symbols))]
	}
	return string(out)
}

// Mutate returns seq with roughly one symbol in ten replaced from alphabet.
func Mutate(rng *rand.Rand, seq, alphabet string) string {
	out := []rune(seq)
	symbols := []rune(alphabet)
	for i := 0; i < max(1, len(out)/10) && len(out) > 0; i++ {
		out[rng.Intn(len(out))] = symbols[rng.Intn(len(symbols))]
	}
	return string(out)
}
