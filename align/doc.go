// Package align provides the block-alignment scoring engine.
//
// # Reading Guide
//
// Start with these files:
//   - symbols.go: the symbol-level global alignment primitive
//   - weights.go: the pairwise block-weight table and how it is built
//   - blocks.go: the block-level dynamic program that consumes the table
//   - engine.go: the Engine that owns the active table generation
//
// # Architecture
//
// A call to (*Engine).Align derives a block length from the two inputs
// (blocklen.go). The block length keys a generation: the Engine keeps one
// WeightTable in memory for the active block length and hands older
// generations to a TableStore when the block length changes. Store
// implementations other than MemoryStore live in align/store.
//
// The WeightTable build is the dominant cost of the engine: for an alphabet
// of k symbols and block length L there are K = k^L blocks and the build
// aligns O(K²) pairs of length L, so O(K²·L²) in total. BlockLength keeps L
// logarithmic in the input length for that reason.
//
// # Concurrency
//
// An Engine does not lock. It mutates its table in place and must not be
// shared between goroutines without external synchronization. MemoryStore
// guards its map with a mutex, so one store may back several engines.
package align
