package align

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Result is the outcome of one Engine.Align call.
type Result struct {
	Score       int           // block-level alignment score
	Elapsed     time.Duration // wall-clock time of the block-level DP only
	BlockLength int           // block length the score was computed at
}

// Engine owns the active weight table generation and the store that holds
// previous generations. The zero block length means no generation yet.
//
// Thread-safety: NOT thread-safe. The active table is extended in place.
type Engine struct {
	scoring     Scoring
	store       TableStore
	blockLength int
	table       *WeightTable
}

// Option configures an Engine.
type Option func(*Engine)

// WithScoring overrides DefaultScoring.
func WithScoring(s Scoring) Option {
	return func(e *Engine) { e.scoring = s }
}

// NewEngine returns an Engine backed by store. A nil store gets a fresh
// MemoryStore.
func NewEngine(store TableStore, opts ...Option) (*Engine, error) {
	if store == nil {
		store = NewMemoryStore()
	}
	e := &Engine{scoring: DefaultScoring(), store: store}
	for _, o := range opts {
		o(e)
	}
	if err := e.scoring.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// Scoring returns the engine's scoring constants.
func (e *Engine) Scoring() Scoring { return e.scoring }

// BlockLength returns the active generation key, 0 before the first call.
func (e *Engine) BlockLength() int { return e.blockLength }

// Table returns the active weight table, nil before the first call.
func (e *Engine) Table() *WeightTable { return e.table }

// Precompute makes the active table match the block length derived from a
// and b. On a block length change the outgoing table is saved if its key
// was never persisted, then the table for the new key is loaded, or built
// and saved on a miss. A stored table built under different scoring is
// not adopted: the engine rebuilds in memory and keeps the stored entry.
// A table that has not seen every symbol of a and b is extended over the
// union alphabet.
func (e *Engine) Precompute(ctx context.Context, a, b string) error {
	l := BlockLength(a, b)
	alphabet := Alphabet(a, b)

	if l != e.blockLength || e.table == nil {
		if err := e.switchGeneration(ctx, l, alphabet); err != nil {
			return err
		}
	}

	if !e.table.Covers(alphabet) {
		e.table.AddAlphabet(alphabet)
		added := e.table.Extend(EnumerateBlocks(e.table.alphabet, l), e.scoring)
		weightExtensions.Add(float64(added))
		logrus.Infof("extended block length %d table to alphabet %q (+%d pairs)", l, string(e.table.alphabet), added)
	}
	return nil
}

func (e *Engine) switchGeneration(ctx context.Context, l int, alphabet []rune) error {
	if err := e.Flush(ctx); err != nil {
		return err
	}

	t, ok, err := e.store.Load(ctx, l)
	if err != nil {
		return fmt.Errorf("load weight table for block length %d: %w", l, err)
	}
	if ok && t.BlockLength() != l {
		return fmt.Errorf("store returned weight table for block length %d, want %d", t.BlockLength(), l)
	}

	switch {
	case ok && t.Scoring() == e.scoring:
		cacheLookups.WithLabelValues("hit").Inc()
		logrus.Debugf("loaded weight table for block length %d (%d pairs)", l, t.Len())
	case ok:
		// stored weights were computed under other constants; rebuild in
		// memory and leave the stored entry alone
		cacheLookups.WithLabelValues("stale").Inc()
		logrus.Warnf("stored weight table for block length %d was built with %s, engine uses %s; rebuilding without saving",
			l, t.Scoring(), e.scoring)
		t = e.build(alphabet, l)
	default:
		cacheLookups.WithLabelValues("miss").Inc()
		t = e.build(alphabet, l)
		if err := e.store.Save(ctx, l, t); err != nil {
			return fmt.Errorf("save weight table for block length %d: %w", l, err)
		}
	}

	logrus.Infof("block length %d -> %d", e.blockLength, l)
	e.blockLength = l
	e.table = t
	return nil
}

func (e *Engine) build(alphabet []rune, l int) *WeightTable {
	start := time.Now()
	t := BuildWeightTable(alphabet, l, e.scoring)
	tableBuilds.Inc()
	logrus.Debugf("built weight table for block length %d over %q: %d pairs in %s", l, string(alphabet), t.Len(), time.Since(start))
	return t
}

// Flush saves the active table under its block length unless the store
// already holds an entry for that key. Existing entries are never
// overwritten.
func (e *Engine) Flush(ctx context.Context) error {
	if e.table == nil {
		return nil
	}
	ok, err := e.store.Contains(ctx, e.blockLength)
	if err != nil {
		return fmt.Errorf("check weight table for block length %d: %w", e.blockLength, err)
	}
	if ok {
		return nil
	}
	if err := e.store.Save(ctx, e.blockLength, e.table); err != nil {
		return fmt.Errorf("save weight table for block length %d: %w", e.blockLength, err)
	}
	logrus.Debugf("persisted weight table for block length %d", e.blockLength)
	return nil
}

// Align precomputes for a and b, then runs the block aligner on the active
// table. Result.Elapsed covers the block-level DP only.
func (e *Engine) Align(ctx context.Context, a, b string) (Result, error) {
	if err := e.Precompute(ctx, a, b); err != nil {
		return Result{}, err
	}

	l := e.blockLength
	blocksA, blocksB := SplitBlocks(a, l), SplitBlocks(b, l)
	if added := ExtendShortBlocks(blocksA, blocksB, l, e.table, e.scoring); added > 0 {
		weightExtensions.Add(float64(added))
		logrus.Debugf("added %d short-block pairs at block length %d", added, l)
	}

	start := time.Now()
	score, err := ScoreBlocks(blocksA, blocksB, e.table, e.scoring)
	elapsed := time.Since(start)
	if err != nil {
		return Result{}, err
	}
	blockDPSeconds.Observe(elapsed.Seconds())

	return Result{Score: score, Elapsed: elapsed, BlockLength: l}, nil
}
