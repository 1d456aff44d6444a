package align

import (
	"sort"
	"unicode/utf8"
)

// Pair is one WeightTable entry. A <= B always holds for pairs returned by
// the table.
type Pair struct {
	A     string
	B     string
	Score int
}

// pairKey is a block pair ordered lexicographically, so (a, b) and (b, a)
// resolve to the same entry.
type pairKey struct {
	lo, hi string
}

func newPairKey(a, b string) pairKey {
	if b < a {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// WeightTable caches symbol-level alignment scores between pairs of blocks
// for one block length. Entries are only ever added. The table also records
// the alphabet its full-length blocks were enumerated over and the scoring
// its weights were computed with; a table is only valid for that scoring.
type WeightTable struct {
	blockLength int
	scoring     Scoring
	alphabet    []rune // sorted, distinct
	weights     map[pairKey]int
}

// NewWeightTable returns an empty table for blockLength whose weights are
// computed under s.
func NewWeightTable(blockLength int, s Scoring) *WeightTable {
	return &WeightTable{
		blockLength: blockLength,
		scoring:     s,
		weights:     make(map[pairKey]int),
	}
}

// BuildWeightTable enumerates every block of length l over alphabet and
// scores every unordered pair of them, self-pairs included.
//
// Complexity: K = |alphabet|^l blocks, O(K²) pairs, each aligned in
// O(l²), so O(K²·l²). This is the dominant cost of the whole engine.
func BuildWeightTable(alphabet []rune, l int, s Scoring) *WeightTable {
	t := NewWeightTable(l, s)
	t.AddAlphabet(alphabet)
	t.Extend(EnumerateBlocks(t.alphabet, l), s)
	return t
}

// Extend scores every unordered pair drawn from blocks that the table does
// not hold yet. A self-pair (p, p) is set to len(p)·Match. It returns the
// number of entries added.
func (t *WeightTable) Extend(blocks []string, s Scoring) int {
	added := 0
	for i, p1 := range blocks {
		for _, p2 := range blocks[i:] {
			if t.Ensure(p1, p2, s) {
				added++
			}
		}
	}
	return added
}

// Ensure inserts the entry for (a, b) if it is absent and reports whether
// it did.
func (t *WeightTable) Ensure(a, b string, s Scoring) bool {
	key := newPairKey(a, b)
	if _, ok := t.weights[key]; ok {
		return false
	}
	if a == b {
		t.weights[key] = utf8.RuneCountInString(a) * s.Match
	} else {
		t.weights[key] = AlignSymbols(key.lo, key.hi, s)
	}
	return true
}

// Lookup returns the weight of the unordered pair (a, b).
func (t *WeightTable) Lookup(a, b string) (int, bool) {
	w, ok := t.weights[newPairKey(a, b)]
	return w, ok
}

// Set stores score for the unordered pair (a, b), replacing any entry.
// Stores use it to rebuild a decoded table.
func (t *WeightTable) Set(a, b string, score int) {
	t.weights[newPairKey(a, b)] = score
}

// BlockLength is the generation key of the table.
func (t *WeightTable) BlockLength() int { return t.blockLength }

// Scoring returns the constants the table's weights were computed with.
func (t *WeightTable) Scoring() Scoring { return t.scoring }

// Len returns the number of entries.
func (t *WeightTable) Len() int { return len(t.weights) }

// Alphabet returns a copy of the symbols the table was enumerated over.
func (t *WeightTable) Alphabet() []rune {
	return append([]rune(nil), t.alphabet...)
}

// AddAlphabet merges symbols into the recorded alphabet. It does not
// enumerate or score anything.
func (t *WeightTable) AddAlphabet(symbols []rune) {
	merged := t.alphabet
	for _, r := range symbols {
		i := sort.Search(len(merged), func(i int) bool { return merged[i] >= r })
		if i < len(merged) && merged[i] == r {
			continue
		}
		merged = append(merged, 0)
		copy(merged[i+1:], merged[i:])
		merged[i] = r
	}
	t.alphabet = merged
}

// Covers reports whether every symbol of alphabet is already recorded.
func (t *WeightTable) Covers(alphabet []rune) bool {
	for _, r := range alphabet {
		i := sort.Search(len(t.alphabet), func(i int) bool { return t.alphabet[i] >= r })
		if i == len(t.alphabet) || t.alphabet[i] != r {
			return false
		}
	}
	return true
}

// Pairs returns all entries sorted by (A, B).
func (t *WeightTable) Pairs() []Pair {
	pairs := make([]Pair, 0, len(t.weights))
	for k, w := range t.weights {
		pairs = append(pairs, Pair{A: k.lo, B: k.hi, Score: w})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].A != pairs[j].A {
			return pairs[i].A < pairs[j].A
		}
		return pairs[i].B < pairs[j].B
	})
	return pairs
}

// Clone returns a deep copy.
func (t *WeightTable) Clone() *WeightTable {
	c := &WeightTable{
		blockLength: t.blockLength,
		scoring:     t.scoring,
		alphabet:    t.Alphabet(),
		weights:     make(map[pairKey]int, len(t.weights)),
	}
	for k, w := range t.weights {
		c.weights[k] = w
	}
	return c
}
