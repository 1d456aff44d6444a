package align

import (
	"fmt"
	"unicode/utf8"
)

// SplitBlocks partitions seq into consecutive blocks of l symbols. The last
// block is shorter than l when len(seq) is not a multiple of l. An empty
// seq has no blocks. Panics if l < 1.
func SplitBlocks(seq string, l int) []string {
	if l < 1 {
		panic(fmt.Sprintf("SplitBlocks: block length must be >= 1, got %d", l))
	}
	runes := []rune(seq)
	blocks := make([]string, 0, (len(runes)+l-1)/l)
	for start := 0; start < len(runes); start += l {
		end := min(start+l, len(runes))
		blocks = append(blocks, string(runes[start:end]))
	}
	return blocks
}

// ExtendShortBlocks makes sure t holds a weight for every pairing of a
// short trailing block with each block of the other sequence. Full blocks
// are expected to be covered by the table build already. It returns the
// number of entries added.
func ExtendShortBlocks(blocksA, blocksB []string, l int, t *WeightTable, s Scoring) int {
	added := 0
	if last, ok := shortTail(blocksA, l); ok {
		for _, b := range blocksB {
			if t.Ensure(last, b, s) {
				added++
			}
		}
	}
	if last, ok := shortTail(blocksB, l); ok {
		for _, a := range blocksA {
			if t.Ensure(a, last, s) {
				added++
			}
		}
	}
	return added
}

func shortTail(blocks []string, l int) (string, bool) {
	if len(blocks) == 0 {
		return "", false
	}
	last := blocks[len(blocks)-1]
	return last, utf8.RuneCountInString(last) != l
}

// ScoreBlocks runs the block-level dynamic program over two block
// sequences using t for substitution weights.
//
// Row 0 and column 0 accumulate Gap·len(block), so a short trailing block
// is cheaper to skip at the boundary. Inside the matrix a skipped block
// always costs 2·Gap regardless of its length:
//
//	cur[j] = max(cur[j-1] + 2·Gap, prev[j] + 2·Gap, prev[j-1] + w(A[i], B[j-1]))
//
// Reference scores depend on this exact scheme.
//
// A pair missing from t yields ErrMissingWeight.
func ScoreBlocks(blocksA, blocksB []string, t *WeightTable, s Scoring) (int, error) {
	innerGap := s.Gap * 2

	prev := make([]int, len(blocksB)+1)
	cur := make([]int, len(blocksB)+1)
	for j := 1; j <= len(blocksB); j++ {
		prev[j] = prev[j-1] + s.Gap*utf8.RuneCountInString(blocksB[j-1])
	}

	for _, a := range blocksA {
		cur[0] = prev[0] + s.Gap*utf8.RuneCountInString(a)
		for j := 1; j <= len(blocksB); j++ {
			w, ok := t.Lookup(a, blocksB[j-1])
			if !ok {
				return 0, fmt.Errorf("%w: (%q, %q) at block length %d", ErrMissingWeight, a, blocksB[j-1], t.BlockLength())
			}
			cur[j] = max(cur[j-1]+innerGap, prev[j]+innerGap, prev[j-1]+w)
		}
		prev, cur = cur, prev
	}
	return prev[len(blocksB)], nil
}

// AlignBlocks splits a and b into blocks of length l, extends t for short
// trailing blocks and returns the block-level alignment score. A block
// length below MinBlockLength yields ErrInvalidBlockLength.
func AlignBlocks(a, b string, l int, t *WeightTable, s Scoring) (int, error) {
	if l < MinBlockLength {
		return 0, fmt.Errorf("%w: %d", ErrInvalidBlockLength, l)
	}
	blocksA, blocksB := SplitBlocks(a, l), SplitBlocks(b, l)
	ExtendShortBlocks(blocksA, blocksB, l, t, s)
	return ScoreBlocks(blocksA, blocksB, t, s)
}
