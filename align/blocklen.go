package align

import (
	"math"
	"sort"
	"unicode/utf8"
)

// MinBlockLength is the floor applied by BlockLength.
const MinBlockLength = 1

// Alphabet returns the distinct symbols of a and b in ascending order.
func Alphabet(a, b string) []rune {
	seen := make(map[rune]struct{})
	for _, r := range a {
		seen[r] = struct{}{}
	}
	for _, r := range b {
		seen[r] = struct{}{}
	}
	alphabet := make([]rune, 0, len(seen))
	for r := range seen {
		alphabet = append(alphabet, r)
	}
	sort.Slice(alphabet, func(i, j int) bool { return alphabet[i] < alphabet[j] })
	return alphabet
}

// BlockLength derives the block length for a pair of sequences:
//
//	n = max(len(a), len(b)), k = |alphabet(a ∪ b)|
//	L = round(log_k n) / 2
//
// Rounding is half-to-even and the division truncates. The logarithm is
// undefined for k <= 1 or n == 0; those inputs, and any L that rounds down
// to zero, yield MinBlockLength.
func BlockLength(a, b string) int {
	n := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	k := len(Alphabet(a, b))
	return blockLength(n, k)
}

func blockLength(n, k int) int {
	if n == 0 || k <= 1 {
		return MinBlockLength
	}
	l := int(math.RoundToEven(math.Log(float64(n))/math.Log(float64(k)))) / 2
	if l < MinBlockLength {
		return MinBlockLength
	}
	return l
}
