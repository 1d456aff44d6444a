package align

// AlignSymbols returns the global alignment score of a and b under s.
//
// Algorithm (rolling rows):
//  1. Let the row run over the shorter input so memory is O(min(m, n)).
//  2. Row 0 is the cumulative gap penalty: row[j] = j·Gap.
//  3. For each symbol x of the longer input and each symbol y of the row:
//     cur[j] = max(cur[j-1] + Gap, prev[j] + Gap, prev[j-1] + sub(x, y))
//     where sub is Match on equal symbols and Mismatch otherwise.
//  4. The score is the last cell of the last row.
//
// Two empty inputs score 0; an empty input against n symbols scores n·Gap.
// Scoring is symmetric, so swapping the inputs never changes the result.
func AlignSymbols(a, b string, s Scoring) int {
	ra, rb := []rune(a), []rune(b)
	if len(rb) > len(ra) {
		ra, rb = rb, ra
	}

	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := 1; j <= len(rb); j++ {
		prev[j] = prev[j-1] + s.Gap
	}

	for i := 0; i < len(ra); i++ {
		cur[0] = prev[0] + s.Gap
		for j := 1; j <= len(rb); j++ {
			sub := s.Mismatch
			if ra[i] == rb[j-1] {
				sub = s.Match
			}
			cur[j] = max(cur[j-1]+s.Gap, prev[j]+s.Gap, prev[j-1]+sub)
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}
