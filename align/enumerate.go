package align

// EnumerateBlocks returns every block of exactly l symbols over alphabet,
// |alphabet|^l of them, in odometer order of alphabet positions. The
// alphabet is expected to hold distinct symbols; the output is then
// distinct as well. An empty alphabet or l < 1 yields no blocks.
//
// Generation is iterative: an index vector of length l is advanced like an
// odometer, so stack depth does not depend on l.
func EnumerateBlocks(alphabet []rune, l int) []string {
	k := len(alphabet)
	if k == 0 || l < 1 {
		return nil
	}

	total := 1
	for i := 0; i < l; i++ {
		total *= k
	}
	blocks := make([]string, 0, total)

	idx := make([]int, l)
	buf := make([]rune, l)
	for {
		for i, d := range idx {
			buf[i] = alphabet[d]
		}
		blocks = append(blocks, string(buf))

		// advance the rightmost position, carrying leftwards
		pos := l - 1
		for pos >= 0 {
			idx[pos]++
			if idx[pos] < k {
				break
			}
			idx[pos] = 0
			pos--
		}
		if pos < 0 {
			return blocks
		}
	}
}
