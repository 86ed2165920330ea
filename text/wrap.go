package text

import (
	"math"
	"strings"
	"unicode"
)

// splitWords splits s into words: maximal runs of non-space runes.
// Runs of whitespace collapse; they reappear as single spaces when lines
// are joined.
func splitWords(s string) []string {
	return strings.FieldsFunc(s, unicode.IsSpace)
}

// joinWords reassembles a line's words with single spaces.
func joinWords(words []string) string {
	return strings.Join(words, " ")
}

// wrapMeasure precomputes everything line-width queries need so the DP runs
// in O(n²) over word boundaries.
type wrapMeasure struct {
	prefix []int // prefix[i] = total width of words[0:i], kerning inside words included
	step   int   // width added per inter-word gap: space advance + kerning on both sides
}

func newWrapMeasure(words []string, m Measurer, kerning int) wrapMeasure {
	prefix := make([]int, len(words)+1)
	for i, w := range words {
		prefix[i+1] = prefix[i] + StringWidth(w, m, kerning)
	}
	return wrapMeasure{
		prefix: prefix,
		step:   m.GlyphAdvance(' ') + 2*kerning,
	}
}

// width returns the rendered width of words[i:j) joined by single spaces.
func (wm wrapMeasure) width(i, j int) int {
	return wm.prefix[j] - wm.prefix[i] + (j-i-1)*wm.step
}

// wrapOptimal chooses line breaks minimizing total raggedness: the sum over
// all lines except the last of the squared slack (lineWidth - rendered
// width). Dynamic programming over word boundaries, O(n²). A single word
// wider than lineWidth is placed alone on its own line, unbroken and
// unpenalized, since no break choice can improve it.
func wrapOptimal(words []string, m Measurer, kerning, lineWidth int) [][]string {
	n := len(words)
	wm := newWrapMeasure(words, m, kerning)

	const inf = math.MaxInt64
	best := make([]int64, n+1) // best[j]: minimal cost of wrapping words[0:j)
	choice := make([]int, n+1) // choice[j]: start of the line ending at j
	for j := 1; j <= n; j++ {
		best[j] = inf
	}

	for j := 1; j <= n; j++ {
		for i := j - 1; i >= 0; i-- {
			w := wm.width(i, j)
			if w > lineWidth && j-i > 1 {
				// Lines only widen as i decreases.
				break
			}
			if best[i] == inf {
				continue
			}
			var cost int64
			switch {
			case w > lineWidth:
				// Forced: a lone word wider than the line.
				cost = 0
			case j == n:
				// The last line carries no raggedness penalty.
				cost = 0
			default:
				slack := int64(lineWidth - w)
				cost = slack * slack
			}
			if total := best[i] + cost; total < best[j] {
				best[j] = total
				choice[j] = i
			}
		}
	}

	// Reconstruct lines back to front.
	var rev [][]string
	for j := n; j > 0; j = choice[j] {
		rev = append(rev, words[choice[j]:j])
	}
	lines := make([][]string, len(rev))
	for i := range rev {
		lines[i] = rev[len(rev)-1-i]
	}
	return lines
}

// wrapGreedy packs as many words as fit on each line. It does not minimize
// raggedness; it exists as the baseline the optimal wrapper is tested
// against.
func wrapGreedy(words []string, m Measurer, kerning, lineWidth int) [][]string {
	wm := newWrapMeasure(words, m, kerning)
	var lines [][]string
	start := 0
	for start < len(words) {
		end := start + 1
		for end < len(words) && wm.width(start, end+1) <= lineWidth {
			end++
		}
		lines = append(lines, words[start:end])
		start = end
	}
	return lines
}

// raggedness computes the wrapping-quality metric: the sum of squared slacks
// over all lines except the last. Oversized lone-word lines contribute
// nothing.
func raggedness(lines [][]string, m Measurer, kerning, lineWidth int) int64 {
	var total int64
	for i, line := range lines {
		if i == len(lines)-1 {
			break
		}
		w := StringWidth(joinWords(line), m, kerning)
		if w > lineWidth {
			continue
		}
		slack := int64(lineWidth - w)
		total += slack * slack
	}
	return total
}
