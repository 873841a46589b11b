// SPDX-License-Identifier: MPL-2.0

package dispatch

// maxSuggestDistance bounds how different a candidate may be from the
// unknown command before suggesting it becomes nonsense. Only candidates
// with edit distance strictly below 4 qualify.
const maxSuggestDistance = 4

// Suggest returns the candidate closest to unknown by edit distance, when
// that distance is below maxSuggestDistance. Ties break in favor of the
// first-encountered candidate. The boolean is false when no candidate is
// close enough.
func Suggest(unknown string, candidates []string) (string, bool) {
	best := ""
	bestDistance := maxSuggestDistance
	for _, candidate := range candidates {
		d := editDistance(unknown, candidate)
		if d < bestDistance {
			best = candidate
			bestDistance = d
		}
	}
	return best, best != ""
}

// editDistance computes the Levenshtein distance between a and b:
// the minimum number of single-rune insertions, deletions, and
// substitutions (unit cost each) transforming one into the other.
func editDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
