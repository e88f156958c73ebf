package naming

import "strings"

// levenshtein computes the edit distance between two strings using the
// two-row dynamic-programming formulation.
func levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
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

// Similarity returns the normalized edit-distance similarity of two
// names, compared case-insensitively:
//
//	1 - levenshtein(a, b) / max(len(a), len(b))
//
// Identical names score 1.0; completely different names approach 0.
func Similarity(a, b string) float64 {
	la := strings.ToLower(a)
	lb := strings.ToLower(b)
	longest := max(len([]rune(la)), len([]rune(lb)))
	if longest == 0 {
		return 1.0
	}
	return 1.0 - float64(levenshtein(la, lb))/float64(longest)
}
