package search

import (
	"strings"
)

// Similarity scores how well a query matches a candidate name, in [0,1].
//
// Substring containment dominates: when the normalized candidate contains
// the normalized query the score is at least 0.8, approaching 1.0 as the
// query covers more of the candidate. Otherwise the score falls back to
// 1 - distance/max(len), where distance is an optimal-string-alignment
// edit distance charging cost 1 for insertions, deletions, substitutions
// and adjacent transpositions.
//
// The function is deliberately asymmetric: only "candidate contains query"
// is checked, never the reverse, so a short query scores very high against
// a longer matching name.
func Similarity(query, candidate string) float64 {
	q := Normalize(query)
	c := Normalize(candidate)
	if q == "" || c == "" {
		return 0
	}

	qr := []rune(q)
	cr := []rune(c)

	if strings.Contains(c, q) {
		score := 0.8 + (float64(len(qr))/float64(len(cr)))*0.2
		if score > 1 {
			score = 1
		}
		return score
	}

	maxLen := len(qr)
	if len(cr) > maxLen {
		maxLen = len(cr)
	}
	score := 1 - float64(osaDistance(qr, cr))/float64(maxLen)
	if score < 0 {
		score = 0
	}
	return score
}

// osaDistance computes the optimal-string-alignment variant of the
// Damerau-Levenshtein distance. O(len(a)*len(b)) time and space; fine for
// catalogs of a few thousand entity names.
func osaDistance(a, b []rune) int {
	la, lb := len(a), len(b)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}

	d := make([][]int, la+1)
	for i := range d {
		d[i] = make([]int, lb+1)
		d[i][0] = i
	}
	for j := 0; j <= lb; j++ {
		d[0][j] = j
	}

	for i := 1; i <= la; i++ {
		for j := 1; j <= lb; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			best := d[i-1][j] + 1 // deletion
			if ins := d[i][j-1] + 1; ins < best {
				best = ins // insertion
			}
			if sub := d[i-1][j-1] + cost; sub < best {
				best = sub // substitution
			}
			if i > 1 && j > 1 && a[i-1] == b[j-2] && a[i-2] == b[j-1] {
				if tr := d[i-2][j-2] + 1; tr < best {
					best = tr // adjacent transposition
				}
			}
			d[i][j] = best
		}
	}
	return d[la][lb]
}
