package search

import (
	"sort"
	"strings"
)

// Named is anything the matcher can score by display name.
type Named interface {
	DisplayName() string
}

// Match pairs a scored entity with its similarity score.
type Match[T Named] struct {
	Item  T
	Score float64
}

// TopMatches ranks items against a query, drops anything below minScore,
// and truncates to limit. Results are sorted by score descending; equal
// scores keep catalog order. A blank or whitespace-only query is not a
// "match everything" and returns nil.
func TopMatches[T Named](items []T, query string, minScore float64, limit int) []Match[T] {
	if strings.TrimSpace(query) == "" {
		return nil
	}

	var matches []Match[T]
	for _, item := range items {
		score := Similarity(query, item.DisplayName())
		if score >= minScore {
			matches = append(matches, Match[T]{Item: item, Score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}
