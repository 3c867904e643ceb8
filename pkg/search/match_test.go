package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type namedString string

func (s namedString) DisplayName() string { return string(s) }

func names(items ...string) []namedString {
	out := make([]namedString, len(items))
	for i, s := range items {
		out[i] = namedString(s)
	}
	return out
}

func TestTopMatchesOrdering(t *testing.T) {
	items := names("Steel Travel Mug", "Mugs", "Coffee Mugs", "Logo Tee")

	matches := TopMatches(items, "mugs", 0.5, 10)

	assert.NotEmpty(t, matches)
	for i := 1; i < len(matches); i++ {
		assert.GreaterOrEqual(t, matches[i-1].Score, matches[i].Score, "results must be sorted descending")
	}
	assert.Equal(t, "Mugs", matches[0].Item.DisplayName())
}

func TestTopMatchesMinScoreAndLimit(t *testing.T) {
	items := names("Mugs", "Coffee Mugs", "Travel Mugs", "Rugs", "Logo Tee")

	matches := TopMatches(items, "mugs", 0.6, 2)

	assert.LessOrEqual(t, len(matches), 2, "never more than limit")
	for _, m := range matches {
		assert.GreaterOrEqual(t, m.Score, 0.6, "never below minScore")
	}
}

func TestTopMatchesBlankQuery(t *testing.T) {
	items := names("Mugs", "Coffee Mugs")

	assert.Nil(t, TopMatches(items, "", 0, 10), "empty query is not a match-everything")
	assert.Nil(t, TopMatches(items, "   ", 0, 10), "whitespace-only query is not a valid search")
}

func TestTopMatchesEmptyInput(t *testing.T) {
	assert.Nil(t, TopMatches([]namedString(nil), "mugs", 0.5, 10))
}
