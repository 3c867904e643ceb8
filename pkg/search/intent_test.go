package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyCategory(t *testing.T) {
	snap := mugsSnapshot()

	intent := Classify("mugs", snap, DefaultConfig())

	require.Equal(t, IntentCategory, intent.Kind)
	require.NotNil(t, intent.Category)
	assert.Equal(t, "Mugs", intent.Category.Name)
}

func TestClassifySubcategory(t *testing.T) {
	snap := mugsSnapshot()

	intent := Classify("coffee mugs", snap, DefaultConfig())

	require.Equal(t, IntentSubcategory, intent.Kind)
	require.NotNil(t, intent.Subcategory)
	assert.Equal(t, "Coffee Mugs", intent.Subcategory.Name)
	assert.Equal(t, "Mugs", intent.Subcategory.CatName)
}

func TestClassifyProduct(t *testing.T) {
	snap := mugsSnapshot()

	intent := Classify("red mug", snap, DefaultConfig())

	require.Equal(t, IntentProduct, intent.Kind)
	require.NotNil(t, intent.Product)
	assert.Equal(t, "Red Mug", intent.Product.Name)
}

func TestClassifyTypoTolerance(t *testing.T) {
	snap := mugsSnapshot()

	// Transposed characters still resolve to the category.
	intent := Classify("musg", snap, DefaultConfig())

	assert.Equal(t, IntentCategory, intent.Kind)
}

func TestClassifyBroadOnGibberish(t *testing.T) {
	snap := mugsSnapshot()

	intent := Classify("xyzzy", snap, DefaultConfig())

	assert.Equal(t, IntentBroad, intent.Kind)
	assert.Empty(t, intent.Suggestions, "nothing close enough to suggest")
}

func TestClassifyBroadKeepsPooledSuggestions(t *testing.T) {
	snap := mugsSnapshot()

	// "mugshot" scores 1 - 3/7 against "Mugs": above the category pool
	// minimum but under the category decision threshold, so the verdict is
	// broad with the near-miss offered as a suggestion.
	intent := Classify("mugshot", snap, DefaultConfig())

	require.Equal(t, IntentBroad, intent.Kind)
	require.NotEmpty(t, intent.Suggestions)
	assert.Equal(t, "Mugs", intent.Suggestions[0].Name)
}

func TestClassifyBlankQuery(t *testing.T) {
	snap := mugsSnapshot()

	intent := Classify("   ", snap, DefaultConfig())

	assert.Equal(t, IntentBroad, intent.Kind)
	assert.Empty(t, intent.Suggestions)
}

func TestClassifyNilSnapshot(t *testing.T) {
	intent := Classify("mugs", nil, DefaultConfig())
	assert.Equal(t, IntentBroad, intent.Kind)
}

func TestClassifyTiePrefersCategory(t *testing.T) {
	snap := mugsSnapshot()

	// "mugs" is an exact category name and a substring of two subcategory
	// names; the boosted category best wins the tie on decision order.
	intent := Classify("Mugs", snap, DefaultConfig())

	assert.Equal(t, IntentCategory, intent.Kind)
}

func TestClassifySuggestionsScoreOrder(t *testing.T) {
	snap := mugsSnapshot()

	// Subcategory pools for "mugs" hold both mug subcategories; the winner
	// is excluded from its own suggestions.
	intent := Classify("travel mugs", snap, DefaultConfig())

	require.Equal(t, IntentSubcategory, intent.Kind)
	require.NotNil(t, intent.Subcategory)
	assert.Equal(t, "Travel Mugs", intent.Subcategory.Name)
	for _, s := range intent.Suggestions {
		assert.NotEqual(t, "Travel Mugs", s.Name)
	}
	for i := 1; i < len(intent.Suggestions); i++ {
		assert.GreaterOrEqual(t, intent.Suggestions[i-1].Score, intent.Suggestions[i].Score)
	}
}

func TestSuggestionNamesLimit(t *testing.T) {
	intent := Intent{Kind: IntentBroad, Suggestions: []Suggestion{
		{Name: "Mugs", Score: 0.9},
		{Name: "Coffee Mugs", Score: 0.8},
		{Name: "Travel Mugs", Score: 0.7},
		{Name: "Rugs", Score: 0.6},
	}}

	names := SuggestionNames(intent, 3)

	assert.Equal(t, []string{"Mugs", "Coffee Mugs", "Travel Mugs"}, names)
}
