package utils

// SuggestionFilter deduplicates "did you mean" names by their folded form.
// The query itself is seeded so it is never offered back as a suggestion.
type SuggestionFilter struct {
	seen map[string]bool
}

// NewSuggestionFilter creates a new filter instance that will exclude the given query
func NewSuggestionFilter(query string) *SuggestionFilter {
	seen := make(map[string]bool)
	seen[Fold(query)] = true
	return &SuggestionFilter{seen: seen}
}

// ShouldInclude reports whether name was not emitted before and marks it seen.
func (f *SuggestionFilter) ShouldInclude(name string) bool {
	key := Fold(name)
	if f.seen[key] {
		return false
	}
	f.seen[key] = true
	return true
}
