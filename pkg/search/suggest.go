package search

// SuggestionNames extracts up to limit "did you mean" names from an
// intent, preserving score order. Selecting a suggestion must re-run the
// whole pipeline with the suggestion text as the new query; there is no
// shortcut into a cached result.
func SuggestionNames(intent Intent, limit int) []string {
	var names []string
	for _, s := range intent.Suggestions {
		if limit > 0 && len(names) >= limit {
			break
		}
		names = append(names, s.Name)
	}
	return names
}
