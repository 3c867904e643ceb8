// Package search is the core engine: it scores free-text queries against
// the flattened catalog, decides whether the user wants a category, a
// subcategory or a product, and assembles the grouped result view with its
// pagination cursor and "did you mean" suggestions. Everything here is
// synchronous and pure; hosts drive it from a debounce timer.
package search

import (
	"github.com/storekit/shopsearch/internal/utils"
)

// Normalize lowercases a string and strips combining diacritical marks
// before any comparison. Idempotent.
func Normalize(s string) string {
	return utils.Fold(s)
}
