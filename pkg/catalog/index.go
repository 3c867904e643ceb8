package catalog

import (
	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/storekit/shopsearch/internal/utils"
)

// NameIndex is a patricia trie over normalized entity names, used for
// prefix-based type-ahead. The trie item keeps the display spelling of the
// first entity inserted under a given normalized key.
type NameIndex struct {
	trie *patricia.Trie
}

func NewNameIndex() *NameIndex {
	return &NameIndex{trie: patricia.NewTrie()}
}

// Add inserts a display name under its normalized form. Duplicate keys keep
// the first spelling seen.
func (ix *NameIndex) Add(name string) {
	key := utils.Fold(name)
	if key == "" {
		return
	}
	if ix.trie.Get(patricia.Prefix(key)) == nil {
		ix.trie.Insert(patricia.Prefix(key), name)
	}
}

// Complete walks the subtree under the normalized prefix and returns up to
// limit display names in key order.
func (ix *NameIndex) Complete(prefix string, limit int) []string {
	key := utils.Fold(prefix)
	if key == "" {
		return nil
	}
	var names []string
	_ = ix.trie.VisitSubtree(patricia.Prefix(key), func(p patricia.Prefix, item patricia.Item) error {
		if limit > 0 && len(names) >= limit {
			return errStopWalk
		}
		if name, ok := item.(string); ok {
			names = append(names, name)
		}
		return nil
	})
	return names
}

// errStopWalk short-circuits VisitSubtree once the limit is reached.
var errStopWalk = stopWalk{}

type stopWalk struct{}

func (stopWalk) Error() string { return "stop walk" }
