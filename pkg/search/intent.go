package search

import (
	"sort"
	"strings"

	"github.com/storekit/shopsearch/internal/utils"
	"github.com/storekit/shopsearch/pkg/catalog"
)

// IntentKind tags the classifier's decision about what a query targets.
type IntentKind int

const (
	IntentBroad IntentKind = iota
	IntentCategory
	IntentSubcategory
	IntentProduct
)

func (k IntentKind) String() string {
	switch k {
	case IntentCategory:
		return "category"
	case IntentSubcategory:
		return "subcategory"
	case IntentProduct:
		return "product"
	default:
		return "broad"
	}
}

// MarshalJSON emits the tag name; msgpack keeps the compact int form.
func (k IntentKind) MarshalJSON() ([]byte, error) {
	return []byte(`"` + k.String() + `"`), nil
}

// Suggestion is a runner-up candidate offered as a "did you mean".
type Suggestion struct {
	Name  string  `json:"name" msgpack:"n"`
	Score float64 `json:"score" msgpack:"s"`
}

// Intent is the classifier's verdict. Exactly one of Category,
// Subcategory, Product is set for the non-broad kinds.
type Intent struct {
	Kind        IntentKind
	Category    *catalog.Category
	Subcategory *catalog.Subcategory
	Product     *catalog.Product
	Suggestions []Suggestion
}

// Classify runs the matcher against all three levels and picks the single
// most likely target type. Decision order prefers categories on ties: a
// user typing a short ambiguous term is more likely browsing a top-level
// section than hunting one product.
func Classify(query string, snap *catalog.Snapshot, cfg Config) Intent {
	if snap == nil || strings.TrimSpace(query) == "" {
		return Intent{Kind: IntentBroad}
	}

	catPool := TopMatches(snap.Categories, query, cfg.CategoryPoolMin, cfg.PoolLimit)
	subPool := TopMatches(snap.Subcategories, query, cfg.SubcategoryPoolMin, cfg.PoolLimit)
	prodPool := TopMatches(snap.Products, query, cfg.ProductPoolMin, cfg.PoolLimit)

	catBest := boostedBest(query, catPool, cfg.IncludesBoost)
	subBest := boostedBest(query, subPool, cfg.IncludesBoost)
	prodBest := boostedBest(query, prodPool, cfg.IncludesBoost)

	switch {
	case len(catPool) > 0 && catBest >= subBest && catBest >= prodBest && catBest >= cfg.CategoryThreshold:
		return Intent{
			Kind:        IntentCategory,
			Category:    &catPool[0].Item,
			Suggestions: runnerUps(catPool, cfg.SuggestionLimit),
		}
	case len(subPool) > 0 && subBest >= prodBest && subBest >= cfg.SubcategoryThreshold:
		return Intent{
			Kind:        IntentSubcategory,
			Subcategory: &subPool[0].Item,
			Suggestions: runnerUps(subPool, cfg.SuggestionLimit),
		}
	case len(prodPool) > 0 && prodBest >= cfg.ProductThreshold:
		return Intent{
			Kind:        IntentProduct,
			Product:     &prodPool[0].Item,
			Suggestions: runnerUps(prodPool, cfg.SuggestionLimit),
		}
	}

	return Intent{Kind: IntentBroad, Suggestions: pooledSuggestions(query, cfg.SuggestionLimit, catPool, subPool, prodPool)}
}

// boostedBest returns the pool's best score plus the includes boost when
// the best candidate's name contains the query as a substring. The boost
// stacks on top of whatever the scorer already applied.
func boostedBest[T Named](query string, pool []Match[T], boost float64) float64 {
	if len(pool) == 0 {
		return 0
	}
	best := pool[0].Score
	if strings.Contains(Normalize(pool[0].Item.DisplayName()), Normalize(query)) {
		best += boost
	}
	return best
}

// runnerUps converts a pool's 2nd..(1+limit)th entries into suggestions.
func runnerUps[T Named](pool []Match[T], limit int) []Suggestion {
	var out []Suggestion
	for _, m := range pool[1:] {
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, Suggestion{Name: m.Item.DisplayName(), Score: m.Score})
	}
	return out
}

// pooledSuggestions merges all three pools for the broad case, sorted by
// score, deduplicated by folded name, truncated to limit. The query itself
// is never offered back.
func pooledSuggestions(query string, limit int, catPool []Match[catalog.Category], subPool []Match[catalog.Subcategory], prodPool []Match[catalog.Product]) []Suggestion {
	var all []Suggestion
	for _, m := range catPool {
		all = append(all, Suggestion{Name: m.Item.Name, Score: m.Score})
	}
	for _, m := range subPool {
		all = append(all, Suggestion{Name: m.Item.Name, Score: m.Score})
	}
	for _, m := range prodPool {
		all = append(all, Suggestion{Name: m.Item.Name, Score: m.Score})
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Score > all[j].Score })

	filter := utils.NewSuggestionFilter(query)
	var out []Suggestion
	for _, s := range all {
		if !filter.ShouldInclude(s.Name) {
			continue
		}
		out = append(out, s)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}
