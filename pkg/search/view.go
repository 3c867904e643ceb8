package search

import (
	"net/url"
	"strings"

	"github.com/storekit/shopsearch/pkg/catalog"
)

// ViewKind tags one row of the rendered result sequence.
type ViewKind int

const (
	ViewHeader ViewKind = iota
	ViewChips
	ViewProduct
)

func (k ViewKind) String() string {
	switch k {
	case ViewHeader:
		return "header"
	case ViewChips:
		return "chips"
	default:
		return "product"
	}
}

// MarshalJSON emits the tag name; msgpack keeps the compact int form.
func (k ViewKind) MarshalJSON() ([]byte, error) {
	return []byte(`"` + k.String() + `"`), nil
}

// ViewItem is a tagged variant: a section header, a group of quick-filter
// chips, or a product row with its resolved image URL.
type ViewItem struct {
	Kind     ViewKind         `json:"kind" msgpack:"k"`
	Text     string           `json:"text,omitempty" msgpack:"t,omitempty"`
	Chips    []string         `json:"chips,omitempty" msgpack:"c,omitempty"`
	Product  *catalog.Product `json:"product,omitempty" msgpack:"p,omitempty"`
	ImageURL string           `json:"image_url,omitempty" msgpack:"i,omitempty"`
}

// BuildView expands a classified intent into the ordered, mixed sequence of
// header / chip-group / product-row items representing the hierarchy around
// the match. The query is only consulted for the broad case, which re-runs
// the matcher over all products.
func BuildView(query string, intent Intent, snap *catalog.Snapshot, cfg Config) []ViewItem {
	if snap == nil {
		return nil
	}
	b := viewBuilder{snap: snap, cfg: cfg, seen: make(map[string]bool)}

	switch intent.Kind {
	case IntentCategory:
		if intent.Category == nil {
			return nil
		}
		cat := *intent.Category
		b.header(cat.Name)
		b.chips(snap.SubcategoriesOf(cat.ID))
		b.productRows(snap.ProductsOfCategory(cat.ID))

	case IntentSubcategory:
		if intent.Subcategory == nil {
			return nil
		}
		sub := *intent.Subcategory
		b.header(sub.CatName)
		b.chips(snap.SubcategoriesOf(sub.CatID))
		// Own products first, then the rest of the parent category.
		b.productRows(snap.ProductsOfSubcategory(sub.ID))
		for _, p := range snap.ProductsOfCategory(sub.CatID) {
			if p.SubID != sub.ID {
				b.productRow(p)
			}
		}

	case IntentProduct:
		if intent.Product == nil {
			return nil
		}
		prod := *intent.Product
		b.header(prod.CatName)
		b.chips(snap.SubcategoriesOf(prod.CatID))
		// The match itself leads, then its subcategory, then the rest of
		// the parent category.
		b.productRow(prod)
		b.productRows(snap.ProductsOfSubcategory(prod.SubID))
		for _, p := range snap.ProductsOfCategory(prod.CatID) {
			if p.SubID != prod.SubID {
				b.productRow(p)
			}
		}

	case IntentBroad:
		matches := TopMatches(snap.Products, query, cfg.BroadMin, cfg.BroadLimit)
		if len(matches) == 0 {
			return nil
		}
		// Group by category in first-seen order; rows stay score-sorted
		// inside each group. No cross-group dedup: grouping is by category.
		groups := make(map[string][]catalog.Product)
		var order []string
		for _, m := range matches {
			if _, ok := groups[m.Item.CatID]; !ok {
				order = append(order, m.Item.CatID)
			}
			groups[m.Item.CatID] = append(groups[m.Item.CatID], m.Item)
		}
		for _, catID := range order {
			rows := groups[catID]
			b.header(rows[0].CatName)
			b.chips(snap.SubcategoriesOf(catID))
			for _, p := range rows {
				b.items = append(b.items, productItem(p, cfg))
			}
		}
	}

	return b.items
}

type viewBuilder struct {
	snap  *catalog.Snapshot
	cfg   Config
	items []ViewItem
	seen  map[string]bool
}

func (b *viewBuilder) header(text string) {
	b.items = append(b.items, ViewItem{Kind: ViewHeader, Text: text})
}

// chips emits one chip group listing subcategory names; nothing when the
// category has no subcategories.
func (b *viewBuilder) chips(subs []catalog.Subcategory) {
	if len(subs) == 0 {
		return
	}
	names := make([]string, 0, len(subs))
	for _, sub := range subs {
		names = append(names, sub.Name)
	}
	b.items = append(b.items, ViewItem{Kind: ViewChips, Chips: names})
}

// productRow appends one row unless this product id was already emitted in
// this build.
func (b *viewBuilder) productRow(p catalog.Product) {
	if b.seen[p.ID] {
		return
	}
	b.seen[p.ID] = true
	b.items = append(b.items, productItem(p, b.cfg))
}

func (b *viewBuilder) productRows(prods []catalog.Product) {
	for _, p := range prods {
		b.productRow(p)
	}
}

func productItem(p catalog.Product, cfg Config) ViewItem {
	prod := p
	return ViewItem{Kind: ViewProduct, Product: &prod, ImageURL: resolveImage(p, cfg.PlaceholderImage)}
}

// resolveImage picks the product's first image URL, falling back to the
// placeholder when absent or malformed.
func resolveImage(p catalog.Product, placeholder string) string {
	if len(p.Images) == 0 {
		return placeholder
	}
	raw := strings.TrimSpace(p.Images[0].URL)
	if raw == "" {
		return placeholder
	}
	if _, err := url.Parse(raw); err != nil {
		return placeholder
	}
	return raw
}
