package catalog

import (
	"github.com/charmbracelet/log"
)

// Snapshot holds the flattened lookup tables built from one catalog tree.
// A snapshot is immutable after Flatten returns; a fresh catalog fetch
// produces a whole new snapshot which the host swaps in atomically.
type Snapshot struct {
	Categories    []Category    `msgpack:"cats"`
	Subcategories []Subcategory `msgpack:"subs"`
	Products      []Product     `msgpack:"prods"`

	index *NameIndex
}

// Flatten walks the nested tree and produces the three flat lists, each
// child row carrying denormalized parent ids and names. Malformed entries
// (missing name, unusable id) are dropped rather than aborting the pass;
// one corrupt entity must not block search over the rest of the catalog.
func Flatten(tree *Tree) *Snapshot {
	snap := &Snapshot{}
	if tree == nil {
		snap.index = NewNameIndex()
		return snap
	}

	for _, rawCat := range tree.Categories {
		catID := coerceID(rawCat.ID)
		if catID == "" || rawCat.Name == "" {
			log.Debugf("Dropping malformed category entry (id=%v)", rawCat.ID)
			continue
		}
		cat := Category{
			ID:     catID,
			Name:   rawCat.Name,
			URL:    rawCat.URL,
			Images: rawCat.Images,
		}
		snap.Categories = append(snap.Categories, cat)

		for _, rawSub := range rawCat.Subcategories {
			subID := coerceID(rawSub.ID)
			if subID == "" || rawSub.Name == "" {
				log.Debugf("Dropping malformed subcategory entry under %q (id=%v)", cat.Name, rawSub.ID)
				continue
			}
			sub := Subcategory{
				ID:      subID,
				Name:    rawSub.Name,
				URL:     rawSub.URL,
				Images:  rawSub.Images,
				CatID:   cat.ID,
				CatName: cat.Name,
			}
			snap.Subcategories = append(snap.Subcategories, sub)

			for _, rawProd := range rawSub.Products {
				prodID := coerceID(rawProd.ID)
				if prodID == "" || rawProd.Name == "" {
					log.Debugf("Dropping malformed product entry under %q (id=%v)", sub.Name, rawProd.ID)
					continue
				}
				snap.Products = append(snap.Products, Product{
					ID:      prodID,
					Name:    rawProd.Name,
					URL:     rawProd.URL,
					Images:  rawProd.Images,
					CatID:   cat.ID,
					CatName: cat.Name,
					SubID:   sub.ID,
					SubName: sub.Name,
				})
			}
		}
	}

	snap.buildIndex()
	log.Debugf("Flattened catalog: %d categories, %d subcategories, %d products",
		len(snap.Categories), len(snap.Subcategories), len(snap.Products))
	return snap
}

func (s *Snapshot) buildIndex() {
	idx := NewNameIndex()
	for i := range s.Categories {
		idx.Add(s.Categories[i].Name)
	}
	for i := range s.Subcategories {
		idx.Add(s.Subcategories[i].Name)
	}
	for i := range s.Products {
		idx.Add(s.Products[i].Name)
	}
	s.index = idx
}

// CompleteName returns up to limit catalog entity names whose normalized
// form starts with the given prefix.
func (s *Snapshot) CompleteName(prefix string, limit int) []string {
	if s.index == nil {
		return nil
	}
	return s.index.Complete(prefix, limit)
}

// SubcategoriesOf returns the subcategories of a category in catalog order.
func (s *Snapshot) SubcategoriesOf(catID string) []Subcategory {
	var out []Subcategory
	for _, sub := range s.Subcategories {
		if sub.CatID == catID {
			out = append(out, sub)
		}
	}
	return out
}

// ProductsOfCategory returns every product under a category in catalog order.
func (s *Snapshot) ProductsOfCategory(catID string) []Product {
	var out []Product
	for _, p := range s.Products {
		if p.CatID == catID {
			out = append(out, p)
		}
	}
	return out
}

// ProductsOfSubcategory returns a subcategory's products in catalog order.
func (s *Snapshot) ProductsOfSubcategory(subID string) []Product {
	var out []Product
	for _, p := range s.Products {
		if p.SubID == subID {
			out = append(out, p)
		}
	}
	return out
}

// CategoryByID looks up a category row, nil when absent.
func (s *Snapshot) CategoryByID(id string) *Category {
	for i := range s.Categories {
		if s.Categories[i].ID == id {
			return &s.Categories[i]
		}
	}
	return nil
}
