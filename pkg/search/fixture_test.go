package search

import (
	"fmt"

	"github.com/storekit/shopsearch/pkg/catalog"
)

// mugsSnapshot is the small storefront catalog most suites score against.
// Product p1 is linked to two subcategories upstream, so it flattens into
// two rows with different SubID/CatID pairs.
func mugsSnapshot() *catalog.Snapshot {
	tree := &catalog.Tree{Categories: []catalog.TreeNode{
		{ID: "c1", Name: "Mugs", URL: "/c/mugs", Subcategories: []catalog.TreeNode{
			{ID: "s1", Name: "Coffee Mugs", Products: []catalog.TreeNode{
				{ID: "p1", Name: "Red Mug", Images: []catalog.Image{{URL: "/img/red.png"}}},
				{ID: "p2", Name: "Blue Mug"},
			}},
			{ID: "s2", Name: "Travel Mugs", Products: []catalog.TreeNode{
				{ID: "p3", Name: "Steel Travel Mug"},
				{ID: "p1", Name: "Red Mug", Images: []catalog.Image{{URL: "/img/red.png"}}},
			}},
		}},
		{ID: "c2", Name: "T-Shirts", Subcategories: []catalog.TreeNode{
			{ID: "s3", Name: "Graphic Tees", Products: []catalog.TreeNode{
				{ID: "p4", Name: "Logo Tee"},
			}},
		}},
	}}
	return catalog.Flatten(tree)
}

// wideSnapshot builds categories of "... Item NN" products for pagination
// suites; every product name contains "item" so broad scans match all.
func wideSnapshot(categories, productsPer int) *catalog.Snapshot {
	var cats []catalog.TreeNode
	n := 0
	for c := 0; c < categories; c++ {
		var prods []catalog.TreeNode
		for p := 0; p < productsPer; p++ {
			n++
			prods = append(prods, catalog.TreeNode{
				ID:   fmt.Sprintf("p%d", n),
				Name: fmt.Sprintf("Item %02d", n),
			})
		}
		cats = append(cats, catalog.TreeNode{
			ID:   fmt.Sprintf("c%d", c+1),
			Name: fmt.Sprintf("Aisle %d", c+1),
			Subcategories: []catalog.TreeNode{
				{ID: fmt.Sprintf("s%d", c+1), Name: fmt.Sprintf("Shelf %d", c+1), Products: prods},
			},
		})
	}
	return catalog.Flatten(&catalog.Tree{Categories: cats})
}
