// Package catalog models the category/subcategory/product hierarchy and
// flattens the nested tree a storefront backend hands us into the immutable
// lookup tables the search engine scores against.
package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Image is a single image entry attached to any catalog entity.
type Image struct {
	URL     string `json:"url" msgpack:"u"`
	AltText string `json:"alt_text,omitempty" msgpack:"a,omitempty"`
}

// Category is a root-level catalog entity.
type Category struct {
	ID     string  `json:"id" msgpack:"id"`
	Name   string  `json:"name" msgpack:"n"`
	URL    string  `json:"url" msgpack:"u"`
	Images []Image `json:"images" msgpack:"im"`
}

// Subcategory belongs to exactly one category in the flattened view.
// CatID and CatName are denormalized back-references, not ownership.
type Subcategory struct {
	ID      string  `json:"id" msgpack:"id"`
	Name    string  `json:"name" msgpack:"n"`
	URL     string  `json:"url" msgpack:"u"`
	Images  []Image `json:"images" msgpack:"im"`
	CatID   string  `json:"cat_id" msgpack:"cid"`
	CatName string  `json:"cat_name" msgpack:"cn"`
}

// Product belongs to exactly one subcategory in the flattened view.
// A product linked upstream to several subcategories appears once per
// linkage, each row carrying a different SubID/CatID pair.
type Product struct {
	ID      string  `json:"id" msgpack:"id"`
	Name    string  `json:"name" msgpack:"n"`
	URL     string  `json:"url" msgpack:"u"`
	Images  []Image `json:"images" msgpack:"im"`
	CatID   string  `json:"cat_id" msgpack:"cid"`
	CatName string  `json:"cat_name" msgpack:"cn"`
	SubID   string  `json:"sub_id" msgpack:"sid"`
	SubName string  `json:"sub_name" msgpack:"sn"`
}

// DisplayName implements search.Named.
func (c Category) DisplayName() string    { return c.Name }
func (s Subcategory) DisplayName() string { return s.Name }
func (p Product) DisplayName() string     { return p.Name }

// TreeNode is one raw node of the nested catalog tree as delivered by the
// catalog-fetch collaborator. IDs may arrive as numbers or strings, so the
// field stays untyped until coercion.
type TreeNode struct {
	ID            any        `json:"id"`
	Name          string     `json:"name"`
	URL           string     `json:"url"`
	Images        []Image    `json:"images"`
	Subcategories []TreeNode `json:"subcategories"`
	Products      []TreeNode `json:"products"`
}

// Tree is the root of a raw catalog snapshot.
type Tree struct {
	Categories []TreeNode `json:"categories"`
}

// ParseTree decodes a raw JSON catalog document. The decoder keeps numeric
// ids as json.Number so 12 and "12" coerce to the same key.
func ParseTree(data []byte) (*Tree, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var tree Tree
	if err := dec.Decode(&tree); err != nil {
		// Some backends serve the category array bare, without the wrapper.
		dec = json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		var bare []TreeNode
		if err2 := dec.Decode(&bare); err2 != nil {
			return nil, fmt.Errorf("parse catalog tree: %w", err)
		}
		tree.Categories = bare
	}
	return &tree, nil
}

// coerceID folds the number-or-string id forms into one stable string key.
// Returns "" for anything unusable.
func coerceID(v any) string {
	switch id := v.(type) {
	case string:
		return strings.TrimSpace(id)
	case json.Number:
		return id.String()
	case float64:
		if id == float64(int64(id)) {
			return strconv.FormatInt(int64(id), 10)
		}
		return strconv.FormatFloat(id, 'f', -1, 64)
	case int:
		return strconv.Itoa(id)
	case int64:
		return strconv.FormatInt(id, 10)
	default:
		return ""
	}
}
