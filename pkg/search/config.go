package search

import "time"

// Config carries every tunable of the engine. The zero value is not
// usable; start from DefaultConfig and override from the TOML layer.
type Config struct {
	// Pool scan minima: entities scoring below these never enter a pool.
	CategoryPoolMin    float64
	SubcategoryPoolMin float64
	ProductPoolMin     float64
	// PoolLimit caps each per-level pool scan.
	PoolLimit int

	// Decision thresholds the boosted pool bests must clear.
	CategoryThreshold    float64
	SubcategoryThreshold float64
	ProductThreshold     float64

	// IncludesBoost is added to a pool's best score when the candidate
	// name contains the query as a literal substring.
	IncludesBoost float64

	// Broad-intent product scan.
	BroadMin   float64
	BroadLimit int

	// SuggestionLimit caps the "did you mean" list.
	SuggestionLimit int

	// View pagination.
	PageSize          int
	ScrollThresholdPx int

	// PlaceholderImage stands in for products with no usable image URL.
	PlaceholderImage string

	// DebounceWindow between a keystroke and recomputation.
	DebounceWindow time.Duration
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		CategoryPoolMin:      0.55,
		SubcategoryPoolMin:   0.50,
		ProductPoolMin:       0.50,
		PoolLimit:            5,
		CategoryThreshold:    0.58,
		SubcategoryThreshold: 0.55,
		ProductThreshold:     0.55,
		IncludesBoost:        0.05,
		BroadMin:             0.45,
		BroadLimit:           200,
		SuggestionLimit:      3,
		PageSize:             20,
		ScrollThresholdPx:    40,
		PlaceholderImage:     "/assets/placeholder.png",
		DebounceWindow:       250 * time.Millisecond,
	}
}
