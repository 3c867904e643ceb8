package search

// Pager is the explicit pagination cursor. Hosts own one per results panel,
// reset it on every debounced query change, and advance it when their
// scroll listener reports the panel is near the bottom. Only product rows
// count toward the limit; headers and chip groups of a section that has
// begun rendering are never paginated away.
type Pager struct {
	pageSize  int
	loaded    int
	threshold int
}

// NewPager returns a cursor pre-loaded with one page.
func NewPager(pageSize, scrollThresholdPx int) *Pager {
	if pageSize < 1 {
		pageSize = 1
	}
	return &Pager{pageSize: pageSize, loaded: pageSize, threshold: scrollThresholdPx}
}

// Reset rewinds the cursor to a single page. Call on every query change,
// even if the previous query had paged further.
func (pg *Pager) Reset() {
	pg.loaded = pg.pageSize
}

// Advance reveals one more page of product rows. Idempotent with respect
// to rendering: advancing past the end just clamps at the full sequence.
func (pg *Pager) Advance() {
	pg.loaded += pg.pageSize
}

// Loaded reports how many product rows are currently revealed.
func (pg *Pager) Loaded() int {
	return pg.loaded
}

// NearBottom reports whether a scroll position is within the configured
// threshold of the container bottom. Hosts translate a true result into an
// Advance call.
func (pg *Pager) NearBottom(scrollTop, viewportHeight, contentHeight float64) bool {
	return contentHeight-(scrollTop+viewportHeight) <= float64(pg.threshold)
}

// Visible walks the full view sequence and returns the slice the host
// should render: product rows up to the loaded count, plus the header and
// chip items of every section that contributes at least one row. Header
// and chip items are buffered until a product of their section is
// admitted, so a section whose rows are all held back renders nothing,
// not a dangling header.
func (pg *Pager) Visible(items []ViewItem) []ViewItem {
	var out []ViewItem
	var pending []ViewItem
	products := 0
	for _, item := range items {
		if item.Kind != ViewProduct {
			pending = append(pending, item)
			continue
		}
		if products >= pg.loaded {
			break
		}
		out = append(out, pending...)
		pending = pending[:0]
		out = append(out, item)
		products++
	}
	return out
}

// VisibleProductCount reports how many product rows Visible would emit.
func (pg *Pager) VisibleProductCount(items []ViewItem) int {
	count := 0
	for _, item := range pg.Visible(items) {
		if item.Kind == ViewProduct {
			count++
		}
	}
	return count
}
