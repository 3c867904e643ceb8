package search

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/storekit/shopsearch/pkg/catalog"
)

// Result is everything a host needs to render one recomputation: the
// classified intent (useful for telemetry), the full view sequence, and
// the "did you mean" names. Pagination is applied by the host's Pager, not
// here, so scroll-driven reveals never re-run the pipeline.
type Result struct {
	Query       string     `json:"query" msgpack:"q"`
	Intent      IntentKind `json:"intent" msgpack:"in"`
	Items       []ViewItem `json:"items" msgpack:"it"`
	Suggestions []string   `json:"suggestions,omitempty" msgpack:"sg,omitempty"`
}

// Engine binds a catalog snapshot to the engine config. Search is pure and
// synchronous; the only mutable state is the snapshot pointer, which
// SetSnapshot swaps atomically when a fresh catalog arrives so partial
// results from a stale snapshot can never be shown.
type Engine struct {
	mu   sync.RWMutex
	snap *catalog.Snapshot
	cfg  Config
}

func NewEngine(snap *catalog.Snapshot, cfg Config) *Engine {
	return &Engine{snap: snap, cfg: cfg}
}

// SetSnapshot replaces the whole catalog snapshot. In-flight searches keep
// the pointer they already read; new searches see only the new data.
func (e *Engine) SetSnapshot(snap *catalog.Snapshot) {
	e.mu.Lock()
	e.snap = snap
	e.mu.Unlock()
	log.Debug("Catalog snapshot replaced")
}

// Snapshot returns the current snapshot.
func (e *Engine) Snapshot() *catalog.Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snap
}

// Config returns the engine tunables.
func (e *Engine) Config() Config {
	return e.cfg
}

// NewPager hands the host a pagination cursor pre-set to the configured
// page size.
func (e *Engine) NewPager() *Pager {
	return NewPager(e.cfg.PageSize, e.cfg.ScrollThresholdPx)
}

// Search runs classify, view building and suggestion extraction against a
// single snapshot read, so the whole result is internally consistent even
// if SetSnapshot races with it.
func (e *Engine) Search(query string) Result {
	snap := e.Snapshot()
	intent := Classify(query, snap, e.cfg)
	items := BuildView(query, intent, snap, e.cfg)
	return Result{
		Query:       query,
		Intent:      intent.Kind,
		Items:       items,
		Suggestions: SuggestionNames(intent, e.cfg.SuggestionLimit),
	}
}

// Complete proxies the snapshot's prefix type-ahead.
func (e *Engine) Complete(prefix string, limit int) []string {
	snap := e.Snapshot()
	if snap == nil {
		return nil
	}
	return snap.CompleteName(prefix, limit)
}
