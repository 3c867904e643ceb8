// Package cli handles cmd line input and search results for DBG and testing various features
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/storekit/shopsearch/pkg/search"
)

// InputHandler processes queries from stdin and prints the grouped result
// view. It mirrors what a storefront host does on every debounced
// keystroke: reset the pager, run the pipeline, render the visible slice.
type InputHandler struct {
	engine       *search.Engine
	pager        *search.Pager
	maxQueryLen  int
	requestCount int
	lastResult   search.Result
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(engine *search.Engine, maxQueryLen int) *InputHandler {
	return &InputHandler{
		engine:      engine,
		pager:       engine.NewPager(),
		maxQueryLen: maxQueryLen,
	}
}

// Start begins the interface loop.
// It continuously prompts for input, reads a line from stdin,
// and passes the trimmed query to handleQuery() for processing.
// Loop terminates if an error occurs while reading from stdin
func (h *InputHandler) Start() error {
	log.Print("ShopSearch CLI")
	reader := bufio.NewReader(os.Stdin)
	log.Print("type a query and press Enter to search the catalog (Ctrl+C to exit):")
	log.Print("prefix a query with '+' to reveal the next page of the previous result")

	for {
		log.Print("> ")
		query, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		query = strings.TrimSpace(query)
		if query == "" {
			continue
		}
		h.handleQuery(query)
	}
}

// handleQuery runs one query through the full pipeline and renders the
// paginated view. "+" advances the pager over the previous result instead,
// the way a scroll-near-bottom event would.
func (h *InputHandler) handleQuery(query string) {
	h.requestCount++

	if query == "+" {
		h.pager.Advance()
		log.Printf("Revealing up to %d product rows", h.pager.Loaded())
		h.render(h.lastResult)
		return
	}

	if len(query) > h.maxQueryLen {
		log.Errorf("Query too long: %s", query)
		return
	}

	start := time.Now()
	result := h.engine.Search(query)
	elapsed := time.Since(start)

	// New query resets pagination, even if the last one paged further.
	h.pager.Reset()
	h.lastResult = result

	log.Debugf("Took [ %v ] for query '%s'", elapsed, query)
	log.Printf("intent: %s", result.Intent)

	if len(result.Suggestions) > 0 {
		log.Printf("did you mean: %s", strings.Join(result.Suggestions, ", "))
	}
	if len(result.Items) == 0 {
		log.Warnf("No matches found for query: '%s'", query)
		return
	}
	h.render(result)
}

// render prints the visible slice of the current result.
func (h *InputHandler) render(result search.Result) {
	for _, item := range h.pager.Visible(result.Items) {
		switch item.Kind {
		case search.ViewHeader:
			log.Printf("== %s ==", item.Text)
		case search.ViewChips:
			log.Printf("   [%s]", strings.Join(item.Chips, "] ["))
		case search.ViewProduct:
			clName := fmt.Sprintf("\033[38;5;75m%s\033[0m", item.Product.Name)
			log.Printf("   %-40s (%s)", clName, item.ImageURL)
		}
	}
	total := 0
	for _, item := range result.Items {
		if item.Kind == search.ViewProduct {
			total++
		}
	}
	shown := h.pager.VisibleProductCount(result.Items)
	if shown < total {
		log.Printf("-- %d of %d products shown, enter '+' for more --", shown, total)
	}
}
