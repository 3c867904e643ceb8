package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/storekit/shopsearch/internal/utils"
	"github.com/storekit/shopsearch/pkg/search"
)

// CompleteHandler is the type-ahead counterpart of InputHandler: it reads
// prefixes from stdin and prints catalog names from the prefix index.
type CompleteHandler struct {
	engine          *search.Engine
	minPrefixLength int
	maxPrefixLength int
	limit           int
	noFilter        bool
}

// NewCompleteHandler creates a new type-ahead CLI handler
func NewCompleteHandler(engine *search.Engine, minLength, maxLength, limit int, noFilter bool) *CompleteHandler {
	return &CompleteHandler{
		engine:          engine,
		minPrefixLength: minLength,
		maxPrefixLength: maxLength,
		limit:           limit,
		noFilter:        noFilter,
	}
}

// Start begins the type-ahead input loop.
func (h *CompleteHandler) Start() error {
	log.Print("ShopSearch type-ahead CLI")
	reader := bufio.NewReader(os.Stdin)
	log.Print("type a prefix, press enter to see matching catalog names (Ctrl+C to exit):")

	for {
		log.Print("> ")
		prefix, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		prefix = strings.TrimSpace(prefix)
		if prefix == "" {
			continue
		}
		h.handlePrefix(prefix)
	}
}

// handlePrefix validates one prefix and prints its completions.
func (h *CompleteHandler) handlePrefix(prefix string) {
	if len(prefix) < h.minPrefixLength {
		log.Errorf("Prefix too short: %s", prefix)
		return
	}
	if len(prefix) > h.maxPrefixLength {
		log.Errorf("Prefix too long: %s", prefix)
		return
	}

	if !h.noFilter {
		if !utils.IsValidPrefix(prefix) {
			log.Warnf("No completions for prefix: '%s' (filtered out)", prefix)
			return
		}
	} else {
		log.Debug("Input filtering disabled - allowing all inputs")
	}

	start := time.Now()
	names := h.engine.Complete(prefix, h.limit)
	elapsed := time.Since(start)

	log.Debugf("Took %v for prefix '%s'", elapsed, prefix)

	if len(names) == 0 {
		log.Warnf("No completions for prefix: '%s'", prefix)
		return
	}

	log.Printf("Found %d catalog names for prefix '%s':", len(names), prefix)
	for i, name := range names {
		clName := fmt.Sprintf("\033[38;5;75m%s\033[0m", name)
		log.Printf("%2d. %s", i+1, clName)
	}
}
