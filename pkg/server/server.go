package server

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/storekit/shopsearch/pkg/config"
	"github.com/storekit/shopsearch/pkg/search"
)

// Server handles the IPC loop for catalog search requests.
type Server struct {
	engine       *search.Engine
	cfg          *config.Config
	dec          *msgpack.Decoder
	enc          *msgpack.Encoder
	requestCount int
}

// NewServer creates a search server using stdin/stdout for IPC.
func NewServer(engine *search.Engine, cfg *config.Config) *Server {
	return &Server{
		engine: engine,
		cfg:    cfg,
		dec:    msgpack.NewDecoder(os.Stdin),
		enc:    msgpack.NewEncoder(os.Stdout),
	}
}

// NewServerWithIO is NewServer with explicit streams, for tests.
func NewServerWithIO(engine *search.Engine, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	return &Server{
		engine: engine,
		cfg:    cfg,
		dec:    msgpack.NewDecoder(r),
		enc:    msgpack.NewEncoder(w),
	}
}

// Start begins listening for IPC requests. Returns nil on EOF.
func (s *Server) Start() error {
	log.Debug("Starting IPC server")

	// Signal that the server is ready
	s.send(StatusResponse{Status: "ready"})

	for {
		var request Request
		if err := s.dec.Decode(&request); err != nil {
			if err == io.EOF {
				return nil
			}
			log.Errorf("Decoding request: %v", err)
			s.sendError("", "Invalid msgpack request", 400)
			continue
		}
		s.handleRequest(request)
	}
}

// handleRequest dispatches on the op selector.
func (s *Server) handleRequest(request Request) {
	s.requestCount++
	switch request.Op {
	case "search":
		s.handleSearch(request)
	case "complete":
		s.handleComplete(request)
	case "health":
		s.send(StatusResponse{Status: "ok", ID: request.ID})
	default:
		s.sendError(request.ID, fmt.Sprintf("Unknown op: %s", request.Op), 400)
	}
}

// handleSearch validates the query, runs the pipeline and answers with the
// paginated-ready view sequence. A blank query is not an error: it yields
// a broad result with no items, matching the engine contract.
func (s *Server) handleSearch(request Request) {
	query := request.Query
	if len(query) > s.cfg.Server.MaxQueryLen {
		s.sendError(request.ID, fmt.Sprintf("Query exceeds maximum length of %d characters", s.cfg.Server.MaxQueryLen), 400)
		log.Debug("Query too long in request")
		return
	}

	start := time.Now()
	result := s.engine.Search(query)
	elapsed := time.Since(start)

	items := result.Items
	if request.Limit > 0 {
		limit := request.Limit
		if limit > s.cfg.Server.MaxLimit {
			limit = s.cfg.Server.MaxLimit
		}
		pager := search.NewPager(limit, s.cfg.View.ScrollThresholdPx)
		items = pager.Visible(items)
	}

	s.send(SearchResponse{
		ID:          request.ID,
		Intent:      result.Intent.String(),
		Items:       items,
		Suggestions: result.Suggestions,
		Count:       len(items),
		TimeTaken:   elapsed.Milliseconds(),
	})
}

// handleComplete answers prefix type-ahead requests from the name index.
func (s *Server) handleComplete(request Request) {
	prefix := strings.TrimSpace(request.Prefix)
	if prefix == "" {
		s.sendError(request.ID, "Missing 'p' parameter", 400)
		return
	}
	limit := request.Limit
	if limit < 1 || limit > s.cfg.Server.MaxLimit {
		limit = s.cfg.Server.MaxLimit
	}
	names := s.engine.Complete(prefix, limit)
	s.send(CompleteResponse{ID: request.ID, Names: names, Count: len(names)})
}

// send encodes one response frame onto stdout.
func (s *Server) send(response any) {
	if err := s.enc.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
	}
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) {
	s.send(ErrorResponse{ID: id, Error: message, Code: code})
}
