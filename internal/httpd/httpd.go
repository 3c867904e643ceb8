// Package httpd exposes the search engine over a small gin HTTP API, for
// hosts that prefer a local sidecar over stdio IPC.
package httpd

import (
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/storekit/shopsearch/internal/logger"
	"github.com/storekit/shopsearch/pkg/config"
	"github.com/storekit/shopsearch/pkg/search"
)

// Server wraps a gin router around the engine.
type Server struct {
	engine *search.Engine
	cfg    *config.Config
	router *gin.Engine
	log    *log.Logger
}

func NewServer(engine *search.Engine, cfg *config.Config) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{engine: engine, cfg: cfg, router: router, log: logger.Default("http")}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/healthz", s.healthCheck)
	s.router.GET("/api/search", s.handleSearch)
	s.router.GET("/api/complete", s.handleComplete)
}

// Router returns the underlying gin engine, for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start blocks serving on addr.
func (s *Server) Start(addr string) error {
	s.log.Infof("HTTP API listening on %s", addr)
	return s.router.Run(addr)
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleSearch runs the full pipeline for ?q= and returns the view
// sequence. ?n= optionally caps visible product rows through a pager, the
// same way a scrolling host would.
func (s *Server) handleSearch(c *gin.Context) {
	query := c.Query("q")
	if len(query) > s.cfg.Server.MaxQueryLen {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query too long"})
		return
	}

	start := time.Now()
	result := s.engine.Search(query)
	elapsed := time.Since(start)

	items := result.Items
	if n := c.Query("n"); n != "" {
		limit, err := strconv.Atoi(n)
		if err != nil || limit < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'n' parameter"})
			return
		}
		if limit > s.cfg.Server.MaxLimit {
			limit = s.cfg.Server.MaxLimit
		}
		pager := search.NewPager(limit, s.cfg.View.ScrollThresholdPx)
		items = pager.Visible(items)
	}

	c.JSON(http.StatusOK, gin.H{
		"query":       result.Query,
		"intent":      result.Intent.String(),
		"items":       items,
		"suggestions": result.Suggestions,
		"count":       len(items),
		"time_ms":     elapsed.Milliseconds(),
	})
}

// handleComplete serves prefix type-ahead from the catalog name index.
func (s *Server) handleComplete(c *gin.Context) {
	prefix := c.Query("p")
	if prefix == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing 'p' parameter"})
		return
	}
	limit := 10
	if n := c.Query("n"); n != "" {
		if parsed, err := strconv.Atoi(n); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > s.cfg.Server.MaxLimit {
		limit = s.cfg.Server.MaxLimit
	}
	names := s.engine.Complete(prefix, limit)
	c.JSON(http.StatusOK, gin.H{"names": names, "count": len(names)})
}
