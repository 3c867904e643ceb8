// Copyright 2025 The ShopSearch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the catalog search server and CLI application.

ShopSearch is the client-side search assistant of a storefront: given a
free-text query and a hierarchical catalog (categories, subcategories,
products), it finds the best-matching entities even under typos or partial
input, decides whether the user is most likely looking for a whole
category, a subcategory or a specific product, and assembles a ranked,
grouped, incrementally-revealed result list plus "did you mean"
suggestions. Everything recomputes on every debounced keystroke with no
server round-trip through the storefront backend.

# Usage

Start the msgpack IPC server against a catalog JSON file:

	shopsearch -catalog catalog.json

Fetch the catalog tree from the storefront backend and keep a local
snapshot cache so restarts skip the fetch:

	shopsearch -catalog https://shop.example.com/api/catalog -cache snap.bin

Run in CLI mode for interactive testing:

	shopsearch -c -catalog catalog.json

Run the type-ahead CLI over the catalog name index:

	shopsearch -t -catalog catalog.json

Serve the HTTP API instead of stdio IPC:

	shopsearch -http :8080 -catalog catalog.json

# Configuration

Runtime configuration is managed through a TOML file holding every engine
tunable, from the intent classifier's pool minima, decision thresholds and
includes boost to the pagination page size and the debounce window:

	[search]
	category_threshold = 0.58
	subcategory_threshold = 0.55
	product_threshold = 0.55
	broad_min = 0.45
	includes_boost = 0.05
	suggestion_limit = 3

	[view]
	page_size = 20
	scroll_threshold_px = 40

	[engine]
	debounce_ms = 250

The config file is automatically created with defaults if it doesn't exist.

# IPC Protocol

The default mode communicates via msgpack over stdin/stdout. Search
requests are processed synchronously with timing information included in
responses.

Send a search request:

	{"id": "req1", "op": "search", "q": "coffee mug", "l": 20}

Receive the classified intent, the view sequence and suggestions:

	{"id": "req1", "in": "subcategory", "it": [...], "sg": ["Coffee Mugs"], "c": 12, "t": 2}

# Search Engine

The core pipeline is provided by the search package: the similarity
scorer, the top-K matcher, the intent classifier and the hierarchical
result view builder with its pagination cursor.

	engine := search.NewEngine(catalog.Flatten(tree), cfg.EngineConfig())
	result := engine.Search("red mug")

The engine is pure and synchronous; hosts drive it from a debounce timer
and translate scroll proximity into pager advances.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/storekit/shopsearch/internal/cli"
	"github.com/storekit/shopsearch/internal/client"
	"github.com/storekit/shopsearch/internal/httpd"
	"github.com/storekit/shopsearch/internal/logger"
	"github.com/storekit/shopsearch/internal/utils"
	"github.com/storekit/shopsearch/pkg/catalog"
	"github.com/storekit/shopsearch/pkg/config"
	"github.com/storekit/shopsearch/pkg/search"
	"github.com/storekit/shopsearch/pkg/server"
)

const (
	Version = "1.0.0"
	AppName = "shopsearch"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main calls other packages to initialize the server or CLI inputs.
// main() does not implement logic for them and only manages the flow.
func main() {
	sigHandler()

	showVersion := flag.Bool("version", false, "Show current version")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	typeaheadMode := flag.Bool("t", false, "Run the type-ahead CLI against the catalog name index")
	noFilter := flag.Bool("no-filter", false, "Disable prefix input filtering in type-ahead mode")
	httpAddr := flag.String("http", "", "Serve the HTTP API on this address instead of stdio IPC")
	catalogSrc := flag.String("catalog", "", "Catalog tree source: a JSON file path or an http(s) URL")
	cachePath := flag.String("cache", "", "Snapshot cache file; loaded when the catalog source is unavailable")
	configPath := flag.String("config", "", "Path to config.toml (default: user config dir)")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	appConfig, activePath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(activePath))

	snap := loadSnapshot(*catalogSrc, *cachePath)
	engine := search.NewEngine(snap, appConfig.EngineConfig())

	if *cliMode {
		log.SetReportTimestamp(false)
		inputHandler := cli.NewInputHandler(engine, appConfig.Server.MaxQueryLen)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	if *typeaheadMode {
		log.SetReportTimestamp(false)
		completeHandler := cli.NewCompleteHandler(engine,
			appConfig.Server.MinQueryLen, appConfig.Server.MaxQueryLen,
			appConfig.Server.MaxLimit, *noFilter || !appConfig.Server.EnableFilter)
		if err := completeHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	if *httpAddr != "" {
		srv := httpd.NewServer(engine, appConfig)
		if err := srv.Start(*httpAddr); err != nil {
			log.Fatalf("HTTP server error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	showStartupInfo(*catalogSrc, snap)

	srv := server.NewServer(engine, appConfig)
	if err := srv.Start(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// loadSnapshot builds the flattened catalog from the configured source,
// falling back to the snapshot cache when the source is missing or broken.
// An empty snapshot is not fatal: the engine just answers broad/no-match.
func loadSnapshot(src, cachePath string) *catalog.Snapshot {
	var tree *catalog.Tree
	var err error

	switch {
	case src == "":
		log.Warn("No catalog source specified, running with empty catalog...")
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		fetcher := client.NewFetcher()
		defer fetcher.Close()
		tree, err = fetcher.FetchTree(context.Background(), src)
		if err != nil {
			log.Warnf("Catalog fetch failed: %v", err)
		}
	default:
		tree, err = client.LoadTreeFile(utils.FindCatalogFile(src))
		if err != nil {
			log.Warnf("Catalog file load failed: %v", err)
		}
	}

	if tree == nil && cachePath != "" {
		snap, cacheErr := catalog.LoadSnapshot(cachePath)
		if cacheErr != nil {
			log.Warnf("Snapshot cache unusable: %v", cacheErr)
		} else {
			log.Debug("Serving from snapshot cache")
			return snap
		}
	}

	snap := catalog.Flatten(tree)
	if tree != nil && cachePath != "" {
		if err := catalog.SaveSnapshot(snap, cachePath); err != nil {
			log.Warnf("Could not write snapshot cache: %v", err)
		}
	}
	return snap
}

// printVersion displays the styled version banner.
func printVersion() {
	banner := logger.NewWithConfig("", log.InfoLevel, false, false, log.TextFormatter)

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	banner.SetStyles(styles)

	banner.Print("")
	banner.Print("[ ShopSearch ] Typo-tolerant catalog search!")
	banner.Print("", "version", Version)
	banner.Print("")
	banner.Print("use -h or --help to see available options")
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(src string, snap *catalog.Snapshot) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("============")
	println(" ShopSearch ")
	println("============")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	if src != "" {
		log.Infof("catalog source: ( %s )", src)
	}
	log.Infof("catalog: %d categories / %d subcategories / %d products",
		len(snap.Categories), len(snap.Subcategories), len(snap.Products))
	log.Info("status: ready")
	println("============")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
