// Package client fetches the raw catalog tree from the storefront backend.
// The engine itself never talks to the network; this is the collaborator
// that hands it an already-parsed tree snapshot.
package client

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"resty.dev/v3"

	"github.com/storekit/shopsearch/pkg/catalog"
)

// Fetcher retrieves catalog trees over HTTP.
type Fetcher struct {
	httpClient *resty.Client
}

// NewFetcher builds the HTTP client with sane timeouts and retries.
func NewFetcher() *Fetcher {
	httpClient := resty.New().
		SetTimeout(30 * time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "shopsearch/1.0")

	return &Fetcher{httpClient: httpClient}
}

// Close releases the underlying transport.
func (f *Fetcher) Close() error {
	return f.httpClient.Close()
}

// FetchTree downloads and parses the nested catalog tree from url.
func (f *Fetcher) FetchTree(ctx context.Context, url string) (*catalog.Tree, error) {
	resp, err := f.httpClient.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog tree: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch catalog tree: HTTP %d %s", resp.StatusCode(), resp.Status())
	}

	tree, err := catalog.ParseTree(resp.Bytes())
	if err != nil {
		return nil, err
	}
	log.Debugf("Fetched catalog tree from %s: %d root categories", url, len(tree.Categories))
	return tree, nil
}

// LoadTreeFile reads a catalog tree from a local JSON file, mainly for
// development and the CLI mode.
func LoadTreeFile(path string) (*catalog.Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return catalog.ParseTree(data)
}
