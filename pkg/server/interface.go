/*
Package server implements msgpack IPC for the catalog search engine.

The server provides a minimal request/response interface over stdin/stdout
using binary msgpack encoding. Hosts embedding the engine (editor plugins,
desktop shells, storefront sidecars) send one frame per debounced
keystroke and render the returned view sequence.

# IPC

Each message carries an ID that is echoed back, an op selector, and the op
payload.

Search requests:

	{"id": "req_001", "op": "search", "q": "coffee mug", "l": 20}

The response carries the classified intent tag, the view items (headers,
chip groups and product rows), the "did you mean" names, and timing:

	{"id": "req_001", "in": "subcategory", "it": [...], "sg": [...], "c": 12, "t": 2}

Prefix type-ahead:

	{"id": "req_002", "op": "complete", "p": "mu", "l": 8}

Health probe:

	{"id": "req_003", "op": "health"}

Errors are answered with {"id", "e", "c"} frames; a malformed frame never
terminates the loop.
*/
package server

import "github.com/storekit/shopsearch/pkg/search"

// Request is one inbound IPC frame.
type Request struct {
	ID     string `msgpack:"id"`
	Op     string `msgpack:"op"`
	Query  string `msgpack:"q,omitempty"`
	Prefix string `msgpack:"p,omitempty"`
	Limit  int    `msgpack:"l,omitempty"`
}

// SearchResponse answers a search op.
type SearchResponse struct {
	ID          string            `msgpack:"id"`
	Intent      string            `msgpack:"in"`
	Items       []search.ViewItem `msgpack:"it"`
	Suggestions []string          `msgpack:"sg,omitempty"`
	Count       int               `msgpack:"c"`
	TimeTaken   int64             `msgpack:"t"`
}

// CompleteResponse answers a complete op.
type CompleteResponse struct {
	ID    string   `msgpack:"id"`
	Names []string `msgpack:"ns"`
	Count int      `msgpack:"c"`
}

// StatusResponse answers health and startup frames.
type StatusResponse struct {
	Status string `msgpack:"status"`
	ID     string `msgpack:"id,omitempty"`
}

// ErrorResponse holds basic error information for a failed request.
type ErrorResponse struct {
	ID    string `msgpack:"id,omitempty"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
