package httpd

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storekit/shopsearch/pkg/catalog"
	"github.com/storekit/shopsearch/pkg/config"
	"github.com/storekit/shopsearch/pkg/search"
)

func testServer() *Server {
	tree := &catalog.Tree{Categories: []catalog.TreeNode{
		{
			ID: "c1", Name: "Mugs", URL: "/c/mugs",
			Subcategories: []catalog.TreeNode{
				{
					ID: "s1", Name: "Coffee Mugs", URL: "/s/coffee-mugs",
					Products: []catalog.TreeNode{
						{ID: "p1", Name: "Red Mug", URL: "/p/red-mug"},
						{ID: "p2", Name: "Blue Mug", URL: "/p/blue-mug"},
					},
				},
			},
		},
	}}
	engine := search.NewEngine(catalog.Flatten(tree), search.DefaultConfig())
	return NewServer(engine, config.DefaultConfig())
}

func doGET(t *testing.T, srv *Server, target string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	srv.Router().ServeHTTP(w, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestHealthz(t *testing.T) {
	w, body := doGET(t, testServer(), "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestSearchEndpoint(t *testing.T) {
	w, body := doGET(t, testServer(), "/api/search?q=mugs")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "mugs", body["query"])
	assert.Equal(t, "category", body["intent"])

	items, ok := body["items"].([]any)
	require.True(t, ok)
	assert.Equal(t, float64(len(items)), body["count"])

	first, ok := items[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "header", first["kind"])
}

func TestSearchEndpointBlankQuery(t *testing.T) {
	w, body := doGET(t, testServer(), "/api/search?q=")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "broad", body["intent"])
	assert.Equal(t, float64(0), body["count"])
}

func TestSearchEndpointLimit(t *testing.T) {
	_, full := doGET(t, testServer(), "/api/search?q=mugs")
	_, limited := doGET(t, testServer(), "/api/search?q=mugs&n=1")
	assert.Less(t, limited["count"], full["count"])
}

func TestSearchEndpointBadLimit(t *testing.T) {
	w, _ := doGET(t, testServer(), "/api/search?q=mugs&n=zero")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchEndpointQueryTooLong(t *testing.T) {
	long := strings.Repeat("a", 500)
	w, _ := doGET(t, testServer(), "/api/search?q="+long)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCompleteEndpoint(t *testing.T) {
	w, body := doGET(t, testServer(), "/api/complete?p=mu")
	require.Equal(t, http.StatusOK, w.Code)

	names, ok := body["names"].([]any)
	require.True(t, ok)
	assert.Contains(t, names, "Mugs")
}

func TestCompleteEndpointMissingPrefix(t *testing.T) {
	w, _ := doGET(t, testServer(), "/api/complete")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
