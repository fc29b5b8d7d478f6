package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianoliveira/adnow/internal/catalog"
	"github.com/cristianoliveira/adnow/internal/domain"
	"github.com/cristianoliveira/adnow/internal/metrics"
)

type failingSource struct{}

func (failingSource) Fetch(context.Context) ([]byte, error) {
	return nil, errors.New("connection refused")
}

func (failingSource) String() string { return "failing" }

func newTestServer(t *testing.T, source catalog.Source) *httptest.Server {
	t.Helper()

	svc := NewService(catalog.NewStore(source))
	srv := httptest.NewServer(svc.Router())
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, dst interface{}) int {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if dst != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
	}
	return resp.StatusCode
}

type sellersResponse struct {
	Sellers []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"sellers"`
	Total   int    `json:"total"`
	Count   int    `json:"count"`
	Empty   bool   `json:"empty"`
	Message string `json:"message"`
	SortKey string `json:"sortKey"`
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, catalog.EmbeddedSource())

	var body map[string]interface{}
	code := getJSON(t, srv.URL+"/health", &body)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, false, body["catalogLoaded"])
}

func TestSellersFilterAndSort(t *testing.T) {
	srv := newTestServer(t, catalog.EmbeddedSource())

	var body sellersResponse
	code := getJSON(t, srv.URL+"/api/sellers?category=Fashion&sort=rating", &body)

	require.Equal(t, http.StatusOK, code)
	ids := make([]int, 0, len(body.Sellers))
	for _, s := range body.Sellers {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []int{1, 5, 12}, ids)
	assert.Equal(t, 12, body.Total)
	assert.Equal(t, 3, body.Count)
	assert.Equal(t, "rating", body.SortKey)
	assert.False(t, body.Empty)
}

func TestSellersSearchIsCaseInsensitive(t *testing.T) {
	srv := newTestServer(t, catalog.EmbeddedSource())

	var body sellersResponse
	code := getJSON(t, srv.URL+"/api/sellers?q=KENTE", &body)

	require.Equal(t, http.StatusOK, code)
	require.Len(t, body.Sellers, 2)
	assert.Equal(t, "Ewe Weavers", body.Sellers[0].Name)
	assert.Equal(t, "Kente Boutique", body.Sellers[1].Name)
}

func TestSellersNoResults(t *testing.T) {
	srv := newTestServer(t, catalog.EmbeddedSource())

	var body sellersResponse
	code := getJSON(t, srv.URL+"/api/sellers?q=zzzz", &body)

	require.Equal(t, http.StatusOK, code)
	assert.True(t, body.Empty)
	assert.Equal(t, 0, body.Count)
	assert.Equal(t, "No sellers found", body.Message)
}

func TestSellersRejectsBadQuery(t *testing.T) {
	srv := newTestServer(t, catalog.EmbeddedSource())

	tests := []struct {
		name  string
		query string
	}{
		{"unknown sort", "?sort=price"},
		{"unknown category", "?category=Toys"},
		{"overlong term", "?q=" + strings.Repeat("a", 201)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body map[string]string
			code := getJSON(t, srv.URL+"/api/sellers"+tt.query, &body)
			assert.Equal(t, http.StatusBadRequest, code)
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestSellerByID(t *testing.T) {
	srv := newTestServer(t, catalog.EmbeddedSource())

	var seller struct {
		Name     string `json:"name"`
		Stars    string `json:"stars"`
		Contacts []struct {
			Kind string `json:"kind"`
			URL  string `json:"url"`
		} `json:"contacts"`
	}
	code := getJSON(t, srv.URL+"/api/sellers/1", &seller)

	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Kente Boutique", seller.Name)
	assert.Equal(t, "⭐⭐⭐⭐✨", seller.Stars)
	assert.NotEmpty(t, seller.Contacts)

	assert.Equal(t, http.StatusNotFound, getJSON(t, srv.URL+"/api/sellers/999", nil))
	assert.Equal(t, http.StatusNotFound, getJSON(t, srv.URL+"/api/sellers/abc", nil))
}

func TestCategoriesAndFeatured(t *testing.T) {
	srv := newTestServer(t, catalog.EmbeddedSource())

	var categories []struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/categories", &categories))
	require.Len(t, categories, 6)
	assert.Equal(t, "Fashion", categories[0].Name)
	assert.Equal(t, 3, categories[0].Count)

	var featured []struct {
		ID       int  `json:"id"`
		Featured bool `json:"featured"`
	}
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/featured", &featured))
	assert.Len(t, featured, 4)
	for _, s := range featured {
		assert.True(t, s.Featured)
	}
}

func TestCatalogUnavailable(t *testing.T) {
	srv := newTestServer(t, failingSource{})

	var body map[string]string
	code := getJSON(t, srv.URL+"/api/sellers", &body)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Contains(t, body["error"], "catalog unavailable")

	resp, err := http.Post(srv.URL+"/api/reload", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestReload(t *testing.T) {
	srv := newTestServer(t, catalog.EmbeddedSource())

	resp, err := http.Post(srv.URL+"/api/reload", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]int
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 12, body["sellers"])
	assert.Equal(t, 6, body["categories"])
}

func TestRequestsAreCounted(t *testing.T) {
	srv := newTestServer(t, catalog.EmbeddedSource())
	counter := metrics.HTTPRequests.WithLabelValues("/api/sellers/{id:[0-9]+}", "404")
	before := testutil.ToFloat64(counter)

	getJSON(t, srv.URL+"/api/sellers/404", nil)

	assert.Equal(t, before+1, testutil.ToFloat64(counter))

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestDefaultSortOption(t *testing.T) {
	svc := NewService(catalog.NewStore(catalog.EmbeddedSource()), WithDefaultSort(domain.SortByNewest))
	srv := httptest.NewServer(svc.Router())
	defer srv.Close()

	var body sellersResponse
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/sellers", &body))
	assert.Equal(t, "newest", body.SortKey)
	assert.Equal(t, 9, body.Sellers[0].ID)
}
