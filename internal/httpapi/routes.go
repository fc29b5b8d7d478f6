// Package httpapi exposes the catalog read side over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cristianoliveira/adnow/internal/browser"
	"github.com/cristianoliveira/adnow/internal/catalog"
	"github.com/cristianoliveira/adnow/internal/colors"
	"github.com/cristianoliveira/adnow/internal/detail"
	"github.com/cristianoliveira/adnow/internal/domain"
	"github.com/cristianoliveira/adnow/internal/metrics"
)

var validate = validator.New()

// sellersQuery holds the query string of GET /api/sellers.
type sellersQuery struct {
	Q        string `validate:"max=200"`
	Category string `validate:"max=100"`
	Sort     string `validate:"omitempty,oneof=name rating newest"`
}

// CatalogStore is the catalog store the API reads from.
type CatalogStore interface {
	Load(ctx context.Context) (*domain.Catalog, error)
	Catalog() (*domain.Catalog, bool)
}

// Service serves the catalog API.
type Service struct {
	store       CatalogStore
	defaultSort domain.SortKey
}

// Option configures a Service.
type Option func(*Service)

// WithDefaultSort sets the ordering used when a request names none.
func WithDefaultSort(k domain.SortKey) Option {
	return func(s *Service) {
		if k.IsValid() {
			s.defaultSort = k
		}
	}
}

// NewService creates the API service.
func NewService(store CatalogStore, opts ...Option) *Service {
	s := &Service{store: store, defaultSort: domain.SortByName}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterRoutes wires the API routes.
func (s *Service) RegisterRoutes(r *mux.Router) {
	r.Use(instrument)
	r.HandleFunc("/health", s.healthHandler).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/sellers", s.sellersHandler).Methods(http.MethodGet)
	api.HandleFunc("/sellers/{id:[0-9]+}", s.sellerHandler).Methods(http.MethodGet)
	api.HandleFunc("/categories", s.categoriesHandler).Methods(http.MethodGet)
	api.HandleFunc("/featured", s.featuredHandler).Methods(http.MethodGet)
	api.HandleFunc("/reload", s.reloadHandler).Methods(http.MethodPost)
}

// Router returns a new router with the API routes registered.
func (s *Service) Router() *mux.Router {
	r := mux.NewRouter()
	s.RegisterRoutes(r)
	return r
}

func (s *Service) healthHandler(w http.ResponseWriter, r *http.Request) {
	_, loaded := s.store.Catalog()
	writeJSON(w, http.StatusOK, map[string]interface{}{"status": "ok", "catalogLoaded": loaded})
}

func (s *Service) sellersHandler(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	query := sellersQuery{
		Q:        values.Get("q"),
		Category: values.Get("category"),
		Sort:     values.Get("sort"),
	}
	if err := validate.Struct(query); err != nil {
		writeError(w, http.StatusBadRequest, "invalid query: "+err.Error())
		return
	}

	c, ok := s.catalog(w, r)
	if !ok {
		return
	}

	key := s.defaultSort
	if query.Sort != "" {
		parsed, err := domain.ParseSortKey(query.Sort)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		key = parsed
	}
	if query.Category != "" && !c.HasCategory(query.Category) {
		writeError(w, http.StatusBadRequest, "unknown category: "+query.Category)
		return
	}

	p, err := browser.Project(c, domain.NewCriteria(query.Q, query.Category), key, detail.Closed)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	metrics.FilterPasses.WithLabelValues("http").Inc()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"sellers":  p.Sellers,
		"total":    p.Total,
		"count":    len(p.Sellers),
		"empty":    p.Empty,
		"message":  emptyMessage(p),
		"criteria": p.Criteria,
		"sortKey":  p.SortKey,
	})
}

func (s *Service) sellerHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid seller id")
		return
	}
	c, ok := s.catalog(w, r)
	if !ok {
		return
	}
	seller, found := c.Seller(id)
	if !found {
		writeError(w, http.StatusNotFound, "seller not found")
		return
	}
	writeJSON(w, http.StatusOK, browser.NewSellerView(seller))
}

func (s *Service) categoriesHandler(w http.ResponseWriter, r *http.Request) {
	c, ok := s.catalog(w, r)
	if !ok {
		return
	}
	categories := c.Categories()
	out := make([]browser.CategoryView, 0, len(categories))
	for _, cat := range categories {
		out = append(out, browser.CategoryView{Name: cat.Name, Icon: cat.Icon, Count: cat.Count})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Service) featuredHandler(w http.ResponseWriter, r *http.Request) {
	c, ok := s.catalog(w, r)
	if !ok {
		return
	}
	featured := c.Featured()
	out := make([]browser.SellerView, 0, len(featured))
	for _, seller := range featured {
		out = append(out, browser.NewSellerView(seller))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Service) reloadHandler(w http.ResponseWriter, r *http.Request) {
	c, err := s.store.Load(r.Context())
	if err != nil {
		colors.StructuredWarn("httpapi", "reload", "failed", err, "", nil)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"sellers": c.Len(), "categories": len(c.Categories())})
}

// catalog returns the loaded snapshot, loading it on first use.
func (s *Service) catalog(w http.ResponseWriter, r *http.Request) (*domain.Catalog, bool) {
	if c, ok := s.store.Catalog(); ok {
		return c, true
	}
	c, err := s.store.Load(r.Context())
	if err != nil {
		var loadErr *catalog.LoadError
		if errors.As(err, &loadErr) {
			colors.StructuredError("httpapi", "load", "failed", err, "", map[string]interface{}{"op": loadErr.Op})
		}
		writeError(w, http.StatusServiceUnavailable, "catalog unavailable: "+err.Error())
		return nil, false
	}
	return c, true
}

func emptyMessage(p browser.Projection) string {
	if p.Empty {
		return browser.NoResultsMessage
	}
	return ""
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		colors.StructuredDebug("httpapi", "encode", "failed", err, "", nil)
	}
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
