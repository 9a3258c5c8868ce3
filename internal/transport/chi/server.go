// Package chi exposes the HTTP API: the insights endpoint, raw storefront
// listings, health, and metrics.
package chi

import (
	"context"
	"encoding/json"
	"net/http"

	chirouter "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/storelens/storelens/internal/domain"
	logpkg "github.com/storelens/storelens/internal/logger"
	"github.com/storelens/storelens/internal/transport/shopify"
	healthuc "github.com/storelens/storelens/internal/usecase/health"
)

// InsightResolver runs the query resolution pipeline.
type InsightResolver interface {
	Resolve(ctx context.Context, query string) (domain.QueryResult, error)
}

// StoreBrowser exposes raw storefront listings.
type StoreBrowser interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	ListOrders(ctx context.Context) ([]shopify.Order, error)
	ListCustomers(ctx context.Context) ([]shopify.Customer, error)
}

// HealthChecker aggregates component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// Server implements the HTTP handlers. Handlers log through the
// request-scoped logger stored in the request context by the wide
// event middleware.
type Server struct {
	insights InsightResolver
	store    StoreBrowser
	health   HealthChecker
}

// NewServer creates an HTTP API server.
func NewServer(insights InsightResolver, store StoreBrowser, health HealthChecker) *Server {
	return &Server{insights: insights, store: store, health: health}
}

// Routes registers all handlers on the router.
func (s *Server) Routes(r chirouter.Router) {
	r.Get("/insights", s.GetInsights)
	r.Get("/shopify/products", s.GetProducts)
	r.Get("/shopify/orders", s.GetOrders)
	r.Get("/shopify/customers", s.GetCustomers)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// GetInsights handles GET /insights?query=.
func (s *Server) GetInsights(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")

	result, err := s.insights.Resolve(r.Context(), query)
	if err != nil {
		logpkg.FromContext(r.Context()).Warn("query resolution failed",
			zap.String("query", query), zap.Error(err))
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	switch result.Kind {
	case domain.KindEmpty:
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	case domain.KindExactMatches:
		writeJSON(w, http.StatusOK, map[string]any{
			"message": "Exact matches found.",
			"matches": result.Matches,
		})
	case domain.KindInsight:
		writeJSON(w, http.StatusOK, map[string]any{"insights": result.Insight})
	case domain.KindFallback:
		writeJSON(w, http.StatusOK, result.Fallback)
	default:
		logpkg.FromContext(r.Context()).Error("unknown result kind",
			zap.String("kind", string(result.Kind)))
		writeError(w, http.StatusBadRequest, "unknown result kind")
	}
}

// productJSON mirrors the storefront product listing shape.
type productJSON struct {
	ID                string  `json:"id"`
	Title             string  `json:"title"`
	InventoryQuantity int     `json:"inventory_quantity"`
	Price             float64 `json:"price"`
}

// GetProducts handles GET /shopify/products.
func (s *Server) GetProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.store.ListProducts(r.Context())
	if err != nil {
		logpkg.FromContext(r.Context()).Error("list products failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	items := make([]productJSON, len(products))
	for i, p := range products {
		items[i] = productJSON{
			ID:                p.ID,
			Title:             p.Title,
			InventoryQuantity: p.InventoryQuantity,
			Price:             p.Price,
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": items})
}

// GetOrders handles GET /shopify/orders.
func (s *Server) GetOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := s.store.ListOrders(r.Context())
	if err != nil {
		logpkg.FromContext(r.Context()).Error("list orders failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"orders": orders})
}

// GetCustomers handles GET /shopify/customers.
func (s *Server) GetCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := s.store.ListCustomers(r.Context())
	if err != nil {
		logpkg.FromContext(r.Context()).Error("list customers failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"customers": customers})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
