package chi

import (
	"context"
	"net/http/httptest"
	"testing"

	chirouter "github.com/go-chi/chi/v5"

	"github.com/storelens/storelens/internal/domain"
	"github.com/storelens/storelens/internal/transport/shopify"
	healthuc "github.com/storelens/storelens/internal/usecase/health"
)

type mockResolver struct {
	result domain.QueryResult
	err    error
	query  string
}

func (m *mockResolver) Resolve(_ context.Context, query string) (domain.QueryResult, error) {
	m.query = query
	return m.result, m.err
}

type mockBrowser struct {
	products     []domain.Product
	orders       []shopify.Order
	customers    []shopify.Customer
	productsErr  error
	ordersErr    error
	customersErr error
}

func (m *mockBrowser) ListProducts(_ context.Context) ([]domain.Product, error) {
	return m.products, m.productsErr
}

func (m *mockBrowser) ListOrders(_ context.Context) ([]shopify.Order, error) {
	return m.orders, m.ordersErr
}

func (m *mockBrowser) ListCustomers(_ context.Context) ([]shopify.Customer, error) {
	return m.customers, m.customersErr
}

type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(_ context.Context) healthuc.Report {
	return m.report
}

type fixture struct {
	resolver *mockResolver
	browser  *mockBrowser
	health   *mockHealth
	ts       *httptest.Server
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		resolver: &mockResolver{},
		browser:  &mockBrowser{},
		health: &mockHealth{report: healthuc.Report{
			Status: healthuc.Healthy,
			Checks: map[string]healthuc.CheckResult{"database": healthuc.CheckOK},
		}},
	}

	server := NewServer(f.resolver, f.browser, f.health)
	r := chirouter.NewRouter()
	server.Routes(r)

	f.ts = httptest.NewServer(r)
	t.Cleanup(f.ts.Close)
	return f
}
