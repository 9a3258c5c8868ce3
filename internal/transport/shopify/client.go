// Package shopify implements the catalog source on top of the
// Shopify Admin REST API.
package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/storelens/storelens/internal/domain"
)

// Client fetches catalog data from a Shopify store.
type Client struct {
	baseURL    string
	apiKey     string
	password   string
	apiVersion string
	http       *http.Client
	logger     *zap.Logger
}

// Config holds the Shopify Admin API settings.
type Config struct {
	// StoreName is the shop subdomain, e.g. "acme" for acme.myshopify.com.
	StoreName  string
	APIKey     string
	Password   string
	APIVersion string
	// BaseURL overrides the store URL when set. Used in tests.
	BaseURL string
	Logger  *zap.Logger
}

// NewClient creates a Shopify Admin REST client.
func NewClient(cfg *Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.myshopify.com", cfg.StoreName)
	}

	return &Client{
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		password:   cfg.Password,
		apiVersion: cfg.APIVersion,
		http:       &http.Client{Timeout: 30 * time.Second},
		logger:     cfg.Logger,
	}
}

type productsResponse struct {
	Products []struct {
		ID       int64  `json:"id"`
		Title    string `json:"title"`
		Variants []struct {
			Price             string `json:"price"`
			InventoryQuantity int    `json:"inventory_quantity"`
		} `json:"variants"`
	} `json:"products"`
}

// ListProducts fetches the store catalog. Each product is reduced to its
// first variant's price and inventory quantity.
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var resp productsResponse
	if err := c.get(ctx, "products.json", &resp); err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(resp.Products))
	for _, p := range resp.Products {
		title := p.Title
		if title == "" {
			title = "Unknown product"
		}

		var price float64
		var quantity int
		if len(p.Variants) > 0 {
			price, _ = strconv.ParseFloat(p.Variants[0].Price, 64)
			quantity = p.Variants[0].InventoryQuantity
		}

		products = append(products, domain.Product{
			ID:                strconv.FormatInt(p.ID, 10),
			Title:             title,
			Price:             price,
			InventoryQuantity: quantity,
		})
	}
	return products, nil
}

// Order is a store order reduced to the fields the API exposes.
type Order struct {
	ID            int64      `json:"id"`
	TotalPrice    string     `json:"total_price"`
	CustomerEmail string     `json:"customer_email"`
	LineItems     []LineItem `json:"line_items"`
}

// LineItem is a single product entry within an order.
type LineItem struct {
	ProductTitle string `json:"product_title"`
	Quantity     int    `json:"quantity"`
	Price        string `json:"price"`
}

type ordersResponse struct {
	Orders []struct {
		ID         int64  `json:"id"`
		TotalPrice string `json:"total_price"`
		Email      string `json:"email"`
		LineItems  []struct {
			Title    string `json:"title"`
			Quantity int    `json:"quantity"`
			Price    string `json:"price"`
		} `json:"line_items"`
	} `json:"orders"`
}

// ListOrders fetches recent store orders.
func (c *Client) ListOrders(ctx context.Context) ([]Order, error) {
	var resp ordersResponse
	if err := c.get(ctx, "orders.json", &resp); err != nil {
		return nil, err
	}

	orders := make([]Order, 0, len(resp.Orders))
	for _, o := range resp.Orders {
		items := make([]LineItem, 0, len(o.LineItems))
		for _, item := range o.LineItems {
			items = append(items, LineItem{
				ProductTitle: item.Title,
				Quantity:     item.Quantity,
				Price:        item.Price,
			})
		}
		orders = append(orders, Order{
			ID:            o.ID,
			TotalPrice:    o.TotalPrice,
			CustomerEmail: o.Email,
			LineItems:     items,
		})
	}
	return orders, nil
}

// Customer is a store customer reduced to the fields the API exposes.
// Absent string fields are reported as "N/A".
type Customer struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	OrdersCount int    `json:"orders_count"`
}

type customersResponse struct {
	Customers []struct {
		ID          int64  `json:"id"`
		Email       string `json:"email"`
		FirstName   string `json:"first_name"`
		LastName    string `json:"last_name"`
		OrdersCount int    `json:"orders_count"`
	} `json:"customers"`
}

// ListCustomers fetches store customers.
func (c *Client) ListCustomers(ctx context.Context) ([]Customer, error) {
	var resp customersResponse
	if err := c.get(ctx, "customers.json", &resp); err != nil {
		return nil, err
	}

	customers := make([]Customer, 0, len(resp.Customers))
	for _, cust := range resp.Customers {
		customers = append(customers, Customer{
			ID:          cust.ID,
			Email:       orNA(cust.Email),
			FirstName:   orNA(cust.FirstName),
			LastName:    orNA(cust.LastName),
			OrdersCount: cust.OrdersCount,
		})
	}
	return customers, nil
}

// HealthCheck verifies the store API is reachable.
func (c *Client) HealthCheck(ctx context.Context) error {
	var resp productsResponse
	return c.get(ctx, "products.json", &resp)
}

// get performs an authenticated Admin API request and decodes the JSON body.
// All failures are wrapped with domain.ErrCatalogUnavailable.
func (c *Client) get(ctx context.Context, resource string, out any) error {
	url := fmt.Sprintf("%s/admin/api/%s/%s", c.baseURL, c.apiVersion, resource)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.SetBasicAuth(c.apiKey, c.password)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("shopify request failed: %w", domain.ErrCatalogUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("shopify API status %d: %s: %w",
			resp.StatusCode, string(body), domain.ErrCatalogUnavailable)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode shopify response: %w", domain.ErrCatalogUnavailable)
	}
	return nil
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
