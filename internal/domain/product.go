package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Product is a catalog item as returned by the storefront.
// Not persisted by the core: fetched fresh per request.
type Product struct {
	ID                string
	Title             string
	Price             float64
	InventoryQuantity int
}

// Availability returns the stock label used across responses.
func (p Product) Availability() string {
	if p.InventoryQuantity > 0 {
		return "in stock"
	}
	return "out of stock"
}

// EmbeddingText renders the description fed to the vectorizer.
func (p Product) EmbeddingText() string {
	return fmt.Sprintf("%s priced at %s with inventory %d",
		p.Title, FormatPrice(p.Price), p.InventoryQuantity)
}

// MetadataText renders the description stored as search metadata
// and later concatenated into the QA context.
func (p Product) MetadataText() string {
	return fmt.Sprintf("%s with inventory quantity %d", p.Title, p.InventoryQuantity)
}

// QueryEmbeddingText renders a query as a pseudo-product description so it
// shares the embedding space with catalog products.
func QueryEmbeddingText(query string) string {
	return fmt.Sprintf("%s priced at 0.00 with inventory 0", query)
}

// FormatPrice renders a price in its shortest decimal form. Whole
// values keep a trailing .0 so message texts read "priced at 30.0",
// not "priced at 30".
func FormatPrice(price float64) string {
	s := strconv.FormatFloat(price, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
