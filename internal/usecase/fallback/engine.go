// Package fallback builds related-product suggestions for queries the
// answer model could not resolve with enough confidence.
package fallback

import (
	"fmt"
	"strings"

	"github.com/storelens/storelens/internal/domain"
)

const fallbackMessage = "We couldn't find an exact match, but here are some related products:"

const lowStockThreshold = 5

// labeledAnswer carries a low-confidence model answer inside the
// related products list.
type labeledAnswer struct {
	Message string `json:"message"`
	Answer  string `json:"answer"`
}

// input bundles everything a rule can draw on.
type input struct {
	query   string // lowercased
	raw     string
	catalog []domain.Product
	matches []domain.VectorMatch
}

// rule is a single query heuristic. Rules are evaluated in order and the
// first whose match predicate fires contributes the suggestions.
type rule struct {
	match func(q string) bool
	build func(in input) []any
}

// Engine composes fallback responses from an ordered rule table.
type Engine struct {
	rules []rule
}

// NewEngine creates the engine with the default rule ordering.
func NewEngine() *Engine {
	return &Engine{rules: []rule{
		{
			match: func(q string) bool { return strings.Contains(q, "out of stock") },
			build: matchesByInventory(func(qty int) bool { return qty == 0 }),
		},
		{
			match: func(q string) bool { return strings.Contains(q, "low stock") },
			build: matchesByInventory(func(qty int) bool { return qty < lowStockThreshold }),
		},
		{
			match: func(q string) bool { return strings.Contains(q, "in stock") },
			build: matchesByInventory(func(qty int) bool { return qty > 0 }),
		},
		{
			match: func(q string) bool {
				return strings.Contains(q, "available") && !strings.Contains(q, "how many")
			},
			build: buildAvailability,
		},
		{
			match: func(q string) bool {
				return strings.Contains(q, "how many") && strings.Contains(q, "available")
			},
			build: buildUnitCount,
		},
		{
			match: func(q string) bool { return strings.Contains(q, "most expensive") },
			build: buildMostExpensive,
		},
		{
			match: func(q string) bool { return strings.Contains(q, "cheapest") },
			build: buildCheapest,
		},
		{
			match: func(q string) bool { return strings.Contains(q, "best") },
			build: buildBest,
		},
		{
			match: func(q string) bool { return strings.Contains(q, "price") },
			build: buildPriceLookup,
		},
		{
			match: func(q string) bool { return strings.Contains(q, "compare") },
			build: buildComparison,
		},
	}}
}

// Compose builds the fallback payload for a low-confidence answer. The model
// answer, when non-empty with a positive score, is included ahead of any
// rule suggestions.
func (e *Engine) Compose(query string, catalog []domain.Product, matches []domain.VectorMatch, answer string, score float64) *domain.Fallback {
	related := []any{}

	if answer != "" && score > 0 {
		related = append(related, labeledAnswer{
			Message: "AI answer with low confidence level",
			Answer:  answer,
		})
	}

	in := input{
		query:   strings.ToLower(query),
		raw:     query,
		catalog: catalog,
		matches: matches,
	}
	for _, r := range e.rules {
		if r.match(in.query) {
			related = append(related, r.build(in)...)
			break
		}
	}

	return &domain.Fallback{
		Message:         fallbackMessage,
		RelatedProducts: related,
	}
}

// matchesByInventory suggests the metadata text of KNN matches whose
// inventory satisfies the predicate.
func matchesByInventory(keep func(qty int) bool) func(in input) []any {
	return func(in input) []any {
		var out []any
		for _, m := range in.matches {
			if keep(m.InventoryQuantity) {
				out = append(out, m.Text)
			}
		}
		return out
	}
}

// buildAvailability answers "is X available" style queries. The product name
// is the query text preceding "available"; when nothing in the catalog
// contains it, the remaining query words are retried as candidate names.
func buildAvailability(in input) []any {
	name := strings.TrimSpace(textBefore(in.query, "available"))

	var out []any
	for _, p := range in.catalog {
		if strings.Contains(strings.ToLower(p.Title), name) {
			out = append(out, fmt.Sprintf("%s is %s with %d units available.",
				p.Title, p.Availability(), p.InventoryQuantity))
		}
	}
	if len(out) > 0 {
		return out
	}

	names := tokensWithout(in.raw, "available", "is", "the", "in", "stock")
	if len(names) == 0 {
		return []any{"No specific product mentioned in the query."}
	}

	for _, p := range in.catalog {
		title := strings.ToLower(p.Title)
		for _, n := range names {
			if strings.Contains(title, strings.ToLower(n)) {
				out = append(out, fmt.Sprintf("%s is %s with inventory quantity %d.",
					p.Title, p.Availability(), p.InventoryQuantity))
				break
			}
		}
	}
	if len(out) == 0 {
		return []any{"No products found matching your query."}
	}
	return out
}

// buildUnitCount answers "how many X are available" queries. The product
// name is the query text following "how many".
func buildUnitCount(in input) []any {
	name := strings.TrimSpace(textAfter(in.query, "how many"))

	var out []any
	for _, p := range in.catalog {
		if strings.Contains(strings.ToLower(p.Title), name) {
			out = append(out, fmt.Sprintf("There are %d units of %s available.",
				p.InventoryQuantity, p.Title))
		}
	}
	if len(out) == 0 {
		return []any{"No products found matching your query."}
	}
	return out
}

func buildMostExpensive(in input) []any {
	if p, ok := maxBy(in.catalog, func(a, b domain.Product) bool { return a.Price > b.Price }); ok {
		return []any{fmt.Sprintf("%s priced at %s", p.Title, domain.FormatPrice(p.Price))}
	}
	return nil
}

func buildCheapest(in input) []any {
	if p, ok := maxBy(in.catalog, func(a, b domain.Product) bool { return a.Price < b.Price }); ok {
		return []any{fmt.Sprintf("%s priced at %s", p.Title, domain.FormatPrice(p.Price))}
	}
	return nil
}

// buildBest collects candidate "best" products by price, by stock, and by
// having both in positive range. The suggestions are grouped as a single
// nested list element.
func buildBest(in input) []any {
	var best []string

	byPrice, okPrice := maxBy(in.catalog, func(a, b domain.Product) bool { return a.Price > b.Price })
	if okPrice {
		best = append(best, fmt.Sprintf("%s is priced at %s and has %d units in stock.",
			byPrice.Title, domain.FormatPrice(byPrice.Price), byPrice.InventoryQuantity))
	}

	byStock, okStock := maxBy(in.catalog, func(a, b domain.Product) bool {
		return a.InventoryQuantity > b.InventoryQuantity
	})
	if okStock {
		best = append(best, fmt.Sprintf("%s has the highest stock of %d units and is priced at %s.",
			byStock.Title, byStock.InventoryQuantity, domain.FormatPrice(byStock.Price)))
	}

	if okPrice && okStock && byPrice.ID != byStock.ID {
		best = append(best, fmt.Sprintf("For a balance of price and stock: %s is priced at %s and has %d units in stock.",
			byStock.Title, domain.FormatPrice(byStock.Price), byStock.InventoryQuantity))
	}

	for _, p := range in.catalog {
		if p.Price > 0 && p.InventoryQuantity > 0 {
			best = append(best, fmt.Sprintf("%s is priced at %s and has %d units available.",
				p.Title, domain.FormatPrice(p.Price), p.InventoryQuantity))
		}
	}

	if len(best) == 0 {
		best = append(best, "We couldn't find a product that matches the criteria for 'best'.")
	}
	return []any{best}
}

// buildPriceLookup answers "price of X" queries. The product name is the
// query text following "price"; when the catalog has no match, KNN matches
// whose text starts with the query's last word are suggested instead.
func buildPriceLookup(in input) []any {
	name := strings.TrimSpace(textAfter(in.query, "price"))

	var out []any
	for _, p := range in.catalog {
		if strings.Contains(strings.ToLower(p.Title), name) {
			out = append(out, fmt.Sprintf("The price of %s is %s.",
				p.Title, domain.FormatPrice(p.Price)))
		}
	}
	if len(out) > 0 {
		return out
	}

	words := strings.Fields(in.query)
	if len(words) == 0 {
		return nil
	}
	last := words[len(words)-1]
	for _, m := range in.matches {
		if strings.HasPrefix(strings.ToLower(m.Text), last) {
			out = append(out, fmt.Sprintf("%s priced at %s", m.Text, domain.FormatPrice(m.Price)))
		}
	}
	return out
}

// buildComparison compares exactly two products named verbatim in the query.
func buildComparison(in input) []any {
	names := tokensWithout(in.raw, "compare", "the", "and", "which")

	var picked []domain.Product
	for _, p := range in.catalog {
		for _, n := range names {
			if p.Title == n {
				picked = append(picked, p)
				break
			}
		}
	}
	if len(picked) != 2 {
		return nil
	}

	return []any{fmt.Sprintf("%s has %d in stock, priced at %s. %s has %d in stock, priced at %s.",
		picked[0].Title, picked[0].InventoryQuantity, domain.FormatPrice(picked[0].Price),
		picked[1].Title, picked[1].InventoryQuantity, domain.FormatPrice(picked[1].Price))}
}

// textBefore returns the part of s preceding the first occurrence of sep.
func textBefore(s, sep string) string {
	if idx := strings.Index(s, sep); idx >= 0 {
		return s[:idx]
	}
	return s
}

// textAfter returns the part of s following the first occurrence of sep.
func textAfter(s, sep string) string {
	if idx := strings.Index(s, sep); idx >= 0 {
		return s[idx+len(sep):]
	}
	return ""
}

// tokensWithout splits s into words dropping the given stop words
// case-insensitively. Remaining words keep their original case.
func tokensWithout(s string, stop ...string) []string {
	var out []string
	for _, w := range strings.Fields(s) {
		skip := false
		for _, sw := range stop {
			if strings.EqualFold(w, sw) {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, w)
		}
	}
	return out
}

// maxBy returns the element that wins every pairwise comparison.
func maxBy(products []domain.Product, better func(a, b domain.Product) bool) (domain.Product, bool) {
	if len(products) == 0 {
		return domain.Product{}, false
	}
	best := products[0]
	for _, p := range products[1:] {
		if better(p, best) {
			best = p
		}
	}
	return best, true
}
