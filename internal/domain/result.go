package domain

// Kind discriminates QueryResult variants.
type Kind string

const (
	// KindEmpty is the empty-query success signal.
	KindEmpty Kind = "empty"
	// KindExactMatches carries title-equality matches on out-of-stock products.
	KindExactMatches Kind = "exact_matches"
	// KindInsight carries a model answer with High or Moderate confidence.
	KindInsight Kind = "insight"
	// KindFallback carries a rule-based answer composed from the raw catalog.
	KindFallback Kind = "fallback"
)

// ExactMatch is one product whose title equals the query (case-insensitive)
// with zero inventory.
type ExactMatch struct {
	Title             string  `json:"title"`
	Availability      string  `json:"availability"`
	InventoryQuantity int     `json:"inventory_quantity"`
	Price             float64 `json:"price"`
}

// Insight is the QA model's answer with its bucketed confidence.
type Insight struct {
	Answer     string     `json:"answer"`
	Score      float64    `json:"score"`
	Confidence Confidence `json:"confidence"`
}

// Fallback is a heuristic answer. RelatedProducts is heterogeneous:
// plain strings, a labeled low-confidence model answer, and for the
// "best" intent a nested list of candidate descriptions.
type Fallback struct {
	Message         string `json:"message"`
	RelatedProducts []any  `json:"related_products"`
}

// QueryResult is the single top-level answer shape for one query.
// Exactly one variant is populated, indicated by Kind.
type QueryResult struct {
	Kind     Kind
	Matches  []ExactMatch
	Insight  *Insight
	Fallback *Fallback
}

// EmptyResult signals an empty query resolved without side effects.
func EmptyResult() QueryResult {
	return QueryResult{Kind: KindEmpty}
}

// ExactResult wraps exact title matches.
func ExactResult(matches []ExactMatch) QueryResult {
	return QueryResult{Kind: KindExactMatches, Matches: matches}
}

// InsightResult wraps a confident model answer.
func InsightResult(in Insight) QueryResult {
	return QueryResult{Kind: KindInsight, Insight: &in}
}

// FallbackResult wraps a heuristic answer.
func FallbackResult(f Fallback) QueryResult {
	return QueryResult{Kind: KindFallback, Fallback: &f}
}
