package fallback

import (
	"testing"

	"github.com/storelens/storelens/internal/domain"
)

func testCatalog() []domain.Product {
	return []domain.Product{
		{ID: "1", Title: "Blue Mug", Price: 12.5, InventoryQuantity: 3},
		{ID: "2", Title: "Red Lamp", Price: 40, InventoryQuantity: 7},
		{ID: "3", Title: "Desk Mat", Price: 5, InventoryQuantity: 0},
	}
}

func testMatches() []domain.VectorMatch {
	return []domain.VectorMatch{
		{ID: "1", Text: "Blue Mug with inventory quantity 3", InventoryQuantity: 3, Price: 12.5},
		{ID: "2", Text: "Red Lamp with inventory quantity 7", InventoryQuantity: 7, Price: 40},
		{ID: "3", Text: "Desk Mat with inventory quantity 0", InventoryQuantity: 0, Price: 5},
	}
}

func compose(t *testing.T, query string) *domain.Fallback {
	t.Helper()
	return NewEngine().Compose(query, testCatalog(), testMatches(), "", 0)
}

func TestCompose_Message(t *testing.T) {
	fb := compose(t, "anything")
	if fb.Message != "We couldn't find an exact match, but here are some related products:" {
		t.Errorf("unexpected message: %q", fb.Message)
	}
}

func TestCompose_IncludesLowConfidenceAnswer(t *testing.T) {
	fb := NewEngine().Compose("what sells well", testCatalog(), testMatches(), "Red Lamp", 0.2)

	if len(fb.RelatedProducts) == 0 {
		t.Fatal("expected related products")
	}
	first, ok := fb.RelatedProducts[0].(labeledAnswer)
	if !ok {
		t.Fatalf("expected labeled answer first, got %T", fb.RelatedProducts[0])
	}
	if first.Message != "AI answer with low confidence level" || first.Answer != "Red Lamp" {
		t.Errorf("unexpected labeled answer: %+v", first)
	}
}

func TestCompose_SkipsAnswerWithZeroScore(t *testing.T) {
	fb := NewEngine().Compose("most expensive item", testCatalog(), testMatches(), "Red Lamp", 0)

	for _, rp := range fb.RelatedProducts {
		if _, ok := rp.(labeledAnswer); ok {
			t.Fatal("zero-score answer should not be included")
		}
	}
}

func TestCompose_OutOfStock(t *testing.T) {
	fb := compose(t, "which products are out of stock")

	if len(fb.RelatedProducts) != 1 {
		t.Fatalf("expected 1 suggestion, got %d: %v", len(fb.RelatedProducts), fb.RelatedProducts)
	}
	if fb.RelatedProducts[0] != "Desk Mat with inventory quantity 0" {
		t.Errorf("unexpected suggestion: %v", fb.RelatedProducts[0])
	}
}

func TestCompose_LowStock(t *testing.T) {
	fb := compose(t, "anything on low stock?")

	// qty < 5: Blue Mug (3) and Desk Mat (0)
	if len(fb.RelatedProducts) != 2 {
		t.Fatalf("expected 2 suggestions, got %v", fb.RelatedProducts)
	}
}

func TestCompose_InStock(t *testing.T) {
	fb := compose(t, "what is in stock")

	if len(fb.RelatedProducts) != 2 {
		t.Fatalf("expected 2 suggestions, got %v", fb.RelatedProducts)
	}
	if fb.RelatedProducts[0] != "Blue Mug with inventory quantity 3" {
		t.Errorf("unexpected first suggestion: %v", fb.RelatedProducts[0])
	}
}

func TestCompose_RulePrecedence(t *testing.T) {
	// "out of stock" wins over "cheapest" because it comes first in the table.
	fb := compose(t, "cheapest item out of stock")

	if len(fb.RelatedProducts) != 1 || fb.RelatedProducts[0] != "Desk Mat with inventory quantity 0" {
		t.Fatalf("expected out-of-stock rule to win, got %v", fb.RelatedProducts)
	}
}

func TestCompose_Available_NamedProduct(t *testing.T) {
	fb := compose(t, "blue mug available")

	if len(fb.RelatedProducts) != 1 {
		t.Fatalf("expected 1 suggestion, got %v", fb.RelatedProducts)
	}
	want := "Blue Mug is in stock with 3 units available."
	if fb.RelatedProducts[0] != want {
		t.Errorf("got %v, want %q", fb.RelatedProducts[0], want)
	}
}

func TestCompose_Available_WordFallback(t *testing.T) {
	// "is lamp" is not a title substring, so the name lookup fails and the
	// per-word retry kicks in with the remaining token "lamp".
	fb := compose(t, "is lamp available")

	want := "Red Lamp is in stock with inventory quantity 7."
	if len(fb.RelatedProducts) != 1 || fb.RelatedProducts[0] != want {
		t.Errorf("expected %q, got %v", want, fb.RelatedProducts)
	}
}

func TestCompose_Available_NoProductNamed(t *testing.T) {
	fb := NewEngine().Compose("available in the stock", nil, nil, "", 0)

	if len(fb.RelatedProducts) != 1 || fb.RelatedProducts[0] != "No specific product mentioned in the query." {
		t.Fatalf("unexpected suggestions: %v", fb.RelatedProducts)
	}
}

func TestCompose_Available_NoMatch(t *testing.T) {
	fb := NewEngine().Compose("available toaster", nil, nil, "", 0)

	if len(fb.RelatedProducts) != 1 || fb.RelatedProducts[0] != "No products found matching your query." {
		t.Fatalf("unexpected suggestions: %v", fb.RelatedProducts)
	}
}

func TestCompose_HowManyAvailable(t *testing.T) {
	fb := compose(t, "available how many red lamp")

	want := "There are 7 units of Red Lamp available."
	if len(fb.RelatedProducts) != 1 || fb.RelatedProducts[0] != want {
		t.Errorf("expected %q, got %v", want, fb.RelatedProducts)
	}
}

func TestCompose_HowManyAvailable_TrailingWordsDefeatLookup(t *testing.T) {
	// The candidate name is everything after "how many", including the
	// trailing "are available", so no title contains it.
	fb := compose(t, "how many red lamp are available")

	if len(fb.RelatedProducts) != 1 || fb.RelatedProducts[0] != "No products found matching your query." {
		t.Fatalf("unexpected suggestions: %v", fb.RelatedProducts)
	}
}

func TestCompose_MostExpensive(t *testing.T) {
	fb := compose(t, "what is the most expensive product")

	if len(fb.RelatedProducts) != 1 || fb.RelatedProducts[0] != "Red Lamp priced at 40.0" {
		t.Fatalf("unexpected suggestions: %v", fb.RelatedProducts)
	}
}

func TestCompose_Cheapest(t *testing.T) {
	fb := compose(t, "show me the cheapest product")

	if len(fb.RelatedProducts) != 1 || fb.RelatedProducts[0] != "Desk Mat priced at 5.0" {
		t.Fatalf("unexpected suggestions: %v", fb.RelatedProducts)
	}
}

func TestCompose_EmptyCatalogPriceExtremes(t *testing.T) {
	fb := NewEngine().Compose("most expensive", nil, nil, "", 0)

	if len(fb.RelatedProducts) != 0 {
		t.Fatalf("expected no suggestions for empty catalog, got %v", fb.RelatedProducts)
	}
}

func TestCompose_Best(t *testing.T) {
	fb := compose(t, "what is the best product")

	if len(fb.RelatedProducts) != 1 {
		t.Fatalf("expected a single nested group, got %v", fb.RelatedProducts)
	}
	group, ok := fb.RelatedProducts[0].([]string)
	if !ok {
		t.Fatalf("expected nested list, got %T", fb.RelatedProducts[0])
	}

	// best by price, best by stock, in-stock priced products (Blue Mug, Red Lamp).
	// Price and stock leaders coincide (Red Lamp), so no balance entry.
	if len(group) != 4 {
		t.Fatalf("expected 4 entries, got %v", group)
	}
	if group[0] != "Red Lamp is priced at 40.0 and has 7 units in stock." {
		t.Errorf("unexpected price leader: %q", group[0])
	}
	if group[1] != "Red Lamp has the highest stock of 7 units and is priced at 40.0." {
		t.Errorf("unexpected stock leader: %q", group[1])
	}
}

func TestCompose_Best_DistinctLeaders(t *testing.T) {
	catalog := []domain.Product{
		{ID: "1", Title: "Gold Pen", Price: 90, InventoryQuantity: 1},
		{ID: "2", Title: "Notebook", Price: 4, InventoryQuantity: 50},
	}
	fb := NewEngine().Compose("best item", catalog, nil, "", 0)

	group := fb.RelatedProducts[0].([]string)
	want := "For a balance of price and stock: Notebook is priced at 4.0 and has 50 units in stock."
	if group[2] != want {
		t.Errorf("got %q, want %q", group[2], want)
	}
}

func TestCompose_Best_EmptyCatalog(t *testing.T) {
	fb := NewEngine().Compose("best product", nil, nil, "", 0)

	group, ok := fb.RelatedProducts[0].([]string)
	if !ok || len(group) != 1 {
		t.Fatalf("unexpected suggestions: %v", fb.RelatedProducts)
	}
	if group[0] != "We couldn't find a product that matches the criteria for 'best'." {
		t.Errorf("unexpected entry: %q", group[0])
	}
}

func TestCompose_Price_NamedProduct(t *testing.T) {
	fb := compose(t, "price of desk mat")

	// "of desk mat" is not a title substring, and no match text starts
	// with the last query word "mat".
	if len(fb.RelatedProducts) != 0 {
		t.Fatalf("expected no suggestions, got %v", fb.RelatedProducts)
	}
}

func TestCompose_Price_TrailingName(t *testing.T) {
	fb := compose(t, "price desk mat")

	if len(fb.RelatedProducts) != 1 {
		t.Fatalf("expected 1 suggestion, got %v", fb.RelatedProducts)
	}
	if fb.RelatedProducts[0] != "The price of Desk Mat is 5.0." {
		t.Errorf("unexpected suggestion: %v", fb.RelatedProducts[0])
	}
}

func TestCompose_Price_MatchTextPrefix(t *testing.T) {
	matches := []domain.VectorMatch{
		{ID: "1", Text: "Mug with inventory quantity 3", Price: 12.5},
	}
	fb := NewEngine().Compose("price for mug", nil, matches, "", 0)

	if len(fb.RelatedProducts) != 1 {
		t.Fatalf("expected 1 suggestion, got %v", fb.RelatedProducts)
	}
	if fb.RelatedProducts[0] != "Mug with inventory quantity 3 priced at 12.5" {
		t.Errorf("unexpected suggestion: %v", fb.RelatedProducts[0])
	}
}

func TestCompose_Compare_TwoProducts(t *testing.T) {
	catalog := []domain.Product{
		{ID: "1", Title: "Mug", Price: 12.5, InventoryQuantity: 3},
		{ID: "2", Title: "Lamp", Price: 40, InventoryQuantity: 7},
	}
	fb := NewEngine().Compose("compare Mug and Lamp", catalog, nil, "", 0)

	if len(fb.RelatedProducts) != 1 {
		t.Fatalf("expected 1 suggestion, got %v", fb.RelatedProducts)
	}
	want := "Mug has 3 in stock, priced at 12.5. Lamp has 7 in stock, priced at 40.0."
	if fb.RelatedProducts[0] != want {
		t.Errorf("got %v, want %q", fb.RelatedProducts[0], want)
	}
}

func TestCompose_Compare_WrongCount(t *testing.T) {
	catalog := []domain.Product{
		{ID: "1", Title: "Mug", Price: 12.5, InventoryQuantity: 3},
	}
	fb := NewEngine().Compose("compare Mug and Lamp", catalog, nil, "", 0)

	if len(fb.RelatedProducts) != 0 {
		t.Fatalf("expected no suggestions for a one-sided comparison, got %v", fb.RelatedProducts)
	}
}

func TestCompose_NoRuleMatches(t *testing.T) {
	fb := compose(t, "tell me something interesting")

	if len(fb.RelatedProducts) != 0 {
		t.Fatalf("expected empty suggestions, got %v", fb.RelatedProducts)
	}
}
