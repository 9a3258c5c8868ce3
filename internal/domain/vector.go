package domain

// DefaultVectorDimensions matches the embedding model output size the
// index is provisioned with when config leaves it unset.
const DefaultVectorDimensions = 768

// ProductVector is a product embedding with its search metadata,
// keyed by product id in the vector index.
type ProductVector struct {
	ID                string
	Values            []float32
	Text              string
	InventoryQuantity int
	Price             float64
}

// VectorMatch is a similarity search hit with the stored metadata,
// ordered by ascending distance from the query vector.
type VectorMatch struct {
	ID                string
	Score             float64
	Text              string
	InventoryQuantity int
	Price             float64
}
