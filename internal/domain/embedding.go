package domain

import "context"

// Embedder is the shared text vectorization contract between layers.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}

// HealthChecker verifies inference provider availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// EmbeddingResult carries the embedding vector and token usage
// through the decorator chain.
type EmbeddingResult struct {
	Embedding    []float32
	PromptTokens int
	TotalTokens  int
}

// AnswerModel is the extractive question-answering contract.
type AnswerModel interface {
	Answer(ctx context.Context, question, passage string) (AnswerResult, error)
}

// AnswerResult is an extracted answer span with the model's
// self-reported score in [0,1].
type AnswerResult struct {
	Answer string
	Score  float64
}
