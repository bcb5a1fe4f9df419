package embedding

import "context"

// Dimensions is the embedding width shared by every provider and the
// vector(768) column of the knowledge_embeddings table. Providers whose
// native width differs must request or produce this width.
const Dimensions = 768

// EmbeddingProvider defines the interface for generating text embeddings
type EmbeddingProvider interface {
	Generate(ctx context.Context, text string, taskType string) (*EmbeddingResponse, error)
}

type EmbeddingResponse struct {
	Embedding EmbeddingResponseEmbedding
}

type EmbeddingResponseEmbedding struct {
	Values []float32
}
