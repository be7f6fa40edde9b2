package domain

import (
	"context"
	"errors"
	"fmt"
)

// Chunk is a bounded span of one document's text, the unit of storage and
// retrieval. The embedding is attached at ingestion time; chunks coming back
// from a search carry text and metadata only.
type Chunk struct {
	ID        string
	Text      string
	Source    string
	Page      int
	Index     int
	Embedding []float32
}

// SearchResult pairs a chunk with the score the vector store assigned to it.
// Scale and direction of the score are store-defined and passed through
// untouched; for the pgvector store this is cosine distance, lower is closer.
type SearchResult struct {
	Chunk
	Score float64
}

// Provider identifies the external LLM/embedding vendor for a run. The same
// provider must be used for ingestion and search, otherwise the stored
// vectors are not comparable with the query vectors.
type Provider string

const (
	ProviderGoogle Provider = "google"
	ProviderOpenAI Provider = "openai"
)

// ErrUnknownProvider reports a provider name outside the supported set.
var ErrUnknownProvider = errors.New("unknown provider")

// ParseProvider converts a user-supplied provider name into a Provider.
func ParseProvider(s string) (Provider, error) {
	switch Provider(s) {
	case ProviderGoogle:
		return ProviderGoogle, nil
	case ProviderOpenAI:
		return ProviderOpenAI, nil
	default:
		return "", fmt.Errorf("%w: %q (valid: google, openai)", ErrUnknownProvider, s)
	}
}

// Embedder converts free text into a numeric vector representation through an
// external model.
type Embedder interface {
	Name() string
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// ChatModel answers a fully rendered prompt with a single text completion.
type ChatModel interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
}
