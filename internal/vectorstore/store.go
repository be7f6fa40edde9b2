package vectorstore

import (
	"context"

	"chatpdf/internal/domain"
)

// Store persists embedded chunks and supports similarity search over
// one named collection.
type Store interface {
	// Replace drops the collection if it exists and recreates it with
	// the given chunks, atomically.
	Replace(ctx context.Context, provider string, dimension int, chunks []domain.Chunk) error
	// Search returns up to k chunks nearest to vector, best first.
	Search(ctx context.Context, vector []float32, k int) ([]domain.SearchResult, error)
	Close()
}
