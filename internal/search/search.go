// Package search embeds queries and retrieves the nearest document
// chunks from a collection.
package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"chatpdf/internal/config"
	"chatpdf/internal/domain"
	"chatpdf/internal/provider"
	"chatpdf/internal/vectorstore"
	"chatpdf/internal/vectorstore/pgvector"
)

// ConnectionError reports a failure to reach the vector database.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("could not connect to the vector database: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// DocumentSearcher retrieves chunks relevant to a query from one
// collection. State is fixed at construction.
type DocumentSearcher struct {
	embedder domain.Embedder
	store    vectorstore.Store
	log      *zap.Logger
}

// New wires a searcher from its parts.
func New(embedder domain.Embedder, store vectorstore.Store, log *zap.Logger) *DocumentSearcher {
	return &DocumentSearcher{embedder: embedder, store: store, log: log}
}

// Open validates the configuration, builds the provider embedder and
// connects to the vector store for the given collection. A store
// connection failure is reported as a *ConnectionError.
func Open(ctx context.Context, cfg *config.Config, p domain.Provider, collection string, log *zap.Logger) (*DocumentSearcher, error) {
	if err := cfg.Validate(p); err != nil {
		return nil, err
	}
	embedder, err := provider.NewEmbedder(ctx, p, cfg, log)
	if err != nil {
		return nil, err
	}
	store, err := pgvector.Connect(ctx, pgvector.Config{
		ConnString: cfg.ConnString(),
		Collection: collection,
	}, log)
	if err != nil {
		return nil, &ConnectionError{Err: err}
	}
	return New(embedder, store, log), nil
}

// Search embeds the query and returns up to k nearest chunks exactly
// as the store produced them. Errors propagate unmodified.
func (s *DocumentSearcher) Search(ctx context.Context, query string, k int) ([]domain.SearchResult, error) {
	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}
	results, err := s.store.Search(ctx, vector, k)
	if err != nil {
		return nil, err
	}
	s.log.Debug("search complete", zap.String("query", query), zap.Int("results", len(results)))
	return results, nil
}

// Close releases the underlying store.
func (s *DocumentSearcher) Close() { s.store.Close() }
