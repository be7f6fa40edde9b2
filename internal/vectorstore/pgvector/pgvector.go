// Package pgvector implements the vector store on Postgres with the
// pgvector extension.
package pgvector

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgv "github.com/pgvector/pgvector-go"
	pgxvec "github.com/pgvector/pgvector-go/pgx"
	"go.uber.org/zap"

	"chatpdf/internal/domain"
)

// The embedding column carries no fixed dimension; provider vector
// sizes differ and the actual dimension is recorded per collection.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS collections (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		provider TEXT NOT NULL,
		dimension INT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS chunks (
		id UUID PRIMARY KEY,
		collection_id UUID NOT NULL REFERENCES collections(id) ON DELETE CASCADE,
		content TEXT NOT NULL,
		source TEXT NOT NULL,
		page INT NOT NULL,
		chunk_index INT NOT NULL,
		embedding VECTOR NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS chunks_collection_id_idx ON chunks (collection_id)`,
}

const searchSQL = `
SELECT c.id, c.content, c.source, c.page, c.chunk_index, c.embedding <=> $1 AS score
FROM chunks c
JOIN collections col ON col.id = c.collection_id
WHERE col.name = $2
ORDER BY c.embedding <=> $1
LIMIT $3`

// Config holds the connection settings for the store.
type Config struct {
	ConnString string
	Collection string
}

// Store persists embedded chunks in Postgres and searches them by
// cosine distance.
type Store struct {
	pool       *pgxpool.Pool
	collection string
	log        *zap.Logger
}

// Connect opens a pool, verifies the connection and ensures the schema.
func Connect(ctx context.Context, cfg Config, log *zap.Logger) (*Store, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.ConnString)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		// The extension must exist before the vector type can be
		// registered on the connection.
		if _, err := conn.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS vector"); err != nil {
			return err
		}
		return pgxvec.RegisterTypes(ctx, conn)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	s := &Store{pool: pool, collection: cfg.Collection, log: log}
	if err := s.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	log.Debug("connected to vector store", zap.String("collection", cfg.Collection))
	return s, nil
}

func (s *Store) ensureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// Replace drops the collection if it exists and recreates it with the
// given chunks in a single transaction.
func (s *Store) Replace(ctx context.Context, provider string, dimension int, chunks []domain.Chunk) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM collections WHERE name = $1`, s.collection); err != nil {
		return fmt.Errorf("drop collection %q: %w", s.collection, err)
	}

	collectionID := uuid.NewString()
	if _, err := tx.Exec(ctx,
		`INSERT INTO collections (id, name, provider, dimension) VALUES ($1, $2, $3, $4)`,
		collectionID, s.collection, provider, dimension,
	); err != nil {
		return fmt.Errorf("create collection %q: %w", s.collection, err)
	}

	for _, c := range chunks {
		id := c.ID
		if id == "" {
			id = uuid.NewString()
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO chunks (id, collection_id, content, source, page, chunk_index, embedding)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			id, collectionID, c.Text, c.Source, c.Page, c.Index, pgv.NewVector(c.Embedding),
		); err != nil {
			return fmt.Errorf("insert chunk %d: %w", c.Index, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	s.log.Debug("collection replaced",
		zap.String("collection", s.collection),
		zap.Int("chunks", len(chunks)),
	)
	return nil
}

// Search returns up to k chunks nearest to vector by cosine distance,
// smallest distance first. An absent collection yields no rows.
func (s *Store) Search(ctx context.Context, vector []float32, k int) ([]domain.SearchResult, error) {
	if k < 0 {
		k = 0
	}
	rows, err := s.pool.Query(ctx, searchSQL, pgv.NewVector(vector), s.collection, k)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}
	defer rows.Close()

	results := make([]domain.SearchResult, 0, k)
	for rows.Next() {
		var r domain.SearchResult
		if err := rows.Scan(&r.ID, &r.Text, &r.Source, &r.Page, &r.Index, &r.Score); err != nil {
			return nil, fmt.Errorf("scan search row: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}
	return results, nil
}

// Close releases the connection pool.
func (s *Store) Close() { s.pool.Close() }
