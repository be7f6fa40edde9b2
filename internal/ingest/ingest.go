// Package ingest turns a PDF into an embedded chunk collection.
package ingest

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"chatpdf/internal/domain"
	"chatpdf/internal/pdf"
	"chatpdf/internal/splitter"
	"chatpdf/internal/tokens"
	"chatpdf/internal/vectorstore"
)

// Stats summarizes one ingestion run.
type Stats struct {
	Pages  int
	Chunks int
	Tokens int
}

// Ingester loads a PDF, splits it into chunks, embeds them and
// replaces the target collection with the result.
type Ingester struct {
	embedder domain.Embedder
	store    vectorstore.Store
	split    *splitter.RecursiveCharacter
	load     func(path string) ([]pdf.Page, error)
	log      *zap.Logger
}

func New(embedder domain.Embedder, store vectorstore.Store, split *splitter.RecursiveCharacter, log *zap.Logger) *Ingester {
	return &Ingester{
		embedder: embedder,
		store:    store,
		split:    split,
		load:     pdf.Load,
		log:      log,
	}
}

// Run ingests the PDF at path. Any failure aborts the run; the
// previous collection content is kept unless the replace committed.
func (i *Ingester) Run(ctx context.Context, path string) (Stats, error) {
	pages, err := i.load(path)
	if err != nil {
		return Stats{}, err
	}
	i.log.Debug("document loaded", zap.String("path", path), zap.Int("pages", len(pages)))

	var chunks []domain.Chunk
	totalTokens := 0
	for _, page := range pages {
		for _, text := range i.split.Split(page.Text) {
			chunks = append(chunks, domain.Chunk{
				ID:     uuid.NewString(),
				Text:   text,
				Source: path,
				Page:   page.Number,
				Index:  len(chunks),
			})
			totalTokens += tokens.Count(text)
		}
	}
	if len(chunks) == 0 {
		return Stats{}, errors.New("no text extracted from document")
	}
	i.log.Debug("document split", zap.Int("chunks", len(chunks)), zap.Int("tokens", totalTokens))

	texts := make([]string, len(chunks))
	for n, c := range chunks {
		texts[n] = c.Text
	}
	vectors, err := i.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return Stats{}, fmt.Errorf("embed chunks: %w", err)
	}
	if len(vectors) != len(chunks) {
		return Stats{}, fmt.Errorf("embedding count mismatch: got %d for %d chunks", len(vectors), len(chunks))
	}
	for n := range chunks {
		chunks[n].Embedding = vectors[n]
	}
	dimension := len(vectors[0])
	i.log.Debug("chunks embedded", zap.Int("dimension", dimension))

	if err := i.store.Replace(ctx, i.embedder.Name(), dimension, chunks); err != nil {
		return Stats{}, fmt.Errorf("store chunks: %w", err)
	}

	return Stats{Pages: len(pages), Chunks: len(chunks), Tokens: totalTokens}, nil
}
