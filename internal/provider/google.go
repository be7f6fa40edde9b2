package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

const (
	googleEmbeddingModel = "embedding-001"
	googleChatModel      = "gemini-2.5-flash"

	// BatchEmbedContents accepts at most 100 requests per call.
	googleEmbedBatchSize = 100
)

// GoogleEmbedder embeds text with the Gemini embedding API.
type GoogleEmbedder struct {
	client *genai.Client
	model  *genai.EmbeddingModel
	log    *zap.Logger
}

// NewGoogleEmbedder dials the Generative AI API with the given key.
func NewGoogleEmbedder(ctx context.Context, apiKey string, log *zap.Logger) (*GoogleEmbedder, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create google client: %w", err)
	}
	log.Debug("using google embeddings model", zap.String("model", googleEmbeddingModel))
	return &GoogleEmbedder{
		client: client,
		model:  client.EmbeddingModel(googleEmbeddingModel),
		log:    log,
	}, nil
}

// Name returns the fully qualified embedding model name.
func (e *GoogleEmbedder) Name() string { return "models/" + googleEmbeddingModel }

func (e *GoogleEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := e.model.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("google embed: %w", err)
	}
	if resp.Embedding == nil {
		return nil, errors.New("google embed: no embedding returned")
	}
	return resp.Embedding.Values, nil
}

func (e *GoogleEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += googleEmbedBatchSize {
		end := start + googleEmbedBatchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch := e.model.NewBatch()
		for _, t := range texts[start:end] {
			batch = batch.AddContent(genai.Text(t))
		}
		resp, err := e.model.BatchEmbedContents(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("google embed batch: %w", err)
		}
		if len(resp.Embeddings) != end-start {
			return nil, fmt.Errorf("google embed batch: got %d embeddings for %d texts", len(resp.Embeddings), end-start)
		}
		for _, emb := range resp.Embeddings {
			vectors = append(vectors, emb.Values)
		}
	}
	return vectors, nil
}

// GoogleChat generates answers with a Gemini chat model pinned to
// temperature zero.
type GoogleChat struct {
	client *genai.Client
	model  *genai.GenerativeModel
	log    *zap.Logger
}

// NewGoogleChat dials the Generative AI API with the given key.
func NewGoogleChat(ctx context.Context, apiKey string, log *zap.Logger) (*GoogleChat, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create google client: %w", err)
	}
	model := client.GenerativeModel(googleChatModel)
	model.SetTemperature(0)
	log.Debug("using google chat model", zap.String("model", googleChatModel))
	return &GoogleChat{client: client, model: model, log: log}, nil
}

// Name returns the chat model identifier.
func (c *GoogleChat) Name() string { return googleChatModel }

// Complete sends the prompt and concatenates the text parts of the
// response candidates.
func (c *GoogleChat) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("google completion: %w", err)
	}
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
	}
	if b.Len() == 0 {
		return "", errors.New("google completion: empty response")
	}
	return b.String(), nil
}
