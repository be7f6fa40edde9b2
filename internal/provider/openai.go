package provider

import (
	"context"
	"errors"
	"fmt"
	"math"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const (
	openaiEmbeddingModel = openai.SmallEmbedding3
	openaiChatModel      = openai.GPT3Dot5Turbo

	// CreateEmbeddings accepts at most 2048 inputs per call.
	openaiEmbedBatchSize = 2048
)

// OpenAIEmbedder embeds text with the OpenAI embeddings API.
type OpenAIEmbedder struct {
	client *openai.Client
	log    *zap.Logger
}

// NewOpenAIEmbedder builds the client. No request is made until Embed.
func NewOpenAIEmbedder(apiKey string, log *zap.Logger) *OpenAIEmbedder {
	log.Debug("using openai embeddings model", zap.String("model", string(openaiEmbeddingModel)))
	return &OpenAIEmbedder{client: openai.NewClient(apiKey), log: log}
}

// Name returns the embedding model identifier.
func (e *OpenAIEmbedder) Name() string { return string(openaiEmbeddingModel) }

func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (e *OpenAIEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += openaiEmbedBatchSize {
		end := start + openaiEmbedBatchSize
		if end > len(texts) {
			end = len(texts)
		}
		resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
			Model: openaiEmbeddingModel,
			Input: texts[start:end],
		})
		if err != nil {
			return nil, fmt.Errorf("openai embed: %w", err)
		}
		if len(resp.Data) != end-start {
			return nil, fmt.Errorf("openai embed: got %d embeddings for %d texts", len(resp.Data), end-start)
		}
		for _, d := range resp.Data {
			vectors = append(vectors, d.Embedding)
		}
	}
	return vectors, nil
}

// OpenAIChat generates answers with an OpenAI chat model pinned to
// temperature zero.
type OpenAIChat struct {
	client *openai.Client
	log    *zap.Logger
}

// NewOpenAIChat builds the client. No request is made until Complete.
func NewOpenAIChat(apiKey string, log *zap.Logger) *OpenAIChat {
	log.Debug("using openai chat model", zap.String("model", openaiChatModel))
	return &OpenAIChat{client: openai.NewClient(apiKey), log: log}
}

// Name returns the chat model identifier.
func (c *OpenAIChat) Name() string { return openaiChatModel }

func (c *OpenAIChat) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openaiChatModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		// A literal 0 is dropped by omitempty, so send the smallest
		// positive float32 to keep the temperature pinned.
		Temperature: math.SmallestNonzeroFloat32,
	})
	if err != nil {
		return "", fmt.Errorf("openai completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai completion: empty response")
	}
	return resp.Choices[0].Message.Content, nil
}
