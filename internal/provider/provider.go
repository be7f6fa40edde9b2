// Package provider constructs embedding and chat clients for the
// supported LLM backends.
package provider

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"chatpdf/internal/config"
	"chatpdf/internal/domain"
)

// NewEmbedder returns the embedding client for provider p.
func NewEmbedder(ctx context.Context, p domain.Provider, cfg *config.Config, log *zap.Logger) (domain.Embedder, error) {
	switch p {
	case domain.ProviderGoogle:
		return NewGoogleEmbedder(ctx, cfg.GoogleAPIKey, log)
	case domain.ProviderOpenAI:
		return NewOpenAIEmbedder(cfg.OpenAIAPIKey, log), nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownProvider, p)
	}
}

// NewChatModel returns the chat completion client for provider p.
func NewChatModel(ctx context.Context, p domain.Provider, cfg *config.Config, log *zap.Logger) (domain.ChatModel, error) {
	switch p {
	case domain.ProviderGoogle:
		return NewGoogleChat(ctx, cfg.GoogleAPIKey, log)
	case domain.ProviderOpenAI:
		return NewOpenAIChat(cfg.OpenAIAPIKey, log), nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownProvider, p)
	}
}
