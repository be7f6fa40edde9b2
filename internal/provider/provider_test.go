package provider

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"chatpdf/internal/config"
	"chatpdf/internal/domain"
)

var (
	_ domain.Embedder  = (*GoogleEmbedder)(nil)
	_ domain.Embedder  = (*OpenAIEmbedder)(nil)
	_ domain.ChatModel = (*GoogleChat)(nil)
	_ domain.ChatModel = (*OpenAIChat)(nil)
)

func TestNewEmbedder_UnknownProvider(t *testing.T) {
	_, err := NewEmbedder(context.Background(), domain.Provider("azure"), &config.Config{}, zap.NewNop())
	require.ErrorIs(t, err, domain.ErrUnknownProvider)
}

func TestNewChatModel_UnknownProvider(t *testing.T) {
	_, err := NewChatModel(context.Background(), domain.Provider("azure"), &config.Config{}, zap.NewNop())
	require.ErrorIs(t, err, domain.ErrUnknownProvider)
}

func TestNewEmbedder_OpenAI(t *testing.T) {
	cfg := &config.Config{OpenAIAPIKey: "sk-test"}
	e, err := NewEmbedder(context.Background(), domain.ProviderOpenAI, cfg, zap.NewNop())
	require.NoError(t, err)
	require.Equal(t, "text-embedding-3-small", e.Name())
}

func TestNewChatModel_OpenAI(t *testing.T) {
	cfg := &config.Config{OpenAIAPIKey: "sk-test"}
	m, err := NewChatModel(context.Background(), domain.ProviderOpenAI, cfg, zap.NewNop())
	require.NoError(t, err)
	require.Equal(t, "gpt-3.5-turbo", m.Name())
}
