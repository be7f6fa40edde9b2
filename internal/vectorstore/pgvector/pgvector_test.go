package pgvector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"chatpdf/internal/vectorstore"
)

var _ vectorstore.Store = (*Store)(nil)

func TestConnect_BadConnString(t *testing.T) {
	_, err := Connect(context.Background(), Config{
		ConnString: "://not-a-conn-string",
		Collection: "documentos_pdf",
	}, zap.NewNop())
	require.Error(t, err)
	require.Contains(t, err.Error(), "parse connection string")
}
