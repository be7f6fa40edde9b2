package tokens

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEstimate(t *testing.T) {
	require.Equal(t, 0, Estimate(""))
	require.Equal(t, 1, Estimate("ab"))
	require.Equal(t, 2, Estimate("12345678"))
	// Rune-based, so accented text is not inflated by UTF-8 byte width.
	require.Equal(t, 1, Estimate("ação"))
}

func TestCount(t *testing.T) {
	require.Equal(t, 0, Count(""))
	require.Greater(t, Count("O céu é azul."), 0)
}

func TestCount_GrowsWithText(t *testing.T) {
	short := Count("uma frase curta")
	long := Count("uma frase consideravelmente mais longa do que a anterior, com muito mais palavras")
	require.Greater(t, long, short)
}
