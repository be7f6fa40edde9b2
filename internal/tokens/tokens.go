// Package tokens counts tokens for cost and chunk diagnostics.
package tokens

import (
	"sync"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
)

const encodingName = "cl100k_base"

var (
	once sync.Once
	enc  *tiktoken.Tiktoken
)

// Count returns the number of cl100k_base tokens in text. When the
// encoding cannot be loaded it falls back to Estimate.
func Count(text string) int {
	once.Do(func() {
		e, err := tiktoken.GetEncoding(encodingName)
		if err != nil {
			return
		}
		enc = e
	})
	if enc == nil {
		return Estimate(text)
	}
	return len(enc.Encode(text, nil, nil))
}

// Estimate approximates the token count as one token per four runes.
func Estimate(text string) int {
	if text == "" {
		return 0
	}
	n := utf8.RuneCountInString(text) / 4
	if n < 1 {
		return 1
	}
	return n
}
