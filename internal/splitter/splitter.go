package splitter

import (
	"strings"
	"unicode/utf8"
)

// RecursiveCharacter splits text into overlapping windows measured in runes,
// preferring to break at paragraph, then line, then word boundaries before
// cutting mid-word. Windows never exceed the chunk size; consecutive windows
// share up to the overlap so sentences cut at a boundary stay retrievable.
type RecursiveCharacter struct {
	chunkSize    int
	chunkOverlap int
	separators   []string
}

// NewRecursiveCharacter creates a splitter with the given window size and
// overlap, both in runes.
func NewRecursiveCharacter(chunkSize, chunkOverlap int) *RecursiveCharacter {
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	if chunkOverlap < 0 {
		chunkOverlap = 0
	}
	if chunkOverlap >= chunkSize {
		chunkOverlap = chunkSize / 10
	}
	return &RecursiveCharacter{
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
		separators:   []string{"\n\n", "\n", " ", ""},
	}
}

// Split breaks text into windows. Blank input yields no chunks; each emitted
// chunk is trimmed of outer whitespace and non-empty.
func (s *RecursiveCharacter) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return s.splitText(text, s.separators)
}

func (s *RecursiveCharacter) splitText(text string, separators []string) []string {
	// Pick the coarsest separator that actually occurs; "" means fall back
	// to rune-level pieces.
	sep := ""
	var rest []string
	for i, cand := range separators {
		if cand == "" {
			break
		}
		if strings.Contains(text, cand) {
			sep = cand
			rest = separators[i+1:]
			break
		}
	}

	var pieces []string
	if sep == "" {
		for _, r := range text {
			pieces = append(pieces, string(r))
		}
	} else {
		pieces = strings.SplitAfter(text, sep)
	}

	var chunks []string
	var fitting []string
	for _, piece := range pieces {
		if utf8.RuneCountInString(piece) <= s.chunkSize {
			fitting = append(fitting, piece)
			continue
		}
		if len(fitting) > 0 {
			chunks = append(chunks, s.merge(fitting)...)
			fitting = nil
		}
		// An oversized piece is re-split with the finer separators.
		chunks = append(chunks, s.splitText(piece, rest)...)
	}
	if len(fitting) > 0 {
		chunks = append(chunks, s.merge(fitting)...)
	}
	return chunks
}

// merge joins consecutive pieces into windows of at most chunkSize runes.
// When a window fills up it is emitted and its tail, up to chunkOverlap
// runes, is carried into the next window.
func (s *RecursiveCharacter) merge(pieces []string) []string {
	var chunks []string
	var window []string
	total := 0
	for _, piece := range pieces {
		n := utf8.RuneCountInString(piece)
		if total+n > s.chunkSize && total > 0 {
			if joined := strings.TrimSpace(strings.Join(window, "")); joined != "" {
				chunks = append(chunks, joined)
			}
			for len(window) > 0 && (total > s.chunkOverlap || total+n > s.chunkSize) {
				total -= utf8.RuneCountInString(window[0])
				window = window[1:]
			}
		}
		window = append(window, piece)
		total += n
	}
	if joined := strings.TrimSpace(strings.Join(window, "")); joined != "" {
		chunks = append(chunks, joined)
	}
	return chunks
}
