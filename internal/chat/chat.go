// Package chat answers questions grounded on retrieved document
// context.
package chat

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"chatpdf/internal/domain"
)

const promptTemplate = `CONTEXTO:
%s

REGRAS:
- Responda somente com base no CONTEXTO.
- Se a informação não estiver explicitamente no CONTEXTO, responda:
  "Não tenho informações necessárias para responder sua pergunta."
- Nunca invente ou use conhecimento externo.
- Nunca produza opiniões ou interpretações além do que está escrito.

PERGUNTA DO USUÁRIO:
%s

RESPONDA A "PERGUNTA DO USUÁRIO"
`

// DefaultTopK is the number of chunks retrieved per question.
const DefaultTopK = 10

var exitWords = []string{"sair", "exit", "quit"}

// IsExit reports whether input is one of the chat exit words, ignoring
// case and surrounding whitespace.
func IsExit(input string) bool {
	trimmed := strings.TrimSpace(input)
	for _, w := range exitWords {
		if strings.EqualFold(trimmed, w) {
			return true
		}
	}
	return false
}

// FormatContext renders search results into the CONTEXTO block of the
// prompt. Order is preserved; no results yield an empty string.
func FormatContext(results []domain.SearchResult) string {
	if len(results) == 0 {
		return ""
	}
	entries := make([]string, len(results))
	for i, r := range results {
		source := "N/A"
		if r.Source != "" {
			source = filepath.Base(r.Source)
		}
		entries[i] = fmt.Sprintf("%s\n(Fonte: %s, Página: %d)", r.Text, source, r.Page)
	}
	return strings.Join(entries, "\n\n---\n\n")
}

// Searcher yields chunks relevant to a question.
type Searcher interface {
	Search(ctx context.Context, query string, k int) ([]domain.SearchResult, error)
}

// Session answers questions against one document collection.
type Session struct {
	searcher Searcher
	model    domain.ChatModel
	topK     int
	log      *zap.Logger
}

// NewSession builds a session retrieving topK chunks per question.
// Non-positive topK falls back to DefaultTopK.
func NewSession(searcher Searcher, model domain.ChatModel, topK int, log *zap.Logger) *Session {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Session{searcher: searcher, model: model, topK: topK, log: log}
}

// Ask retrieves context for the question and asks the model.
func (s *Session) Ask(ctx context.Context, question string) (string, error) {
	results, err := s.searcher.Search(ctx, question, s.topK)
	if err != nil {
		return "", err
	}
	s.log.Debug("context retrieved", zap.Int("chunks", len(results)))
	prompt := fmt.Sprintf(promptTemplate, FormatContext(results), question)
	return s.model.Complete(ctx, prompt)
}

// Run reads questions from in and writes answers to out until an exit
// word or EOF. An exit word stops the loop before any network call.
// Per-question errors are printed and the loop continues.
func (s *Session) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "\nPergunta: ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		question := strings.TrimSpace(scanner.Text())
		if IsExit(question) {
			fmt.Fprintln(out, "Encerrando o chat. Até logo!")
			return nil
		}
		if question == "" {
			continue
		}

		fmt.Fprintln(out, "\nGerando resposta...")
		answer, err := s.Ask(ctx, question)
		if err != nil {
			fmt.Fprintf(out, "\nOcorreu um erro durante o chat: %v\n", err)
			continue
		}
		fmt.Fprintln(out, "\nResposta:")
		fmt.Fprintln(out, answer)
	}
}
