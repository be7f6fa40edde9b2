package chat

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"chatpdf/internal/domain"
)

type scriptedSearcher struct {
	results []domain.SearchResult
	err     error
	calls   int
	lastQ   string
	lastK   int
}

func (f *scriptedSearcher) Search(ctx context.Context, query string, k int) ([]domain.SearchResult, error) {
	f.calls++
	f.lastQ = query
	f.lastK = k
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

type scriptedModel struct {
	answers []string
	errs    []error
	calls   int
	prompts []string
}

func (f *scriptedModel) Name() string { return "fake-chat-model" }

func (f *scriptedModel) Complete(ctx context.Context, prompt string) (string, error) {
	i := f.calls
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if i < len(f.errs) && f.errs[i] != nil {
		return "", f.errs[i]
	}
	if i < len(f.answers) {
		return f.answers[i], nil
	}
	return "resposta padrão", nil
}

func TestFormatContext_Empty(t *testing.T) {
	require.Equal(t, "", FormatContext(nil))
	require.Equal(t, "", FormatContext([]domain.SearchResult{}))
}

func TestFormatContext_RendersSourceAndPage(t *testing.T) {
	results := []domain.SearchResult{
		{Chunk: domain.Chunk{Text: "O céu é azul.", Source: "/docs/manual.pdf", Page: 2}},
		{Chunk: domain.Chunk{Text: "A grama é verde.", Source: "", Page: 0}},
	}
	want := "O céu é azul.\n(Fonte: manual.pdf, Página: 2)" +
		"\n\n---\n\n" +
		"A grama é verde.\n(Fonte: N/A, Página: 0)"
	require.Equal(t, want, FormatContext(results))
}

func TestIsExit(t *testing.T) {
	for _, input := range []string{"sair", "SAIR", "exit", " Exit ", "quit", "\tQUIT\n"} {
		require.True(t, IsExit(input), "input %q", input)
	}
	for _, input := range []string{"", "   ", "sair agora", "quero sair", "salir"} {
		require.False(t, IsExit(input), "input %q", input)
	}
}

func TestAsk_FillsPromptWithContextAndQuestion(t *testing.T) {
	searcher := &scriptedSearcher{results: []domain.SearchResult{
		{Chunk: domain.Chunk{Text: "O céu é azul.", Source: "manual.pdf", Page: 1}},
	}}
	model := &scriptedModel{answers: []string{"O céu é azul."}}
	session := NewSession(searcher, model, 3, zap.NewNop())

	answer, err := session.Ask(context.Background(), "qual é a cor do céu?")
	require.NoError(t, err)
	require.Equal(t, "O céu é azul.", answer)
	require.Equal(t, "qual é a cor do céu?", searcher.lastQ)
	require.Equal(t, 3, searcher.lastK)

	require.Len(t, model.prompts, 1)
	prompt := model.prompts[0]
	require.Contains(t, prompt, "CONTEXTO:")
	require.Contains(t, prompt, "REGRAS:")
	require.Contains(t, prompt, "Não tenho informações necessárias para responder sua pergunta.")
	require.Contains(t, prompt, "(Fonte: manual.pdf, Página: 1)")
	require.Contains(t, prompt, "PERGUNTA DO USUÁRIO:\nqual é a cor do céu?")
}

func TestAsk_EmptyContextStillAsks(t *testing.T) {
	searcher := &scriptedSearcher{}
	model := &scriptedModel{}
	session := NewSession(searcher, model, 5, zap.NewNop())

	_, err := session.Ask(context.Background(), "pergunta")
	require.NoError(t, err)
	require.Contains(t, model.prompts[0], "CONTEXTO:\n\n\nREGRAS:")
}

func TestNewSession_DefaultTopK(t *testing.T) {
	searcher := &scriptedSearcher{}
	session := NewSession(searcher, &scriptedModel{}, 0, zap.NewNop())

	_, err := session.Ask(context.Background(), "pergunta")
	require.NoError(t, err)
	require.Equal(t, DefaultTopK, searcher.lastK)
}

func TestRun_ExitWordStopsBeforeAnyCall(t *testing.T) {
	searcher := &scriptedSearcher{}
	model := &scriptedModel{}
	session := NewSession(searcher, model, 3, zap.NewNop())
	var out bytes.Buffer

	err := session.Run(context.Background(), strings.NewReader("sair\n"), &out)
	require.NoError(t, err)
	require.Contains(t, out.String(), "Encerrando o chat. Até logo!")
	require.Zero(t, searcher.calls)
	require.Zero(t, model.calls)
}

func TestRun_ExitWordToleratesCaseAndSpaces(t *testing.T) {
	searcher := &scriptedSearcher{}
	model := &scriptedModel{}
	session := NewSession(searcher, model, 3, zap.NewNop())
	var out bytes.Buffer

	err := session.Run(context.Background(), strings.NewReader("  QUIT  \n"), &out)
	require.NoError(t, err)
	require.Contains(t, out.String(), "Encerrando o chat. Até logo!")
	require.Zero(t, searcher.calls)
}

func TestRun_BlankLinesSkipped(t *testing.T) {
	searcher := &scriptedSearcher{}
	model := &scriptedModel{}
	session := NewSession(searcher, model, 3, zap.NewNop())
	var out bytes.Buffer

	err := session.Run(context.Background(), strings.NewReader("\n   \nsair\n"), &out)
	require.NoError(t, err)
	require.Zero(t, searcher.calls)
	require.Zero(t, model.calls)
}

func TestRun_AnswerFlow(t *testing.T) {
	searcher := &scriptedSearcher{results: []domain.SearchResult{
		{Chunk: domain.Chunk{Text: "O céu é azul.", Source: "manual.pdf", Page: 1}},
	}}
	model := &scriptedModel{answers: []string{"O céu é azul."}}
	session := NewSession(searcher, model, 3, zap.NewNop())
	var out bytes.Buffer

	err := session.Run(context.Background(), strings.NewReader("qual é a cor do céu?\nsair\n"), &out)
	require.NoError(t, err)
	require.Equal(t, 1, model.calls)

	output := out.String()
	require.Contains(t, output, "Pergunta: ")
	require.Contains(t, output, "Gerando resposta...")
	require.Contains(t, output, "Resposta:\nO céu é azul.")
	require.Contains(t, output, "Encerrando o chat. Até logo!")
}

func TestRun_ErrorIsPrintedAndLoopContinues(t *testing.T) {
	searcher := &scriptedSearcher{}
	model := &scriptedModel{
		errs:    []error{errors.New("rate limited"), nil},
		answers: []string{"", "segunda resposta"},
	}
	session := NewSession(searcher, model, 3, zap.NewNop())
	var out bytes.Buffer

	input := "primeira pergunta\nsegunda pergunta\nsair\n"
	err := session.Run(context.Background(), strings.NewReader(input), &out)
	require.NoError(t, err)
	require.Equal(t, 2, model.calls)

	output := out.String()
	require.Contains(t, output, "Ocorreu um erro durante o chat: rate limited")
	require.Contains(t, output, "segunda resposta")
	require.Contains(t, output, "Encerrando o chat. Até logo!")
}

func TestRun_EOFEndsLoop(t *testing.T) {
	searcher := &scriptedSearcher{}
	model := &scriptedModel{answers: []string{"resposta"}}
	session := NewSession(searcher, model, 3, zap.NewNop())
	var out bytes.Buffer

	err := session.Run(context.Background(), strings.NewReader("uma pergunta\n"), &out)
	require.NoError(t, err)
	require.Equal(t, 1, model.calls)
}
