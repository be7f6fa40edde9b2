// Package tui provides the full-screen chat interface.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"chatpdf/internal/chat"
)

// Asker is the TUI-facing subset of the chat session.
type Asker interface {
	Ask(ctx context.Context, question string) (string, error)
}

type entry struct {
	question string
	answer   string
	err      error
}

// Model is the Bubble Tea model for the chat TUI.
type Model struct {
	session  Asker
	provider string
	input    textinput.Model
	viewport viewport.Model
	history  []entry
	status   string
	ready    bool
}

// New creates a new chat TUI model instance.
func New(session Asker, provider string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Digite sua pergunta ou 'sair' para terminar"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		session:  session,
		provider: provider,
		input:    ti,
		viewport: vp,
		status:   "Pronto. Digite sua pergunta.",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		// account for frames around history and input boxes
		_, hh := historyBoxStyle.GetFrameSize()
		_, qh := inputBoxStyle.GetFrameSize()
		totalHeaderLines := 1
		totalFooterLines := 1 // status
		reserved := totalHeaderLines + totalFooterLines + qh + 1
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-hh)
		m.viewport.SetContent(m.renderHistory())
		return m, nil
	case tea.KeyMsg:
		// Global quits
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		if msg.String() == "enter" {
			q := strings.TrimSpace(m.input.Value())
			if q == "" {
				return m, nil
			}
			if chat.IsExit(q) {
				return m, tea.Quit
			}
			answer, err := m.session.Ask(context.Background(), q)
			m.history = append(m.history, entry{question: q, answer: answer, err: err})
			if err != nil {
				m.status = "Ocorreu um erro durante o chat: " + err.Error()
			} else {
				m.status = fmt.Sprintf("Resposta para %q", q)
			}
			m.input.SetValue("")
			m.viewport.SetContent(m.renderHistory())
			m.viewport.GotoBottom()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the chat layout and history.
func (m Model) View() string {
	if !m.ready {
		return "Carregando..."
	}
	header := headerStyle.Render(fmt.Sprintf("Chat com Documento PDF (Provedor: %s)", m.provider))
	history := historyBoxStyle.Render(m.viewport.View())
	input := inputBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return header + "\n" + history + "\n" + input + "\n" + status
}

func (m Model) renderHistory() string {
	if len(m.history) == 0 {
		return "Nenhuma pergunta ainda."
	}
	blocks := make([]string, 0, len(m.history))
	for _, e := range m.history {
		q := questionStyle.Render("Pergunta: " + e.question)
		a := e.answer
		if e.err != nil {
			a = errorStyle.Render("Erro: " + e.err.Error())
		}
		blocks = append(blocks, q+"\n"+a)
	}
	return strings.Join(blocks, "\n\n")
}

var (
	headerStyle     = lipgloss.NewStyle().Bold(true)
	historyBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	questionStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	statusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
