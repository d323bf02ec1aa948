package shell

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type replyMsg struct {
	reply Reply
}

// Model is the bubbletea front end of a Session. The input line sits at the
// bottom of the terminal; output is printed above it.
type Model struct {
	ctx       context.Context
	session   *Session
	completer *Completer

	input   textinput.Model
	spinner spinner.Model

	busy    bool
	cancel  context.CancelFunc
	quitting bool
}

// NewModel creates the shell UI for session.
func NewModel(ctx context.Context, session *Session, completer *Completer) Model {
	ti := textinput.New()
	ti.Prompt = session.Prompt()
	ti.ShowSuggestions = true
	// Up and Down walk the history instead of the suggestion list.
	ti.KeyMap.NextSuggestion = key.NewBinding(key.WithKeys("ctrl+n"))
	ti.KeyMap.PrevSuggestion = key.NewBinding(key.WithKeys("ctrl+p"))
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		ctx:       ctx,
		session:   session,
		completer: completer,
		input:     ti,
		spinner:   sp,
	}
}

// Init prints the banner and starts the cursor.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.Println(Banner), textinput.Blink)
}

// Update handles keys, spinner ticks and finished commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case replyMsg:
		m.busy = false
		if m.cancel != nil {
			m.cancel()
			m.cancel = nil
		}
		m.input.Prompt = m.session.Prompt()

		r := msg.reply
		if r.Quit {
			m.quitting = true
			return m, tea.Quit
		}
		var cmds []tea.Cmd
		if r.ClearScreen {
			cmds = append(cmds, tea.ClearScreen)
		}
		if r.Output != "" {
			cmds = append(cmds, tea.Println(r.Output))
		}
		return m, tea.Sequence(cmds...)

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlD:
		if m.cancel != nil {
			m.cancel()
		}
		m.quitting = true
		return m, tea.Quit

	case tea.KeyCtrlC:
		if m.busy {
			m.cancel()
			return m, nil
		}
		m.session.Cancel()
		m.session.History().Reset()
		m.input.Reset()
		m.input.Prompt = m.session.Prompt()
		return m, nil
	}

	if m.busy {
		return m, nil
	}

	switch msg.Type {
	case tea.KeyEnter:
		line := m.input.Value()
		echo := tea.Println(m.input.Prompt + line)
		m.input.Reset()
		m.input.SetSuggestions(nil)

		ctx, cancel := context.WithCancel(m.ctx)
		m.busy = true
		m.cancel = cancel
		session := m.session
		handle := func() tea.Msg {
			return replyMsg{reply: session.Handle(ctx, line)}
		}
		return m, tea.Sequence(echo, tea.Batch(handle, m.spinner.Tick))

	case tea.KeyUp:
		if entry, ok := m.session.History().Prev(m.input.Value()); ok {
			m.input.SetValue(entry)
			m.input.CursorEnd()
		}
		return m, nil

	case tea.KeyDown:
		if entry, ok := m.session.History().Next(); ok {
			m.input.SetValue(entry)
			m.input.CursorEnd()
		}
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if v := m.input.Value(); v != before {
		m.input.SetSuggestions(m.suggestions(v))
	}
	return m, cmd
}

// suggestions puts history matches ahead of completions.
func (m Model) suggestions(value string) []string {
	if m.session.Prompt() != PromptWord {
		return nil
	}
	out := m.session.History().Matching(value)
	seen := make(map[string]struct{}, len(out))
	for _, s := range out {
		seen[s] = struct{}{}
	}
	for _, s := range m.completer.Complete(m.ctx, value) {
		if _, dup := seen[s]; !dup {
			out = append(out, s)
		}
	}
	return out
}

// View renders the input line, or a spinner while a command runs.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.busy {
		return fmt.Sprintf("%s looking up...", m.spinner.View())
	}
	return m.input.View()
}

// Run starts the shell on the given terminal streams and blocks until the
// user exits or ctx is canceled.
func Run(ctx context.Context, session *Session, completer *Completer, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(NewModel(ctx, session, completer),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("shell: %w", err)
	}
	return nil
}
