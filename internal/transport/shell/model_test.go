package shell

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T, terms ...string) (Model, *sessionFixture) {
	t.Helper()
	f := newSessionFixture(t, nil, terms...)
	c := NewCompleter(f.session.cfg.Terms, 5)
	return NewModel(context.Background(), f.session, c), f
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestModel_EnterRunsSession(t *testing.T) {
	t.Parallel()

	m, f := newTestModel(t)
	m = typeText(t, m, "run")
	assert.Equal(t, "run", m.input.Value())

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, m.busy)
	assert.Empty(t, m.input.Value())
	assert.Contains(t, m.View(), "looking up")

	// Keys other than Ctrl+C and Ctrl+D are ignored while busy.
	m = typeText(t, m, "x")
	assert.Empty(t, m.input.Value())

	reply := f.session.Handle(context.Background(), "run")
	m, cmd = update(t, m, replyMsg{reply: reply})
	assert.False(t, m.busy)
	assert.NotNil(t, cmd)
	assert.Equal(t, PromptWord, m.input.Prompt)
}

func TestModel_ReplyQuit(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	m, cmd := update(t, m, replyMsg{reply: Reply{Quit: true}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

func TestModel_CtrlD(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlD})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_CtrlCClearsLineAndCorrection(t *testing.T) {
	t.Parallel()

	m, f := newTestModel(t, "hello", "help", "halo")
	f.session.Handle(context.Background(), "helo")
	m, _ = update(t, m, replyMsg{reply: Reply{Output: "suggestions"}})
	assert.Equal(t, PromptChoice, m.input.Prompt)

	m = typeText(t, m, "2")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})

	assert.Empty(t, m.input.Value())
	assert.Equal(t, PromptWord, m.input.Prompt)
	assert.Equal(t, PromptWord, f.session.Prompt())
}

func TestModel_HistoryNavigation(t *testing.T) {
	t.Parallel()

	m, f := newTestModel(t)
	require.NoError(t, f.history.Add("run"))
	require.NoError(t, f.history.Add("fast"))

	m = typeText(t, m, "sl")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "fast", m.input.Value())
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "run", m.input.Value())
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "sl", m.input.Value())
}

func TestModel_Suggestions(t *testing.T) {
	t.Parallel()

	m, f := newTestModel(t, "run", "rune", "running")
	require.NoError(t, f.history.Add("running fast"))

	assert.Equal(t, []string{"running fast", "run", "rune", "running"}, m.suggestions("run"))
	assert.Equal(t, []string{"/help"}, m.suggestions("/he"))
}
