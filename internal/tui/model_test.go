package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/college-advisor/internal/types"
)

func TestNew_StartsWithWelcomeTurn(t *testing.T) {
	m := New(func(context.Context, string) string { return "" }, "Welcome!")
	require.Len(t, m.turns, 1)
	assert.Equal(t, types.SpeakerBot, m.turns[0].Speaker)
	assert.Equal(t, "Welcome!", m.turns[0].Text)
}

func TestUpdate_EnterSendsLineToAdvisor(t *testing.T) {
	var asked string
	m := New(func(_ context.Context, input string) string {
		asked = input
		return "answer"
	}, "Welcome!")

	// Enter appends the user turn and dispatches the advisor call as a
	// command; the event loop is not blocked while the answer is produced.
	m.input.SetValue("  what is the cutoff for MNIT  ")
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model := updated.(Model)

	require.Len(t, model.turns, 2)
	assert.Equal(t, types.SpeakerUser, model.turns[1].Speaker)
	assert.True(t, model.waiting)
	assert.Empty(t, model.input.Value())
	assert.Empty(t, asked)

	require.NotNil(t, cmd)
	msg := cmd()
	resp, ok := msg.(responseMsg)
	require.True(t, ok)
	assert.Equal(t, "what is the cutoff for MNIT", asked)

	updated, _ = model.Update(resp)
	model = updated.(Model)
	require.Len(t, model.turns, 3)
	assert.Equal(t, types.SpeakerBot, model.turns[2].Speaker)
	assert.Equal(t, "answer", model.turns[2].Text)
	assert.False(t, model.waiting)
	assert.Equal(t, statusReady, model.status)
}

func TestUpdate_IgnoresEnterWhileWaiting(t *testing.T) {
	m := New(func(context.Context, string) string { return "answer" }, "Welcome!")

	m.input.SetValue("first question")
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model := updated.(Model)
	require.True(t, model.waiting)

	// A second enter before the answer arrives does not start another turn.
	model.input.SetValue("second question")
	updated, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model = updated.(Model)
	assert.Nil(t, cmd)
	assert.Len(t, model.turns, 2)
}

func TestUpdate_EmptyLineIsIgnored(t *testing.T) {
	called := false
	m := New(func(context.Context, string) string {
		called = true
		return ""
	}, "Welcome!")

	m.input.SetValue("   ")
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, called)
	assert.Len(t, updated.(Model).turns, 1)
}

func TestUpdate_QuitCommands(t *testing.T) {
	m := New(func(context.Context, string) string { return "" }, "Welcome!")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	m.input.SetValue("quit")
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
