package tui

import (
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// prompt is the single line input asking for the URL of a link. It replaces
// the status bar while it is active.
type prompt struct {
	message string
	input   textarea.Model
	done    func(value string, ok bool)
}

func newPrompt(message, initial string, width int, done func(string, bool)) *prompt {
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = 2048
	ta.SetWidth(max(width-4, 20))
	ta.SetHeight(1)
	ta.Focus()

	// Enter submits the prompt.
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("ctrl+j"))

	if initial != "" {
		ta.SetValue(initial)
		ta.CursorEnd()
	}
	return &prompt{message: message, input: ta, done: done}
}

// update handles a message while the prompt is active. It returns true once
// the prompt is submitted or cancelled.
func (p *prompt) update(msg tea.Msg) (bool, tea.Cmd) {
	if msg, ok := msg.(tea.KeyPressMsg); ok {
		switch msg.String() {
		case "enter":
			p.done(strings.TrimSpace(p.input.Value()), true)
			return true, nil
		case "esc", "ctrl+c":
			p.done("", false)
			return true, nil
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return false, cmd
}

func (p *prompt) render() string {
	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Render(p.message))
	lines = append(lines, p.input.View())
	lines = append(lines, helpStyle.Render("Enter submit  Esc cancel"))
	return strings.Join(lines, "\n")
}
