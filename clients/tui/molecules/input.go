// Package molecules provides mid-level TUI components.
package molecules

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// SubmitMsg is sent when the user presses Enter in the message input.
type SubmitMsg struct {
	Content string
}

// MessageInput wraps a single-line textinput with Enter-to-submit and
// up/down recall of previous submissions.
type MessageInput struct {
	input   textinput.Model
	enabled bool
	history []string
	histIdx int
	draft   string
}

// NewMessageInput creates a focused input.
func NewMessageInput() MessageInput {
	ti := textinput.New()
	ti.Placeholder = "Enter your message..."
	ti.Prompt = "> "
	ti.CharLimit = 500
	ti.Focus()

	return MessageInput{
		input:   ti,
		enabled: true,
		histIdx: -1,
	}
}

// SetWidth sets the input width.
func (c *MessageInput) SetWidth(w int) {
	c.input.Width = max(w-len(c.input.Prompt)-1, 1)
}

// SetEnabled enables or disables the input. A disabled input keeps its
// text but ignores keys.
func (c *MessageInput) SetEnabled(enabled bool) {
	c.enabled = enabled
}

// Enabled returns whether the input accepts keys.
func (c *MessageInput) Enabled() bool {
	return c.enabled
}

// Focus gives focus to the input.
func (c *MessageInput) Focus() tea.Cmd {
	return c.input.Focus()
}

// Blur removes focus from the input.
func (c *MessageInput) Blur() {
	c.input.Blur()
}

// Focused reports whether the input has focus.
func (c *MessageInput) Focused() bool {
	return c.input.Focused()
}

// Reset clears the input.
func (c *MessageInput) Reset() {
	c.input.Reset()
	c.histIdx = -1
	c.draft = ""
}

// Value returns the current input text.
func (c *MessageInput) Value() string {
	return c.input.Value()
}

// SetValue replaces the input text.
func (c *MessageInput) SetValue(s string) {
	c.input.SetValue(s)
}

// Update handles key events. Enter submits the text as typed; slash
// commands are trimmed.
func (c MessageInput) Update(msg tea.Msg) (MessageInput, tea.Cmd) {
	if !c.enabled || !c.input.Focused() {
		return c, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEnter:
			content := c.input.Value()
			if trimmed := strings.TrimSpace(content); trimmed != "" {
				c.history = append(c.history, trimmed)
			}
			c.histIdx = -1
			c.draft = ""
			return c, func() tea.Msg { return SubmitMsg{Content: content} }

		case tea.KeyUp:
			if len(c.history) == 0 {
				break
			}
			if c.histIdx == -1 {
				c.draft = c.input.Value()
				c.histIdx = len(c.history) - 1
			} else if c.histIdx > 0 {
				c.histIdx--
			}
			c.input.SetValue(c.history[c.histIdx])
			c.input.CursorEnd()
			return c, nil

		case tea.KeyDown:
			if c.histIdx == -1 {
				break
			}
			if c.histIdx < len(c.history)-1 {
				c.histIdx++
				c.input.SetValue(c.history[c.histIdx])
			} else {
				c.histIdx = -1
				c.input.SetValue(c.draft)
			}
			c.input.CursorEnd()
			return c, nil
		}
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

// View renders the input line.
func (c MessageInput) View() string {
	return c.input.View()
}
