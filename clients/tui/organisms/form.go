package organisms

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dohr-michael/emotai/clients/tui/molecules"
	"github.com/dohr-michael/emotai/internal/emoji"
)

// FeedbackSubmitMsg is sent when the user submits the feedback form.
type FeedbackSubmitMsg struct {
	Feedback string
	Rating   int
}

// FeedbackChangedMsg reports edits so the controller state follows the form.
type FeedbackChangedMsg struct {
	Feedback string
}

// RatingChangedMsg reports a new rating.
type RatingChangedMsg struct {
	Rating int
}

// FeedbackForm is the optional comment plus 1..5 rating shown under a
// suggestion. Enter submits, Alt+Enter inserts a newline, Ctrl+Up/Ctrl+Down
// change the rating.
type FeedbackForm struct {
	textarea textarea.Model
	rating   int
	enabled  bool
	style    lipgloss.Style
	starOn   lipgloss.Style
	starOff  lipgloss.Style
}

// NewFeedbackForm creates a blurred form with the default rating.
func NewFeedbackForm(style, starOn, starOff lipgloss.Style) FeedbackForm {
	ta := textarea.New()
	ta.Placeholder = "Your feedback on emoji suggestion (optional)"
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.CharLimit = 1000
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.KeyMap.InsertNewline.SetKeys("alt+enter")

	return FeedbackForm{
		textarea: ta,
		rating:   emoji.DefaultRating,
		enabled:  true,
		style:    style,
		starOn:   starOn,
		starOff:  starOff,
	}
}

// SetWidth sets the form width, borders included.
func (f *FeedbackForm) SetWidth(w int) {
	f.textarea.SetWidth(max(w-f.style.GetHorizontalFrameSize(), 10))
}

// Focus gives the form the keyboard.
func (f *FeedbackForm) Focus() tea.Cmd {
	return f.textarea.Focus()
}

// Blur removes focus.
func (f *FeedbackForm) Blur() {
	f.textarea.Blur()
}

// Focused reports whether the form has focus.
func (f *FeedbackForm) Focused() bool {
	return f.textarea.Focused()
}

// SetEnabled gates submission and rating changes.
func (f *FeedbackForm) SetEnabled(enabled bool) {
	f.enabled = enabled
}

// SyncRating mirrors the controller's rating. The text is owned by the
// form and only changes through typing or Clear.
func (f *FeedbackForm) SyncRating(rating int) {
	if emoji.ValidRating(rating) {
		f.rating = rating
	}
}

// Clear empties the text and restores the default rating.
func (f *FeedbackForm) Clear() {
	f.textarea.Reset()
	f.rating = emoji.DefaultRating
}

// Value returns the feedback text.
func (f *FeedbackForm) Value() string {
	return f.textarea.Value()
}

// Rating returns the selected rating.
func (f *FeedbackForm) Rating() int {
	return f.rating
}

// Update handles keys while focused.
func (f FeedbackForm) Update(msg tea.Msg) (FeedbackForm, tea.Cmd) {
	if !f.textarea.Focused() {
		return f, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			if !f.enabled {
				return f, nil
			}
			fb, r := f.textarea.Value(), f.rating
			return f, func() tea.Msg { return FeedbackSubmitMsg{Feedback: fb, Rating: r} }
		case "ctrl+up":
			return f.setRating(f.rating + 1)
		case "ctrl+down":
			return f.setRating(f.rating - 1)
		}
	}

	before := f.textarea.Value()
	var cmd tea.Cmd
	f.textarea, cmd = f.textarea.Update(msg)
	if after := f.textarea.Value(); after != before {
		changed := func() tea.Msg { return FeedbackChangedMsg{Feedback: after} }
		return f, tea.Batch(cmd, changed)
	}
	return f, cmd
}

func (f FeedbackForm) setRating(r int) (FeedbackForm, tea.Cmd) {
	if !f.enabled || !emoji.ValidRating(r) {
		return f, nil
	}
	f.rating = r
	return f, func() tea.Msg { return RatingChangedMsg{Rating: r} }
}

// View renders the form.
func (f FeedbackForm) View() string {
	title := "Feedback"
	if f.textarea.Focused() {
		title += "  (enter: send, ctrl+↑/↓: rating)"
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		title,
		f.textarea.View(),
		"Rating: "+molecules.Stars(f.rating, f.starOn, f.starOff),
	)
	return f.style.Render(body)
}
