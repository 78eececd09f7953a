package atoms

import "github.com/charmbracelet/lipgloss"

// Heading renders a section title (e.g. "Your History") with the given style.
func Heading(title string, style lipgloss.Style) string {
	return style.Render(title)
}

// Field renders "label value" with only the label styled.
func Field(label, value string, style lipgloss.Style) string {
	return style.Render(label) + " " + value
}
