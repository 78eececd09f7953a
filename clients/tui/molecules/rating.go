package molecules

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Stars renders a 1..5 rating as filled and empty stars.
func Stars(rating int, on, off lipgloss.Style) string {
	rating = min(max(rating, 0), 5)
	return on.Render(strings.Repeat("★", rating)) + off.Render(strings.Repeat("☆", 5-rating))
}
