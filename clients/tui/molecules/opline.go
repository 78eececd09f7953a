package molecules

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	opNameStyle = lipgloss.NewStyle().Bold(true)
	checkStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#065F46", Dark: "#7EE2B8"})
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#FF6B6B"})
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"})
)

// OpLine renders one operation lifecycle line:
//
//	"⠋ history" | "✓ history 812ms (follow-on)" | "✗ suggest: Backend error: 500"
func OpLine(phase, op, trigger, spinnerView, errMsg string, d time.Duration) string {
	suffix := ""
	if trigger != "" && trigger != "user" {
		suffix = dimStyle.Render(" (" + trigger + ")")
	}
	switch phase {
	case "started":
		return fmt.Sprintf("%s %s%s", spinnerView, opNameStyle.Render(op), suffix)
	case "succeeded":
		return fmt.Sprintf("%s %s %s%s", checkStyle.Render("✓"), opNameStyle.Render(op),
			dimStyle.Render(d.Round(time.Millisecond).String()), suffix)
	case "failed":
		return fmt.Sprintf("%s %s: %s%s", failStyle.Render("✗"), opNameStyle.Render(op), Truncate(errMsg, 80), suffix)
	default:
		return opNameStyle.Render(op)
	}
}

// Truncate keeps the first line of s and cuts it to at most n runes.
func Truncate(s string, n int) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[:idx]
	}
	s = strings.TrimSpace(s)
	r := []rune(s)
	if n > 3 && len(r) > n {
		return string(r[:n-3]) + "..."
	}
	return s
}
