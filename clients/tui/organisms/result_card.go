package organisms

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dohr-michael/emotai/internal/emoji"
)

// CardStyles groups the styles used by the result card and the lists.
type CardStyles struct {
	Card    lipgloss.Style
	Title   lipgloss.Style
	Accent  lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
}

// ResultCard renders the current suggestion.
func ResultCard(s *emoji.Suggestion, width int, st CardStyles) string {
	if s == nil {
		return ""
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		st.Title.Render("Suggested Emojis"),
		st.Accent.Render(s.Emojis.String()),
		st.Muted.Render(s.ExplanationText()),
	)
	return st.Card.Width(max(width-st.Card.GetHorizontalBorderSize(), 10)).Render(body)
}

// ErrorLine renders the shared error text, or nothing.
func ErrorLine(msg string, st CardStyles) string {
	if msg == "" {
		return ""
	}
	return st.Error.Render("⚠ " + msg)
}

// HistoryRows renders one row per history entry, newest first as received.
func HistoryRows(list []emoji.HistoryEntry, st CardStyles) []string {
	if len(list) == 0 {
		return []string{st.Muted.Render("No history yet.")}
	}
	rows := make([]string, 0, len(list)*2)
	for _, h := range list {
		line := fmt.Sprintf("%s  %s  %s",
			st.Accent.Render(h.Emojis.String()),
			h.MessageText(),
			st.Muted.Render(h.CreatedText()),
		)
		rows = append(rows, line, "   "+st.Muted.Render(h.ExplanationText()))
		if h.Feedback != nil {
			rows[len(rows)-1] += st.Success.Render(fmt.Sprintf("  [rated %d]", h.Feedback.Rating))
		}
	}
	return rows
}

// AnalyticsRows renders "emoji: count" rows followed by the aggregate stats.
// A nil list means analytics were never fetched.
func AnalyticsRows(list []emoji.AnalyticsEntry, stats emoji.AnalyticsStats, st CardStyles) []string {
	if list == nil {
		return []string{st.Muted.Render("Analytics not loaded. Type /analytics.")}
	}
	rows := []string{st.Title.Render("Emoji Usage Stats")}
	if len(list) == 0 {
		rows = append(rows, st.Muted.Render("No emoji usage yet."))
	}
	for _, a := range list {
		rows = append(rows, a.String())
	}
	if stats.MessageCount > 0 {
		rows = append(rows, "", st.Muted.Render(fmt.Sprintf("messages: %d", stats.MessageCount)))
	}
	if len(stats.Sentiment) > 0 {
		rows = append(rows, st.Muted.Render("sentiment: "+formatCounts(stats.Sentiment)))
	}
	if len(stats.Feedback) > 0 {
		rows = append(rows, st.Muted.Render("ratings: "+formatCounts(stats.Feedback)))
	}
	return rows
}

func formatCounts(m map[string]int) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%d", k, m[k])
	}
	return strings.Join(parts, " ")
}
