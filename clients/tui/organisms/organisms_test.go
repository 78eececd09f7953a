package organisms

import (
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/dohr-michael/emotai/internal/emoji"
	"github.com/dohr-michael/emotai/internal/particles"
)

var plain = CardStyles{
	Card:    lipgloss.NewStyle(),
	Title:   lipgloss.NewStyle(),
	Accent:  lipgloss.NewStyle(),
	Error:   lipgloss.NewStyle(),
	Muted:   lipgloss.NewStyle(),
	Success: lipgloss.NewStyle(),
}

func TestParticleField_ClipsToBand(t *testing.T) {
	engine := particles.New(40, 6, particles.WithRand(rand.New(rand.NewPCG(7, 7))))
	start := time.Unix(0, 0)
	f := NewParticleField(engine, start)
	f.SetSize(40, 6)

	for _, dt := range []time.Duration{0, time.Second, 5 * time.Second} {
		f.Advance(start.Add(dt))
		for y, row := range f.Cells() {
			if y < 0 || y >= 6 {
				t.Fatalf("row %d outside band", y)
			}
			for x := range row {
				if x < 0 || x >= 40 {
					t.Fatalf("column %d outside band", x)
				}
			}
		}
		lines := strings.Split(f.View(), "\n")
		if len(lines) != 6 {
			t.Fatalf("expected 6 lines, got %d", len(lines))
		}
		for i, l := range lines {
			if w := lipgloss.Width(l); w != 40 {
				t.Errorf("line %d width %d", i, w)
			}
		}
	}
}

func TestParticleField_NilEngine(t *testing.T) {
	f := NewParticleField(nil, time.Now())
	f.SetSize(10, 2)
	if len(f.Cells()) != 0 {
		t.Error("expected no cells")
	}
	if got := f.View(); got != strings.Repeat(" ", 10)+"\n"+strings.Repeat(" ", 10) {
		t.Errorf("unexpected view %q", got)
	}
}

func TestHistoryRows_Placeholders(t *testing.T) {
	rows := HistoryRows([]emoji.HistoryEntry{{}}, plain)
	joined := strings.Join(rows, "\n")
	for _, want := range []string{"No emojis", "No message", "No explanation", "Unknown"} {
		if !strings.Contains(joined, want) {
			t.Errorf("missing %q in %q", want, joined)
		}
	}

	if rows := HistoryRows(nil, plain); !strings.Contains(rows[0], "No history") {
		t.Errorf("empty history row = %q", rows[0])
	}
}

func TestAnalyticsRows(t *testing.T) {
	if rows := AnalyticsRows(nil, emoji.AnalyticsStats{}, plain); !strings.Contains(rows[0], "not loaded") {
		t.Errorf("unloaded rows = %v", rows)
	}

	rows := AnalyticsRows(
		[]emoji.AnalyticsEntry{{Emoji: "🍕", Count: 12}},
		emoji.AnalyticsStats{MessageCount: 3, Sentiment: map[string]int{"positive": 2, "negative": 1}},
		plain,
	)
	joined := strings.Join(rows, "\n")
	for _, want := range []string{"Emoji Usage Stats", "🍕: 12", "messages: 3", "sentiment: negative=1 positive=2"} {
		if !strings.Contains(joined, want) {
			t.Errorf("missing %q in %q", want, joined)
		}
	}
}

func TestResultCard(t *testing.T) {
	if ResultCard(nil, 80, plain) != "" {
		t.Error("nil suggestion should render nothing")
	}
	out := ResultCard(&emoji.Suggestion{Emojis: emoji.Emojis{"🍕", "😍"}, Explanation: "food"}, 80, plain)
	if !strings.Contains(out, "🍕 😍") || !strings.Contains(out, "food") {
		t.Errorf("card = %q", out)
	}
}

func TestStatusBar_View(t *testing.T) {
	bar := NewStatusBar("http://127.0.0.1:5000", lipgloss.NewStyle())
	bar.SetWidth(200)
	bar.SetVersion(4, true)
	bar.SetCounts(2, 7)

	view := bar.View()
	for _, want := range []string{"http://127.0.0.1:5000 |", "v4", "loading", "history:2", "7 msgs"} {
		if !strings.Contains(view, want) {
			t.Errorf("view %q missing %q", view, want)
		}
	}

	bar.SetHealth("dead")
	if !strings.Contains(bar.View(), "http://127.0.0.1:5000 (dead)") {
		t.Errorf("health not shown: %q", bar.View())
	}
}
