package molecules

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func TestOpLine(t *testing.T) {
	tests := []struct {
		phase, trigger, errMsg string
		want                   []string
	}{
		{"started", "user", "", []string{"* history"}},
		{"succeeded", "follow-on", "", []string{"✓", "history", "800ms", "(follow-on)"}},
		{"failed", "user", "Backend error: 500", []string{"✗", "history: Backend error: 500"}},
	}
	for _, tt := range tests {
		got := OpLine(tt.phase, "history", tt.trigger, "*", tt.errMsg, 800*time.Millisecond)
		for _, w := range tt.want {
			if !strings.Contains(got, w) {
				t.Errorf("OpLine(%s) = %q, missing %q", tt.phase, got, w)
			}
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("first\nsecond", 20); got != "first" {
		t.Errorf("got %q", got)
	}
	if got := Truncate("😀😀😀😀😀😀", 5); got != "😀😀..." {
		t.Errorf("got %q", got)
	}
}

func TestStars(t *testing.T) {
	s := lipgloss.NewStyle()
	if got := Stars(3, s, s); got != "★★★☆☆" {
		t.Errorf("got %q", got)
	}
	if got := Stars(9, s, s); got != "★★★★★" {
		t.Errorf("got %q", got)
	}
}

func TestMessageInput_SubmitAndRecall(t *testing.T) {
	in := NewMessageInput()
	in.SetValue("I love pizza")

	in, cmd := in.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected submit command")
	}
	if msg, ok := cmd().(SubmitMsg); !ok || msg.Content != "I love pizza" {
		t.Fatalf("unexpected msg %#v", cmd())
	}

	in.SetValue("draft")
	in, _ = in.Update(tea.KeyMsg{Type: tea.KeyUp})
	if in.Value() != "I love pizza" {
		t.Errorf("recall = %q", in.Value())
	}
	in, _ = in.Update(tea.KeyMsg{Type: tea.KeyDown})
	if in.Value() != "draft" {
		t.Errorf("draft restore = %q", in.Value())
	}

	in.SetEnabled(false)
	if _, cmd := in.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Error("disabled input should not submit")
	}
}
