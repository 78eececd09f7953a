package emoji

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEmojisUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Emojis
	}{
		{name: "array", in: `["🍕","😍"]`, want: Emojis{"🍕", "😍"}},
		{name: "single string", in: `"🔥"`, want: Emojis{"🔥"}},
		{name: "empty string", in: `""`, want: nil},
		{name: "null", in: `null`, want: nil},
		{name: "empty array", in: `[]`, want: Emojis{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Emojis
			if err := json.Unmarshal([]byte(tt.in), &got); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("emojis mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEmojisUnmarshal_Invalid(t *testing.T) {
	var got Emojis
	if err := json.Unmarshal([]byte(`{"a":1}`), &got); err == nil {
		t.Fatal("expected error for object payload")
	}
}

func TestEmojisString(t *testing.T) {
	if got := (Emojis{"🍕", "😍"}).String(); got != "🍕 😍" {
		t.Errorf("String() = %q, want %q", got, "🍕 😍")
	}
	if got := Emojis(nil).String(); got != "No emojis" {
		t.Errorf("String() = %q, want %q", got, "No emojis")
	}
}

func TestSuggestionDecode(t *testing.T) {
	var s Suggestion
	data := `{"emojis":["🍕","😍"],"explanation":"expresses love of food","message_id":7,"created_at":"2026-01-02T03:04:05"}`
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		t.Fatal(err)
	}
	want := Suggestion{
		Emojis:      Emojis{"🍕", "😍"},
		Explanation: "expresses love of food",
		MessageID:   7,
		CreatedAt:   "2026-01-02T03:04:05",
	}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Errorf("suggestion mismatch (-want +got):\n%s", diff)
	}
}

func TestHistoryEntryPlaceholders(t *testing.T) {
	var h HistoryEntry
	if h.MessageText() != "No message" {
		t.Errorf("MessageText() = %q", h.MessageText())
	}
	if h.ExplanationText() != "No explanation" {
		t.Errorf("ExplanationText() = %q", h.ExplanationText())
	}
	if h.CreatedText() != "Unknown" {
		t.Errorf("CreatedText() = %q", h.CreatedText())
	}
}

func TestAnalyticsEntryString(t *testing.T) {
	if got := (AnalyticsEntry{Emoji: "🍕", Count: 12}).String(); got != "🍕: 12" {
		t.Errorf("String() = %q, want %q", got, "🍕: 12")
	}
}

func TestValidRating(t *testing.T) {
	for r := -1; r <= 7; r++ {
		want := r >= 1 && r <= 5
		if got := ValidRating(r); got != want {
			t.Errorf("ValidRating(%d) = %v, want %v", r, got, want)
		}
	}
}
