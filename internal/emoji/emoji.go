// Package emoji holds the data exchanged with the suggestion service.
package emoji

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Emojis is the glyph part of a suggestion. The service sends either a list of
// glyphs or a single glyph string; both decode into the same slice.
type Emojis []string

// UnmarshalJSON accepts a JSON array of strings, a single string or null.
func (e *Emojis) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*e = nil
		return nil
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			*e = nil
			return nil
		}
		*e = Emojis{s}
		return nil
	}

	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		return fmt.Errorf("emojis: expected string or array: %w", err)
	}
	*e = Emojis(list)
	return nil
}

// String joins the glyphs with a single space.
func (e Emojis) String() string {
	if len(e) == 0 {
		return "No emojis"
	}
	return strings.Join(e, " ")
}

// Suggestion is the result of a suggest call.
type Suggestion struct {
	Emojis      Emojis `json:"emojis" yaml:"emojis"`
	Explanation string `json:"explanation" yaml:"explanation"`
	MessageID   int64  `json:"message_id,omitempty" yaml:"message_id,omitempty"`
	CreatedAt   string `json:"created_at,omitempty" yaml:"created_at,omitempty"`
}

// ExplanationText returns the explanation or a placeholder when empty.
func (s Suggestion) ExplanationText() string {
	if s.Explanation == "" {
		return "No explanation available"
	}
	return s.Explanation
}

// EntryFeedback is the feedback the service attached to a history entry.
type EntryFeedback struct {
	Rating  int    `json:"rating" yaml:"rating"`
	Comment string `json:"comment,omitempty" yaml:"comment,omitempty"`
}

// HistoryEntry is one past suggestion interaction.
type HistoryEntry struct {
	Message     string         `json:"message" yaml:"message"`
	Emojis      Emojis         `json:"emojis" yaml:"emojis"`
	Explanation string         `json:"explanation" yaml:"explanation"`
	CreatedAt   string         `json:"created_at" yaml:"created_at"`
	MessageID   int64          `json:"message_id,omitempty" yaml:"message_id,omitempty"`
	Feedback    *EntryFeedback `json:"feedback,omitempty" yaml:"feedback,omitempty"`
}

// MessageText returns the message or a placeholder.
func (h HistoryEntry) MessageText() string {
	if h.Message == "" {
		return "No message"
	}
	return h.Message
}

// ExplanationText returns the explanation or a placeholder.
func (h HistoryEntry) ExplanationText() string {
	if h.Explanation == "" {
		return "No explanation"
	}
	return h.Explanation
}

// CreatedText returns the creation timestamp or a placeholder.
func (h HistoryEntry) CreatedText() string {
	if h.CreatedAt == "" {
		return "Unknown"
	}
	return h.CreatedAt
}

// AnalyticsEntry is the usage count of a single glyph.
type AnalyticsEntry struct {
	Emoji string `json:"emoji" yaml:"emoji"`
	Count int    `json:"count" yaml:"count"`
}

// String renders the entry as "glyph: count".
func (a AnalyticsEntry) String() string {
	return fmt.Sprintf("%s: %d", a.Emoji, a.Count)
}

// AnalyticsStats carries the aggregate figures sent alongside the usage list.
type AnalyticsStats struct {
	Sentiment    map[string]int `json:"sentiment_stats,omitempty" yaml:"sentiment_stats,omitempty"`
	Feedback     map[string]int `json:"feedback_stats,omitempty" yaml:"feedback_stats,omitempty"`
	MessageCount int            `json:"message_count" yaml:"message_count"`
}

// Analytics is a complete analytics snapshot.
type Analytics struct {
	Usage []AnalyticsEntry `json:"emoji_usage" yaml:"emoji_usage"`
	Stats AnalyticsStats   `json:"stats" yaml:"stats"`
}

// DefaultRating is the rating a feedback form starts with.
const DefaultRating = 5

// Feedback is a feedback submission. It is built at submit time and not retained.
type Feedback struct {
	Message  string `json:"message" yaml:"message"`
	Feedback string `json:"feedback" yaml:"feedback"`
	Rating   int    `json:"rating" yaml:"rating"`
}

// ValidRating reports whether r is within 1..5.
func ValidRating(r int) bool {
	return r >= 1 && r <= 5
}
