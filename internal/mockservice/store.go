package mockservice

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dohr-michael/emotai/internal/emoji"
)

// Record is one stored suggestion.
type Record struct {
	ID         int64
	SessionID  string
	Message    string
	Suggestion emoji.Suggestion
	CreatedAt  time.Time
	Feedback   *emoji.EntryFeedback
}

// Store keeps suggestions and feedback in memory.
type Store struct {
	mu      sync.RWMutex
	now     func() time.Time
	nextID  int64
	records []*Record
}

// NewStore creates an empty store using now as its clock.
func NewStore(now func() time.Time) *Store {
	return &Store{now: now}
}

// AddSuggestion records a suggestion for the session.
func (s *Store) AddSuggestion(sessionID, message string, sug emoji.Suggestion) Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	rec := &Record{
		ID:         s.nextID,
		SessionID:  sessionID,
		Message:    message,
		Suggestion: sug,
		CreatedAt:  s.now().UTC(),
	}
	s.records = append(s.records, rec)
	return *rec
}

// History returns the session's entries, newest first.
func (s *Store) History(sessionID string) []emoji.HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []emoji.HistoryEntry{}
	for i := len(s.records) - 1; i >= 0; i-- {
		rec := s.records[i]
		if rec.SessionID != sessionID {
			continue
		}
		out = append(out, emoji.HistoryEntry{
			Message:     rec.Message,
			Emojis:      rec.Suggestion.Emojis,
			Explanation: rec.Suggestion.Explanation,
			CreatedAt:   rec.CreatedAt.Format(time.RFC3339),
			MessageID:   rec.ID,
			Feedback:    rec.Feedback,
		})
	}
	return out
}

// AddFeedback attaches feedback to the session's latest record for the same
// message. Feedback for an unknown message is accepted and dropped.
func (s *Store) AddFeedback(sessionID string, fb emoji.Feedback) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := len(s.records) - 1; i >= 0; i-- {
		rec := s.records[i]
		if rec.SessionID == sessionID && rec.Message == fb.Message {
			rec.Feedback = &emoji.EntryFeedback{Rating: fb.Rating, Comment: fb.Feedback}
			return true
		}
	}
	return false
}

// DeleteSession removes every record of the session.
func (s *Store) DeleteSession(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.records[:0]
	for _, rec := range s.records {
		if rec.SessionID != sessionID {
			kept = append(kept, rec)
		}
	}
	s.records = kept
}

// Analytics aggregates usage over all sessions. Usage is sorted by count
// descending, then glyph.
func (s *Store) Analytics() emoji.Analytics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := map[string]int{}
	sentiment := map[string]int{"positive": 0, "negative": 0, "neutral": 0, "other": 0}
	feedback := map[string]int{}
	for _, rec := range s.records {
		for _, e := range rec.Suggestion.Emojis {
			counts[e]++
		}
		sentiment[sentimentOf(rec.Suggestion.Explanation)]++
		if rec.Feedback != nil {
			feedback[strconv.Itoa(rec.Feedback.Rating)]++
		}
	}

	usage := make([]emoji.AnalyticsEntry, 0, len(counts))
	for e, n := range counts {
		usage = append(usage, emoji.AnalyticsEntry{Emoji: e, Count: n})
	}
	sort.Slice(usage, func(i, j int) bool {
		if usage[i].Count != usage[j].Count {
			return usage[i].Count > usage[j].Count
		}
		return usage[i].Emoji < usage[j].Emoji
	})

	return emoji.Analytics{
		Usage: usage,
		Stats: emoji.AnalyticsStats{
			Sentiment:    sentiment,
			Feedback:     feedback,
			MessageCount: len(s.records),
		},
	}
}

func sentimentOf(explanation string) string {
	switch {
	case strings.Contains(explanation, "positive"):
		return "positive"
	case strings.Contains(explanation, "negative"):
		return "negative"
	case strings.Contains(explanation, "neutral"):
		return "neutral"
	default:
		return "other"
	}
}
