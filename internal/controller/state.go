package controller

import (
	"slices"

	"github.com/dohr-michael/emotai/internal/emoji"
	"github.com/dohr-michael/emotai/internal/events"
)

// State is everything a front-end renders. Snapshots are copies; the
// controller's own copy is only touched by its owning goroutine.
type State struct {
	// Version increases by one on every committed change.
	Version uint64

	Message  string
	Result   *emoji.Suggestion
	History  []emoji.HistoryEntry
	Feedback string
	Rating   int
	Error    string
	Loading  bool

	// Analytics is nil until the first successful fetch, and after Reset.
	Analytics []emoji.AnalyticsEntry
	Stats     emoji.AnalyticsStats
}

func initialState() State {
	return State{Rating: emoji.DefaultRating}
}

// HasResult reports whether a suggestion is displayed.
func (s State) HasResult() bool {
	return s.Result != nil
}

func (s State) clone() State {
	out := s
	if s.Result != nil {
		r := *s.Result
		r.Emojis = slices.Clone(s.Result.Emojis)
		out.Result = &r
	}
	out.History = slices.Clone(s.History)
	out.Analytics = slices.Clone(s.Analytics)
	return out
}

// StateChanged is published on the bus after every committed change.
type StateChanged struct {
	State State
}

func (StateChanged) EventType() events.EventType { return events.EventStateChanged }

// GetStateChanged extracts a StateChanged payload.
func GetStateChanged(e events.Event) (StateChanged, bool) {
	return events.ExtractPayload[StateChanged](e)
}
