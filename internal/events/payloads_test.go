package events

import (
	"testing"
	"time"
)

func TestTypedEvent_FeedbackAck(t *testing.T) {
	evt := NewEvent(SourceController, FeedbackAckPayload{OK: true, Text: "Thank you for your feedback!"})

	if evt.Type != EventFeedbackAck {
		t.Fatalf("expected type %q, got %q", EventFeedbackAck, evt.Type)
	}
	if evt.Source != SourceController {
		t.Fatalf("expected source %q, got %q", SourceController, evt.Source)
	}
	got, ok := GetFeedbackAckPayload(evt)
	if !ok {
		t.Fatal("GetFeedbackAckPayload returned false")
	}
	if !got.OK || got.Text != "Thank you for your feedback!" {
		t.Fatalf("unexpected payload %+v", got)
	}
}

func TestTypedEvent_Operation(t *testing.T) {
	evt := NewEvent(SourceController, OperationPayload{
		Op:       "history",
		Phase:    PhaseFailed,
		Trigger:  TriggerFollowOn,
		Error:    "Backend error: 500",
		Duration: 3 * time.Millisecond,
	})

	if evt.Type != EventOperation {
		t.Fatalf("expected type %q, got %q", EventOperation, evt.Type)
	}
	got, ok := GetOperationPayload(evt)
	if !ok {
		t.Fatal("GetOperationPayload returned false")
	}
	if got.Phase != PhaseFailed || got.Trigger != TriggerFollowOn {
		t.Fatalf("unexpected payload %+v", got)
	}
}

func TestExtractPayload_WrongType(t *testing.T) {
	evt := NewEvent(SourceController, FeedbackAckPayload{OK: true})
	if _, ok := GetOperationPayload(evt); ok {
		t.Fatal("expected false for mismatched payload type")
	}
}

func TestEventIDsAreUnique(t *testing.T) {
	a := NewEvent(SourceCLI, FeedbackAckPayload{})
	b := NewEvent(SourceCLI, FeedbackAckPayload{})
	if a.ID == b.ID {
		t.Fatalf("expected distinct ids, got %q twice", a.ID)
	}
}
